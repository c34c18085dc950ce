/*
Copyright 2020 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package seed

import (
	"strings"
	"testing"

	"github.com/gravitational/trace"
	. "gopkg.in/check.v1"
)

func TestSeed(t *testing.T) { TestingT(t) }

type SeedSuite struct{}

var _ = Suite(&SeedSuite{})

func (s *SeedSuite) TestFromMnemonic(c *C) {
	// first BIP-39 reference vector
	seed, err := FromMnemonic(
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
		"TREZOR")
	c.Assert(err, IsNil)
	c.Assert(Hex(seed), Equals, "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e5349553")
}

func (s *SeedSuite) TestFromMnemonicTrimsWhitespace(c *C) {
	a, err := FromMnemonic("violin artwork lonely inject", "")
	c.Assert(err, IsNil)
	c.Assert(Hex(a), Equals, "45aa8283f9c84243f43e7dd7ad638fb18de51dea7268ce1f0a4ed7365e008454")
	b, err := FromMnemonic("  violin artwork lonely inject\n", "")
	c.Assert(err, IsNil)
	c.Assert(a, Equals, b)

	// inner separators are part of the phrase
	spaced, err := FromMnemonic("violin  artwork lonely inject", "")
	c.Assert(err, IsNil)
	c.Assert(Hex(spaced), Equals, "8b5b8184c4ede64fed385ae7b93eaf36419473ca5f20d40e8c424b77417be1b1")

	other, err := FromMnemonic("violin artwork lonely inject", "secret")
	c.Assert(err, IsNil)
	c.Assert(other, Not(Equals), a)

	_, err = FromMnemonic("   ", "")
	c.Assert(trace.IsBadParameter(err), Equals, true)
}

func (s *SeedSuite) TestFromHex(c *C) {
	encoded := strings.Repeat("0a", 32)
	seed, err := FromHex(" " + encoded + "\n")
	c.Assert(err, IsNil)
	c.Assert(seed[0], Equals, byte(0x0a))
	c.Assert(seed[31], Equals, byte(0x0a))
	c.Assert(Hex(seed), Equals, encoded)

	for _, input := range []string{"", "zz", strings.Repeat("00", 31), strings.Repeat("00", 33)} {
		_, err := FromHex(input)
		c.Assert(trace.IsBadParameter(err), Equals, true, Commentf("input %q", input))
	}
}
