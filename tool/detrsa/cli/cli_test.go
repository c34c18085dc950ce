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

package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/gravitational/detrsa/lib/constants"

	"github.com/gravitational/version"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/check.v1"
)

func TestCLI(t *testing.T) { check.TestingT(t) }

type CLISuite struct{}

var _ = check.Suite(&CLISuite{})

func (s *CLISuite) TestPrintSeedFromMnemonic(c *check.C) {
	var out bytes.Buffer
	err := printSeed(&out,
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
		"TREZOR")
	c.Assert(err, check.IsNil)
	c.Assert(out.String(), check.Equals,
		"c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e5349553\n")
}

func (s *CLISuite) TestPrintRandomSeed(c *check.C) {
	var first, second bytes.Buffer
	c.Assert(printSeed(&first, "", ""), check.IsNil)
	c.Assert(printSeed(&second, "", ""), check.IsNil)
	c.Assert(first.String(), check.HasLen, 65)
	c.Assert(first.String(), check.Not(check.Equals), second.String())
	c.Assert(printSeed(&first, "", "TREZOR"), check.NotNil)
}

func (s *CLISuite) TestPrintVersion(c *check.C) {
	var out bytes.Buffer
	c.Assert(printVersion(&out, constants.EncodingJSON), check.IsNil)
	var info version.Info
	c.Assert(json.Unmarshal(out.Bytes(), &info), check.IsNil)
	c.Assert(info, check.DeepEquals, version.Get())

	c.Assert(printVersion(&out, constants.EncodingJWK), check.NotNil)
}

func (s *CLISuite) TestRegisterCommands(c *check.C) {
	app := RegisterCommands(kingpinApp())
	cmd, err := app.Parse([]string{"gen", "--bits", "2048", "--stream", "hmac-drbg", "--format", "jwk", "--seed", testSeed})
	c.Assert(err, check.IsNil)
	c.Assert(cmd, check.Equals, app.GenCmd.FullCommand())
	c.Assert(*app.GenCmd.Bits, check.Equals, 2048)
	c.Assert(*app.GenCmd.Stream, check.Equals, constants.StreamHMACDRBG)
	c.Assert(*app.GenCmd.Format, check.Equals, constants.EncodingJWK)

	app = RegisterCommands(kingpinApp())
	_, err = app.Parse([]string{"gen", "--stream", "rot13"})
	c.Assert(err, check.NotNil)
}

func kingpinApp() *kingpin.Application {
	return kingpin.New("detrsa", "").Terminate(nil)
}
