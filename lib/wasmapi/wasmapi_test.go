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

package wasmapi

import (
	"crypto/x509"
	"encoding/pem"
	"testing"
	"unsafe"

	"github.com/gravitational/detrsa/lib/constants"
	"github.com/gravitational/detrsa/lib/defaults"
	"github.com/gravitational/detrsa/lib/handoff"
	"github.com/gravitational/detrsa/lib/keys"
	"github.com/gravitational/detrsa/lib/utils"

	. "gopkg.in/check.v1"
)

func TestWasmAPI(t *testing.T) { TestingT(t) }

type ExportsSuite struct {
	exports *Exports
}

var _ = Suite(&ExportsSuite{})

func (s *ExportsSuite) SetUpSuite(c *C) {
	utils.DiscardLogs()
}

func (s *ExportsSuite) SetUpTest(c *C) {
	var err error
	s.exports, err = New(Config{})
	c.Assert(err, IsNil)
}

func (s *ExportsSuite) TestGeneratesAndPublishesKey(c *C) {
	seed := s.seed(c, 7)
	addr := s.exports.GenKeys(1024, unsafe.Pointer(seed), defaults.SeedSize)
	c.Assert(addr, Not(Equals), uintptr(0))
	c.Assert(s.exports.LastError(), Equals, uint32(keys.KindNone))

	text := published(addr)
	block, rest := pem.Decode(text)
	c.Assert(block, NotNil)
	c.Assert(rest, HasLen, 0)
	c.Assert(block.Type, Equals, defaults.RSAPrivateKeyPEMBlock)
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	c.Assert(err, IsNil)
	c.Assert(key.N.BitLen(), Equals, 1024)

	c.Assert(s.exports.FreeResult(addr), Equals, uint32(1))
	c.Assert(s.exports.FreeSeed(seed), Equals, uint32(1))
	results, seeds := s.exports.Registry.Outstanding()
	c.Assert(results, Equals, 0)
	c.Assert(seeds, Equals, 0)
}

func (s *ExportsSuite) TestDeterministic(c *C) {
	seed := s.seed(c, 42)
	first := s.exports.GenKeys(512, unsafe.Pointer(seed), defaults.SeedSize)
	second := s.exports.GenKeys(512, unsafe.Pointer(seed), defaults.SeedSize)
	c.Assert(first, Not(Equals), uintptr(0))
	c.Assert(second, Not(Equals), uintptr(0))
	c.Assert(first, Not(Equals), second)
	c.Assert(string(published(first)), Equals, string(published(second)))

	other, err := New(Config{Stream: constants.StreamHMACDRBG})
	c.Assert(err, IsNil)
	third := other.GenKeys(512, unsafe.Pointer(seed), defaults.SeedSize)
	c.Assert(third, Not(Equals), uintptr(0))
	c.Assert(string(published(third)), Not(Equals), string(published(first)))
}

func (s *ExportsSuite) TestRejectsTinyKeys(c *C) {
	seed := s.seed(c, 1)
	addr := s.exports.GenKeys(8, unsafe.Pointer(seed), defaults.SeedSize)
	c.Assert(addr, Equals, uintptr(0))
	c.Assert(s.exports.LastError(), Equals, uint32(keys.KindGeneration))
	results, _ := s.exports.Registry.Outstanding()
	c.Assert(results, Equals, 0)
}

func (s *ExportsSuite) TestRejectsBadSeed(c *C) {
	addr := s.exports.GenKeys(512, nil, defaults.SeedSize)
	c.Assert(addr, Equals, uintptr(0))
	c.Assert(s.exports.LastError(), Equals, uint32(keys.KindBadSeed))

	seed := s.seed(c, 1)
	addr = s.exports.GenKeys(512, unsafe.Pointer(seed), defaults.SeedSize-1)
	c.Assert(addr, Equals, uintptr(0))
	c.Assert(s.exports.LastError(), Equals, uint32(keys.KindBadSeed))

	// a successful call resets the code
	addr = s.exports.GenKeys(512, unsafe.Pointer(seed), defaults.SeedSize)
	c.Assert(addr, Not(Equals), uintptr(0))
	c.Assert(s.exports.LastError(), Equals, uint32(keys.KindNone))
}

func (s *ExportsSuite) TestDoubleRelease(c *C) {
	seed := s.seed(c, 3)
	addr := s.exports.GenKeys(512, unsafe.Pointer(seed), defaults.SeedSize)
	c.Assert(addr, Not(Equals), uintptr(0))
	c.Assert(s.exports.FreeResult(addr), Equals, uint32(1))
	c.Assert(s.exports.FreeResult(addr), Equals, uint32(0))
	c.Assert(s.exports.LastError(), Equals, uint32(keys.KindInternal))

	c.Assert(s.exports.FreeSeed(seed), Equals, uint32(1))
	c.Assert(s.exports.FreeSeed(seed), Equals, uint32(0))
}

func (s *ExportsSuite) TestRecoversFromPanic(c *C) {
	exports, err := New(Config{Generator: keys.NewGenerator(panickingObserver{})})
	c.Assert(err, IsNil)
	seed := s.seed(c, 5)
	addr := exports.GenKeys(512, unsafe.Pointer(seed), defaults.SeedSize)
	c.Assert(addr, Equals, uintptr(0))
	c.Assert(exports.LastError(), Equals, uint32(keys.KindInternal))
	results, _ := exports.Registry.Outstanding()
	c.Assert(results, Equals, 0)
}

func (s *ExportsSuite) TestValidatesConfig(c *C) {
	_, err := New(Config{Stream: "rot13"})
	c.Assert(err, NotNil)
}

// seed allocates a seed buffer and fills it with b
func (s *ExportsSuite) seed(c *C, b byte) uintptr {
	addr := s.exports.AllocSeed()
	c.Assert(addr, Not(Equals), uintptr(0))
	buf := unsafe.Slice((*byte)(unsafe.Pointer(addr)), defaults.SeedSize)
	for i := range buf {
		buf[i] = b
	}
	return addr
}

// published reads the text described by the descriptor at addr the way
// the host does
func published(addr uintptr) []byte {
	descriptor := (*handoff.Descriptor)(unsafe.Pointer(addr))
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(descriptor.Ptr))), descriptor.Len)
}

type panickingObserver struct{}

func (panickingObserver) GenerationFinished(keys.Outcome) {
	panic("observer failed")
}
