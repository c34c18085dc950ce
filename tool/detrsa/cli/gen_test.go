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
	"encoding/pem"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/gravitational/detrsa/lib/constants"
	"github.com/gravitational/detrsa/lib/defaults"
	"github.com/gravitational/detrsa/lib/keys"
	"github.com/gravitational/detrsa/lib/processconfig"
	"github.com/gravitational/detrsa/lib/utils"

	"github.com/gravitational/trace"
	"gopkg.in/check.v1"
)

type GenSuite struct {
	dir string
}

var _ = check.Suite(&GenSuite{})

func (s *GenSuite) SetUpSuite(c *check.C) {
	utils.DiscardLogs()
}

const testSeed = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func (s *GenSuite) SetUpTest(c *check.C) {
	s.dir = c.MkDir()
}

func (s *GenSuite) TestGeneratesPEM(c *check.C) {
	first := s.generate(c, GenParameters{SeedHex: testSeed})
	second := s.generate(c, GenParameters{SeedHex: testSeed})
	c.Assert(first, check.Equals, second)

	block, rest := pem.Decode([]byte(first))
	c.Assert(block, check.NotNil)
	c.Assert(rest, check.HasLen, 0)
	c.Assert(block.Type, check.Equals, defaults.RSAPrivateKeyPEMBlock)
}

func (s *GenSuite) TestGeneratesJWK(c *check.C) {
	out := s.generate(c, GenParameters{
		SeedHex: testSeed,
		Config:  processconfig.Config{Bits: 1024, Format: constants.EncodingJWK},
	})
	var pair keys.KeyPair
	c.Assert(json.Unmarshal([]byte(out), &pair), check.IsNil)
	c.Assert(pair.PrivateKey.KeyID, check.Not(check.Equals), "")
	c.Assert(pair.PublicKey.KeyID, check.Equals, pair.PrivateKey.KeyID)
	c.Assert(pair.PublicKey.IsPublic(), check.Equals, true)
}

func (s *GenSuite) TestMnemonicFile(c *check.C) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	path := filepath.Join(s.dir, "mnemonic")
	c.Assert(ioutil.WriteFile(path, []byte(mnemonic+"\n"), 0600), check.IsNil)
	fromFile := s.generate(c, GenParameters{MnemonicFile: path, Passphrase: "TREZOR"})
	fromFlag := s.generate(c, GenParameters{Mnemonic: mnemonic, Passphrase: "TREZOR"})
	c.Assert(fromFile, check.Equals, fromFlag)
}

func (s *GenSuite) TestRandomSeedIsReported(c *check.C) {
	var stdout, stderr bytes.Buffer
	err := generate(GenParameters{
		Config:     processconfig.Config{Bits: 512},
		RandomSeed: true,
		Stdout:     &stdout,
		Stderr:     &stderr,
	})
	c.Assert(err, check.IsNil)
	c.Assert(strings.HasPrefix(stderr.String(), "Seed: "), check.Equals, true)

	seedHex := strings.TrimSpace(strings.TrimPrefix(stderr.String(), "Seed: "))
	c.Assert(s.generate(c, GenParameters{SeedHex: seedHex}), check.Equals, stdout.String())
}

func (s *GenSuite) TestRequiresOneSeedSource(c *check.C) {
	for _, p := range []GenParameters{
		{},
		{SeedHex: testSeed, RandomSeed: true},
		{SeedHex: testSeed, Mnemonic: "abandon about"},
		{SeedHex: testSeed, Passphrase: "TREZOR"},
	} {
		err := generate(p)
		c.Assert(trace.IsBadParameter(err), check.Equals, true, check.Commentf("%v", err))
	}
}

func (s *GenSuite) TestWritesFile(c *check.C) {
	path := filepath.Join(s.dir, "key.pem")
	var stdout bytes.Buffer
	p := GenParameters{
		Config:  processconfig.Config{Bits: 512},
		SeedHex: testSeed,
		OutPath: path,
		Stdout:  &stdout,
	}
	c.Assert(generate(p), check.IsNil)
	c.Assert(stdout.Len(), check.Equals, 0)

	fi, err := os.Stat(path)
	c.Assert(err, check.IsNil)
	c.Assert(fi.Mode().Perm(), check.Equals, os.FileMode(defaults.PrivateKeyFileMask))

	err = generate(p)
	c.Assert(trace.IsAlreadyExists(err), check.Equals, true, check.Commentf("%v", err))

	p.Overwrite = true
	c.Assert(generate(p), check.IsNil)
}

func (s *GenSuite) TestMetricsFile(c *check.C) {
	path := filepath.Join(s.dir, "detrsa.prom")
	s.generate(c, GenParameters{
		Config:  processconfig.Config{Bits: 512, MetricsFile: path},
		SeedHex: testSeed,
	})
	data, err := ioutil.ReadFile(path)
	c.Assert(err, check.IsNil)
	c.Assert(string(data), check.Matches, `(?s).*detrsa_key_generations_total\{result="ok",stream="chacha20"\} 1.*`)
}

func (s *GenSuite) TestReportsGenerationFailure(c *check.C) {
	path := filepath.Join(s.dir, "detrsa.prom")
	var stdout bytes.Buffer
	err := generate(GenParameters{
		Config:  processconfig.Config{Bits: 8, MetricsFile: path},
		SeedHex: testSeed,
		Stdout:  &stdout,
	})
	c.Assert(utils.IsGenerationError(err), check.Equals, true, check.Commentf("%v", err))
	c.Assert(stdout.Len(), check.Equals, 0)

	data, err := ioutil.ReadFile(path)
	c.Assert(err, check.IsNil)
	c.Assert(string(data), check.Matches, `(?s).*result="generation_failure".*`)
}

func (s *GenSuite) TestSummary(c *check.C) {
	var stdout, stderr bytes.Buffer
	err := generate(GenParameters{
		Config:  processconfig.Config{Bits: 512},
		SeedHex: testSeed,
		Summary: true,
		Stdout:  &stdout,
		Stderr:  &stderr,
	})
	c.Assert(err, check.IsNil)
	c.Assert(stderr.String(), check.Matches, `(?s).*KEY ID.*512.*chacha20.*`)
}

// generate runs the command and returns its output.
// Unless set, bits default to 512 to keep tests fast.
func (s *GenSuite) generate(c *check.C, p GenParameters) string {
	if p.Bits == 0 {
		p.Bits = 512
	}
	var stdout bytes.Buffer
	p.Stdout = &stdout
	p.Stderr = ioutil.Discard
	c.Assert(generate(p), check.IsNil)
	return stdout.String()
}
