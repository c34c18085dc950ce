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
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/gravitational/detrsa/lib/constants"
	"github.com/gravitational/detrsa/lib/defaults"
	"github.com/gravitational/detrsa/lib/keys"
	"github.com/gravitational/detrsa/lib/metrics"
	"github.com/gravitational/detrsa/lib/pkcs1"
	"github.com/gravitational/detrsa/lib/processconfig"
	"github.com/gravitational/detrsa/lib/seed"
	"github.com/gravitational/detrsa/lib/utils"
	"github.com/gravitational/detrsa/tool/common"

	"github.com/gravitational/trace"
)

// GenParameters defines parameters of the key generation command
type GenParameters struct {
	// Config is the merged file, environment and flag configuration
	processconfig.Config
	// SeedHex is the hex encoded seed
	SeedHex string
	// Mnemonic is the mnemonic phrase to derive the seed from
	Mnemonic string
	// MnemonicFile is the file with the mnemonic phrase, - for stdin
	MnemonicFile string
	// Passphrase is the optional mnemonic passphrase
	Passphrase string
	// RandomSeed generates a random seed
	RandomSeed bool
	// OutPath is the private key file, Stdout is used if empty
	OutPath string
	// Overwrite allows to replace the existing OutPath
	Overwrite bool
	// Summary prints the generation summary to Stderr
	Summary bool
	// Stdout receives the key unless OutPath is set
	Stdout io.Writer
	// Stderr receives the summary and the random seed
	Stderr io.Writer
}

// CheckAndSetDefaults validates the parameters and sets defaults
func (p *GenParameters) CheckAndSetDefaults() error {
	if err := p.Config.CheckAndSetDefaults(); err != nil {
		return trace.Wrap(err)
	}
	var sources int
	for _, set := range []bool{p.SeedHex != "", p.Mnemonic != "", p.MnemonicFile != "", p.RandomSeed} {
		if set {
			sources++
		}
	}
	switch {
	case sources == 0:
		return trace.BadParameter("one of --seed, --mnemonic, --mnemonic-file or --random-seed is required")
	case sources > 1:
		return trace.BadParameter("--seed, --mnemonic, --mnemonic-file and --random-seed are mutually exclusive")
	}
	if p.Passphrase != "" && p.Mnemonic == "" && p.MnemonicFile == "" {
		return trace.BadParameter("--passphrase requires --mnemonic or --mnemonic-file")
	}
	if p.Stdout == nil {
		p.Stdout = os.Stdout
	}
	if p.Stderr == nil {
		p.Stderr = os.Stderr
	}
	return nil
}

func generate(p GenParameters) error {
	if err := p.CheckAndSetDefaults(); err != nil {
		return trace.Wrap(err)
	}
	if p.OutPath != "" && !p.Overwrite {
		exists, err := utils.IsFile(p.OutPath)
		if err != nil && !trace.IsNotFound(err) {
			return trace.Wrap(err)
		}
		if exists {
			return trace.AlreadyExists("file %v already exists, use --overwrite to replace it", p.OutPath)
		}
	}
	keySeed, err := p.seed()
	if err != nil {
		return trace.Wrap(err)
	}

	collector, err := metrics.New()
	if err != nil {
		return trace.Wrap(err)
	}
	recorder := &outcomeRecorder{}
	generator := keys.NewGenerator(collector, recorder)
	key, err := generator.Generate(keys.Request{
		Bits:           p.Bits,
		Seed:           keySeed,
		Stream:         p.Stream,
		PublicExponent: p.PublicExponent,
	})
	if p.MetricsFile != "" {
		if err := collector.WriteTextfile(p.MetricsFile); err != nil {
			log.WithError(err).Warn("Failed to write metrics.")
		}
	}
	if err != nil {
		return trace.Wrap(err)
	}

	out, err := encodeKey(key, p.Format)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := p.writeKey(out); err != nil {
		return trace.Wrap(err)
	}
	if p.Summary {
		return printSummary(p.Stderr, key, recorder.outcome, len(out))
	}
	return nil
}

func (p GenParameters) seed() (seed.Seed, error) {
	switch {
	case p.SeedHex != "":
		return seed.FromHex(p.SeedHex)
	case p.Mnemonic != "":
		return seed.FromMnemonic(p.Mnemonic, p.Passphrase)
	case p.MnemonicFile != "":
		r, err := common.GetReader(p.MnemonicFile)
		if err != nil {
			return seed.Seed{}, trace.Wrap(err)
		}
		defer r.Close()
		mnemonic, err := ioutil.ReadAll(r)
		if err != nil {
			return seed.Seed{}, trace.ConvertSystemError(err)
		}
		return seed.FromMnemonic(string(mnemonic), p.Passphrase)
	}
	random, err := utils.RandomSeed()
	if err != nil {
		return seed.Seed{}, trace.Wrap(err)
	}
	fmt.Fprintf(p.Stderr, "Seed: %v\n", seed.Hex(random))
	return random, nil
}

func (p GenParameters) writeKey(out []byte) error {
	if p.OutPath == "" {
		_, err := p.Stdout.Write(out)
		return trace.Wrap(err)
	}
	err := utils.WriteFileAtomic(p.OutPath, out, defaults.PrivateKeyFileMask)
	if err != nil {
		return trace.Wrap(err)
	}
	log.WithField("path", p.OutPath).Info("Wrote private key.")
	return nil
}

func encodeKey(key *pkcs1.PrivateKey, format constants.Format) ([]byte, error) {
	switch format {
	case constants.EncodingPEM:
		return key.MarshalPEM()
	case constants.EncodingJWK:
		return keys.MarshalJWK(key)
	}
	return nil, trace.BadParameter("unsupported format %q", format)
}

// outcomeRecorder remembers the last generation outcome
type outcomeRecorder struct {
	outcome keys.Outcome
}

// GenerationFinished records the outcome
func (r *outcomeRecorder) GenerationFinished(outcome keys.Outcome) {
	r.outcome = outcome
}
