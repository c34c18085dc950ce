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

	"github.com/gravitational/detrsa/lib/constants"
	"github.com/gravitational/detrsa/lib/defaults"
	"github.com/gravitational/detrsa/tool/common"

	"gopkg.in/alecthomas/kingpin.v2"
)

// RegisterCommands registers all detrsa tool flags, arguments and subcommands
func RegisterCommands(app *kingpin.Application) Application {
	detrsa := Application{
		Application: app,
	}

	detrsa.Debug = app.Flag("debug", "Enable debug mode.").Bool()
	detrsa.ConfigPath = app.Flag("config", fmt.Sprintf("Path to the configuration file. Defaults to %v in one of %v.", defaults.ConfigFileName, defaults.ConfigDirs)).String()

	detrsa.VersionCmd.CmdClause = app.Command("version", "Print version information and exit.")
	detrsa.VersionCmd.Output = common.Format(detrsa.VersionCmd.Flag("output", "Output format: text or json.").Short('o').Default(string(constants.EncodingText)))

	detrsa.GenCmd.CmdClause = app.Command("gen", "Generate an RSA private key from a seed.").Default()
	detrsa.GenCmd.Bits = detrsa.GenCmd.Flag("bits", fmt.Sprintf("Modulus size in bits, between %v and %v. Defaults to %v.", defaults.MinRSAPrivateKeyBits, defaults.MaxRSAPrivateKeyBits, defaults.RSAPrivateKeyBits)).Int()
	detrsa.GenCmd.Seed = detrsa.GenCmd.Flag("seed", fmt.Sprintf("Hex encoded %v byte seed.", defaults.SeedSize)).String()
	detrsa.GenCmd.Mnemonic = detrsa.GenCmd.Flag("mnemonic", "Mnemonic phrase to derive the seed from.").String()
	detrsa.GenCmd.MnemonicFile = detrsa.GenCmd.Flag("mnemonic-file", "File with the mnemonic phrase, - to read from stdin.").String()
	detrsa.GenCmd.Passphrase = detrsa.GenCmd.Flag("passphrase", "Optional mnemonic passphrase.").String()
	detrsa.GenCmd.RandomSeed = detrsa.GenCmd.Flag("random-seed", "Generate a random seed and print it to stderr.").Bool()
	detrsa.GenCmd.Stream = detrsa.GenCmd.Flag("stream", fmt.Sprintf("Seeded stream: %v.", constants.Streams)).Enum(constants.Streams...)
	detrsa.GenCmd.Format = common.Format(detrsa.GenCmd.Flag("format", fmt.Sprintf("Key output format: %v.", constants.KeyFormats)))
	detrsa.GenCmd.OutFile = detrsa.GenCmd.Flag("output", "Private key file name. Defaults to stdout.").Short('o').String()
	detrsa.GenCmd.Overwrite = detrsa.GenCmd.Flag("overwrite", "Overwrite the existing private key file.").Short('f').Bool()
	detrsa.GenCmd.Summary = detrsa.GenCmd.Flag("summary", "Print generation summary to stderr.").Bool()
	detrsa.GenCmd.MetricsFile = detrsa.GenCmd.Flag("metrics-file", "Write generation metrics in Prometheus text format into this file.").String()

	detrsa.SeedCmd.CmdClause = app.Command("seed", "Print a hex encoded seed, random unless derived from a mnemonic.")
	detrsa.SeedCmd.Mnemonic = detrsa.SeedCmd.Flag("mnemonic", "Mnemonic phrase to derive the seed from.").String()
	detrsa.SeedCmd.Passphrase = detrsa.SeedCmd.Flag("passphrase", "Optional mnemonic passphrase.").String()

	return detrsa
}
