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
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/gravitational/detrsa/lib/constants"
)

// Application represents the command-line "detrsa" application and contains
// definitions of all its flags, arguments and subcommands
type Application struct {
	*kingpin.Application
	// Debug allows to run the command in debug mode
	Debug *bool
	// ConfigPath is the path to the configuration file
	ConfigPath *string
	// VersionCmd outputs the binary version
	VersionCmd VersionCmd
	// GenCmd generates a private key
	GenCmd GenCmd
	// SeedCmd prints a seed
	SeedCmd SeedCmd
}

// VersionCmd outputs the binary version
type VersionCmd struct {
	*kingpin.CmdClause
	// Output is output format
	Output *constants.Format
}

// GenCmd generates a private key
type GenCmd struct {
	*kingpin.CmdClause
	// Bits is the modulus size
	Bits *int
	// Seed is the hex encoded seed
	Seed *string
	// Mnemonic is the mnemonic phrase to derive the seed from
	Mnemonic *string
	// MnemonicFile is the file with the mnemonic phrase, - for stdin
	MnemonicFile *string
	// Passphrase is the optional mnemonic passphrase
	Passphrase *string
	// RandomSeed generates a random seed
	RandomSeed *bool
	// Stream is the seeded stream name
	Stream *string
	// Format is the key output format
	Format *constants.Format
	// OutFile is the output file, stdout if empty
	OutFile *string
	// Overwrite overwrites the existing output file
	Overwrite *bool
	// Summary prints the generation summary to stderr
	Summary *bool
	// MetricsFile is the Prometheus textfile to write metrics into
	MetricsFile *string
}

// SeedCmd prints a hex encoded seed
type SeedCmd struct {
	*kingpin.CmdClause
	// Mnemonic is the mnemonic phrase to derive the seed from
	Mnemonic *string
	// Passphrase is the optional mnemonic passphrase
	Passphrase *string
}
