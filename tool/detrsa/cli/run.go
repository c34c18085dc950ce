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
	"os"

	"github.com/gravitational/detrsa/lib/constants"
	"github.com/gravitational/detrsa/lib/processconfig"
	"github.com/gravitational/detrsa/lib/utils"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField(trace.Component, constants.ComponentCLI)

// Run parses CLI arguments and executes an appropriate detrsa command
func Run(detrsa Application) error {
	log.Debugf("Executing: %v.", os.Args)
	cmd, err := detrsa.Parse(os.Args[1:])
	if err != nil {
		return trace.Wrap(err)
	}

	trace.SetDebug(*detrsa.Debug)
	level := logrus.WarnLevel
	if *detrsa.Debug {
		level = logrus.DebugLevel
	}
	utils.InitLogger(level)

	switch cmd {
	case detrsa.VersionCmd.FullCommand():
		return printVersion(os.Stdout, *detrsa.VersionCmd.Output)
	case detrsa.SeedCmd.FullCommand():
		return printSeed(os.Stdout, *detrsa.SeedCmd.Mnemonic, *detrsa.SeedCmd.Passphrase)
	}

	config, err := processconfig.ReadConfig(*detrsa.ConfigPath)
	if err != nil {
		return trace.Wrap(err)
	}
	if config.LogFile != "" {
		utils.InitLogging(level, config.LogFile)
	}

	switch cmd {
	case detrsa.GenCmd.FullCommand():
		err := processconfig.MergeConfig(config, &processconfig.Config{
			Bits:        *detrsa.GenCmd.Bits,
			Stream:      *detrsa.GenCmd.Stream,
			Format:      *detrsa.GenCmd.Format,
			MetricsFile: *detrsa.GenCmd.MetricsFile,
		})
		if err != nil {
			return trace.Wrap(err)
		}
		return generate(GenParameters{
			Config:       *config,
			SeedHex:      *detrsa.GenCmd.Seed,
			Mnemonic:     *detrsa.GenCmd.Mnemonic,
			MnemonicFile: *detrsa.GenCmd.MnemonicFile,
			Passphrase:   *detrsa.GenCmd.Passphrase,
			RandomSeed:   *detrsa.GenCmd.RandomSeed,
			OutPath:      *detrsa.GenCmd.OutFile,
			Overwrite:    *detrsa.GenCmd.Overwrite,
			Summary:      *detrsa.GenCmd.Summary,
		})
	}

	return trace.NotFound("unknown command %v", cmd)
}
