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

package processconfig

import (
	"os"

	"github.com/gravitational/detrsa/lib/constants"

	"github.com/gravitational/trace"
)

// MergeConfigFromEnv merges YAML configuration from the DETRSA_CONFIG
// environment variable into cfg
func MergeConfigFromEnv(cfg *Config) error {
	data := os.Getenv(constants.EnvConfig)
	if data == "" {
		return nil
	}
	env, err := ParseConfig([]byte(data))
	if err != nil {
		return trace.Wrap(err)
	}
	return MergeConfig(cfg, env)
}

// MergeConfig merges non-empty values from one config into another
func MergeConfig(into, from *Config) error {
	if from.Bits != 0 {
		into.Bits = from.Bits
	}
	if from.Stream != "" {
		into.Stream = from.Stream
	}
	if from.Format != "" {
		into.Format = from.Format
	}
	if from.PublicExponent != 0 {
		into.PublicExponent = from.PublicExponent
	}
	if from.MetricsFile != "" {
		into.MetricsFile = from.MetricsFile
	}
	if from.LogFile != "" {
		into.LogFile = from.LogFile
	}
	return nil
}
