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
	"path/filepath"

	"github.com/gravitational/detrsa/lib/constants"
	"github.com/gravitational/detrsa/lib/defaults"
	"github.com/gravitational/detrsa/lib/utils"

	"github.com/gravitational/configure"
	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
)

// ReadConfig reads the tool configuration.
// If path is empty, it looks for the configuration file in default
// locations and falls back to an empty configuration if there is none.
// Environment variables override values from the file.
func ReadConfig(path string) (*Config, error) {
	var searchPaths []string
	// if path is explicitly set, use only this file
	if path != "" {
		searchPaths = []string{path}
	} else {
		for _, dir := range defaults.ConfigDirs {
			searchPaths = append(searchPaths, filepath.Join(dir, defaults.ConfigFileName))
		}
	}

	log.Debugf("Configuration search paths: %v.", searchPaths)
	cfg, err := findConfig(searchPaths)
	if err != nil {
		if !trace.IsNotFound(err) || path != "" {
			return nil, trace.Wrap(err)
		}
		cfg = &Config{}
	}
	if err := configure.ParseEnv(cfg); err != nil {
		return nil, trace.Wrap(err)
	}
	if err := MergeConfigFromEnv(cfg); err != nil {
		return nil, trace.Wrap(err)
	}
	if err := cfg.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return cfg, nil
}

func findConfig(searchPaths []string) (*Config, error) {
	for _, path := range searchPaths {
		data, err := utils.ReadPath(path)
		if err != nil {
			if !trace.IsNotFound(err) && !trace.IsAccessDenied(err) {
				return nil, trace.Wrap(err)
			}
			log.Debugf("%v not found in search path.", path)
			continue
		}
		cfg, err := ParseConfig(data)
		if err != nil {
			return nil, trace.Wrap(err, "failed to parse %v", path)
		}
		log.Debugf("Read configuration from %v.", path)
		return cfg, nil
	}
	return nil, trace.NotFound("no configuration found in %v", searchPaths)
}

// ParseConfig parses the YAML configuration in data
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := configure.ParseYAML(data, &cfg, configure.EnableTemplating()); err != nil {
		return nil, trace.Wrap(err)
	}
	return &cfg, nil
}

// Config is the key generation tool configuration
type Config struct {
	// Bits is the default modulus size
	Bits int `yaml:"bits" env:"DETRSA_BITS"`

	// Stream names the default seeded stream
	Stream string `yaml:"stream" env:"DETRSA_STREAM"`

	// Format is the default key output format
	Format constants.Format `yaml:"format" env:"DETRSA_FORMAT"`

	// PublicExponent is the RSA public exponent
	PublicExponent int `yaml:"public_exponent"`

	// MetricsFile is the path of the Prometheus textfile written after
	// every generation. Metrics are not written if empty.
	MetricsFile string `yaml:"metrics_file" env:"DETRSA_METRICS_FILE"`

	// LogFile duplicates log entries into this file if set
	LogFile string `yaml:"log_file" env:"DETRSA_LOG_FILE"`
}

// CheckAndSetDefaults validates the configuration and sets defaults
func (cfg *Config) CheckAndSetDefaults() error {
	// out of range sizes are reported by the generator
	if cfg.Bits == 0 {
		cfg.Bits = defaults.RSAPrivateKeyBits
	}
	if cfg.Stream == "" {
		cfg.Stream = constants.StreamChaCha20
	}
	if !constants.IsStream(cfg.Stream) {
		return trace.BadParameter("unsupported stream %q, supported are %v",
			cfg.Stream, constants.Streams)
	}
	if cfg.Format == "" {
		cfg.Format = constants.EncodingPEM
	}
	if err := cfg.Format.CheckIn(constants.KeyFormats); err != nil {
		return trace.Wrap(err)
	}
	if cfg.PublicExponent == 0 {
		cfg.PublicExponent = defaults.RSAPublicExponent
	}
	return nil
}
