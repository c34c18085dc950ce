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

package constants

import (
	"github.com/gravitational/trace"
)

const (
	// ComponentKeygen identifies log entries of the seeded key generator
	ComponentKeygen = "keygen"
	// ComponentKeys identifies log entries of key orchestration
	ComponentKeys = "keys"
	// ComponentHandoff identifies log entries of the buffer registry
	ComponentHandoff = "handoff"
	// ComponentWasm identifies log entries of the WebAssembly exports
	ComponentWasm = "wasm"
	// ComponentCLI identifies log entries of the command line tool
	ComponentCLI = "cli"

	// StreamChaCha20 names the ChaCha20 keystream seeded generator
	StreamChaCha20 = "chacha20"
	// StreamHMACDRBG names the HMAC-DRBG (NIST SP 800-90A) seeded generator
	StreamHMACDRBG = "hmac-drbg"

	// EnvConfig names the environment variable with YAML configuration
	// merged over the configuration file
	EnvConfig = "DETRSA_CONFIG"
)

var (
	// EncodingPEM is for the PEM encoding format
	EncodingPEM Format = "pem"
	// EncodingJWK is for the JSON Web Key format
	EncodingJWK Format = "jwk"
	// EncodingJSON is for the JSON encoding format
	EncodingJSON Format = "json"
	// EncodingText is for the plain-text encoding format
	EncodingText Format = "text"

	// KeyFormats is a list of recognized key output formats
	KeyFormats = []Format{
		EncodingPEM,
		EncodingJWK,
	}

	// OutputFormats is a list of recognized output formats for informational commands
	OutputFormats = []Format{
		EncodingText,
		EncodingJSON,
	}

	// Streams is a list of recognized seeded stream names
	Streams = []string{
		StreamChaCha20,
		StreamHMACDRBG,
	}
)

// Format is the type for supported output formats
type Format string

// Set sets the format value
func (f *Format) Set(v string) error {
	*f = Format(v)
	return nil
}

// String returns the format string representation
func (f *Format) String() string {
	return string(*f)
}

// CheckIn verifies that the format is one of the given formats
func (f Format) CheckIn(formats []Format) error {
	for _, format := range formats {
		if f == format {
			return nil
		}
	}
	return trace.BadParameter("unsupported format %q, supported are: %v", f, formats)
}

// IsStream returns true if name is a recognized seeded stream
func IsStream(name string) bool {
	for _, stream := range Streams {
		if name == stream {
			return true
		}
	}
	return false
}
