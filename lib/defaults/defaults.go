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

package defaults

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// SeedSize is the size in bytes of the seed used to derive a key
	SeedSize = 32

	// RSAPrivateKeyBits is default bits for RSA private key
	RSAPrivateKeyBits = 4096

	// MinRSAPrivateKeyBits is the smallest modulus the generator agrees to
	// produce. Below this two distinct primes with the top bits set cannot
	// be found reliably.
	MinRSAPrivateKeyBits = 64

	// MaxRSAPrivateKeyBits caps the requested modulus size
	MaxRSAPrivateKeyBits = 16384

	// RSAPublicExponent is the public exponent stored in generated keys
	RSAPublicExponent = 65537

	// PrimeSearchAttemptsPerBit bounds the number of candidates tested
	// per prime, relative to the prime size in bits
	PrimeSearchAttemptsPerBit = 100

	// SmallPrimesLimit is the exclusive upper bound of the trial
	// division sieve applied to prime candidates
	SmallPrimesLimit = 1000

	// RSAPrivateKeyPEMBlock is the PEM block type of PKCS#1 private keys
	RSAPrivateKeyPEMBlock = "RSA PRIVATE KEY"

	// HMACDRBGSecurityLevel is the security strength in bits requested
	// from the HMAC-DRBG seeded stream
	HMACDRBGSecurityLevel = 256

	// HMACDRBGPersonalization is the personalization string mixed into
	// the HMAC-DRBG seeded stream
	HMACDRBGPersonalization = "detrsa-hmac-drbg"

	// StreamBufferSize is the read buffer placed in front of seeded streams
	StreamBufferSize = 4096

	// MnemonicIterations is the PBKDF2 iteration count used to stretch
	// mnemonic phrases into seeds
	MnemonicIterations = 2048

	// MnemonicSaltPrefix is prepended to the passphrase to form the PBKDF2 salt
	MnemonicSaltPrefix = "mnemonic"

	// ConfigFileName is the name of the optional configuration file
	ConfigFileName = "detrsa.yaml"

	// PrivateKeyFileMask is the file mask for written private keys
	PrivateKeyFileMask = 0600

	// LogFileMask is the file mask for log files
	LogFileMask = 0640

	// SlowGenerationThreshold is the key generation duration above which
	// a warning is logged
	SlowGenerationThreshold = 30 * time.Second
)

// ConfigDirs lists directories searched for the configuration file
// when none is given explicitly
var ConfigDirs = []string{
	".",
	filepath.Join(homeDir(), ".detrsa"),
	"/etc/detrsa",
}

func homeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return dir
}
