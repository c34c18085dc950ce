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

// Package seed turns user input into generator seeds
package seed

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"

	"github.com/gravitational/detrsa/lib/defaults"

	"github.com/gravitational/trace"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

// Seed is the input of the deterministic key generator
type Seed = [defaults.SeedSize]byte

// FromHex decodes a hex encoded seed of exactly defaults.SeedSize bytes
func FromHex(s string) (seed Seed, err error) {
	data, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return seed, trace.BadParameter("seed is not valid hex: %v", err)
	}
	if len(data) != defaults.SeedSize {
		return seed, trace.BadParameter("seed must be %v bytes, got %v",
			defaults.SeedSize, len(data))
	}
	copy(seed[:], data)
	return seed, nil
}

// FromMnemonic stretches a mnemonic phrase the way BIP-39 does
// (PBKDF2-HMAC-SHA512, 2048 iterations, salt "mnemonic" + passphrase, both
// NFKD normalized) and returns the leading defaults.SeedSize bytes.
// Leading and trailing whitespace is trimmed, separators inside the
// phrase are kept as given. The phrase is not checked against a word list.
func FromMnemonic(mnemonic, passphrase string) (seed Seed, err error) {
	mnemonic = strings.TrimSpace(mnemonic)
	if mnemonic == "" {
		return seed, trace.BadParameter("mnemonic is empty")
	}
	phrase := norm.NFKD.String(mnemonic)
	salt := norm.NFKD.String(defaults.MnemonicSaltPrefix + passphrase)
	key := pbkdf2.Key([]byte(phrase), []byte(salt), defaults.MnemonicIterations,
		sha512.Size, sha512.New)
	copy(seed[:], key)
	return seed, nil
}

// Hex returns the hex encoding of the seed
func Hex(seed Seed) string {
	return hex.EncodeToString(seed[:])
}
