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

// Package keygen implements deterministic RSA key generation: a 32-byte
// seed is expanded by a seeded stream and drives the prime search, so the
// same seed and size always yield the same key.
package keygen

import (
	"io"
	"math/big"
	"time"

	"github.com/gravitational/detrsa/lib/constants"
	"github.com/gravitational/detrsa/lib/defaults"
	"github.com/gravitational/detrsa/lib/utils"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField(trace.Component, constants.ComponentKeygen)

// Components are the raw RSA key components produced by the generator
type Components struct {
	// N is the public modulus
	N *big.Int
	// E is the public exponent
	E *big.Int
	// D is the private exponent, the inverse of E modulo (P-1)(Q-1)
	D *big.Int
	// P is the larger prime factor of N
	P *big.Int
	// Q is the smaller prime factor of N
	Q *big.Int
	// Candidates is the number of prime candidates tested
	Candidates int
}

// Config configures key generation
type Config struct {
	// Bits is the requested modulus size
	Bits int
	// Seed is the generator seed
	Seed [defaults.SeedSize]byte
	// Stream names the seeded stream, see constants.Streams
	Stream string
	// PublicExponent is the public exponent, defaults.RSAPublicExponent if unset
	PublicExponent int
}

// CheckAndSetDefaults validates the config and sets defaults
func (c *Config) CheckAndSetDefaults() error {
	if err := checkBits(c.Bits); err != nil {
		return trace.Wrap(err)
	}
	if c.Stream == "" {
		c.Stream = constants.StreamChaCha20
	}
	if !constants.IsStream(c.Stream) {
		return trace.BadParameter("unsupported stream %q, supported are %v",
			c.Stream, constants.Streams)
	}
	if c.PublicExponent == 0 {
		c.PublicExponent = defaults.RSAPublicExponent
	}
	if c.PublicExponent < 3 || c.PublicExponent%2 == 0 {
		return trace.BadParameter("public exponent must be an odd number >= 3, got %v",
			c.PublicExponent)
	}
	return nil
}

// Generate deterministically generates RSA key components for the
// given config
func Generate(config Config) (*Components, error) {
	if err := config.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	stream, err := NewStream(config.Stream, config.Seed)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return GenerateFromStream(stream, config.Bits, config.PublicExponent)
}

// GenerateFromStream generates RSA key components of the given size with
// randomness read from r
func GenerateFromStream(r io.Reader, bits, exponent int) (*Components, error) {
	if err := checkBits(bits); err != nil {
		return nil, trace.Wrap(err)
	}
	start := time.Now()
	e := big.NewInt(int64(exponent))
	pBits := bits >> 1
	qBits := bits - pBits

	p, pCandidates, err := randomPrime(r, pBits, e)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	q, qCandidates, err := randomPrime(r, qBits, e)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if p.Cmp(q) == 0 {
		return nil, utils.GenerationFailure("generated identical primes")
	}
	if q.Cmp(p) > 0 {
		p, q = q, p
	}

	n := new(big.Int).Mul(p, q)
	if n.BitLen() != bits {
		return nil, utils.GenerationFailure("modulus has %v bits, expected %v",
			n.BitLen(), bits)
	}

	pMinus1 := new(big.Int).Sub(p, one)
	qMinus1 := new(big.Int).Sub(q, one)
	phi := new(big.Int).Mul(pMinus1, qMinus1)
	d := new(big.Int).ModInverse(e, phi)
	if d == nil {
		return nil, utils.GenerationFailure("public exponent is not invertible modulo phi")
	}

	log.WithFields(logrus.Fields{
		"bits":       bits,
		"candidates": pCandidates + qCandidates,
		"elapsed":    time.Since(start),
	}).Debug("Generated key components.")

	return &Components{
		N:          n,
		E:          e,
		D:          d,
		P:          p,
		Q:          q,
		Candidates: pCandidates + qCandidates,
	}, nil
}

func checkBits(bits int) error {
	if bits < defaults.MinRSAPrivateKeyBits {
		return utils.GenerationFailure("key size %v is below the minimum of %v bits",
			bits, defaults.MinRSAPrivateKeyBits)
	}
	if bits > defaults.MaxRSAPrivateKeyBits {
		return utils.GenerationFailure("key size %v exceeds the maximum of %v bits",
			bits, defaults.MaxRSAPrivateKeyBits)
	}
	return nil
}
