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

// Package keys drives deterministic key generation end to end: seeded
// generation of RSA components, PKCS#1 derivation and serialization.
package keys

import (
	"time"

	"github.com/gravitational/detrsa/lib/constants"
	"github.com/gravitational/detrsa/lib/defaults"
	"github.com/gravitational/detrsa/lib/keygen"
	"github.com/gravitational/detrsa/lib/pkcs1"
	"github.com/gravitational/detrsa/lib/utils"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField(trace.Component, constants.ComponentKeys)

// Request describes a key to generate
type Request struct {
	// Bits is the modulus size
	Bits int
	// Seed is the generator seed
	Seed [defaults.SeedSize]byte
	// Stream names the seeded stream, see constants.Streams
	Stream string
	// PublicExponent is the public exponent, defaults.RSAPublicExponent if unset
	PublicExponent int
}

// CheckAndSetDefaults validates the request and sets defaults
func (r *Request) CheckAndSetDefaults() error {
	if r.Stream == "" {
		r.Stream = constants.StreamChaCha20
	}
	config := r.config()
	if err := config.CheckAndSetDefaults(); err != nil {
		return trace.Wrap(err)
	}
	r.Stream = config.Stream
	r.PublicExponent = config.PublicExponent
	return nil
}

func (r Request) config() keygen.Config {
	return keygen.Config{
		Bits:           r.Bits,
		Seed:           r.Seed,
		Stream:         r.Stream,
		PublicExponent: r.PublicExponent,
	}
}

// Outcome describes a finished generation
type Outcome struct {
	// Bits is the requested modulus size
	Bits int
	// Stream is the seeded stream used
	Stream string
	// Elapsed is the generation duration
	Elapsed time.Duration
	// Candidates is the number of prime candidates tested
	Candidates int
	// Err is the generation error, nil on success
	Err error
}

// Observer is notified about every finished generation
type Observer interface {
	// GenerationFinished is called once per generation
	GenerationFinished(Outcome)
}

// Generator generates keys and notifies observers about the outcome
type Generator struct {
	observers []Observer
}

// NewGenerator returns a new generator notifying the given observers
func NewGenerator(observers ...Observer) *Generator {
	return &Generator{observers: observers}
}

// Generate returns the PKCS#1 private key for the request
func (g *Generator) Generate(req Request) (key *pkcs1.PrivateKey, err error) {
	start := time.Now()
	var candidates int
	defer func() {
		g.notify(Outcome{
			Bits:       req.Bits,
			Stream:     req.Stream,
			Elapsed:    time.Since(start),
			Candidates: candidates,
			Err:        err,
		})
	}()
	if err := req.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	components, err := keygen.Generate(req.config())
	if err != nil {
		return nil, trace.Wrap(err)
	}
	candidates = components.Candidates
	key, err = pkcs1.Derive(*components)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return key, nil
}

// GeneratePEM returns the PEM encoded PKCS#1 private key for the request.
// Either a complete PEM document or an error is returned.
func (g *Generator) GeneratePEM(req Request) ([]byte, error) {
	key, err := g.Generate(req)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	out, err := key.MarshalPEM()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return out, nil
}

func (g *Generator) notify(outcome Outcome) {
	logger := log.WithFields(logrus.Fields{
		"bits":    outcome.Bits,
		"stream":  outcome.Stream,
		"elapsed": outcome.Elapsed,
	})
	switch {
	case outcome.Err != nil:
		logger.WithField("kind", Classify(outcome.Err)).Warnf("Key generation failed: %v.",
			trace.UserMessage(outcome.Err))
	case outcome.Elapsed > defaults.SlowGenerationThreshold:
		logger.Warn("Key generation took unusually long.")
	default:
		logger.Debug("Generated key.")
	}
	for _, observer := range g.observers {
		observer.GenerationFinished(outcome)
	}
}

var defaultGenerator = NewGenerator()

// Generate returns the PKCS#1 private key for the request
func Generate(req Request) (*pkcs1.PrivateKey, error) {
	return defaultGenerator.Generate(req)
}

// GeneratePEM returns the PEM encoded PKCS#1 private key for the request
func GeneratePEM(req Request) ([]byte, error) {
	return defaultGenerator.GeneratePEM(req)
}

// ErrorKind classifies generation failures
type ErrorKind uint32

const (
	// KindNone means no failure
	KindNone ErrorKind = iota
	// KindGeneration means the generator could not produce a key
	KindGeneration
	// KindArithmetic means the key components were malformed
	KindArithmetic
	// KindEncoding means the key could not be serialized
	KindEncoding
	// KindBadSeed means the seed buffer was missing or had the wrong size
	KindBadSeed
	// KindInternal is any other failure
	KindInternal
)

// String returns the error kind name
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindGeneration:
		return "generation_failure"
	case KindArithmetic:
		return "arithmetic_failure"
	case KindEncoding:
		return "encoding_failure"
	case KindBadSeed:
		return "bad_seed"
	}
	return "internal"
}

// Classify returns the kind of the given error
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case utils.IsGenerationError(err):
		return KindGeneration
	case utils.IsArithmeticError(err):
		return KindArithmetic
	case utils.IsEncodingError(err):
		return KindEncoding
	}
	return KindInternal
}
