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

// Package pkcs1 derives the PKCS#1 RSAPrivateKey structure (RFC 8017,
// appendix A.1.2) from raw RSA key components and serializes it as DER
// and PEM.
package pkcs1

import (
	"math/big"

	"github.com/gravitational/detrsa/lib/keygen"
	"github.com/gravitational/detrsa/lib/utils"
)

// Version is the RSAPrivateKey version for two-prime keys
const Version = 0

var one = big.NewInt(1)

// PrivateKey holds the RSAPrivateKey fields:
//
//	RSAPrivateKey ::= SEQUENCE {
//	    version           Version,
//	    modulus           INTEGER,  -- n
//	    publicExponent    INTEGER,  -- e
//	    privateExponent   INTEGER,  -- d
//	    prime1            INTEGER,  -- p
//	    prime2            INTEGER,  -- q
//	    exponent1         INTEGER,  -- d mod (p-1)
//	    exponent2         INTEGER,  -- d mod (q-1)
//	    coefficient       INTEGER   -- (inverse of q) mod p
//	}
type PrivateKey struct {
	Version         *big.Int
	Modulus         *big.Int
	PublicExponent  *big.Int
	PrivateExponent *big.Int
	Prime1          *big.Int
	Prime2          *big.Int
	Exponent1       *big.Int
	Exponent2       *big.Int
	Coefficient     *big.Int
}

// FieldNames lists the RSAPrivateKey field names in encoding order
var FieldNames = []string{
	"version",
	"modulus",
	"publicExponent",
	"privateExponent",
	"prime1",
	"prime2",
	"exponent1",
	"exponent2",
	"coefficient",
}

// Fields returns the field values in encoding order
func (k *PrivateKey) Fields() []*big.Int {
	return []*big.Int{
		k.Version,
		k.Modulus,
		k.PublicExponent,
		k.PrivateExponent,
		k.Prime1,
		k.Prime2,
		k.Exponent1,
		k.Exponent2,
		k.Coefficient,
	}
}

// Derive computes the CRT exponents and coefficient for the given key
// components and returns the complete RSAPrivateKey. The components are
// not modified.
func Derive(c keygen.Components) (*PrivateKey, error) {
	for i, value := range []*big.Int{c.N, c.E, c.D, c.P, c.Q} {
		if value == nil || value.Sign() <= 0 {
			return nil, utils.ArithmeticFailure("%v must be positive", FieldNames[i+1])
		}
	}
	if c.P.Cmp(one) <= 0 || c.Q.Cmp(one) <= 0 {
		return nil, utils.ArithmeticFailure("primes must be greater than 1")
	}

	pMinus1 := new(big.Int).Sub(c.P, one)
	qMinus1 := new(big.Int).Sub(c.Q, one)
	coefficient := new(big.Int).ModInverse(c.Q, c.P)
	if coefficient == nil {
		return nil, utils.ArithmeticFailure("prime2 has no inverse modulo prime1")
	}

	return &PrivateKey{
		Version:         big.NewInt(Version),
		Modulus:         new(big.Int).Set(c.N),
		PublicExponent:  new(big.Int).Set(c.E),
		PrivateExponent: new(big.Int).Set(c.D),
		Prime1:          new(big.Int).Set(c.P),
		Prime2:          new(big.Int).Set(c.Q),
		Exponent1:       new(big.Int).Mod(c.D, pMinus1),
		Exponent2:       new(big.Int).Mod(c.D, qMinus1),
		Coefficient:     coefficient,
	}, nil
}
