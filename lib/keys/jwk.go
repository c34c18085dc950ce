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

package keys

import (
	"crypto"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"

	// registers SHA-256 used for key thumbprints
	_ "crypto/sha256"

	"github.com/gravitational/detrsa/lib/pkcs1"

	"github.com/gravitational/trace"
	jose "gopkg.in/square/go-jose.v2"
)

// KeyPair is a private JSON Web Key (RFC 7517) and its public half
type KeyPair struct {
	// PrivateKey has the n, e, d, p, q, dp, dq and qi parameters
	PrivateKey jose.JSONWebKey `json:"privateKey"`
	// PublicKey has the n and e parameters
	PublicKey jose.JSONWebKey `json:"publicKey"`
}

// JWK converts the key into a JSON Web Key pair. Both keys carry the
// RFC 7638 SHA-256 thumbprint as key ID.
func JWK(key *pkcs1.PrivateKey) (*KeyPair, error) {
	rsaKey, err := toRSA(key)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	private := jose.JSONWebKey{Key: rsaKey}
	thumbprint, err := private.Thumbprint(crypto.SHA256)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	private.KeyID = base64.RawURLEncoding.EncodeToString(thumbprint)
	return &KeyPair{
		PrivateKey: private,
		PublicKey:  private.Public(),
	}, nil
}

// MarshalJWK returns the JSON encoding of the key's JSON Web Key pair
func MarshalJWK(key *pkcs1.PrivateKey) ([]byte, error) {
	pair, err := JWK(key)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	out, err := json.MarshalIndent(pair, "", "  ")
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return append(out, '\n'), nil
}

// toRSA converts the key into the standard library representation with
// the CRT values set from the derived fields
func toRSA(key *pkcs1.PrivateKey) (*rsa.PrivateKey, error) {
	for i, field := range key.Fields() {
		if field == nil {
			return nil, trace.BadParameter("missing field %v", pkcs1.FieldNames[i])
		}
	}
	if !key.PublicExponent.IsInt64() || key.PublicExponent.Int64() > 1<<31-1 {
		return nil, trace.BadParameter("public exponent %v is too large", key.PublicExponent)
	}
	return &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{
			N: new(big.Int).Set(key.Modulus),
			E: int(key.PublicExponent.Int64()),
		},
		D:      new(big.Int).Set(key.PrivateExponent),
		Primes: []*big.Int{new(big.Int).Set(key.Prime1), new(big.Int).Set(key.Prime2)},
		Precomputed: rsa.PrecomputedValues{
			Dp:   new(big.Int).Set(key.Exponent1),
			Dq:   new(big.Int).Set(key.Exponent2),
			Qinv: new(big.Int).Set(key.Coefficient),
		},
	}, nil
}
