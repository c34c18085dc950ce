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

package pkcs1

import (
	"encoding/pem"

	"github.com/gravitational/detrsa/lib/defaults"
	"github.com/gravitational/detrsa/lib/utils"

	"github.com/gravitational/trace"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// MarshalDER returns the DER encoding of the key as a SEQUENCE of nine
// INTEGERs
func (k *PrivateKey) MarshalDER() ([]byte, error) {
	fields := k.Fields()
	for i, field := range fields {
		if field == nil {
			return nil, utils.EncodingFailure(nil, "missing field %v", FieldNames[i])
		}
	}
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		for _, field := range fields {
			b.AddASN1BigInt(field)
		}
	})
	der, err := b.Bytes()
	if err != nil {
		return nil, utils.EncodingFailure(err, "DER")
	}
	return der, nil
}

// MarshalPEM returns the key as a PEM "RSA PRIVATE KEY" block
func (k *PrivateKey) MarshalPEM() ([]byte, error) {
	der, err := k.MarshalDER()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return EncodePEM(der)
}

// EncodePEM wraps a DER encoded RSAPrivateKey into a PEM block with
// 64-column base64 lines terminated by a line feed
func EncodePEM(der []byte) ([]byte, error) {
	if len(der) == 0 {
		return nil, utils.EncodingFailure(nil, "empty DER payload")
	}
	out := pem.EncodeToMemory(&pem.Block{
		Type:  defaults.RSAPrivateKeyPEMBlock,
		Bytes: der,
	})
	if out == nil {
		return nil, utils.EncodingFailure(nil, "PEM")
	}
	return out, nil
}
