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

package keygen

import (
	"bufio"
	"crypto/sha512"
	"encoding/binary"
	"io"

	"github.com/gravitational/detrsa/lib/constants"
	"github.com/gravitational/detrsa/lib/defaults"

	"github.com/gravitational/trace"
	"github.com/hashicorp/go-hmac-drbg/hmacdrbg"
	"golang.org/x/crypto/chacha20"
)

// NewStream returns a deterministic byte stream expanded from seed by the
// named generator. Empty name selects ChaCha20.
func NewStream(name string, seed [defaults.SeedSize]byte) (io.Reader, error) {
	var stream io.Reader
	var err error
	switch name {
	case "", constants.StreamChaCha20:
		stream, err = newChaCha20Stream(seed)
	case constants.StreamHMACDRBG:
		stream = newHMACDRBGStream(seed)
	default:
		return nil, trace.BadParameter("unsupported stream %q, supported are: %v",
			name, constants.Streams)
	}
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return bufio.NewReaderSize(stream, defaults.StreamBufferSize), nil
}

// chacha20Stream is the ChaCha20 keystream with the seed as key, a zero
// nonce and the block counter starting at zero
type chacha20Stream struct {
	cipher *chacha20.Cipher
}

func newChaCha20Stream(seed [defaults.SeedSize]byte) (*chacha20Stream, error) {
	nonce := make([]byte, chacha20.NonceSize)
	cipher, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return &chacha20Stream{cipher: cipher}, nil
}

// Read fills p with the next len(p) keystream bytes
func (s *chacha20Stream) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	s.cipher.XORKeyStream(p, p)
	return len(p), nil
}

func newHMACDRBGStream(seed [defaults.SeedSize]byte) io.Reader {
	// the instantiate function wants at least 1.5x the security level
	// worth of entropy input, so the seed is expanded first
	entropy := sha512.Sum512(seed[:])
	drbg := hmacdrbg.NewHmacDrbg(defaults.HMACDRBGSecurityLevel, entropy[:],
		[]byte(defaults.HMACDRBGPersonalization))
	return hmacdrbg.NewHmacDrbgReader(drbg)
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, trace.Wrap(err)
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}
