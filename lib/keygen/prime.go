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
	"io"
	"math/big"
	"math/bits"

	"github.com/gravitational/detrsa/lib/defaults"
	"github.com/gravitational/detrsa/lib/utils"
)

// minPrimeBits is the smallest prime size the search accepts
const minPrimeBits = defaults.MinRSAPrivateKeyBits / 2

var (
	one = big.NewInt(1)

	smallPrimes = newSieve(defaults.SmallPrimesLimit)
)

// sieve performs trial division by small odd primes. Primes are grouped
// so that each group product fits into a machine word: one big division
// per group, the rest is done on uint64.
type sieve struct {
	groups []primeGroup
}

type primeGroup struct {
	product *big.Int
	primes  []uint64
}

func newSieve(limit int) *sieve {
	composite := make([]bool, limit)
	var primes []uint64
	for i := 3; i < limit; i += 2 {
		if composite[i] {
			continue
		}
		primes = append(primes, uint64(i))
		for j := i * i; j < limit; j += 2 * i {
			composite[j] = true
		}
	}
	s := &sieve{}
	group := primeGroup{}
	product := uint64(1)
	for _, prime := range primes {
		if hi, _ := bits.Mul64(product, prime); hi != 0 {
			group.product = new(big.Int).SetUint64(product)
			s.groups = append(s.groups, group)
			group = primeGroup{}
			product = 1
		}
		product *= prime
		group.primes = append(group.primes, prime)
	}
	if len(group.primes) != 0 {
		group.product = new(big.Int).SetUint64(product)
		s.groups = append(s.groups, group)
	}
	return s
}

// divides returns true if any of the sieve primes divides n
func (s *sieve) divides(n *big.Int) bool {
	var rem big.Int
	for _, group := range s.groups {
		m := rem.Mod(n, group.product).Uint64()
		for _, prime := range group.primes {
			if m%prime == 0 {
				return true
			}
		}
	}
	return false
}

// count returns the number of primes in the sieve
func (s *sieve) count() (n int) {
	for _, group := range s.groups {
		n += len(group.primes)
	}
	return n
}

// millerRabinRounds returns the number of Miller-Rabin rounds needed for
// an error probability below 2^-80 for a candidate of the given size
func millerRabinRounds(bits int) int {
	switch {
	case bits <= 100:
		return 27
	case bits <= 150:
		return 18
	case bits <= 200:
		return 15
	case bits <= 250:
		return 12
	case bits <= 300:
		return 9
	case bits <= 350:
		return 8
	case bits <= 400:
		return 7
	case bits <= 500:
		return 6
	case bits <= 600:
		return 5
	case bits <= 800:
		return 4
	case bits <= 1250:
		return 3
	}
	return 2
}

// randomPrime draws a prime of exactly the given size from r.
//
// The initial candidate has its two most significant bits and the lowest
// bit set. Whenever a candidate is rejected, one pseudo-random bit other
// than those three is flipped and the search goes on. A prime p is
// accepted only if p-1 is coprime with the public exponent e.
//
// Returns the prime and the number of candidates tested.
func randomPrime(r io.Reader, size int, e *big.Int) (*big.Int, int, error) {
	if size < minPrimeBits {
		return nil, 0, utils.GenerationFailure(
			"prime size %v is below the minimum of %v bits", size, minPrimeBits)
	}
	buf := make([]byte, (size+7)/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, 0, utils.GenerationFailure("failed to read seeded stream: %v", err)
	}
	// clear the bits above the requested size
	b := uint(size % 8)
	if b == 0 {
		b = 8
	}
	buf[0] &= uint8(int(1<<b) - 1)
	// with both top bits set the product of two primes has exactly
	// as many bits as both primes together
	if b >= 2 {
		buf[0] |= 3 << (b - 2)
	} else {
		buf[0] |= 1
		if len(buf) > 1 {
			buf[1] |= 0x80
		}
	}
	buf[len(buf)-1] |= 1

	p := new(big.Int).SetBytes(buf)
	pMinus1 := new(big.Int)
	gcd := new(big.Int)
	rounds := millerRabinRounds(size)
	flippable := uint32(size - 3)
	maxAttempts := size * defaults.PrimeSearchAttemptsPerBit
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if !smallPrimes.divides(p) && p.ProbablyPrime(rounds) {
			pMinus1.Sub(p, one)
			if gcd.GCD(nil, nil, pMinus1, e).Cmp(one) == 0 {
				return p, attempt, nil
			}
		}
		n, err := readUint32(r)
		if err != nil {
			return nil, attempt, utils.GenerationFailure("failed to read seeded stream: %v", err)
		}
		i := 1 + int(n%flippable)
		p.SetBit(p, i, p.Bit(i)^1)
	}
	return nil, maxAttempts, utils.GenerationFailure(
		"no %v-bit prime found after %v candidates", size, maxAttempts)
}
