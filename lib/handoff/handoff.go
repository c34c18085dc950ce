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

// Package handoff publishes buffers to a caller without a garbage
// collector, such as a WebAssembly host reading linear memory.
//
// A published buffer is described by a two-word Descriptor. Both the
// buffer and the descriptor stay pinned until the caller releases them:
// the Go collector never moves heap objects, so a live reference in the
// registry keeps their addresses valid.
package handoff

import (
	"structs"
	"sync"
	"unsafe"

	"github.com/gravitational/detrsa/lib/constants"
	"github.com/gravitational/detrsa/lib/defaults"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField(trace.Component, constants.ComponentHandoff)

// Descriptor describes a published buffer as laid out in host memory
type Descriptor struct {
	_ structs.HostLayout
	// Ptr is the address of the first byte of the buffer
	Ptr Word
	// Len is the length of the buffer in bytes
	Len Word
}

// Registry keeps published buffers and seed buffers alive until released
type Registry struct {
	sync.Mutex
	results map[uintptr]*result
	seeds   map[uintptr]*[defaults.SeedSize]byte
}

type result struct {
	descriptor *Descriptor
	data       []byte
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{
		results: make(map[uintptr]*result),
		seeds:   make(map[uintptr]*[defaults.SeedSize]byte),
	}
}

// Publish copies data into a new buffer, pins the buffer together with its
// descriptor and returns the descriptor address. The registry never
// reclaims either allocation on its own; see Release.
func (r *Registry) Publish(data []byte) (uintptr, error) {
	if len(data) == 0 {
		return 0, trace.BadParameter("refusing to publish an empty buffer")
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	descriptor := &Descriptor{
		Ptr: Word(uintptr(unsafe.Pointer(&buf[0]))),
		Len: Word(len(buf)),
	}
	addr := uintptr(unsafe.Pointer(descriptor))

	r.Lock()
	defer r.Unlock()
	r.results[addr] = &result{descriptor: descriptor, data: buf}
	log.WithFields(logrus.Fields{"descriptor": addr, "len": len(buf)}).Debug("Published buffer.")
	return addr, nil
}

// Release unpins the descriptor published at addr and its buffer.
// Releasing an unknown or already released address is an error.
func (r *Registry) Release(addr uintptr) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.results[addr]; !ok {
		return trace.NotFound("no buffer published at %#x", addr)
	}
	delete(r.results, addr)
	log.WithField("descriptor", addr).Debug("Released buffer.")
	return nil
}

// Bytes returns the buffer published at addr. The returned slice aliases
// the published memory and must not be modified.
func (r *Registry) Bytes(addr uintptr) ([]byte, error) {
	r.Lock()
	defer r.Unlock()
	result, ok := r.results[addr]
	if !ok {
		return nil, trace.NotFound("no buffer published at %#x", addr)
	}
	return result.data, nil
}

// AllocSeed returns the address of a new zeroed seed buffer of exactly
// defaults.SeedSize bytes. The buffer stays pinned until FreeSeed.
func (r *Registry) AllocSeed() uintptr {
	seed := new([defaults.SeedSize]byte)
	addr := uintptr(unsafe.Pointer(seed))
	r.Lock()
	defer r.Unlock()
	r.seeds[addr] = seed
	return addr
}

// FreeSeed unpins the seed buffer allocated at addr
func (r *Registry) FreeSeed(addr uintptr) error {
	r.Lock()
	defer r.Unlock()
	seed, ok := r.seeds[addr]
	if !ok {
		return trace.NotFound("no seed buffer allocated at %#x", addr)
	}
	for i := range seed {
		seed[i] = 0
	}
	delete(r.seeds, addr)
	return nil
}

// Outstanding returns the number of pinned results and seed buffers
func (r *Registry) Outstanding() (results, seeds int) {
	r.Lock()
	defer r.Unlock()
	return len(r.results), len(r.seeds)
}

// ReadSeed copies a seed out of caller memory. The caller passes the
// length of the memory at ptr, which must be exactly defaults.SeedSize.
func ReadSeed(ptr unsafe.Pointer, length uintptr) (seed [defaults.SeedSize]byte, err error) {
	if ptr == nil {
		return seed, trace.BadParameter("missing seed buffer")
	}
	if length != defaults.SeedSize {
		return seed, trace.BadParameter("seed must be %v bytes, got %v",
			defaults.SeedSize, length)
	}
	copy(seed[:], unsafe.Slice((*byte)(ptr), length))
	return seed, nil
}
