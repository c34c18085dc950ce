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

// Package wasmapi implements the functions exported to a WebAssembly host.
//
// Every function reports failure through its return value and never
// panics into the host. The reason for the last failure is available
// as a keys.ErrorKind code.
package wasmapi

import (
	"runtime/debug"
	"sync"
	"unsafe"

	"github.com/gravitational/detrsa/lib/constants"
	"github.com/gravitational/detrsa/lib/handoff"
	"github.com/gravitational/detrsa/lib/keys"
	"github.com/gravitational/detrsa/lib/utils"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField(trace.Component, constants.ComponentWasm)

// Config configures the exported functions
type Config struct {
	// Generator generates keys
	Generator *keys.Generator
	// Registry pins buffers handed to the host
	Registry *handoff.Registry
	// Stream names the seeded stream, see constants.Streams
	Stream string
}

// CheckAndSetDefaults validates the config and sets defaults
func (c *Config) CheckAndSetDefaults() error {
	if c.Generator == nil {
		c.Generator = keys.NewGenerator()
	}
	if c.Registry == nil {
		c.Registry = handoff.NewRegistry()
	}
	if c.Stream == "" {
		c.Stream = constants.StreamChaCha20
	}
	if !constants.IsStream(c.Stream) {
		return trace.BadParameter("unsupported stream %q, supported are %v",
			c.Stream, constants.Streams)
	}
	return nil
}

// Exports holds the state behind the exported functions
type Exports struct {
	Config
	mu      sync.Mutex
	lastErr keys.ErrorKind
}

// New returns a new set of exported functions
func New(config Config) (*Exports, error) {
	if err := config.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &Exports{Config: config}, nil
}

// GenKeys generates a private key of the given size from the seedLen bytes
// at seed and publishes its PEM encoding. It returns the address of the
// descriptor of the published text, or 0 on failure.
func (e *Exports) GenKeys(bits uint32, seed unsafe.Pointer, seedLen uint32) (addr uintptr) {
	defer e.recoverPanic(&addr)
	buf, err := handoff.ReadSeed(seed, uintptr(seedLen))
	if err != nil {
		e.fail(keys.KindBadSeed, err)
		return 0
	}
	text, err := e.Generator.GeneratePEM(keys.Request{
		Bits:   int(bits),
		Seed:   buf,
		Stream: e.Stream,
	})
	if err != nil {
		e.fail(keys.Classify(err), err)
		return 0
	}
	addr, err = e.Registry.Publish(text)
	if err != nil {
		e.fail(keys.KindInternal, err)
		return 0
	}
	e.setLastError(keys.KindNone)
	return addr
}

// AllocSeed returns the address of a zeroed seed buffer for the host to
// fill before calling GenKeys
func (e *Exports) AllocSeed() (addr uintptr) {
	defer e.recoverPanic(&addr)
	return e.Registry.AllocSeed()
}

// FreeSeed releases a seed buffer returned by AllocSeed.
// It returns 1 on success and 0 if addr is unknown.
func (e *Exports) FreeSeed(addr uintptr) (ok uint32) {
	defer e.recoverPanic(&ok)
	if err := e.Registry.FreeSeed(addr); err != nil {
		e.fail(keys.KindInternal, err)
		return 0
	}
	e.setLastError(keys.KindNone)
	return 1
}

// FreeResult releases the descriptor returned by GenKeys and the text it
// describes. It returns 1 on success and 0 if the descriptor is unknown
// or was already released.
func (e *Exports) FreeResult(addr uintptr) (ok uint32) {
	defer e.recoverPanic(&ok)
	if err := e.Registry.Release(addr); err != nil {
		e.fail(keys.KindInternal, err)
		return 0
	}
	e.setLastError(keys.KindNone)
	return 1
}

// LastError returns the code of the last failure, 0 if the last call
// succeeded
func (e *Exports) LastError() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return uint32(e.lastErr)
}

func (e *Exports) fail(kind keys.ErrorKind, err error) {
	log.WithField("kind", kind).Warnf("Call failed: %v.", trace.UserMessage(err))
	log.Debug(trace.DebugReport(err))
	e.setLastError(kind)
}

func (e *Exports) setLastError(kind keys.ErrorKind) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastErr = kind
}

// recoverPanic converts a panic into a zero result and an internal failure
func (e *Exports) recoverPanic(result interface{}) {
	r := recover()
	if r == nil {
		return
	}
	log.Errorf("Recovered from panic: %v\n%s", r, debug.Stack())
	switch v := result.(type) {
	case *uintptr:
		*v = 0
	case *uint32:
		*v = 0
	}
	e.fail(keys.KindInternal, utils.ToError(r))
}
