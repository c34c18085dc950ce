/*
Copyright 2021 Gravitational, Inc.

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

package mage

import (
	"github.com/gravitational/trace"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Test mg.Namespace

// All runs all tests
func (Test) All() {
	mg.Deps(Test.Unit, Test.Wasm)
}

// Unit runs unit tests with the race detector enabled.
func (Test) Unit() error {
	return trace.Wrap(sh.RunV("go", "test", "-race", "./..."))
}

// Short runs unit tests skipping the slow large key generations
func (Test) Short() error {
	return trace.Wrap(sh.RunV("go", "test", "-short", "./..."))
}

// Wasm verifies the WebAssembly module builds
func (Test) Wasm() error {
	return trace.Wrap(sh.RunWithV(map[string]string{
		"GOOS":   "wasip1",
		"GOARCH": "wasm",
	}, "go", "vet", "./tool/detrsa-wasm", "./lib/..."))
}
