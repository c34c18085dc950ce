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
	"fmt"
	"runtime"
	"strings"

	"github.com/gravitational/trace"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace

// All builds the command line tool and the WebAssembly module
func (Build) All() {
	mg.SerialDeps(Build.CLI, Build.Wasm)
}

// CLI builds the detrsa command line tool for the host platform
func (Build) CLI() error {
	mg.Deps(Mkdir(buildDir))

	out := inBuildDir("detrsa")
	if IsUpToDate(out, sources[0], sources[1:]...) {
		return nil
	}
	fmt.Println("Building", out, "for", runtime.GOOS, runtime.GOARCH)
	return trace.Wrap(sh.RunV("go", "build",
		"-ldflags", strings.Join(buildFlags(), " "),
		"-o", out,
		"./tool/detrsa"))
}

// Wasm builds the WebAssembly reactor module exporting key generation
func (Build) Wasm() error {
	mg.Deps(Mkdir(buildDir))

	out := inBuildDir("detrsa.wasm")
	if IsUpToDate(out, sources[0], sources[1:]...) {
		return nil
	}
	fmt.Println("Building", out)
	return trace.Wrap(sh.RunWithV(map[string]string{
		"GOOS":   "wasip1",
		"GOARCH": "wasm",
	}, "go", "build",
		"-buildmode=c-shared",
		"-ldflags", strings.Join(buildFlags(), " "),
		"-o", out,
		"./tool/detrsa-wasm"))
}

func buildFlags() []string {
	return []string{
		fmt.Sprint(`-X github.com/gravitational/version.gitCommit=`, gitCommit),
		fmt.Sprint(`-X github.com/gravitational/version.version=`, buildVersion),
		"-s -w", // shrink the binary
	}
}
