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

//go:build wasip1

// Command detrsa-wasm is a WebAssembly reactor module exporting
// deterministic RSA key generation to its host.
//
// Build with:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o detrsa.wasm ./tool/detrsa-wasm
package main

import (
	"unsafe"

	"github.com/gravitational/detrsa/lib/utils"
	"github.com/gravitational/detrsa/lib/wasmapi"

	"github.com/sirupsen/logrus"
)

var exports *wasmapi.Exports

func init() {
	utils.InitLogger(logrus.WarnLevel)
	var err error
	exports, err = wasmapi.New(wasmapi.Config{})
	if err != nil {
		panic(err)
	}
}

//go:wasmexport gen_keys
func genKeys(bits uint32, seed unsafe.Pointer, seedLen uint32) uintptr {
	return exports.GenKeys(bits, seed, seedLen)
}

//go:wasmexport alloc_seed
func allocSeed() uintptr {
	return exports.AllocSeed()
}

//go:wasmexport free_seed
func freeSeed(addr uintptr) uint32 {
	return exports.FreeSeed(addr)
}

//go:wasmexport free_result
func freeResult(addr uintptr) uint32 {
	return exports.FreeResult(addr)
}

//go:wasmexport last_error
func lastError() uint32 {
	return exports.LastError()
}

func main() {}
