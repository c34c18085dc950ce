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

package cli

import (
	"fmt"
	"io"

	"github.com/gravitational/detrsa/lib/seed"
	"github.com/gravitational/detrsa/lib/utils"

	"github.com/gravitational/trace"
)

// printSeed outputs the seed derived from the mnemonic, or a random seed
// if mnemonic is empty
func printSeed(w io.Writer, mnemonic, passphrase string) (err error) {
	var s seed.Seed
	if mnemonic != "" {
		s, err = seed.FromMnemonic(mnemonic, passphrase)
	} else {
		if passphrase != "" {
			return trace.BadParameter("--passphrase requires --mnemonic")
		}
		s, err = utils.RandomSeed()
	}
	if err != nil {
		return trace.Wrap(err)
	}
	fmt.Fprintln(w, seed.Hex(s))
	return nil
}
