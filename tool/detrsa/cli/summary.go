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
	"io"
	"strconv"

	"github.com/gravitational/detrsa/lib/keys"
	"github.com/gravitational/detrsa/lib/pkcs1"

	"github.com/dustin/go-humanize"
	"github.com/gravitational/trace"
	"github.com/olekukonko/tablewriter"
)

// printSummary outputs a table describing the generated key
func printSummary(w io.Writer, key *pkcs1.PrivateKey, outcome keys.Outcome, size int) error {
	pair, err := keys.JWK(key)
	if err != nil {
		return trace.Wrap(err)
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Bits", "Stream", "Key ID", "Candidates", "Elapsed", "Size"})
	table.Append([]string{
		strconv.Itoa(key.Modulus.BitLen()),
		outcome.Stream,
		pair.PrivateKey.KeyID,
		humanize.Comma(int64(outcome.Candidates)),
		outcome.Elapsed.String(),
		humanize.Bytes(uint64(size)),
	})
	table.Render()
	return nil
}
