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

package metrics

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gravitational/detrsa/lib/constants"
	"github.com/gravitational/detrsa/lib/keys"
	"github.com/gravitational/detrsa/lib/utils"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordsOutcomes(t *testing.T) {
	collector, err := New()
	require.NoError(t, err)

	collector.GenerationFinished(keys.Outcome{
		Bits:       2048,
		Stream:     constants.StreamChaCha20,
		Elapsed:    time.Second,
		Candidates: 700,
	})
	collector.GenerationFinished(keys.Outcome{
		Bits:   8,
		Stream: constants.StreamChaCha20,
		Err:    utils.GenerationFailure("too small"),
	})

	require.Equal(t, 1.0, testutil.ToFloat64(
		collector.total.WithLabelValues(constants.StreamChaCha20, "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(
		collector.total.WithLabelValues(constants.StreamChaCha20, "generation_failure")))
	require.Equal(t, 700.0, testutil.ToFloat64(collector.candidates.WithLabelValues("2048")))
	require.Equal(t, 1, testutil.CollectAndCount(collector.duration))
}

func TestGeneratorReportsToCollector(t *testing.T) {
	collector, err := New()
	require.NoError(t, err)
	generator := keys.NewGenerator(collector)

	_, err = generator.GeneratePEM(keys.Request{Bits: 256})
	require.NoError(t, err)

	require.Equal(t, 1.0, testutil.ToFloat64(
		collector.total.WithLabelValues(constants.StreamChaCha20, "ok")))
}

func TestWriteTextfile(t *testing.T) {
	dir, err := ioutil.TempDir("", "metrics")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	collector, err := New()
	require.NoError(t, err)
	collector.GenerationFinished(keys.Outcome{Bits: 512, Stream: constants.StreamHMACDRBG})

	path := filepath.Join(dir, "detrsa.prom")
	require.NoError(t, collector.WriteTextfile(path))
	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data),
		`detrsa_key_generations_total{result="ok",stream="hmac-drbg"} 1`), string(data))
}
