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

// Package metrics exposes key generation metrics in Prometheus format
package metrics

import (
	"strconv"

	"github.com/gravitational/detrsa/lib/keys"

	"github.com/gravitational/trace"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "detrsa"

// Collector records key generation outcomes
type Collector struct {
	registry   *prometheus.Registry
	total      *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	candidates *prometheus.CounterVec
}

// New returns a new collector with its own registry
func New() (*Collector, error) {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "key_generations_total",
			Help:      "Number of key generations by stream and result.",
		}, []string{"stream", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "key_generation_duration_seconds",
			Help:      "Duration of successful key generations by modulus size.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"bits"}),
		candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prime_candidates_total",
			Help:      "Number of prime candidates tested by modulus size.",
		}, []string{"bits"}),
	}
	for _, collector := range []prometheus.Collector{c.total, c.duration, c.candidates} {
		if err := c.registry.Register(collector); err != nil {
			return nil, trace.Wrap(err)
		}
	}
	return c, nil
}

// GenerationFinished records the outcome
func (c *Collector) GenerationFinished(outcome keys.Outcome) {
	c.total.WithLabelValues(outcome.Stream, resultLabel(outcome.Err)).Inc()
	if outcome.Err != nil {
		return
	}
	bits := strconv.Itoa(outcome.Bits)
	c.duration.WithLabelValues(bits).Observe(outcome.Elapsed.Seconds())
	c.candidates.WithLabelValues(bits).Add(float64(outcome.Candidates))
}

// Gatherer returns the registry the metrics are registered with
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile writes the metrics to path in the text exposition format,
// suitable for the node exporter textfile collector
func (c *Collector) WriteTextfile(path string) error {
	return trace.ConvertSystemError(prometheus.WriteToTextfile(path, c.registry))
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return keys.Classify(err).String()
}
