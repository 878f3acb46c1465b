// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search outcomes with respect to the result cache.
const (
	CacheHit      = "hit"
	CacheMiss     = "miss"
	CacheDisabled = "disabled"
)

// SuffixTreeCollector records suffix tree builds and searches. A nil
// collector records nothing.
type SuffixTreeCollector struct {
	buildsTotal   *prometheus.CounterVec
	buildDuration prometheus.Histogram
	nodes         prometheus.Gauge
	leaves        prometheus.Gauge
	searchesTotal *prometheus.CounterVec
	matches       prometheus.Histogram
}

var _ prometheus.Collector = (*SuffixTreeCollector)(nil)

// NewSuffixTreeCollector creates the collector with metric names under namespace.
func NewSuffixTreeCollector(namespace string) *SuffixTreeCollector {
	return &SuffixTreeCollector{
		buildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "suffixtree_builds_total",
				Help:      "Total number of suffix tree builds",
			},
			[]string{"result"},
		),
		buildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "suffixtree_build_duration_seconds",
				Help:      "Duration of suffix tree construction in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
			},
		),
		nodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "suffixtree_nodes",
				Help:      "Number of nodes in the last built suffix tree",
			},
		),
		leaves: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "suffixtree_leaves",
				Help:      "Number of leaves in the last built suffix tree",
			},
		),
		searchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "suffixtree_searches_total",
				Help:      "Total number of substring searches by cache outcome",
			},
			[]string{"cache"},
		),
		matches: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "suffixtree_search_matches",
				Help:      "Number of occurrences returned per search",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
	}
}

func (c *SuffixTreeCollector) Describe(ch chan<- *prometheus.Desc) {
	c.buildsTotal.Describe(ch)
	c.buildDuration.Describe(ch)
	c.nodes.Describe(ch)
	c.leaves.Describe(ch)
	c.searchesTotal.Describe(ch)
	c.matches.Describe(ch)
}

func (c *SuffixTreeCollector) Collect(ch chan<- prometheus.Metric) {
	c.buildsTotal.Collect(ch)
	c.buildDuration.Collect(ch)
	c.nodes.Collect(ch)
	c.leaves.Collect(ch)
	c.searchesTotal.Collect(ch)
	c.matches.Collect(ch)
}

// ObserveBuild records a successful build.
func (c *SuffixTreeCollector) ObserveBuild(duration time.Duration, nodes, leaves int) {
	if c == nil {
		return
	}
	c.buildsTotal.WithLabelValues("ok").Inc()
	c.buildDuration.Observe(duration.Seconds())
	c.nodes.Set(float64(nodes))
	c.leaves.Set(float64(leaves))
}

// BuildFailed records a rejected input.
func (c *SuffixTreeCollector) BuildFailed() {
	if c == nil {
		return
	}
	c.buildsTotal.WithLabelValues("invalid_input").Inc()
}

// ObserveSearch records one search and its number of matches.
func (c *SuffixTreeCollector) ObserveSearch(cache string, matches int) {
	if c == nil {
		return
	}
	c.searchesTotal.WithLabelValues(cache).Inc()
	c.matches.Observe(float64(matches))
}
