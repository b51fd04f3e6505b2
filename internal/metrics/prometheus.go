// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package metrics holds the prometheus counters of an inspection run.
// Counters live in a private registry, written once to a textfile
// when the command ends.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ssi"

// Fetch results used as label values.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

// Prometheus implements the node store and walker metrics
// with prometheus counters.
type Prometheus struct {
	registry     *prometheus.Registry
	fetches      *prometheus.CounterVec
	cacheHits    prometheus.Counter
	nodesVisited prometheus.Counter
	entries      *prometheus.CounterVec
}

// NewPrometheus creates the counters and registers them
// in a new private registry.
func NewPrometheus() (metrics *Prometheus, err error) {
	metrics = &Prometheus{
		registry: prometheus.NewRegistry(),
	}
	collectorsToRegister := make(map[string]prometheus.Collector)

	metrics.fetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "nodestore",
		Name:      "fetch_total",
		Help:      "node store lookups by namespace and result",
	}, []string{"namespace", "result"})
	collectorsToRegister["fetches counter"] = metrics.fetches

	metrics.cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "nodestore",
		Name:      "cache_hits_total",
		Help:      "nodes served from the node cache",
	})
	collectorsToRegister["cache hits counter"] = metrics.cacheHits

	metrics.nodesVisited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "walker",
		Name:      "nodes_visited_total",
		Help:      "trie nodes decoded by the walker",
	})
	collectorsToRegister["nodes visited counter"] = metrics.nodesVisited

	metrics.entries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "walker",
		Name:      "entries_total",
		Help:      "entries emitted by the walker by kind",
	}, []string{"kind"})
	collectorsToRegister["entries counter"] = metrics.entries

	for collectorName, collectorToRegister := range collectorsToRegister {
		err = metrics.registry.Register(collectorToRegister)
		if err != nil && !errors.As(err, &prometheus.AlreadyRegisteredError{}) {
			return nil, fmt.Errorf("cannot register %s: %w", collectorName, err)
		}
	}

	return metrics, nil
}

// FetchHit records a node found in the namespace given.
func (m *Prometheus) FetchHit(namespace string) {
	m.fetches.WithLabelValues(namespace, ResultHit).Inc()
}

// FetchMiss records a node not found in the namespace given.
func (m *Prometheus) FetchMiss(namespace string) {
	m.fetches.WithLabelValues(namespace, ResultMiss).Inc()
}

// CacheHit records a node served from the node cache.
func (m *Prometheus) CacheHit() {
	m.cacheHits.Inc()
}

// NodeVisited records a node decoded by the walker.
func (m *Prometheus) NodeVisited() {
	m.nodesVisited.Inc()
}

// EntryEmitted records an entry emitted by the walker.
func (m *Prometheus) EntryEmitted(leaf bool) {
	kind := "branch"
	if leaf {
		kind = "leaf"
	}
	m.entries.WithLabelValues(kind).Inc()
}

// WriteToTextfile writes the counters to the file at path
// in the text exposition format.
func (m *Prometheus) WriteToTextfile(path string) (err error) {
	err = prometheus.WriteToTextfile(path, m.registry)
	if err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
