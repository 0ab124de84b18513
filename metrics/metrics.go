// SPDX-License-Identifier: MIT

// Package metrics exposes simplex-tree construction as Prometheus metrics.
//
// A Collector is wired into simplextree.Build through its OnLevel hook and
// fed the finished tree with Observe:
//
//	c := metrics.NewCollector(reg)
//	start := time.Now()
//	tree, err := simplextree.Build(nodes, simplextree.WithOnLevel(c.OnLevel))
//	c.Observe(tree, time.Since(start))
//
// Batch runs (the CLI) write the registry to a node_exporter textfile with
// WriteTextfile.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// namespace prefixes every metric name.
const namespace = "simplicial"

// Collector groups the construction metrics registered on one registry.
type Collector struct {
	builds         prometheus.Counter
	buildDuration  prometheus.Histogram
	levelSimplices *prometheus.CounterVec
	simplices      *prometheus.GaugeVec
	nodes          prometheus.Gauge
	maxDimension   prometheus.Gauge
}

// NewCollector creates the construction metrics and registers them on reg.
// Registering twice on the same registry panics, as with promauto.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		builds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Number of simplex trees built.",
		}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Wall time of simplex tree construction.",
			// from tiny Mapper graphs to dense high-dimensional complexes
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		}),
		levelSimplices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "level_simplices_total",
			Help:      "Simplices created per construction level, summed over builds.",
		}, []string{"dimension"}),
		simplices: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "simplices",
			Help:      "Simplices per dimension in the last built tree.",
		}, []string{"dimension"}),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "nodes",
			Help:      "Mapper nodes (0-simplices) in the last built tree.",
		}),
		maxDimension: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "max_dimension",
			Help:      "Greatest simplex dimension in the last built tree.",
		}),
	}
	reg.MustRegister(c.builds, c.buildDuration, c.levelSimplices, c.simplices, c.nodes, c.maxDimension)

	return c
}

// OnLevel has the signature of simplextree.WithOnLevel's hook.
func (c *Collector) OnLevel(dimension, created int) {
	c.levelSimplices.WithLabelValues(strconv.Itoa(dimension)).Add(float64(created))
}

// Tree is the part of a simplex tree that Observe reads.
type Tree interface {
	NodeCount() int
	MaxDimension() int
	FVector() []int
}

// Observe records a finished build that took d.
func (c *Collector) Observe(t Tree, d time.Duration) {
	c.builds.Inc()
	c.buildDuration.Observe(d.Seconds())
	c.nodes.Set(float64(t.NodeCount()))
	c.maxDimension.Set(float64(t.MaxDimension()))

	c.simplices.Reset()
	for dim, n := range t.FVector() {
		c.simplices.WithLabelValues(strconv.Itoa(dim)).Set(float64(n))
	}
}

// WriteTextfile writes every metric gathered from g to path in the text
// exposition format, atomically.
func WriteTextfile(g prometheus.Gatherer, path string) error {
	return prometheus.WriteToTextfile(path, g)
}
