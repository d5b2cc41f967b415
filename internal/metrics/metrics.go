// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package metrics exports simulation statistics to Prometheus.
//
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records simulation events. It implements logicsim.Observer.
//
type Collector struct {
	Ticks        prometheus.Counter
	TickDuration prometheus.Histogram
	Starts       prometheus.Counter
	Failures     prometheus.Counter
	Networks     prometheus.Gauge
	Nodes        prometheus.Gauge
	Started      prometheus.Gauge

	reg *prometheus.Registry
}

// New creates a Collector with its own registry.
//
func New() *Collector {
	c := &Collector{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "logicsim",
			Name:      "ticks_total",
			Help:      "Total number of simulation ticks.",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "logicsim",
			Name:      "tick_duration_seconds",
			Help:      "Time spent computing a single tick.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		Starts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "logicsim",
			Name:      "starts_total",
			Help:      "Number of times the simulation was started.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "logicsim",
			Name:      "failures_total",
			Help:      "Number of times the simulation was stopped by a failing node.",
		}),
		Networks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "logicsim",
			Name:      "networks",
			Help:      "Number of networks built at the last start.",
		}),
		Nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "logicsim",
			Name:      "nodes",
			Help:      "Number of nodes in the simulation.",
		}),
		Started: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "logicsim",
			Name:      "started",
			Help:      "1 if the simulation is started, 0 otherwise.",
		}),
		reg: prometheus.NewRegistry(),
	}
	c.reg.MustRegister(c.Ticks, c.TickDuration, c.Starts, c.Failures, c.Networks, c.Nodes, c.Started)
	return c
}

// Registry returns the registry holding the collector's metrics.
//
func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// Handler returns an http.Handler serving the metrics.
//
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{Registry: c.reg})
}

// SimulationStarted implements logicsim.Observer.
//
func (c *Collector) SimulationStarted(networks, nodes int) {
	c.Starts.Inc()
	c.Networks.Set(float64(networks))
	c.Nodes.Set(float64(nodes))
	c.Started.Set(1)
}

// SimulationTicked implements logicsim.Observer.
//
func (c *Collector) SimulationTicked(_ uint64, d time.Duration) {
	c.Ticks.Inc()
	c.TickDuration.Observe(d.Seconds())
}

// SimulationStopped implements logicsim.Observer.
//
func (c *Collector) SimulationStopped(err error) {
	if err != nil {
		c.Failures.Inc()
	}
	c.Started.Set(0)
}
