// Package metrics exposes engine activity as prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements store.Observer and simulator.Recorder.
type Metrics struct {
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	gridBuilds    prometheus.Counter
	buildDuration prometheus.Histogram
	computations  *prometheus.CounterVec
	messages      *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pvyield_grid_cache_hits_total",
			Help: "Grid cache lookups answered from the cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pvyield_grid_cache_misses_total",
			Help: "Grid cache lookups that found no grid.",
		}),
		gridBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pvyield_grid_builds_total",
			Help: "Completed optimization grid builds.",
		}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pvyield_grid_build_duration_seconds",
			Help:    "Time spent simulating every node of an optimization grid.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pvyield_computations_total",
			Help: "Engine computations by kind.",
		}, []string{"kind"}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pvyield_ws_messages_total",
			Help: "Websocket messages received by type.",
		}, []string{"type"}),
	}

	reg.MustRegister(
		m.cacheHits,
		m.cacheMisses,
		m.gridBuilds,
		m.buildDuration,
		m.computations,
		m.messages,
	)
	return m
}

func (m *Metrics) CacheHit()  { m.cacheHits.Inc() }
func (m *Metrics) CacheMiss() { m.cacheMisses.Inc() }

func (m *Metrics) GridBuilt(d time.Duration) {
	m.gridBuilds.Inc()
	m.buildDuration.Observe(d.Seconds())
}

func (m *Metrics) Computation(kind string) {
	m.computations.WithLabelValues(kind).Inc()
}

// Message counts one websocket message of type msgType.
func (m *Metrics) Message(msgType string) {
	m.messages.WithLabelValues(msgType).Inc()
}
