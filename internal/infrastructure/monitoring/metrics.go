package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics of the conversion engine. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	// Resolution metrics
	ConversionsResolved *prometheus.CounterVec
	ConversionErrors    *prometheus.CounterVec
	ResolutionDuration  prometheus.Histogram

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Schema metrics
	SchemasLoaded prometheus.Gauge

	// Snapshot for callers without a Prometheus scrape
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values
type MetricsSnapshot struct {
	Resolved      int64
	Cached        int64
	Errors        int64
	CacheHits     int64
	CacheMisses   int64
	SchemasLoaded int64
	TotalDuration float64 // sum of all resolution durations in seconds
}

// NewMetrics registers the engine metrics with reg. A nil reg registers with
// the default Prometheus registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		ConversionsResolved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conversions_resolved_total",
				Help:      "Total number of conversion map resolutions by outcome",
			},
			[]string{"status"},
		),
		ConversionErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conversion_errors_total",
				Help:      "Total number of failed resolutions by error kind",
			},
			[]string{"kind"},
		),
		ResolutionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "resolution_duration_seconds",
				Help:      "Conversion map resolution duration in seconds",
				Buckets:   []float64{.000001, .000005, .00001, .00005, .0001, .0005, .001, .005, .01, .05},
			},
		),
		CacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of conversion cache hits",
			},
		),
		CacheMisses: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of conversion cache misses",
			},
		),
		SchemasLoaded: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "schemas_loaded",
				Help:      "Number of schemas registered in the schema context",
			},
		),
	}
}

// RecordResolution records a finished resolution. Status is "resolved",
// "cached" or "error".
func (m *Metrics) RecordResolution(status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ConversionsResolved.WithLabelValues(status).Inc()
	m.ResolutionDuration.Observe(duration.Seconds())

	m.mu.Lock()
	switch status {
	case "resolved":
		m.snapshot.Resolved++
	case "cached":
		m.snapshot.Cached++
	case "error":
		m.snapshot.Errors++
	}
	m.snapshot.TotalDuration += duration.Seconds()
	m.mu.Unlock()
}

// RecordConversionError records a failed resolution by error kind
func (m *Metrics) RecordConversionError(kind string) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	m.ConversionErrors.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
	m.mu.Lock()
	m.snapshot.CacheHits++
	m.mu.Unlock()
}

func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
	m.mu.Lock()
	m.snapshot.CacheMisses++
	m.mu.Unlock()
}

// SetSchemasLoaded sets the number of registered schemas
func (m *Metrics) SetSchemasLoaded(count int) {
	if m == nil {
		return
	}
	m.SchemasLoaded.Set(float64(count))
	m.mu.Lock()
	m.snapshot.SchemasLoaded = int64(count)
	m.mu.Unlock()
}

// Snapshot returns the current metric values
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
