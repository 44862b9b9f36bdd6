package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the Prometheus metrics of the service. Each collector owns
// its registry so tests can build as many as they like.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Editor metrics
	ActiveSessions     prometheus.Gauge
	InputsApplied      prometheus.Counter
	Generations        *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	BreakerState       prometheus.Gauge
	Saves              *prometheus.CounterVec

	// Repository metrics
	DBOperations *prometheus.CounterVec
	DBDuration   *prometheus.HistogramVec

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// NewCollector creates a metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ActiveSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "editor_sessions_active",
				Help:      "Number of open editor sessions",
			},
		),
		InputsApplied: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "editor_inputs_total",
				Help:      "Total number of pointer and keyboard inputs applied",
			},
		),
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Mind map generations by creation method",
			},
			[]string{"method"},
		),
		GenerationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Time spent producing a generated or fallback graph",
				Buckets:   prometheus.DefBuckets,
			},
		),
		BreakerState: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "generator_breaker_state",
				Help:      "Generator circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
		),
		Saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "saves_total",
				Help:      "Mind map saves by outcome",
			},
			[]string{"status"},
		),
		DBOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_operations_total",
				Help:      "Total number of database operations",
			},
			[]string{"operation", "table", "status"},
		),
		DBDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_operation_duration_seconds",
				Help:      "Database operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of cache hits",
			},
		),
		CacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of cache misses",
			},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.ActiveSessions,
		c.InputsApplied,
		c.Generations,
		c.GenerationDuration,
		c.BreakerState,
		c.Saves,
		c.DBOperations,
		c.DBDuration,
		c.CacheHits,
		c.CacheMisses,
	)

	return c
}

// NewNopCollector returns a collector under a throwaway namespace, for tests
func NewNopCollector() *Collector {
	return NewCollector("test")
}

// RecordGeneration counts one generation outcome and its latency
func (c *Collector) RecordGeneration(method string, duration time.Duration) {
	c.Generations.WithLabelValues(method).Inc()
	c.GenerationDuration.Observe(duration.Seconds())
}

// RecordSave counts one save outcome
func (c *Collector) RecordSave(status string) {
	c.Saves.WithLabelValues(status).Inc()
}

// RecordDBOperation counts a repository call and its latency
func (c *Collector) RecordDBOperation(operation, table string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.DBOperations.WithLabelValues(operation, table, status).Inc()
	c.DBDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordHTTPRequest counts a request and its latency
func (c *Collector) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}
