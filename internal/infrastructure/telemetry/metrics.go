package telemetry

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/propman/backend/internal/application/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus metric names.
const (
	MetricRequestsTotal         = "propman_requests_total"
	MetricRequestDuration       = "propman_request_duration_seconds"
	MetricHTTPRequestsTotal     = "propman_http_requests_total"
	MetricHTTPRequestDuration   = "propman_http_request_duration_seconds"
	MetricAttachmentUploadBytes = "propman_attachment_upload_bytes_total"
)

var requestBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Metrics owns a private Prometheus registry with the application series.
// It implements pipeline.Recorder.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	httpTotal       *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	uploadBytes     prometheus.Counter
}

// NewMetrics creates the registry with Go runtime and process collectors
// plus the application series.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricRequestsTotal,
			Help: "Application requests handled by the pipeline",
		}, []string{"request", "kind", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricRequestDuration,
			Help:    "Time spent handling pipeline requests",
			Buckets: requestBuckets,
		}, []string{"request", "kind"}),
		httpTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricHTTPRequestsTotal,
			Help: "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricHTTPRequestDuration,
			Help:    "HTTP request latency by route",
			Buckets: requestBuckets,
		}, []string{"method", "route"}),
		uploadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricAttachmentUploadBytes,
			Help: "Bytes of attachment content accepted for storage",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.httpTotal,
		m.httpDuration,
		m.uploadBytes,
	)
	return m
}

// ObserveRequest implements pipeline.Recorder
func (m *Metrics) ObserveRequest(name string, kind pipeline.Kind, outcome pipeline.Outcome, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(name, kind.String(), string(outcome)).Inc()
	m.requestDuration.WithLabelValues(name, kind.String()).Observe(elapsed.Seconds())
}

// ObserveHTTP records one served HTTP request. route is the matched
// pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// AddUploadBytes counts accepted attachment content
func (m *Metrics) AddUploadBytes(n int64) {
	if n > 0 {
		m.uploadBytes.Add(float64(n))
	}
}

// RegisterDBStats exposes connection pool statistics for db.
func (m *Metrics) RegisterDBStats(db *sql.DB, dbName string) error {
	return m.registry.Register(collectors.NewDBStatsCollector(db, dbName))
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		Registry:          m.registry,
	})
}
