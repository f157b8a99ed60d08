package fetcher

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the downloader.
type Metrics struct {
	Registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestDuration prometheus.Histogram
	InFlight        prometheus.Gauge
	RecordsTotal    *prometheus.CounterVec
	RetriesTotal    prometheus.Counter
	ErrorsTotal     *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "downloader_requests_total",
			Help: "Total HTTP requests issued by the downloader.",
		},
		[]string{"phase"},
	)
	requestDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "downloader_request_duration_seconds",
			Help:    "HTTP request latency for classification pages.",
			Buckets: prometheus.DefBuckets,
		},
	)
	inFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "downloader_fetches_in_flight",
			Help: "Fetches currently holding an admission-gate slot.",
		},
	)
	recordsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "downloader_records_total",
			Help: "Total result rows parsed, by category.",
		},
		[]string{"categoria"},
	)
	retries := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "downloader_retries_total",
			Help: "Total number of retry attempts.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "downloader_errors_total",
			Help: "Total number of fetch errors by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(requests, requestDuration, inFlight, recordsTotal, retries, errorsTotal)

	return &Metrics{
		Registry:        registry,
		RequestsTotal:   requests,
		RequestDuration: requestDuration,
		InFlight:        inFlight,
		RecordsTotal:    recordsTotal,
		RetriesTotal:    retries,
		ErrorsTotal:     errorsTotal,
	}
}

// IncRequest increments the requests total counter.
func (m *Metrics) IncRequest(phase string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(phase).Inc()
}

// ObserveDuration records an HTTP request duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// GateAcquired marks an admission-gate slot as taken.
func (m *Metrics) GateAcquired() {
	if m == nil {
		return
	}
	m.InFlight.Inc()
}

// GateReleased marks an admission-gate slot as freed.
func (m *Metrics) GateReleased() {
	if m == nil {
		return
	}
	m.InFlight.Dec()
}

// IncRecords adds parsed rows to the per-category counter.
func (m *Metrics) IncRecords(categoria string, n int) {
	if m == nil {
		return
	}
	m.RecordsTotal.WithLabelValues(categoria).Add(float64(n))
}

// IncRetries increments the retries counter.
func (m *Metrics) IncRetries() {
	if m == nil {
		return
	}
	m.RetriesTotal.Inc()
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
