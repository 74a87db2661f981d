package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Media metrics
	MediaResponses *prometheus.CounterVec
	MediaBytes     prometheus.Counter
	StreamAborts   *prometheus.CounterVec

	// Scoring metrics
	Submissions *prometheus.CounterVec

	// System metrics
	Uptime prometheus.GaugeFunc
}

// NewMetrics creates a metrics collector backed by its own registry, so
// several servers in one process never collide on registration.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	startTime := time.Now()

	return &Metrics{
		registry: reg,

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "content_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "content_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"method", "route"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "content_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "route"},
		),

		// Media metrics
		MediaResponses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "content_media_responses_total",
				Help: "Media responses by outcome (full, partial, invalid_range, unavailable)",
			},
			[]string{"outcome"},
		),
		MediaBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "content_media_bytes_streamed_total",
				Help: "Media bytes written to clients",
			},
		),
		StreamAborts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "content_media_stream_aborts_total",
				Help: "Media streams that stopped before the window was complete",
			},
			[]string{"reason"},
		),

		// Scoring metrics
		Submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "content_assessment_submissions_total",
				Help: "Assessment submissions by resulting category",
			},
			[]string{"category"},
		),

		// System metrics
		Uptime: factory.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "content_uptime_seconds",
				Help: "Server uptime in seconds",
			},
			func() float64 { return time.Since(startTime).Seconds() },
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, route).Observe(float64(respSize))
}

// RecordMediaResponse counts a media response outcome
func (m *Metrics) RecordMediaResponse(outcome string) {
	m.MediaResponses.WithLabelValues(outcome).Inc()
}

// AddMediaBytes adds to the streamed byte counter
func (m *Metrics) AddMediaBytes(n int64) {
	if n > 0 {
		m.MediaBytes.Add(float64(n))
	}
}

// RecordStreamAbort counts a stream that ended early
func (m *Metrics) RecordStreamAbort(reason string) {
	m.StreamAborts.WithLabelValues(reason).Inc()
}

// RecordSubmission counts a scored submission
func (m *Metrics) RecordSubmission(category string) {
	m.Submissions.WithLabelValues(category).Inc()
}
