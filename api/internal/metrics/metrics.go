package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	classifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "card_classifications_total",
			Help: "Business card classification outcomes",
		},
		[]string{"engine", "result"},
	)

	extractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "card_extractions_total",
			Help: "Business card extraction outcomes",
		},
		[]string{"engine", "outcome"},
	)

	llmDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Duration of model calls in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"engine", "stage"},
	)
)

// Extraction outcomes.
const (
	ExtractionOK          = "ok"
	ExtractionFailed      = "error"
	ExtractionPlaceholder = "placeholder"
)

// UnmatchedPath labels requests that no route matched.
const UnmatchedPath = "unmatched"

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Metrics counts requests per route pattern; requests without one share UnmatchedPath.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		path := UnmatchedPath
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				path = p
			}
		}
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

func RecordClassification(engine, result string) {
	classifications.WithLabelValues(engine, result).Inc()
}

func RecordExtraction(engine, outcome string) {
	extractions.WithLabelValues(engine, outcome).Inc()
}

func ObserveLLM(engine, stage string, d time.Duration) {
	llmDuration.WithLabelValues(engine, stage).Observe(d.Seconds())
}
