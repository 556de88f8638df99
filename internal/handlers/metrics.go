package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the validation service
type Metrics struct {
	requestDuration   *prometheus.HistogramVec
	requestsTotal     *prometheus.CounterVec
	validationsTotal  *prometheus.CounterVec
	validationScore   prometheus.Histogram
	queuePending      prometheus.GaugeFunc
	cacheOutcomeTotal *prometheus.CounterVec
}

// NewMetrics registers the service's collectors with the default registry
func NewMetrics(queueDepth func() float64) *Metrics {
	return &Metrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status code",
		}, []string{"route", "method", "status"}),
		validationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "validations_total",
			Help: "Mapping validations by result status",
		}, []string{"status"}),
		validationScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "validation_score",
			Help:    "Distribution of per-mapping validation scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
		queuePending: promauto.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "revalidation_queue_pending",
			Help: "Jobs waiting in the revalidation queue",
		}, queueDepth),
		cacheOutcomeTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "summary_cache_outcomes_total",
			Help: "Summary cache lookups by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveValidation records one mapping validation outcome
func (m *Metrics) ObserveValidation(status string, score int) {
	m.validationsTotal.WithLabelValues(status).Inc()
	m.validationScore.Observe(float64(score))
}

// ObserveCache records a summary cache hit or miss
func (m *Metrics) ObserveCache(outcome string) {
	m.cacheOutcomeTotal.WithLabelValues(outcome).Inc()
}

// Handler returns the Prometheus scrape endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

// InstrumentHTTP wraps a handler with request duration and count metrics
func (m *Metrics) InstrumentHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		route := routeTemplate(r)
		m.requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(recorder.status)).Inc()
	})
}

// routeTemplate returns the mux route pattern so path parameters don't
// explode label cardinality
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return "unmatched"
}

// statusRecorder captures the response status for metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
