package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the service.
type Metrics struct {
	SignIns       prometheus.Counter
	AuthFailures  *prometheus.CounterVec
	TokensIssued  *prometheus.CounterVec
	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec
}

// New creates and registers the instruments on reg. Pass
// prometheus.DefaultRegisterer outside of tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SignIns: factory.NewCounter(prometheus.CounterOpts{
			Name: "persons_signins_total",
			Help: "Total number of successful sign-ins",
		}),
		AuthFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "persons_auth_failures_total",
			Help: "Total number of failed authentication attempts",
		}, []string{"reason"}),
		TokensIssued: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "persons_tokens_issued_total",
			Help: "Total number of tokens issued",
		}, []string{"kind"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "persons_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "status"}),
		HTTPDurations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "persons_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

func (m *Metrics) RecordSignIn() {
	m.SignIns.Inc()
}

func (m *Metrics) RecordAuthFailure(reason string) {
	m.AuthFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordTokenIssued(kind string) {
	m.TokensIssued.WithLabelValues(kind).Inc()
}

// HTTPMiddleware counts requests and observes latency per method.
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		m.HTTPDurations.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
