package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	httpRequestsTotal   *prometheus.CounterVec
	httpLatencySeconds  *prometheus.HistogramVec
	httpErrorsTotal     *prometheus.CounterVec
	accessDeniedTotal   *prometheus.CounterVec
	loginAttemptsTotal  *prometheus.CounterVec
	facultyCacheLookups *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reporting_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reporting_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reporting_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		accessDeniedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reporting_access_denied_total",
			Help: "Requests rejected by the token guard or the access policy.",
		}, []string{"route"})

		loginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reporting_login_attempts_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"})

		facultyCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reporting_faculty_cache_lookups_total",
			Help: "Faculty overview cache lookups by result.",
		}, []string{"result"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			accessDeniedTotal,
			loginAttemptsTotal,
			facultyCacheLookups,
		)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the error response counter.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// AccessDenied exposes the 403 counter.
func AccessDenied() *prometheus.CounterVec {
	RegisterMetrics()
	return accessDeniedTotal
}

// LoginAttempts exposes the login outcome counter.
func LoginAttempts() *prometheus.CounterVec {
	RegisterMetrics()
	return loginAttemptsTotal
}

// FacultyCacheLookups exposes the faculty overview cache counter.
func FacultyCacheLookups() *prometheus.CounterVec {
	RegisterMetrics()
	return facultyCacheLookups
}
