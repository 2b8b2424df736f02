package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds all Prometheus metric collectors for the passdesk service.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics.
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Auth metrics, labeled by gate ("admin" or "user").
	AuthFailuresTotal  *prometheus.CounterVec
	AuthSuccessesTotal *prometheus.CounterVec

	// Directory and credential metrics.
	UsersCreatedTotal      prometheus.Counter
	UsersDeletedTotal      prometheus.Counter
	CredentialUpdatesTotal prometheus.Counter

	// Server lifecycle.
	ServerStartTime prometheus.Gauge
}

// New creates and registers all Prometheus metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "passdesk_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path_pattern", "status_code"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "passdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path_pattern"}),

		AuthFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "passdesk_auth_failures_total",
			Help: "Total number of authentication failures.",
		}, []string{"gate"}),

		AuthSuccessesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "passdesk_auth_successes_total",
			Help: "Total number of successful authentications.",
		}, []string{"gate"}),

		UsersCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "passdesk_users_created_total",
			Help: "Total number of user accounts created.",
		}),

		UsersDeletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "passdesk_users_deleted_total",
			Help: "Total number of user accounts deleted.",
		}),

		CredentialUpdatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "passdesk_credential_updates_total",
			Help: "Total number of organization credential edits.",
		}),

		ServerStartTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "passdesk_server_start_time_seconds",
			Help: "Unix timestamp when the server started.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuthFailuresTotal,
		m.AuthSuccessesTotal,
		m.UsersCreatedTotal,
		m.UsersDeletedTotal,
		m.CredentialUpdatesTotal,
		m.ServerStartTime,
	)

	m.ServerStartTime.Set(float64(time.Now().Unix()))

	// Register Go runtime and process collectors.
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

// Registry returns the private Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterDBPoolCollector registers a custom DB pool stats collector.
func (m *Metrics) RegisterDBPoolCollector(statFunc DBPoolStatFunc) {
	m.registry.MustRegister(NewDBPoolCollector(statFunc))
}

// ObserveHTTPRequest records one handled request.
func (m *Metrics) ObserveHTTPRequest(method, pathPattern string, statusCode int, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, pathPattern, fmt.Sprintf("%d", statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, pathPattern).Observe(seconds)
}

// IncAuthFailure increments the auth failure counter for the given gate.
func (m *Metrics) IncAuthFailure(gate string) {
	m.AuthFailuresTotal.WithLabelValues(gate).Inc()
}

// IncAuthSuccess increments the auth success counter for the given gate.
func (m *Metrics) IncAuthSuccess(gate string) {
	m.AuthSuccessesTotal.WithLabelValues(gate).Inc()
}

// IncUserCreated increments the users-created counter.
func (m *Metrics) IncUserCreated() {
	m.UsersCreatedTotal.Inc()
}

// IncUserDeleted increments the users-deleted counter.
func (m *Metrics) IncUserDeleted() {
	m.UsersDeletedTotal.Inc()
}

// IncCredentialUpdate increments the credential-edit counter.
func (m *Metrics) IncCredentialUpdate() {
	m.CredentialUpdatesTotal.Inc()
}
