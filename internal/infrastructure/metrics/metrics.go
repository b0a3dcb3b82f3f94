package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/iho/goatm/internal/domain"
)

const resultSuccess = "success"

// Metrics holds all Prometheus metrics for teller sessions.
// It implements usecase.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	// Session metrics
	LoginAttempts  *prometheus.CounterVec
	ActiveSessions prometheus.Gauge

	// Ledger metrics
	Operations   *prometheus.CounterVec
	PostedAmount *prometheus.HistogramVec
}

// New creates all metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		LoginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goatm_login_attempts_total",
				Help: "Total number of login attempts by result",
			},
			[]string{"result"},
		),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "goatm_active_sessions",
			Help: "Number of authenticated sessions",
		}),

		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goatm_operations_total",
				Help: "Total teller operations by name and result",
			},
			[]string{"operation", "result"},
		),
		PostedAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goatm_posted_amount",
				Help:    "Amounts of successful postings",
				Buckets: []float64{1, 10, 50, 100, 500, 1000, 10000},
			},
			[]string{"operation"},
		),
	}
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordLogin counts a login attempt.
func (m *Metrics) RecordLogin(success bool) {
	result := resultSuccess
	if !success {
		result = domain.KindInvalidCredentials.String()
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// RecordOperation counts an operation, labelled by error kind on failure.
func (m *Metrics) RecordOperation(operation string, err error) {
	result := resultSuccess
	if err != nil {
		result = domain.KindOf(err).String()
	}
	m.Operations.WithLabelValues(operation, result).Inc()
}

// RecordAmount observes a posted amount.
func (m *Metrics) RecordAmount(operation string, amount decimal.Decimal) {
	m.PostedAmount.WithLabelValues(operation).Observe(amount.InexactFloat64())
}

// SessionOpened tracks a new authenticated session.
func (m *Metrics) SessionOpened() {
	m.ActiveSessions.Inc()
}

// SessionClosed tracks the end of an authenticated session.
func (m *Metrics) SessionClosed() {
	m.ActiveSessions.Dec()
}

// WriteTextfile writes the registry in text exposition format to path,
// as read by the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
