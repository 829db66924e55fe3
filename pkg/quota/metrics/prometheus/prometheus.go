package prommetrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements quota.Metrics using Prometheus.
type Metrics struct {
	admissionsTotal    *prometheus.CounterVec
	storeOpsDuration   *prometheus.HistogramVec
	storeOpsErrors     *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	generationErrors   *prometheus.CounterVec
}

// NewMetrics creates a new Prometheus metrics implementation.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		admissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quota_admissions_total",
			Help:      "Total number of admission decisions.",
		}, []string{"period", "admitted"}),

		storeOpsDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quota_store_operation_duration_seconds",
			Help:      "Latency of counter store operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),

		storeOpsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quota_store_operation_errors_total",
			Help:      "Total number of counter store operation errors.",
		}, []string{"operation"}),

		generationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Latency of text generation provider calls.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}, []string{"mode"}),

		generationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_errors_total",
			Help:      "Total number of failed provider calls.",
		}, []string{"mode"}),
	}
}

// RecordAdmission implements quota.Metrics.
func (m *Metrics) RecordAdmission(period string, admitted bool) {
	m.admissionsTotal.WithLabelValues(period, strconv.FormatBool(admitted)).Inc()
}

// RecordStoreOperation implements quota.Metrics.
func (m *Metrics) RecordStoreOperation(operation string, duration time.Duration, err error) {
	m.storeOpsDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.storeOpsErrors.WithLabelValues(operation).Inc()
	}
}

// RecordGeneration implements quota.Metrics.
func (m *Metrics) RecordGeneration(mode string, duration time.Duration, err error) {
	m.generationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if err != nil {
		m.generationErrors.WithLabelValues(mode).Inc()
	}
}
