package quota

import "time"

// Metrics defines the interface for tracking limiter and gateway operations.
type Metrics interface {
	// RecordAdmission records an admission decision for a period bucket.
	RecordAdmission(period string, admitted bool)

	// RecordStoreOperation records the duration and status of a counter
	// store operation ("incr", "expire").
	RecordStoreOperation(operation string, duration time.Duration, err error)

	// RecordGeneration records the duration and status of a provider call.
	RecordGeneration(mode string, duration time.Duration, err error)
}

// NoopMetrics is a no-op implementation of the Metrics interface.
type NoopMetrics struct{}

func (n *NoopMetrics) RecordAdmission(period string, admitted bool)                           {}
func (n *NoopMetrics) RecordStoreOperation(operation string, duration time.Duration, err error) {}
func (n *NoopMetrics) RecordGeneration(mode string, duration time.Duration, err error)          {}
