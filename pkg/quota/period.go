package quota

import (
	"math"
	"time"
)

// PeriodKey returns the UTC calendar-month bucket for t, e.g. "2025-01".
// Exactly one period is current at any instant; boundaries are UTC month
// boundaries.
func PeriodKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// NextPeriodStart returns the first instant of the calendar month after t,
// in UTC. time.Date normalizes month+1 past December.
func NextPeriodStart(t time.Time) time.Time {
	tt := t.UTC()
	return time.Date(tt.Year(), tt.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

// TTLUntilNextPeriod returns the whole-second duration from t to the start
// of the next calendar month, rounded up so a counter never outlives its
// period by expiring early at sub-second boundaries.
func TTLUntilNextPeriod(t time.Time) time.Duration {
	remaining := NextPeriodStart(t).Sub(t.UTC())
	secs := int64(math.Ceil(remaining.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return time.Duration(secs) * time.Second
}
