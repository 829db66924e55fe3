package quota

import (
	"testing"
	"time"
)

func TestPeriodKey(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want string
	}{
		{
			name: "mid month",
			time: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
			want: "2025-01",
		},
		{
			name: "first instant of month",
			time: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			want: "2025-02",
		},
		{
			name: "last instant of month",
			time: time.Date(2025, 1, 31, 23, 59, 59, 999999999, time.UTC),
			want: "2025-01",
		},
		{
			name: "non-UTC time buckets on the UTC month",
			time: time.Date(2025, 2, 1, 3, 0, 0, 0, time.FixedZone("UTC+5", 5*3600)),
			want: "2025-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PeriodKey(tt.time); got != tt.want {
				t.Errorf("PeriodKey(%v) = %q, want %q", tt.time, got, tt.want)
			}
		})
	}
}

func TestNextPeriodStart(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want time.Time
	}{
		{
			name: "mid month",
			time: time.Date(2025, 1, 15, 12, 30, 0, 0, time.UTC),
			want: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "december rolls into next year",
			time: time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC),
			want: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "first instant still points at next month",
			time: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextPeriodStart(tt.time); !got.Equal(tt.want) {
				t.Errorf("NextPeriodStart(%v) = %v, want %v", tt.time, got, tt.want)
			}
		})
	}
}

func TestTTLUntilNextPeriod(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want time.Duration
	}{
		{
			name: "seconds before boundary",
			time: time.Date(2025, 1, 31, 23, 59, 30, 0, time.UTC),
			want: 30 * time.Second,
		},
		{
			name: "sub-second remainder rounds up",
			time: time.Date(2025, 1, 31, 23, 59, 59, 500000000, time.UTC),
			want: 1 * time.Second,
		},
		{
			name: "full january remaining",
			time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			want: 31 * 24 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TTLUntilNextPeriod(tt.time); got != tt.want {
				t.Errorf("TTLUntilNextPeriod(%v) = %v, want %v", tt.time, got, tt.want)
			}
		})
	}
}

func TestTTLUntilNextPeriod_NeverZero(t *testing.T) {
	// Exactly at the boundary the "next" period is a month away, so the
	// TTL stays positive.
	boundary := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if got := TTLUntilNextPeriod(boundary); got < time.Second {
		t.Errorf("TTLUntilNextPeriod at boundary = %v, want >= 1s", got)
	}
}
