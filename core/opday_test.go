package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rigkpi/schema"
)

func tsPtr(value string) *time.Time {
	ts, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		panic(err)
	}
	return &ts
}

func floatPtr(v float64) *float64 {
	return &v
}

// TestResolveDay checks the explicit-label and clock-offset day rules.
func TestResolveDay(t *testing.T) {
	tests := []struct {
		name     string
		event    schema.Event
		expected string
		ok       bool
	}{
		{
			name:     "explicit label wins over start timestamp",
			event:    schema.Event{WorkDayStarted: "2026-02-20", Start: tsPtr("2026-02-17 03:00:00")},
			expected: "2026-02-20",
			ok:       true,
		},
		{
			name:     "early morning belongs to previous day",
			event:    schema.Event{Start: tsPtr("2026-02-17 03:00:00")},
			expected: "2026-02-16",
			ok:       true,
		},
		{
			name:     "start at day boundary opens the new day",
			event:    schema.Event{Start: tsPtr("2026-02-17 21:00:00")},
			expected: "2026-02-17",
			ok:       true,
		},
		{
			name:     "just before the boundary stays on the old day",
			event:    schema.Event{Start: tsPtr("2026-02-17 20:59:59")},
			expected: "2026-02-16",
			ok:       true,
		},
		{
			name:     "label with timestamp component is truncated",
			event:    schema.Event{WorkDayStarted: "2026-03-01 00:00:00"},
			expected: "2026-03-01",
			ok:       true,
		},
		{
			name:  "unparseable label without start is unresolvable",
			event: schema.Event{WorkDayStarted: "n/a"},
			ok:    false,
		},
		{
			name:  "no label and no start is unresolvable",
			event: schema.Event{},
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, ok := ResolveDay(&tt.event)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, day.Format("2006-01-02"))
			}
		})
	}
}

// TestDurationHours checks the duration coercion order and fallbacks.
func TestDurationHours(t *testing.T) {
	t.Run("explicit seconds win over timestamps", func(t *testing.T) {
		var stats schema.RowStats
		ev := schema.Event{
			DurationSeconds: floatPtr(7200),
			Start:           tsPtr("2026-02-17 03:00:00"),
			End:             tsPtr("2026-02-17 04:00:00"),
		}
		assert.InDelta(t, 2.0, DurationHours(&ev, &stats), 1e-9)
		assert.Zero(t, stats.DurationFallback)
	})

	t.Run("fallback to end minus start is counted", func(t *testing.T) {
		var stats schema.RowStats
		ev := schema.Event{
			Start: tsPtr("2026-02-17 03:00:00"),
			End:   tsPtr("2026-02-17 04:30:00"),
		}
		assert.InDelta(t, 1.5, DurationHours(&ev, &stats), 1e-9)
		assert.Equal(t, 1, stats.DurationFallback)
	})

	t.Run("negative explicit duration is floored", func(t *testing.T) {
		var stats schema.RowStats
		ev := schema.Event{DurationSeconds: floatPtr(-3600)}
		assert.Zero(t, DurationHours(&ev, &stats))
	})

	t.Run("end before start is floored", func(t *testing.T) {
		var stats schema.RowStats
		ev := schema.Event{
			Start: tsPtr("2026-02-17 05:00:00"),
			End:   tsPtr("2026-02-17 03:00:00"),
		}
		assert.Zero(t, DurationHours(&ev, &stats))
	})

	t.Run("no duration information yields zero", func(t *testing.T) {
		ev := schema.Event{}
		assert.Zero(t, DurationHours(&ev, nil))
	})
}
