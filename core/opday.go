package core

import (
	"time"

	"rigkpi/internal/textnorm"
	"rigkpi/schema"
)

// opdayOffsetHours is the clock offset of the operational day: a day runs
// from 21:00 of the previous calendar date to 21:00 of its own.
const opdayOffsetHours = 21

// ResolveDay maps an event to the operational day it belongs to. An explicit
// day label from the source is authoritative and bypasses the clock-offset
// rule. Without one, the day is the date component of start minus the 21:00
// offset. Events with neither are unresolvable and must be excluded from all
// aggregates by the caller.
func ResolveDay(ev *schema.Event) (time.Time, bool) {
	if day, ok := textnorm.ParseDate(ev.WorkDayStarted); ok {
		return day, true
	}
	if ev.Start == nil {
		return time.Time{}, false
	}
	shifted := ev.Start.Add(-opdayOffsetHours * time.Hour)
	return time.Date(shifted.Year(), shifted.Month(), shifted.Day(), 0, 0, 0, 0, time.UTC), true
}

// DurationHours coerces an event's duration to non-negative hours. The
// explicit duration wins; otherwise it is derived from end minus start. A
// negative or missing duration yields zero, which drops the event from hour
// totals without removing it from row statistics.
func DurationHours(ev *schema.Event, stats *schema.RowStats) float64 {
	seconds := 0.0
	switch {
	case ev.DurationSeconds != nil:
		seconds = *ev.DurationSeconds
	case ev.Start != nil && ev.End != nil:
		seconds = ev.End.Sub(*ev.Start).Seconds()
		if stats != nil {
			stats.DurationFallback++
		}
	}
	if seconds < 0 {
		seconds = 0
	}
	return seconds / 3600.0
}
