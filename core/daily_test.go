package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rigkpi/schema"
)

// sampleEvents builds one operational day (2026-02-16) for two rigs plus a
// second day for the first rig. Hours per bucket are chosen so the derived
// ratios are easy to verify by hand.
func sampleEvents() []schema.Event {
	return []schema.Event{
		// PF-03, day 2026-02-16: 15h effective, 3h delay, 2h scheduled, 1h unplanned.
		{Rig: "PF-03", Start: tsPtr("2026-02-16 22:00:00"), DurationSeconds: floatPtr(15 * 3600), ShortCode: "Efectivo", ShiftName: "Turno A"},
		{Rig: "PF-03", Start: tsPtr("2026-02-17 03:00:00"), DurationSeconds: floatPtr(3 * 3600), ShortCode: "Demoras", CodeNumber: "402", CodeName: "Cambio de Turno", ShiftName: "Turno B", DrillPlan: "F09_Norte"},
		{Rig: "PF-03", Start: tsPtr("2026-02-17 06:00:00"), DurationSeconds: floatPtr(2 * 3600), ShortCode: "Mantencion", PlannedCodeName: "Programada", CodeName: "PM 250h", ShiftName: "Turno B"},
		{Rig: "PF-03", Start: tsPtr("2026-02-17 08:00:00"), DurationSeconds: floatPtr(1 * 3600), ShortCode: "Mantencion", PlannedCodeName: "No Programada", CodeName: "Falla Electrica", ShiftName: "Turno B"},
		// PFAR, day 2026-02-16: 10h effective, 2h reserve.
		{Rig: "PFAR", Start: tsPtr("2026-02-16 21:30:00"), DurationSeconds: floatPtr(10 * 3600), ShortCode: "Efectivo", ShiftName: "Turno A"},
		{Rig: "PFAR", Start: tsPtr("2026-02-17 10:00:00"), DurationSeconds: floatPtr(2 * 3600), ShortCode: "Reserva", CodeName: "Sin Operador", ShiftName: "Turno B"},
		// PF-03, day 2026-02-17: 20h effective.
		{Rig: "PF-03", Start: tsPtr("2026-02-17 22:00:00"), DurationSeconds: floatPtr(20 * 3600), ShortCode: "Efectivo", ShiftName: "Turno A"},
	}
}

// TestAggregateDaily verifies per-day totals, derived ratios and ordering.
func TestAggregateDaily(t *testing.T) {
	res := AggregateDaily(sampleEvents(), FoldOptions{})

	assert.Len(t, res.Daily, 3)
	assert.Equal(t, 2, res.DayCount)
	assert.Equal(t, 7, res.Stats.RowsRead)

	first := res.Daily[0]
	assert.Equal(t, "2026-02-16", first.Day.Format("2006-01-02"))
	assert.Equal(t, "PF-03", first.Rig)
	assert.InDelta(t, 21.0, first.TotalHours, 1e-9)
	assert.InDelta(t, 15.0, first.EffectiveHours, 1e-9)
	assert.InDelta(t, 2.0, first.SchedMaintHours, 1e-9)
	assert.InDelta(t, 1.0, first.UnschedHours, 1e-9)
	assert.InDelta(t, 3.0, first.OtherHours, 1e-9)
	assert.InDelta(t, 18.0, first.OperativeHours, 1e-9)
	assert.InDelta(t, 18.0/21.0, first.AvailabilityRatio, 1e-9)
	assert.InDelta(t, 15.0/18.0, first.UEBDRatio, 1e-9)

	second := res.Daily[1]
	assert.Equal(t, "PFAR", second.Rig)
	assert.InDelta(t, 12.0, second.TotalHours, 1e-9)
	assert.InDelta(t, 1.0, second.AvailabilityRatio, 1e-9)
	assert.InDelta(t, 10.0/12.0, second.UEBDRatio, 1e-9)

	third := res.Daily[2]
	assert.Equal(t, "2026-02-17", third.Day.Format("2006-01-02"))
	assert.Equal(t, "PF-03", third.Rig)
	assert.InDelta(t, 1.0, third.UEBDRatio, 1e-9)
}

// TestAggregateDailyShiftRecords checks the shift-level split of a day.
func TestAggregateDailyShiftRecords(t *testing.T) {
	res := AggregateDaily(sampleEvents(), FoldOptions{})

	byShift := make(map[schema.ShiftDayKey]schema.DailyMetrics)
	for _, row := range res.ShiftDaily {
		byShift[schema.ShiftDayKey{Day: row.Day, Rig: row.Rig, Shift: row.Shift}] = row
	}

	day := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)
	a := byShift[schema.ShiftDayKey{Day: day, Rig: "PF-03", Shift: "Turno A"}]
	b := byShift[schema.ShiftDayKey{Day: day, Rig: "PF-03", Shift: "Turno B"}]
	assert.InDelta(t, 15.0, a.TotalHours, 1e-9)
	assert.InDelta(t, 6.0, b.TotalHours, 1e-9)
	assert.InDelta(t, a.TotalHours+b.TotalHours, res.Daily[0].TotalHours, 1e-9)
}

// TestAggregateDailyImpactAccumulators checks the per-code hour buckets.
func TestAggregateDailyImpactAccumulators(t *testing.T) {
	res := AggregateDaily(sampleEvents(), FoldOptions{PerfTag: "f09"})

	imp := res.Impact
	assert.InDelta(t, 53.0, imp.Totals.TotalHours, 1e-9)
	assert.InDelta(t, 50.0, imp.Totals.OperativeHours, 1e-9)
	assert.InDelta(t, 45.0, imp.Totals.EffectiveHours, 1e-9)

	assert.InDelta(t, 2.0, imp.AvailabilityByCode["PM 250h"], 1e-9)
	assert.InDelta(t, 1.0, imp.AvailabilityByCode["Falla Electrica"], 1e-9)
	assert.InDelta(t, 3.0, imp.UEBDByCode["402_Cambio de Turno"], 1e-9)
	assert.InDelta(t, 2.0, imp.UEBDByCode["Sin Operador"], 1e-9)

	// Only the cambio-de-turno row carries the matching drill plan tag.
	assert.InDelta(t, 3.0, imp.PerfTagByCode["402_Cambio de Turno"], 1e-9)
	assert.NotContains(t, imp.PerfTagByCode, "Sin Operador")

	assert.InDelta(t, 3.0, imp.UEBDByRigCode[RigCode{"PF-03", "402_Cambio de Turno"}], 1e-9)
	assert.InDelta(t, 1.0, imp.AvailabilityByRigCode[RigCode{"PF-03", "Falla Electrica"}], 1e-9)
}

// TestAggregateDailyRigFilters checks include/exclude with loose rig spellings.
func TestAggregateDailyRigFilters(t *testing.T) {
	t.Run("include admits spelling variants", func(t *testing.T) {
		res := AggregateDaily(sampleEvents(), FoldOptions{
			IncludeRigs: map[string]struct{}{"PF03": {}},
		})
		for _, row := range res.Daily {
			assert.Equal(t, "PF-03", row.Rig)
		}
		assert.Equal(t, 2, res.Stats.FilteredByRig)
	})

	t.Run("exclude wins over include", func(t *testing.T) {
		res := AggregateDaily(sampleEvents(), FoldOptions{
			IncludeRigs: map[string]struct{}{"PF03": {}},
			ExcludeRigs: map[string]struct{}{"PF03": {}},
		})
		assert.Empty(t, res.Daily)
		assert.Equal(t, 7, res.Stats.FilteredByRig)
	})
}

// TestAggregateDailyPeriodFilter checks the year and month restriction.
func TestAggregateDailyPeriodFilter(t *testing.T) {
	events := sampleEvents()
	events = append(events, schema.Event{
		Rig: "PF-03", Start: tsPtr("2026-03-05 10:00:00"),
		DurationSeconds: floatPtr(4 * 3600), ShortCode: "Efectivo",
	})

	res := AggregateDaily(events, FoldOptions{Year: 2026, Month: 2})
	for _, row := range res.Daily {
		assert.Equal(t, time.February, row.Day.Month())
	}
	assert.Equal(t, 2, res.DayCount)
}

// TestAggregateDailySkipsDegenerateRows checks row-statistics handling of
// unusable rows.
func TestAggregateDailySkipsDegenerateRows(t *testing.T) {
	events := []schema.Event{
		// No resolvable day, then no duration, then one usable row.
		{Rig: "PF-03", ShortCode: "Efectivo", DurationSeconds: floatPtr(3600)},
		{Rig: "PF-03", Start: tsPtr("2026-02-16 22:00:00"), ShortCode: "Efectivo"},
		{Rig: "PF-03", Start: tsPtr("2026-02-16 22:00:00"), DurationSeconds: floatPtr(3600), ShortCode: "Efectivo"},
	}

	res := AggregateDaily(events, FoldOptions{})
	assert.Equal(t, 3, res.Stats.RowsRead)
	assert.Equal(t, 1, res.Stats.UnresolvableDays)
	assert.Len(t, res.Daily, 1)
	assert.InDelta(t, 1.0, res.Daily[0].TotalHours, 1e-9)
}

// TestAggregateDailyDeterministic ensures re-running the fold reproduces the
// exact same output.
func TestAggregateDailyDeterministic(t *testing.T) {
	first := AggregateDaily(sampleEvents(), FoldOptions{PerfTag: "f09"})
	second := AggregateDaily(sampleEvents(), FoldOptions{PerfTag: "f09"})
	assert.Equal(t, first.Daily, second.Daily)
	assert.Equal(t, first.ShiftDaily, second.ShiftDaily)
	assert.Equal(t, first.Impact, second.Impact)
}

// TestBuildProfile checks the fleet-level averages behind gap attribution.
func TestBuildProfile(t *testing.T) {
	res := AggregateDaily(sampleEvents(), FoldOptions{})
	profile := res.BuildProfile()

	assert.Equal(t, 2, profile.DayCount)
	assert.InDelta(t, 50.0/53.0, profile.AvailabilityRatio, 1e-9)
	assert.InDelta(t, 45.0/50.0, profile.UEBDRatio, 1e-9)
	assert.InDelta(t, 26.5, profile.AvgTotalHpd, 1e-9)
	assert.InDelta(t, 25.0, profile.AvgOperativeHpd, 1e-9)
	assert.InDelta(t, 1.5, profile.UEBDCodeHpd["402_Cambio de Turno"], 1e-9)
	assert.InDelta(t, 1.0, profile.AvailabilityCodeHpd["PM 250h"], 1e-9)
}

// TestBuildProfileEmpty checks the degenerate no-days case.
func TestBuildProfileEmpty(t *testing.T) {
	res := AggregateDaily(nil, FoldOptions{})
	profile := res.BuildProfile()
	assert.Zero(t, profile.DayCount)
	assert.Zero(t, profile.AvailabilityRatio)
	assert.Zero(t, profile.AvgTotalHpd)
	assert.Empty(t, profile.UEBDCodeHpd)
}
