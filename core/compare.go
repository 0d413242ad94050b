package core

import (
	"sort"

	"rigkpi/schema"
)

// DeriveUEBDTargets fills missing UEBD targets from utilization and
// availability when both are present: UEBD = utilization / availability.
// Supplied UEBD targets are never overwritten.
func DeriveUEBDTargets(targets []schema.MonthlyTarget) {
	for i := range targets {
		t := &targets[i]
		if t.UEBDRatio != nil {
			continue
		}
		if t.UtilizationRatio == nil || t.AvailabilityRatio == nil || *t.AvailabilityRatio <= 0 {
			continue
		}
		derived := *t.UtilizationRatio / *t.AvailabilityRatio
		t.UEBDRatio = &derived
	}
}

// BuildMonthlyComparisons joins fleet-level monthly aggregates against the
// target table and measures the gap per month. Months present on either
// side appear in the output; a missing side leaves the corresponding gap
// nil. Lost hours are the zero-floored gap applied to the month's realized
// denominator hours.
func BuildMonthlyComparisons(monthly []schema.PeriodMetrics, targets []schema.MonthlyTarget) []schema.MonthlyComparison {
	type ym struct{ year, month int }

	realByMonth := make(map[ym]*schema.PeriodMetrics)
	for i := range monthly {
		row := &monthly[i]
		realByMonth[ym{row.Year, row.Month}] = row
	}
	targetByMonth := make(map[ym]*schema.MonthlyTarget)
	for i := range targets {
		t := &targets[i]
		targetByMonth[ym{t.Year, t.Month}] = t
	}

	months := make([]ym, 0, len(realByMonth)+len(targetByMonth))
	seen := make(map[ym]struct{})
	for key := range realByMonth {
		months = append(months, key)
		seen[key] = struct{}{}
	}
	for key := range targetByMonth {
		if _, ok := seen[key]; !ok {
			months = append(months, key)
		}
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].year != months[j].year {
			return months[i].year < months[j].year
		}
		return months[i].month < months[j].month
	})

	rows := make([]schema.MonthlyComparison, 0, len(months))
	for _, key := range months {
		cmp := schema.MonthlyComparison{Year: key.year, Month: key.month}

		real := realByMonth[key]
		if real != nil {
			cmp.DaysWithData = real.DaysWithData
			cmp.TotalHours = real.TotalHours
			cmp.OperativeHours = real.OperativeHours
			cmp.EffectiveHours = real.EffectiveHours
			cmp.AvailabilityReal = real.AvailabilityRatio
			cmp.UEBDReal = real.UEBDRatio
		}

		if target := targetByMonth[key]; target != nil {
			cmp.AvailabilityTarget = target.AvailabilityRatio
			cmp.UEBDTarget = target.UEBDRatio
		}

		if real != nil && cmp.AvailabilityTarget != nil {
			gap := (*cmp.AvailabilityTarget - cmp.AvailabilityReal) * 100.0
			cmp.AvailabilityGapPp = &gap
			lost := clampZero(gap) / 100.0 * cmp.TotalHours
			cmp.LostHoursAvailability = &lost
		}
		if real != nil && cmp.UEBDTarget != nil {
			gap := (*cmp.UEBDTarget - cmp.UEBDReal) * 100.0
			cmp.UEBDGapPp = &gap
			lost := clampZero(gap) / 100.0 * cmp.OperativeHours
			cmp.LostHoursUEBD = &lost
		}

		rows = append(rows, cmp)
	}
	return rows
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
