package core

import (
	"sort"

	"rigkpi/schema"
)

// BuildCodeDeltas unions the code sets of the baseline and comparison
// periods and computes each code's average-hours-per-day delta. Only the
// positive part of a delta can explain a degradation; codes that shrank or
// disappeared keep a zero positive delta.
func BuildCodeDeltas(baselineHpd, comparisonHpd map[string]float64) []schema.CodeDelta {
	codes := make(map[string]struct{}, len(baselineHpd)+len(comparisonHpd))
	for code := range baselineHpd {
		codes[code] = struct{}{}
	}
	for code := range comparisonHpd {
		codes[code] = struct{}{}
	}

	rows := make([]schema.CodeDelta, 0, len(codes))
	for code := range codes {
		b := baselineHpd[code]
		c := comparisonHpd[code]
		delta := c - b
		positive := delta
		if positive < 0 {
			positive = 0
		}
		rows = append(rows, schema.CodeDelta{
			Code:          code,
			BaselineHpd:   b,
			ComparisonHpd: c,
			DeltaHpd:      delta,
			DeltaPositive: positive,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DeltaHpd != rows[j].DeltaHpd {
			return rows[i].DeltaHpd > rows[j].DeltaHpd
		}
		return rows[i].Code < rows[j].Code
	})
	return rows
}

// AttributeGap reconciles a measured percentage-point gap against per-code
// deltas. Raw per-code impacts are used only for their relative
// proportions; a single scaling factor anchors the attributed impacts to
// the independently measured gap so they sum to it exactly. A
// non-positive denominator or gap yields an all-zero table.
func AttributeGap(metric schema.Metric, deltas []schema.CodeDelta, denominatorHpd, gapPp float64, comparedDays int) schema.AttributionResult {
	if gapPp < 0 {
		gapPp = 0
	}
	result := schema.AttributionResult{
		Metric:         metric,
		GapPp:          gapPp,
		DenominatorHpd: denominatorHpd,
		ComparedDays:   comparedDays,
		Rows:           make([]schema.AttributionRow, 0, len(deltas)),
	}

	if denominatorHpd <= 0 {
		for _, d := range deltas {
			result.Rows = append(result.Rows, schema.AttributionRow{CodeDelta: d})
		}
		rankRows(result.Rows)
		return result
	}

	rawSum := 0.0
	for _, d := range deltas {
		raw := d.DeltaPositive / denominatorHpd * 100.0
		result.Rows = append(result.Rows, schema.AttributionRow{
			CodeDelta:   d,
			RawImpactPp: raw,
		})
		rawSum += raw
	}

	factor := 0.0
	if rawSum > 0 && gapPp > 0 {
		factor = gapPp / rawSum
	}
	for i := range result.Rows {
		row := &result.Rows[i]
		row.ScalingFactor = factor
		row.AttributedImpactPp = row.RawImpactPp * factor
		row.LostHoursPerDay = row.AttributedImpactPp / 100.0 * denominatorHpd
		row.LostHoursPerPeriod = row.LostHoursPerDay * float64(comparedDays)
	}

	rankRows(result.Rows)
	return result
}

// rankRows orders by attributed impact descending and fills rank,
// cumulative impact and each code's share of the total positive impact.
func rankRows(rows []schema.AttributionRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AttributedImpactPp != rows[j].AttributedImpactPp {
			return rows[i].AttributedImpactPp > rows[j].AttributedImpactPp
		}
		return rows[i].Code < rows[j].Code
	})

	totalImpact := 0.0
	for i := range rows {
		if rows[i].AttributedImpactPp > 0 {
			totalImpact += rows[i].AttributedImpactPp
		}
	}

	cumulative := 0.0
	for i := range rows {
		row := &rows[i]
		impact := row.AttributedImpactPp
		if impact < 0 {
			impact = 0
		}
		cumulative += impact
		row.Rank = i + 1
		row.CumulativeImpactPp = cumulative
		if totalImpact > 0 {
			row.GapSharePct = impact / totalImpact * 100.0
		}
	}
}

// GapPp measures the signed target-minus-realized gap in percentage
// points, clamped at zero: only degradations are attributed.
func GapPp(targetRatio, realizedRatio float64) float64 {
	gap := (targetRatio - realizedRatio) * 100.0
	if gap < 0 {
		return 0
	}
	return gap
}
