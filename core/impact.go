package core

import (
	"sort"

	"rigkpi/schema"
)

// BuildImpactRows ranks codes by their in-period hours against a fleet
// denominator. Unlike gap attribution there is no baseline; the table shows
// how many percentage points each code consumed outright. A non-positive
// denominator yields no rows.
func BuildImpactRows(metric schema.Metric, hoursByCode map[string]float64, denominatorHours float64, limit int) []schema.ImpactRow {
	if denominatorHours <= 0 {
		return nil
	}

	rows := make([]schema.ImpactRow, 0, len(hoursByCode))
	for code, hours := range hoursByCode {
		ratio := hours / denominatorHours
		rows = append(rows, schema.ImpactRow{
			Metric:           metric,
			Code:             code,
			Hours:            hours,
			ImpactRatio:      ratio,
			ImpactPp:         ratio * 100.0,
			DenominatorHours: denominatorHours,
		})
	}
	sortImpactRows(rows)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// BuildImpactRowsByRig produces the per-rig variant, ranking the top
// limit codes inside each rig. Rigs without a positive denominator are
// skipped.
func BuildImpactRowsByRig(metric schema.Metric, hoursByRigCode map[RigCode]float64, denominatorByRig map[string]float64, limit int) []schema.ImpactRow {
	byRig := make(map[string][]schema.ImpactRow)
	for key, hours := range hoursByRigCode {
		denom := denominatorByRig[key.Rig]
		if denom <= 0 {
			continue
		}
		ratio := hours / denom
		byRig[key.Rig] = append(byRig[key.Rig], schema.ImpactRow{
			Metric:           metric,
			Rig:              key.Rig,
			Code:             key.Code,
			Hours:            hours,
			ImpactRatio:      ratio,
			ImpactPp:         ratio * 100.0,
			DenominatorHours: denom,
		})
	}

	rigs := make([]string, 0, len(byRig))
	for rig := range byRig {
		rigs = append(rigs, rig)
	}
	sort.Strings(rigs)

	var result []schema.ImpactRow
	for _, rig := range rigs {
		rows := byRig[rig]
		sortImpactRows(rows)
		if limit > 0 && len(rows) > limit {
			rows = rows[:limit]
		}
		for i := range rows {
			rows[i].Rank = i + 1
		}
		result = append(result, rows...)
	}
	return result
}

func sortImpactRows(rows []schema.ImpactRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Hours != rows[j].Hours {
			return rows[i].Hours > rows[j].Hours
		}
		return rows[i].Code < rows[j].Code
	})
}
