package core

import (
	"sort"

	"rigkpi/schema"
)

// TopCriticalDays ranks daily records by a metric's ratio ascending and
// returns the worst topN. Days without any recorded hours are excluded;
// ties break by date, then rig, to keep the output reproducible.
func TopCriticalDays(daily []schema.DailyMetrics, metric schema.Metric, topN int) []schema.CriticalDay {
	valid := make([]schema.DailyMetrics, 0, len(daily))
	for _, row := range daily {
		if row.TotalHours > 0 {
			valid = append(valid, row)
		}
	}

	ratio := func(row *schema.DailyMetrics) float64 {
		if metric == schema.MetricUEBD {
			return row.UEBDRatio
		}
		return row.AvailabilityRatio
	}

	sort.Slice(valid, func(i, j int) bool {
		ri, rj := ratio(&valid[i]), ratio(&valid[j])
		if ri != rj {
			return ri < rj
		}
		if !valid[i].Day.Equal(valid[j].Day) {
			return valid[i].Day.Before(valid[j].Day)
		}
		return valid[i].Rig < valid[j].Rig
	})

	if topN < 1 {
		topN = 1
	}
	if len(valid) > topN {
		valid = valid[:topN]
	}

	result := make([]schema.CriticalDay, 0, len(valid))
	for idx, row := range valid {
		result = append(result, schema.CriticalDay{
			Rank:   idx + 1,
			Metric: metric,
			Daily:  row,
			Ratio:  ratio(&row),
		})
	}
	return result
}
