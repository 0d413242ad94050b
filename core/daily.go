package core

import (
	"sort"
	"strings"

	"rigkpi/internal/textnorm"
	"rigkpi/schema"
)

// RigCode keys the per-rig impact accumulators.
type RigCode struct {
	Rig  string
	Code string
}

// ImpactTotals carries the fleet-wide hour totals backing the impact and
// attribution denominators.
type ImpactTotals struct {
	TotalHours     float64
	OperativeHours float64
	EffectiveHours float64
}

// ImpactAccumulators are the per-code duration accumulators maintained
// alongside the daily fold, independent of the per-day records.
type ImpactAccumulators struct {
	// AvailabilityByCode holds maintenance hours per code (the population
	// that erodes Availability).
	AvailabilityByCode map[string]float64
	// UEBDByCode holds delay hours per code (reserve and other buckets,
	// the population that erodes UEBD).
	UEBDByCode map[string]float64
	// PerfTagByCode is the UEBD subset whose drill-plan field matched the
	// configured performance tag.
	PerfTagByCode map[string]float64

	AvailabilityByRigCode map[RigCode]float64
	UEBDByRigCode         map[RigCode]float64

	Totals ImpactTotals
}

// FoldOptions filters and parameterizes one aggregation pass.
type FoldOptions struct {
	// Year and Month restrict the fold to operational days inside the
	// period; zero means no restriction.
	Year  int
	Month int

	// IncludeRigs and ExcludeRigs hold normalized rig identifiers. An empty
	// include set admits every rig.
	IncludeRigs map[string]struct{}
	ExcludeRigs map[string]struct{}

	// PerfTag is matched as a normalized substring of the drill-plan field.
	// Empty disables the performance accumulator.
	PerfTag string
}

// FoldResult is the immutable outcome of one daily aggregation pass.
type FoldResult struct {
	Daily      []schema.DailyMetrics // one per rig x operational day, finalized
	ShiftDaily []schema.DailyMetrics // one per rig x day x shift, finalized
	Impact     ImpactAccumulators
	Stats      schema.RowStats
	DayCount   int // distinct operational days across the fleet
}

// AggregateDaily folds a stream of events into per-rig-per-day records and
// the per-code impact accumulators. The fold is order-independent; output
// slices are sorted by (day, rig[, shift]) before finalization so that
// downstream golden outputs are reproducible.
func AggregateDaily(events []schema.Event, opts FoldOptions) *FoldResult {
	daily := make(map[schema.DayKey]*schema.DailyMetrics)
	shiftDaily := make(map[schema.ShiftDayKey]*schema.DailyMetrics)
	days := make(map[int64]struct{})

	res := &FoldResult{
		Impact: ImpactAccumulators{
			AvailabilityByCode:    make(map[string]float64),
			UEBDByCode:            make(map[string]float64),
			PerfTagByCode:         make(map[string]float64),
			AvailabilityByRigCode: make(map[RigCode]float64),
			UEBDByRigCode:         make(map[RigCode]float64),
		},
	}
	perfTag := textnorm.Normalize(opts.PerfTag)

	for i := range events {
		ev := &events[i]
		res.Stats.RowsRead++

		rig := RigLabel(ev)
		if !opts.admitsRig(rig) {
			res.Stats.FilteredByRig++
			continue
		}

		day, ok := ResolveDay(ev)
		if !ok {
			res.Stats.UnresolvableDays++
			continue
		}
		if opts.Year != 0 && day.Year() != opts.Year {
			continue
		}
		if opts.Month != 0 && int(day.Month()) != opts.Month {
			continue
		}

		hours := DurationHours(ev, &res.Stats)
		if hours <= 0 {
			continue
		}

		bucket := ClassifyBucket(ev)
		code := BuildCodeLabel(ev)
		days[day.Unix()] = struct{}{}

		res.Impact.Totals.TotalHours += hours
		if bucket.IsMaintenance() {
			res.Impact.AvailabilityByCode[code] += hours
			res.Impact.AvailabilityByRigCode[RigCode{rig, code}] += hours
		} else {
			res.Impact.Totals.OperativeHours += hours
			if bucket == schema.BucketEffective {
				res.Impact.Totals.EffectiveHours += hours
			} else {
				res.Impact.UEBDByCode[code] += hours
				res.Impact.UEBDByRigCode[RigCode{rig, code}] += hours
				if perfTag != "" && strings.Contains(textnorm.Normalize(ev.DrillPlan), perfTag) {
					res.Impact.PerfTagByCode[code] += hours
				}
			}
		}

		key := schema.DayKey{Day: day, Rig: rig}
		rec, ok := daily[key]
		if !ok {
			rec = &schema.DailyMetrics{Day: day, Rig: rig}
			daily[key] = rec
		}
		addHours(rec, bucket, hours)

		shift := NormalizeShift(ev.ShiftName)
		shiftKey := schema.ShiftDayKey{Day: day, Rig: rig, Shift: shift}
		shiftRec, ok := shiftDaily[shiftKey]
		if !ok {
			shiftRec = &schema.DailyMetrics{Day: day, Rig: rig, Shift: shift}
			shiftDaily[shiftKey] = shiftRec
		}
		addHours(shiftRec, bucket, hours)
	}

	res.Daily = finalizeSorted(daily)
	res.ShiftDaily = finalizeShiftSorted(shiftDaily)
	res.DayCount = len(days)
	return res
}

// admitsRig applies the normalized include/exclude lists.
func (o FoldOptions) admitsRig(rig string) bool {
	norm := textnorm.NormalizeRig(rig)
	if _, excluded := o.ExcludeRigs[norm]; excluded {
		return false
	}
	if len(o.IncludeRigs) == 0 {
		return true
	}
	_, included := o.IncludeRigs[norm]
	return included
}

// addHours routes an event's hours into the matching bucket field and total.
func addHours(rec *schema.DailyMetrics, bucket schema.Bucket, hours float64) {
	rec.TotalHours += hours
	switch bucket {
	case schema.BucketEffective:
		rec.EffectiveHours += hours
	case schema.BucketReserve:
		rec.ReserveHours += hours
	case schema.BucketScheduledMaint:
		rec.SchedMaintHours += hours
	case schema.BucketUnscheduled:
		rec.UnschedHours += hours
	default:
		rec.OtherHours += hours
	}
}

func finalizeSorted(daily map[schema.DayKey]*schema.DailyMetrics) []schema.DailyMetrics {
	rows := make([]schema.DailyMetrics, 0, len(daily))
	for _, rec := range daily {
		rec.Finalize()
		rows = append(rows, *rec)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Day.Equal(rows[j].Day) {
			return rows[i].Day.Before(rows[j].Day)
		}
		return rows[i].Rig < rows[j].Rig
	})
	return rows
}

func finalizeShiftSorted(shiftDaily map[schema.ShiftDayKey]*schema.DailyMetrics) []schema.DailyMetrics {
	rows := make([]schema.DailyMetrics, 0, len(shiftDaily))
	for _, rec := range shiftDaily {
		rec.Finalize()
		rows = append(rows, *rec)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Day.Equal(rows[j].Day) {
			return rows[i].Day.Before(rows[j].Day)
		}
		if rows[i].Rig != rows[j].Rig {
			return rows[i].Rig < rows[j].Rig
		}
		return rows[i].Shift < rows[j].Shift
	})
	return rows
}

// Profile summarizes one aggregation pass at fleet level for gap
// attribution: realized ratios and average hours per day, per code and for
// the denominators.
type Profile struct {
	DayCount          int
	AvailabilityRatio float64
	UEBDRatio         float64
	AvgTotalHpd       float64
	AvgOperativeHpd   float64

	AvailabilityCodeHpd map[string]float64
	UEBDCodeHpd         map[string]float64
	PerfTagCodeHpd      map[string]float64
}

// BuildProfile derives the fleet-level profile from a fold result. Ratios
// come from the fleet hour totals, never from averaging day ratios.
func (r *FoldResult) BuildProfile() Profile {
	t := r.Impact.Totals
	p := Profile{
		DayCount:          r.DayCount,
		AvailabilityRatio: schema.SafeRatio(t.OperativeHours, t.TotalHours),
		UEBDRatio:         schema.SafeRatio(t.EffectiveHours, t.OperativeHours),
	}
	if r.DayCount > 0 {
		days := float64(r.DayCount)
		p.AvgTotalHpd = t.TotalHours / days
		p.AvgOperativeHpd = t.OperativeHours / days
		p.AvailabilityCodeHpd = averagePerDay(r.Impact.AvailabilityByCode, days)
		p.UEBDCodeHpd = averagePerDay(r.Impact.UEBDByCode, days)
		p.PerfTagCodeHpd = averagePerDay(r.Impact.PerfTagByCode, days)
	}
	return p
}

func averagePerDay(hoursByCode map[string]float64, days float64) map[string]float64 {
	out := make(map[string]float64, len(hoursByCode))
	for code, hours := range hoursByCode {
		out[code] = hours / days
	}
	return out
}
