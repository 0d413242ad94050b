package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"rigkpi/internal/textnorm"
	"rigkpi/schema"
)

// TargetReader reads a long-format monthly objective table: one row per
// month, with year, month and target columns located by fuzzy header
// matching. When the table carries a rig column, only the preferred row
// (fleet total by default) is used per month.
type TargetReader struct {
	Path      string
	Delimiter rune

	// RigPreference selects the row when targets exist per rig. Empty
	// means the fleet total.
	RigPreference string
}

// NewTargetReader returns a reader for the given file and delimiter.
func NewTargetReader(path string, delimiter rune) *TargetReader {
	return &TargetReader{Path: path, Delimiter: delimiter, RigPreference: schema.FleetTotalRow}
}

// ReadTargets reads the monthly target rows. Rows without a resolvable
// year and month are skipped; later rows for the same month win.
func (r *TargetReader) ReadTargets(ctx context.Context) ([]schema.MonthlyTarget, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("open targets file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.Comma = r.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read targets header: %w", err)
	}
	if len(header) > 0 {
		header[0] = stripBOM(header[0])
	}

	colYear := FindColumn(header, "anio", "ano", "year")
	colMonth := FindColumn(header, "mes", "month")
	colUEBD := FindColumn(header, "uebd")
	colDisp := FindColumn(header, "disponibilidad", "disp")
	colUtil := FindColumn(header, "utilizacion", "util")
	colRig := FindColumn(header, "perforadora", "rig", "equipo", "flota", "total")
	if colYear == "" || colMonth == "" {
		return nil, fmt.Errorf("targets file needs year and month columns")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	cell := func(record []string, name string) string {
		i, ok := index[name]
		if name == "" || !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	preferred := textnorm.Normalize(r.RigPreference)
	if preferred == "" {
		preferred = "total"
	}

	byMonth := make(map[[2]int]schema.MonthlyTarget)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read targets row: %w", err)
		}

		yearVal, ok := textnorm.ParseNumber(cell(record, colYear))
		if !ok {
			continue
		}
		month, ok := textnorm.ParseMonth(cell(record, colMonth))
		if !ok {
			continue
		}

		if colRig != "" {
			rig := textnorm.Normalize(cell(record, colRig))
			matches := rig == preferred ||
				(preferred == "total" && (rig == "total" || rig == "flota"))
			if !matches {
				continue
			}
		}

		target := schema.MonthlyTarget{
			Year:              int(yearVal),
			Month:             month,
			AvailabilityRatio: parseRatioCell(cell(record, colDisp)),
			UtilizationRatio:  parseRatioCell(cell(record, colUtil)),
			UEBDRatio:         parseRatioCell(cell(record, colUEBD)),
		}
		byMonth[[2]int{target.Year, target.Month}] = target
	}

	targets := make([]schema.MonthlyTarget, 0, len(byMonth))
	for _, t := range byMonth {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool {
		if targets[i].Year != targets[j].Year {
			return targets[i].Year < targets[j].Year
		}
		return targets[i].Month < targets[j].Month
	})
	return targets, nil
}

// parseRatioCell coerces a target cell to a ratio, accepting 85, 85% and
// 0.85 spellings. Unparseable or absent cells yield nil.
func parseRatioCell(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, ok := textnorm.ParseNumber(raw)
	if !ok {
		return nil
	}
	ratio, ok := textnorm.ParseRatio(v)
	if !ok {
		return nil
	}
	return &ratio
}
