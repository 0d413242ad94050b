package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"rigkpi/internal/textnorm"
	"rigkpi/schema"
)

// requiredColumns are the event log headers a file must carry. Everything
// else is optional and defaults to empty.
var requiredColumns = []string{
	"RigName",
	"Time",
	"EndTime",
	"Duration",
	"ShortCode",
	"OnlyCodeName",
	"PlannedCodeName",
}

// EventReader reads equipment-state logs from a delimited file.
type EventReader struct {
	Path      string
	Delimiter rune
}

// NewEventReader returns a reader for the given file and delimiter.
func NewEventReader(path string, delimiter rune) *EventReader {
	return &EventReader{Path: path, Delimiter: delimiter}
}

// ReadEvents reads every event row from the file. Unparseable cells leave
// the corresponding Event field empty and bump the row statistics; only a
// missing file, a missing header or missing required columns fail the read.
func (r *EventReader) ReadEvents(ctx context.Context) ([]schema.Event, schema.RowStats, error) {
	var stats schema.RowStats

	f, err := os.Open(r.Path)
	if err != nil {
		return nil, stats, fmt.Errorf("open events file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.Comma = r.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("read events header: %w", err)
	}
	if len(header) > 0 {
		header[0] = stripBOM(header[0])
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	if err := checkRequiredColumns(index); err != nil {
		return nil, stats, err
	}

	cell := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var events []schema.Event
	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read events row: %w", err)
		}

		stats.RowsRead++
		ev := schema.Event{
			Rig:             cell(record, "RigName"),
			ShortCode:       cell(record, "ShortCode"),
			PlannedCodeName: cell(record, "PlannedCodeName"),
			CodeNumber:      cell(record, "OnlyCodeNumber"),
			CodeName:        cell(record, "OnlyCodeName"),
			CodeNameAlt:     cell(record, "CodeName"),
			DelayData:       cell(record, "DelayData"),
			ShiftName:       cell(record, "ShiftName"),
			WorkDayStarted:  cell(record, "WorkDayStarted"),
			DrillPlan:       cell(record, "DrillPlan"),
		}

		ev.Start = parseTimestampCell(cell(record, "Time"), &stats)
		ev.End = parseTimestampCell(cell(record, "EndTime"), &stats)

		if raw := cell(record, "Duration"); raw != "" {
			if v, ok := textnorm.ParseNumber(raw); ok {
				ev.DurationSeconds = &v
			} else {
				stats.UnparseableCells++
			}
		}

		events = append(events, ev)
	}

	return events, stats, nil
}

// parseTimestampCell parses an optional timestamp cell, counting non-empty
// garbage without failing the row.
func parseTimestampCell(raw string, stats *schema.RowStats) *time.Time {
	if raw == "" {
		return nil
	}
	ts, ok := textnorm.ParseDateTime(raw)
	if !ok {
		stats.UnparseableCells++
		return nil
	}
	return &ts
}

// checkRequiredColumns fails with the full sorted list of missing headers
// so the operator can fix the export in one pass.
func checkRequiredColumns(index map[string]int) error {
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
}
