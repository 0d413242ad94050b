package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestReadEvents checks field mapping from a realistic export.
func TestReadEvents(t *testing.T) {
	content := "\uFEFFRigName;Time;EndTime;Duration;ShortCode;PlannedCodeName;OnlyCodeNumber;OnlyCodeName;CodeName;DelayData;ShiftName;WorkDayStarted;DrillPlan\n" +
		"PF-03;2026-02-16 22:00:00;2026-02-17 13:00:00;54000;Efectivo;;;;;;Turno A;;F09_Norte\n" +
		"PF-03;2026-02-17 03:00:00;;10800;Demoras;;402;Cambio de Turno;Cambio Turno;espera;Turno B;2026-02-16;\n"

	path := writeFixture(t, "events.csv", content)
	events, stats, err := NewEventReader(path, ';').ReadEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 2, stats.RowsRead)
	assert.Zero(t, stats.UnparseableCells)

	first := events[0]
	assert.Equal(t, "PF-03", first.Rig)
	require.NotNil(t, first.Start)
	assert.Equal(t, "2026-02-16 22:00:00", first.Start.Format("2006-01-02 15:04:05"))
	require.NotNil(t, first.End)
	require.NotNil(t, first.DurationSeconds)
	assert.InDelta(t, 54000.0, *first.DurationSeconds, 1e-9)
	assert.Equal(t, "Efectivo", first.ShortCode)
	assert.Equal(t, "F09_Norte", first.DrillPlan)

	second := events[1]
	assert.Nil(t, second.End)
	assert.Equal(t, "402", second.CodeNumber)
	assert.Equal(t, "Cambio de Turno", second.CodeName)
	assert.Equal(t, "Cambio Turno", second.CodeNameAlt)
	assert.Equal(t, "espera", second.DelayData)
	assert.Equal(t, "2026-02-16", second.WorkDayStarted)
}

// TestReadEventsUnparseableCells checks garbage cells degrade gracefully.
func TestReadEventsUnparseableCells(t *testing.T) {
	content := "RigName;Time;EndTime;Duration;ShortCode;OnlyCodeName;PlannedCodeName\n" +
		"PF-03;not-a-date;2026-02-17 04:00:00;garbage;Efectivo;;\n"

	path := writeFixture(t, "events.csv", content)
	events, stats, err := NewEventReader(path, ';').ReadEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Nil(t, events[0].Start)
	assert.NotNil(t, events[0].End)
	assert.Nil(t, events[0].DurationSeconds)
	assert.Equal(t, 2, stats.UnparseableCells)
}

// TestReadEventsMissingColumns checks the error names every absent header.
func TestReadEventsMissingColumns(t *testing.T) {
	content := "RigName;Time;ShortCode\nPF-03;2026-02-16 22:00:00;Efectivo\n"

	path := writeFixture(t, "events.csv", content)
	_, _, err := NewEventReader(path, ';').ReadEvents(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Duration")
	assert.Contains(t, err.Error(), "EndTime")
	assert.Contains(t, err.Error(), "OnlyCodeName")
	assert.Contains(t, err.Error(), "PlannedCodeName")
}

// TestReadEventsMissingFile checks the open error surfaces.
func TestReadEventsMissingFile(t *testing.T) {
	_, _, err := NewEventReader(filepath.Join(t.TempDir(), "nope.csv"), ';').ReadEvents(context.Background())
	assert.Error(t, err)
}

// TestReadEventsCommaDelimiter checks the delimiter is honored.
func TestReadEventsCommaDelimiter(t *testing.T) {
	content := "RigName,Time,EndTime,Duration,ShortCode,OnlyCodeName,PlannedCodeName\n" +
		"PF-03,2026-02-16 22:00:00,,3600,Reserva,Sin Operador,\n"

	path := writeFixture(t, "events.csv", content)
	events, _, err := NewEventReader(path, ',').ReadEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Sin Operador", events[0].CodeName)
}

// TestFindColumn checks the fuzzy header matcher.
func TestFindColumn(t *testing.T) {
	headers := []string{"Año", "Mes", "Disponibilidad Obj (%)", "UEBD objetivo", "Perforadora"}

	assert.Equal(t, "Año", FindColumn(headers, "anio", "ano", "year"))
	assert.Equal(t, "Mes", FindColumn(headers, "mes", "month"))
	assert.Equal(t, "Disponibilidad Obj (%)", FindColumn(headers, "disponibilidad", "disp"))
	assert.Equal(t, "UEBD objetivo", FindColumn(headers, "uebd"))
	assert.Equal(t, "Perforadora", FindColumn(headers, "perforadora", "rig"))
	assert.Empty(t, FindColumn(headers, "utilizacion", "util"))
}
