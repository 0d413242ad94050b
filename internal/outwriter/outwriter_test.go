package outwriter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rigkpi/internal/contract"
	"rigkpi/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig builds a minimal output configuration writing to the given file.
func testConfig(out schema.OutputMode, file string) *contract.Config {
	return &contract.Config{
		Precision:  2,
		Output:     out,
		OutputFile: file,
		Width:      120,
	}
}

// readCSVFile parses a written CSV report back into records.
func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

// sampleDaily returns two finalized rig-day rows.
func sampleDaily() []schema.DailyMetrics {
	rows := []schema.DailyMetrics{
		{
			Day:             time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC),
			Rig:             "PF-03",
			TotalHours:      21,
			EffectiveHours:  15,
			SchedMaintHours: 2,
			UnschedHours:    1,
			OtherHours:      3,
		},
		{
			Day:            time.Date(2026, 2, 17, 0, 0, 0, 0, time.UTC),
			Rig:            "PF-03",
			TotalHours:     20,
			EffectiveHours: 20,
		},
	}
	for i := range rows {
		rows[i].Finalize()
	}
	return rows
}

// TestGetMaxTableCodeWidth checks the override, clamp and fallback behavior.
func TestGetMaxTableCodeWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		expected int
	}{
		{"wide terminal clamps to max", 300, 70},
		{"narrow terminal clamps to min", 40, 15},
		{"mid terminal leaves room for columns", 100, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.expected, GetMaxTableCodeWidth(cfg))
		})
	}
}

// TestWriteDailyCSV checks the legacy header and a derived row.
func TestWriteDailyCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily.csv")
	cfg := testConfig(schema.CSVOut, path)

	ow := NewOutWriter()
	err := ow.WriteDaily(sampleDaily(), cfg, schema.RowStats{RowsRead: 6}, time.Second)
	require.NoError(t, err)

	records := readCSVFile(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, dailyFieldnames, records[0])

	row := records[1]
	assert.Equal(t, "2026-02-16", row[0])
	assert.Equal(t, "2026", row[1])
	assert.Equal(t, "2", row[2])
	assert.Equal(t, "PF-03", row[3])
	assert.Equal(t, "21.000000", row[4])
	// horas_operativas and the horas_disponibles alias carry the same value
	assert.Equal(t, row[10], row[11])
	assert.Equal(t, "18.000000", row[10])
}

// TestWriteDailyCSVWithShift checks the turno column is inserted for
// shift-level records.
func TestWriteDailyCSVWithShift(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shift_daily.csv")
	cfg := testConfig(schema.CSVOut, path)

	rows := sampleDaily()
	rows[0].Shift = "Turno A"
	rows[1].Shift = "Turno B"

	err := PrintDailyResults(rows, cfg, schema.RowStats{}, 0)
	require.NoError(t, err)

	records := readCSVFile(t, path)
	assert.Equal(t, "turno", records[0][4])
	assert.Equal(t, "Turno A", records[1][4])
}

// TestWriteDailyTable checks the text table renders with footers.
func TestWriteDailyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily.txt")
	cfg := testConfig(schema.TextOut, path)

	err := PrintDailyResults(sampleDaily(), cfg, schema.RowStats{RowsRead: 6, DurationFallback: 1}, time.Second)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(content)
	assert.Contains(t, out, "PF-03")
	assert.Contains(t, out, "Showing 2 rig-day rows")
	assert.Contains(t, out, "duration fallbacks: 1")
}

// TestWriteDailyParquetRequiresFile checks the mandatory file path.
func TestWriteDailyParquetRequiresFile(t *testing.T) {
	cfg := testConfig(schema.ParquetOut, "")
	err := PrintDailyResults(sampleDaily(), cfg, schema.RowStats{}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file")
}

// TestWriteDailyParquet checks the parquet branch produces a file.
func TestWriteDailyParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily.parquet")
	cfg := testConfig(schema.ParquetOut, path)

	err := PrintDailyResults(sampleDaily(), cfg, schema.RowStats{}, 0)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

// TestWriteDailyJSON checks rows carry band labels and data-quality stats.
func TestWriteDailyJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily.json")
	cfg := testConfig(schema.JSONOut, path)

	err := PrintDailyResults(sampleDaily(), cfg, schema.RowStats{RowsRead: 6}, 0)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(content)
	assert.Contains(t, out, "\"label\"")
	assert.Contains(t, out, "\"calidad_datos\"")
	assert.Contains(t, out, "\"rows_total\": 6")
}
