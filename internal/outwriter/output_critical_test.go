package outwriter

import (
	"os"
	"path/filepath"
	"testing"

	"rigkpi/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleCritical returns a two-entry worst-days ranking.
func sampleCritical() []schema.CriticalDay {
	daily := sampleDaily()
	return []schema.CriticalDay{
		{Rank: 1, Metric: schema.MetricAvailability, Daily: daily[0], Ratio: daily[0].AvailabilityRatio},
		{Rank: 2, Metric: schema.MetricAvailability, Daily: daily[1], Ratio: daily[1].AvailabilityRatio},
	}
}

// TestWriteCriticalCSV checks the legacy top-dias header and ranking order.
func TestWriteCriticalCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "critical.csv")
	cfg := testConfig(schema.CSVOut, path)

	err := PrintCriticalResults(sampleCritical(), cfg)
	require.NoError(t, err)

	records := readCSVFile(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, criticalFieldnames, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "disponibilidad", records[1][1])
	assert.Equal(t, "PF-03", records[1][2])
	assert.Equal(t, "2026-02-16", records[1][3])
	// valor_pct is the ratio scaled to percent
	assert.Equal(t, "85.714286", records[1][5])
}

// TestWriteCriticalTable checks the text rendering and metric footer.
func TestWriteCriticalTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "critical.txt")
	cfg := testConfig(schema.TextOut, path)

	err := PrintCriticalResults(sampleCritical(), cfg)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(content)
	assert.Contains(t, out, "2026-02-17")
	assert.Contains(t, out, "Showing 2 worst days by disponibilidad")
}

// TestWriteCriticalJSON checks each entry carries a band label.
func TestWriteCriticalJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "critical.json")
	cfg := testConfig(schema.JSONOut, path)

	err := PrintCriticalResults(sampleCritical(), cfg)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "\"label\"")
}
