package outwriter

import (
	"os"
	"path/filepath"
	"testing"

	"rigkpi/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleImpact returns two ranked fleet impact rows.
func sampleImpact() []schema.ImpactRow {
	return []schema.ImpactRow{
		{
			Metric: schema.MetricUEBD, Rank: 1, Code: "402_Cambio de Turno",
			Hours: 90, ImpactRatio: 90.0 / 1200.0, ImpactPp: 7.5, DenominatorHours: 1200,
		},
		{
			Metric: schema.MetricUEBD, Rank: 2, Code: "Sin Operador",
			Hours: 30, ImpactRatio: 30.0 / 1200.0, ImpactPp: 2.5, DenominatorHours: 1200,
		},
	}
}

// TestWriteImpactCSV checks the header and the repeated valor_final columns.
func TestWriteImpactCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "impact.csv")
	cfg := testConfig(schema.CSVOut, path)

	err := PrintImpactResults(sampleImpact(), 0.85, cfg)
	require.NoError(t, err)

	records := readCSVFile(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, impactFieldnames, records[0])
	assert.Equal(t, "uebd", records[1][0])
	assert.Equal(t, "402_Cambio de Turno", records[1][2])
	assert.Equal(t, "0.850000", records[1][7])
	assert.Equal(t, "85.000000", records[1][8])
	// valor_final repeats on every row
	assert.Equal(t, records[1][7], records[2][7])
}

// TestWriteImpactByRigCSV checks the per-rig header carries perforadora.
func TestWriteImpactByRigCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "impact_rig.csv")
	cfg := testConfig(schema.CSVOut, path)

	rows := sampleImpact()
	rows[0].Rig = "PF-03"
	rows[1].Rig = "PFAR"
	err := PrintImpactByRigResults(rows, cfg)
	require.NoError(t, err)

	records := readCSVFile(t, path)
	assert.Equal(t, impactByRigFieldnames, records[0])
	assert.Equal(t, "PF-03", records[1][1])
}

// TestWriteImpactTable checks the text rendering and footer.
func TestWriteImpactTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "impact.txt")
	cfg := testConfig(schema.TextOut, path)

	err := PrintImpactResults(sampleImpact(), 0.85, cfg)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(content)
	assert.Contains(t, out, "402_Cambio de Turno")
	assert.Contains(t, out, "Showing top 2 codes by uebd impact")
	assert.Contains(t, out, "85.00%")
}

// TestWriteImpactParquetUnsupported checks parquet mode is rejected.
func TestWriteImpactParquetUnsupported(t *testing.T) {
	cfg := testConfig(schema.ParquetOut, "ignored.parquet")
	err := PrintImpactResults(sampleImpact(), 0.85, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}
