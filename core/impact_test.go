package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rigkpi/schema"
)

// TestBuildImpactRows checks ranking against a fleet denominator.
func TestBuildImpactRows(t *testing.T) {
	hours := map[string]float64{
		"402_Cambio de Turno": 120.0,
		"Traslado":            80.0,
		"Sin Operador":        30.0,
	}

	rows := BuildImpactRows(schema.MetricUEBD, hours, 1000.0, 0)
	assert.Len(t, rows, 3)

	assert.Equal(t, "402_Cambio de Turno", rows[0].Code)
	assert.Equal(t, 1, rows[0].Rank)
	assert.InDelta(t, 0.12, rows[0].ImpactRatio, 1e-9)
	assert.InDelta(t, 12.0, rows[0].ImpactPp, 1e-9)
	assert.InDelta(t, 1000.0, rows[0].DenominatorHours, 1e-9)

	assert.Equal(t, "Sin Operador", rows[2].Code)
	assert.Equal(t, 3, rows[2].Rank)
}

// TestBuildImpactRowsLimit checks the top-N cut keeps the biggest codes.
func TestBuildImpactRowsLimit(t *testing.T) {
	hours := map[string]float64{"a": 10, "b": 30, "c": 20, "d": 5}

	rows := BuildImpactRows(schema.MetricAvailability, hours, 100.0, 2)
	assert.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].Code)
	assert.Equal(t, "c", rows[1].Code)
}

// TestBuildImpactRowsTies checks the alphabetical tie-break.
func TestBuildImpactRowsTies(t *testing.T) {
	hours := map[string]float64{"z": 10, "a": 10}

	rows := BuildImpactRows(schema.MetricUEBD, hours, 100.0, 0)
	assert.Equal(t, "a", rows[0].Code)
	assert.Equal(t, "z", rows[1].Code)
}

// TestBuildImpactRowsZeroDenominator checks the degenerate case yields nothing.
func TestBuildImpactRowsZeroDenominator(t *testing.T) {
	assert.Nil(t, BuildImpactRows(schema.MetricUEBD, map[string]float64{"a": 5}, 0, 0))
}

// TestBuildImpactRowsByRig checks per-rig grouping and per-rig denominators.
func TestBuildImpactRowsByRig(t *testing.T) {
	hours := map[RigCode]float64{
		{"PF-03", "Traslado"}:     40.0,
		{"PF-03", "Sin Operador"}: 60.0,
		{"PF-03", "Colacion"}:     10.0,
		{"PFAR", "Traslado"}:      20.0,
		{"NODATA", "Traslado"}:    5.0,
	}
	denoms := map[string]float64{"PF-03": 200.0, "PFAR": 100.0}

	rows := BuildImpactRowsByRig(schema.MetricUEBD, hours, denoms, 2)
	assert.Len(t, rows, 3)

	// Rigs come out alphabetically, top codes first inside each rig.
	assert.Equal(t, "PF-03", rows[0].Rig)
	assert.Equal(t, "Sin Operador", rows[0].Code)
	assert.Equal(t, 1, rows[0].Rank)
	assert.InDelta(t, 30.0, rows[0].ImpactPp, 1e-9)

	assert.Equal(t, "Traslado", rows[1].Code)
	assert.Equal(t, 2, rows[1].Rank)

	assert.Equal(t, "PFAR", rows[2].Rig)
	assert.Equal(t, 1, rows[2].Rank)
	assert.InDelta(t, 20.0, rows[2].ImpactPp, 1e-9)
}
