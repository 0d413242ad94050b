package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadTargets checks fuzzy headers, ratio coercion and month ordering.
func TestReadTargets(t *testing.T) {
	content := "Año;Mes;Equipo;Disponibilidad Obj;Utilización Obj;UEBD Obj\n" +
		"2026;Febrero;TOTAL;90;72;85\n" +
		"2026;1;TOTAL;0,88;;\n" +
		"2026;Febrero;PF03;95;80;90\n" +
		"2026;;TOTAL;90;72;85\n"

	path := writeFixture(t, "targets.csv", content)
	targets, err := NewTargetReader(path, ';').ReadTargets(context.Background())
	require.NoError(t, err)
	require.Len(t, targets, 2)

	jan := targets[0]
	assert.Equal(t, 2026, jan.Year)
	assert.Equal(t, 1, jan.Month)
	require.NotNil(t, jan.AvailabilityRatio)
	assert.InDelta(t, 0.88, *jan.AvailabilityRatio, 1e-9)
	assert.Nil(t, jan.UtilizationRatio)
	assert.Nil(t, jan.UEBDRatio)

	feb := targets[1]
	assert.Equal(t, 2, feb.Month)
	require.NotNil(t, feb.AvailabilityRatio)
	assert.InDelta(t, 0.90, *feb.AvailabilityRatio, 1e-9)
	require.NotNil(t, feb.UtilizationRatio)
	assert.InDelta(t, 0.72, *feb.UtilizationRatio, 1e-9)
	require.NotNil(t, feb.UEBDRatio)
	assert.InDelta(t, 0.85, *feb.UEBDRatio, 1e-9)
}

// TestReadTargetsFleetAliases checks FLOTA rows satisfy the TOTAL preference.
func TestReadTargetsFleetAliases(t *testing.T) {
	content := "anio;mes;perforadora;uebd\n" +
		"2026;2;FLOTA;0.85\n"

	path := writeFixture(t, "targets.csv", content)
	targets, err := NewTargetReader(path, ';').ReadTargets(context.Background())
	require.NoError(t, err)
	require.Len(t, targets, 1)
	require.NotNil(t, targets[0].UEBDRatio)
	assert.InDelta(t, 0.85, *targets[0].UEBDRatio, 1e-9)
}

// TestReadTargetsPerRigPreference checks a specific rig row can be selected.
func TestReadTargetsPerRigPreference(t *testing.T) {
	content := "anio;mes;equipo;uebd\n" +
		"2026;2;TOTAL;0.85\n" +
		"2026;2;PF-03;0.91\n"

	path := writeFixture(t, "targets.csv", content)
	reader := NewTargetReader(path, ';')
	reader.RigPreference = "PF-03"

	targets, err := reader.ReadTargets(context.Background())
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.InDelta(t, 0.91, *targets[0].UEBDRatio, 1e-9)
}

// TestReadTargetsWithoutRigColumn checks every row qualifies when the table
// has no rig dimension.
func TestReadTargetsWithoutRigColumn(t *testing.T) {
	content := "anio;mes;disponibilidad\n2026;1;90%\n2026;2;88\n"

	path := writeFixture(t, "targets.csv", content)
	targets, err := NewTargetReader(path, ';').ReadTargets(context.Background())
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.InDelta(t, 0.90, *targets[0].AvailabilityRatio, 1e-9)
	assert.InDelta(t, 0.88, *targets[1].AvailabilityRatio, 1e-9)
}

// TestReadTargetsMissingKeyColumns checks the hard failure path.
func TestReadTargetsMissingKeyColumns(t *testing.T) {
	content := "equipo;uebd\nTOTAL;0.85\n"

	path := writeFixture(t, "targets.csv", content)
	_, err := NewTargetReader(path, ';').ReadTargets(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year and month")
}
