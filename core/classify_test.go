package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rigkpi/schema"
)

// TestClassifyBucket covers the first-match bucket precedence.
func TestClassifyBucket(t *testing.T) {
	tests := []struct {
		name     string
		event    schema.Event
		expected schema.Bucket
	}{
		{
			name:     "effective status",
			event:    schema.Event{ShortCode: "Efectivo"},
			expected: schema.BucketEffective,
		},
		{
			name:     "effective prefixed code name",
			event:    schema.Event{ShortCode: "Demoras", CodeName: "Efectivo_Perforando"},
			expected: schema.BucketEffective,
		},
		{
			name:     "reserve",
			event:    schema.Event{ShortCode: "Reserva"},
			expected: schema.BucketReserve,
		},
		{
			name:     "scheduled maintenance with accents",
			event:    schema.Event{ShortCode: "Mantención", PlannedCodeName: "Programada"},
			expected: schema.BucketScheduledMaint,
		},
		{
			name:     "unplanned maintenance",
			event:    schema.Event{ShortCode: "Mantencion", PlannedCodeName: "No Programada"},
			expected: schema.BucketUnscheduled,
		},
		{
			name:     "maintenance without planning flag is unplanned",
			event:    schema.Event{ShortCode: "Mantencion"},
			expected: schema.BucketUnscheduled,
		},
		{
			name:     "status precedence beats reserve code name",
			event:    schema.Event{ShortCode: "Efectivo", CodeName: "Reserva_Colacion"},
			expected: schema.BucketEffective,
		},
		{
			name:     "unknown status is a delay",
			event:    schema.Event{ShortCode: "Demoras", CodeName: "Traslado"},
			expected: schema.BucketOther,
		},
		{
			name:     "empty event is a delay",
			event:    schema.Event{},
			expected: schema.BucketOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyBucket(&tt.event))
		})
	}
}

// TestBuildCodeLabel covers the code label fallback chain.
func TestBuildCodeLabel(t *testing.T) {
	tests := []struct {
		name     string
		event    schema.Event
		expected string
	}{
		{
			name:     "number and name joined",
			event:    schema.Event{CodeNumber: "402", CodeName: "Cambio de Turno"},
			expected: "402_Cambio de Turno",
		},
		{
			name:     "name only",
			event:    schema.Event{CodeName: "Traslado"},
			expected: "Traslado",
		},
		{
			name:     "alternate name",
			event:    schema.Event{CodeNameAlt: "Espera Cachorreo"},
			expected: "Espera Cachorreo",
		},
		{
			name:     "delay free text",
			event:    schema.Event{DelayData: "espera de operador"},
			expected: "espera de operador",
		},
		{
			name:     "number alone is not enough",
			event:    schema.Event{CodeNumber: "402"},
			expected: schema.NoCodeLabel,
		},
		{
			name:     "whitespace-only fields fall through",
			event:    schema.Event{CodeName: "  ", DelayData: " "},
			expected: schema.NoCodeLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildCodeLabel(&tt.event))
		})
	}
}

// TestNormalizeShift covers shift canonicalization.
func TestNormalizeShift(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"Turno A", "Turno A"},
		{"turno a", "Turno A"},
		{"A", "Turno A"},
		{"b", "Turno B"},
		{"TURNO B", "Turno B"},
		{"", schema.NoShiftLabel},
		{"   ", schema.NoShiftLabel},
		{"Turno Noche", "Turno Noche"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeShift(tt.raw))
		})
	}
}

// TestRigLabel checks the missing-rig sentinel.
func TestRigLabel(t *testing.T) {
	assert.Equal(t, "PF-03", RigLabel(&schema.Event{Rig: "PF-03"}))
	assert.Equal(t, schema.NoRigLabel, RigLabel(&schema.Event{Rig: "  "}))
}
