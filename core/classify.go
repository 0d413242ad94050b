package core

import (
	"strings"

	"rigkpi/internal/textnorm"
	"rigkpi/schema"
)

// ClassifyBucket maps an event to its mutually exclusive bucket. First match
// wins: an effective status (or an "efectivo_"-prefixed code name), reserve,
// maintenance split on the planning flag, and everything else is a delay.
func ClassifyBucket(ev *schema.Event) schema.Bucket {
	shortCode := textnorm.Normalize(ev.ShortCode)
	codeName := textnorm.Normalize(ev.CodeName)

	if shortCode == "efectivo" || strings.HasPrefix(codeName, "efectivo_") {
		return schema.BucketEffective
	}
	if shortCode == "reserva" {
		return schema.BucketReserve
	}
	if shortCode == "mantencion" {
		if textnorm.Normalize(ev.PlannedCodeName) == "programada" {
			return schema.BucketScheduledMaint
		}
		return schema.BucketUnscheduled
	}
	return schema.BucketOther
}

// BuildCodeLabel derives the stable join key used throughout gap
// attribution. The number+name pair is preferred because bare names collide
// across the two numbering schemes in use.
func BuildCodeLabel(ev *schema.Event) string {
	number := strings.TrimSpace(ev.CodeNumber)
	name := strings.TrimSpace(ev.CodeName)
	nameAlt := strings.TrimSpace(ev.CodeNameAlt)
	delayData := strings.TrimSpace(ev.DelayData)

	switch {
	case number != "" && name != "":
		return number + "_" + name
	case name != "":
		return name
	case nameAlt != "":
		return nameAlt
	case delayData != "":
		return delayData
	}
	return schema.NoCodeLabel
}

// NormalizeShift canonicalizes the source's shift labels. Unknown labels
// pass through verbatim rather than being forced into A/B.
func NormalizeShift(raw string) string {
	shift := strings.TrimSpace(raw)
	if shift == "" {
		return schema.NoShiftLabel
	}
	switch textnorm.Normalize(shift) {
	case "turno a", "a":
		return "Turno A"
	case "turno b", "b":
		return "Turno B"
	}
	return shift
}

// RigLabel returns the event's rig identifier with the empty-value sentinel.
func RigLabel(ev *schema.Event) string {
	rig := strings.TrimSpace(ev.Rig)
	if rig == "" {
		return schema.NoRigLabel
	}
	return rig
}
