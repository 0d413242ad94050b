// Package textnorm has locale-tolerant parsing and normalization helpers.
//
// The source systems export timestamps, percentages and accented Spanish
// labels with inconsistent formatting. Every helper here treats "cannot
// parse" as a normal outcome, not an error: callers get a nil/false result
// and decide how to default.
package textnorm

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes diacritics via NFKD decomposition followed by
// dropping the combining marks.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// dateTimeFormats is the ordered list of accepted timestamp layouts.
var dateTimeFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Normalize trims, lowercases and strips diacritics for case- and
// accent-insensitive comparison of status codes, index names and ids.
func Normalize(s string) string {
	lowered := strings.ToLower(strings.TrimSpace(s))
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		return lowered
	}
	return stripped
}

// NormalizeRig canonicalizes a rig identifier for joining across
// heterogeneous sources: diacritics stripped, upper-cased, and every
// non-alphanumeric rune removed, so "PF-03", "pf03" and "PF_03" coincide.
// Collisions between genuinely distinct rigs are not detected.
func NormalizeRig(s string) string {
	upper := strings.ToUpper(Normalize(s))
	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseDateTime attempts the fixed list of accepted layouts. The second
// return is false when no layout matches; absence is an expected case.
func ParseDateTime(s string) (time.Time, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDate parses a bare date, falling back to the timestamp layouts and
// truncating to the date component.
func ParseDate(s string) (time.Time, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, ok := ParseDateTime(raw); ok {
		return t.Truncate(24 * time.Hour), true
	}
	return time.Time{}, false
}

// ParseNumber parses a numeric cell, tolerating a trailing percent sign,
// thousands separators and a comma decimal separator. A cell may use comma
// either as thousands separator ("1,234.5") or as decimal separator
// ("12,5"); a comma followed by a dot is treated as thousands.
func ParseNumber(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.ReplaceAll(raw, " ", "")
	if strings.Contains(raw, ",") && strings.Contains(raw, ".") {
		raw = strings.ReplaceAll(raw, ",", "")
	} else {
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	return parseFloat(raw)
}

// ParseRatio interprets a parsed number as a ratio: values above 1 are
// percentages and are divided by 100, negatives are rejected.
func ParseRatio(v float64) (float64, bool) {
	if v < 0 {
		return 0, false
	}
	if v > 1 {
		return v / 100.0, true
	}
	return v, true
}

// ParseMonth accepts a month as a number (1-12) or a Spanish month name.
func ParseMonth(s string) (int, bool) {
	txt := Normalize(s)
	if txt == "" {
		return 0, false
	}
	if v, ok := parseFloat(txt); ok {
		m := int(v)
		if 1 <= m && m <= 12 {
			return m, true
		}
		return 0, false
	}
	months := map[string]int{
		"enero": 1, "febrero": 2, "marzo": 3, "abril": 4,
		"mayo": 5, "junio": 6, "julio": 7, "agosto": 8,
		"septiembre": 9, "setiembre": 9, "octubre": 10,
		"noviembre": 11, "diciembre": 12,
	}
	m, ok := months[txt]
	return m, ok
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
