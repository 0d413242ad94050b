// Package ingest reads equipment-state logs and monthly target tables
// from delimited files. Readers tolerate cell-level garbage and report it
// through row statistics instead of failing the run.
package ingest

import (
	"strings"

	"rigkpi/internal/textnorm"
)

// stripBOM removes the UTF-8 byte order mark that the source system's
// exports carry on the first header cell.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}

// FindColumn locates a header whose normalized form contains one of the
// candidate substrings, in candidate order. It returns the original header
// name, or "" when nothing matches. Target tables arrive with drifting
// header spellings, so exact matching is not an option.
func FindColumn(headers []string, candidates ...string) string {
	type pair struct{ header, norm string }
	normalized := make([]pair, 0, len(headers))
	for _, h := range headers {
		if h == "" {
			continue
		}
		normalized = append(normalized, pair{h, textnorm.Normalize(h)})
	}
	for _, candidate := range candidates {
		c := textnorm.Normalize(candidate)
		for _, p := range normalized {
			if strings.Contains(p.norm, c) {
				return p.header
			}
		}
	}
	return ""
}
