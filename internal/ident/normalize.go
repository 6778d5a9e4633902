package ident

import (
	"sort"
	"strings"
)

// NormalizeIdentifiers canonicalizes raw identifier strings: trims whitespace,
// drops empties, strips any trailing class suffix after the first '.', dedupes,
// and sorts. The output order is deterministic so resolution runs are
// reproducible.
func NormalizeIdentifiers(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	normalized := make([]string, 0, len(raw))
	for _, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		// "BRK.B" style class suffixes confuse the qualification lookup.
		if idx := strings.IndexByte(value, '.'); idx >= 0 {
			value = value[:idx]
		}
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		normalized = append(normalized, value)
	}
	sort.Strings(normalized)
	return normalized
}
