// Package names turns raw person-entity strings into the candidate pool used
// for speaker linking.
package names

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// Normalize deduplicates and lowercases raw person names, then drops every
// single-word name that already appears inside a full name. Full names come
// first, in input order, followed by the surviving single names.
func Normalize(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	var full, single []string

	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		n := strings.ToLower(norm.NFC.String(r))
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}

		if strings.Contains(n, " ") {
			full = append(full, n)
		} else {
			single = append(single, n)
		}
	}

	out := make([]string, 0, len(full)+len(single))
	out = append(out, full...)
	for _, s := range single {
		if owner, ok := fullNameContaining(s, full); ok {
			zap.S().Debugf("Dropping %q, covered by full name %q", s, owner)
			continue
		}
		out = append(out, s)
	}

	zap.S().Debugf("Normalized %d raw names into %d candidates (%d full, %d single)",
		len(raw), len(out), len(full), len(out)-len(full))
	return out
}

// fullNameContaining returns the first full name that contains s.
func fullNameContaining(s string, full []string) (string, bool) {
	for _, fn := range full {
		if strings.Contains(fn, s) {
			return fn, true
		}
	}
	return "", false
}
