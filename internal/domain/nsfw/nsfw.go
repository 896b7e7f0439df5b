// Package nsfw holds the content classification value types.
package nsfw

import (
	"sort"
	"strings"
)

// Severity is the ordered classification tier. Explicit outranks violent,
// violent outranks mild.
type Severity string

// Severity tiers.
const (
	SeverityNone     Severity = "none"
	SeverityMild     Severity = "mild"
	SeverityViolent  Severity = "violent"
	SeverityExplicit Severity = "explicit"
)

// Rank orders severities: explicit > violent > mild > none.
func (s Severity) Rank() int {
	switch s {
	case SeverityExplicit:
		return 3
	case SeverityViolent:
		return 2
	case SeverityMild:
		return 1
	default:
		return 0
	}
}

// Classification is the immutable result of classifying one record or one
// piece of text.
type Classification struct {
	flagged  bool
	severity Severity
	matches  []string
}

// New builds a Classification. Matches are lowercased, deduplicated, and
// sorted so identical inputs always classify identically.
func New(severity Severity, matches []string) Classification {
	seen := make(map[string]struct{}, len(matches))
	cleaned := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.ToLower(m)
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		cleaned = append(cleaned, m)
	}
	sort.Strings(cleaned)

	flagged := severity.Rank() > 0 && len(cleaned) > 0
	if !flagged {
		return Classification{severity: SeverityNone}
	}
	return Classification{flagged: true, severity: severity, matches: cleaned}
}

// None is the unflagged classification.
func None() Classification {
	return Classification{severity: SeverityNone}
}

// Flagged reports whether any NSFW signal was found.
func (c Classification) Flagged() bool { return c.flagged }

// Severity returns the highest matched tier.
func (c Classification) Severity() Severity { return c.severity }

// Matches returns the matched terms. Callers must not mutate it.
func (c Classification) Matches() []string { return c.matches }

// HasMatch reports whether a term is among the matches.
func (c Classification) HasMatch(term string) bool {
	term = strings.ToLower(term)
	for _, m := range c.matches {
		if m == term {
			return true
		}
	}
	return false
}
