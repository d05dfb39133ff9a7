package logparse

import "strings"

// canonicalLevels is the closed set of levels the bridge reports, in match
// priority order. "ERROR: disk full" must map to error even though it is not
// an exact level name, so matching is substring based.
var canonicalLevels = [...]string{"error", "warn", "info", "debug", "trace"}

// NormalizeLevel maps an arbitrary severity string onto the canonical level
// set. Unrecognized or empty input maps to info. Never fails.
func NormalizeLevel(raw string) string {
	normalized := strings.ToLower(raw)
	for _, level := range canonicalLevels {
		if strings.Contains(normalized, level) {
			return level
		}
	}
	return "info"
}

// Levels returns the canonical level names in their fixed priority order.
func Levels() []string {
	return canonicalLevels[:]
}
