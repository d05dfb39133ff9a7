package loki

import (
	"fmt"
	"sort"
	"strings"
)

// tagPrefix marks the ad-hoc filter keys that have a backend-side meaning.
// Filter keys without it never reach Loki.
const tagPrefix = "tags_"

// defaultSelector scopes an unfiltered query to this system's log stream.
const defaultSelector = `{job="grafana"}`

// TranslateFilters converts a dashboard filter map into a LogQL stream
// selector. Each tags_-prefixed key becomes one label-equality clause; all
// other keys are ignored. With no usable filters the default selector is
// returned. Clauses are sorted so the same filter set always produces the
// same selector.
func TranslateFilters(filters map[string]string) string {
	clauses := make([]string, 0, len(filters))
	for key, value := range filters {
		if !strings.HasPrefix(key, tagPrefix) {
			continue
		}
		label := strings.TrimPrefix(key, tagPrefix)
		clauses = append(clauses, fmt.Sprintf("%s=%q", label, value))
	}

	if len(clauses) == 0 {
		return defaultSelector
	}

	sort.Strings(clauses)
	return "{" + strings.Join(clauses, ",") + "}"
}
