package loki

import (
	"fmt"
	"strings"
	"testing"
)

func TestTranslateFiltersSingleTag(t *testing.T) {
	got := TranslateFilters(map[string]string{"tags_Level": "error"})
	if got != `{Level="error"}` {
		t.Fatalf("selector = %q, want {Level=\"error\"}", got)
	}
}

func TestTranslateFiltersEmpty(t *testing.T) {
	tests := []map[string]string{nil, {}}
	for _, filters := range tests {
		if got := TranslateFilters(filters); got != `{job="grafana"}` {
			t.Fatalf("selector = %q, want the default selector", got)
		}
	}
}

func TestTranslateFiltersIgnoresNonTagKeys(t *testing.T) {
	got := TranslateFilters(map[string]string{
		"refId":         "A",
		"fields_Data":   "x",
		"tags_Computer": "host1",
	})
	if got != `{Computer="host1"}` {
		t.Fatalf("selector = %q, want {Computer=\"host1\"}", got)
	}
}

func TestTranslateFiltersOnlyNonTagKeys(t *testing.T) {
	got := TranslateFilters(map[string]string{"refId": "A", "operator": "="})
	if got != `{job="grafana"}` {
		t.Fatalf("selector = %q, want the default selector", got)
	}
}

func TestTranslateFiltersClauseCount(t *testing.T) {
	filters := map[string]string{
		"tags_Level":    "error",
		"tags_Computer": "host1",
		"tags_app":      "api",
	}

	selector := TranslateFilters(filters)
	if !strings.HasPrefix(selector, "{") || !strings.HasSuffix(selector, "}") {
		t.Fatalf("selector %q not wrapped in braces", selector)
	}

	clauses := strings.Split(selector[1:len(selector)-1], ",")
	if len(clauses) != len(filters) {
		t.Fatalf("clause count = %d, want %d (%q)", len(clauses), len(filters), selector)
	}
	for _, clause := range clauses {
		if !strings.Contains(clause, "=") {
			t.Fatalf("clause %q is not a label equality", clause)
		}
	}
}

func TestTranslateFiltersDeterministic(t *testing.T) {
	filters := map[string]string{
		"tags_b": "2",
		"tags_a": "1",
		"tags_c": "3",
	}

	first := TranslateFilters(filters)
	for i := 0; i < 10; i++ {
		if got := TranslateFilters(filters); got != first {
			t.Fatalf("selector changed between calls: %q vs %q", first, got)
		}
	}
	if first != fmt.Sprintf("{a=%q,b=%q,c=%q}", "1", "2", "3") {
		t.Fatalf("selector = %q, want sorted clauses", first)
	}
}
