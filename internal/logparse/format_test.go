package logparse

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"logbridge/internal/models"
)

func TestFormatTableShape(t *testing.T) {
	entries := []models.LogEntry{
		{
			Timestamp:     time.Unix(1700000000, 0),
			Message:       "boot ok",
			Level:         "info",
			EventRecordID: "1",
			Computer:      "host1",
			Tags:          map[string]string{"Level": "info"},
			Fields:        map[string]any{"seq": float64(1)},
		},
		{
			Timestamp:     time.Unix(1700000060, 0),
			Message:       "disk full",
			Level:         "error",
			EventRecordID: "2",
			Tags:          map[string]string{},
			Fields:        map[string]any{},
		},
	}

	tables := FormatTable(entries)
	if len(tables) != 1 {
		t.Fatalf("expected a single table, got %d", len(tables))
	}

	table := tables[0]
	if table.Type != "table" {
		t.Fatalf("type = %q, want table", table.Type)
	}
	if len(table.Columns) != 7 {
		t.Fatalf("expected 7 columns, got %d", len(table.Columns))
	}
	if table.Columns[0].Text != "Time" || table.Columns[0].Type != "time" {
		t.Fatalf("first column = %+v, want Time/time", table.Columns[0])
	}
	if len(table.Rows) != len(entries) {
		t.Fatalf("row count = %d, want %d", len(table.Rows), len(entries))
	}

	first := table.Rows[0]
	if first[0] != "2023-11-14T22:13:20Z" {
		t.Fatalf("time cell = %v, want 2023-11-14T22:13:20Z", first[0])
	}
	if first[1] != "boot ok" || first[2] != "info" || first[4] != "host1" {
		t.Fatalf("unexpected row: %v", first)
	}

	var tags map[string]string
	if err := json.Unmarshal([]byte(first[5].(string)), &tags); err != nil {
		t.Fatalf("tags cell is not valid JSON: %v", err)
	}
	if tags["Level"] != "info" {
		t.Fatalf("tags cell = %v, want Level=info", tags)
	}
}

func TestFormatTableRowOrderPreserved(t *testing.T) {
	entries := []models.LogEntry{
		{Timestamp: time.Unix(3, 0), Message: "third"},
		{Timestamp: time.Unix(1, 0), Message: "first"},
		{Timestamp: time.Unix(2, 0), Message: "second"},
	}

	rows := FormatTable(entries)[0].Rows
	for i, entry := range entries {
		if rows[i][1] != entry.Message {
			t.Fatalf("row %d = %v, want message %q", i, rows[i], entry.Message)
		}
	}
}

func TestFormatTableEmptyInput(t *testing.T) {
	tables := FormatTable(nil)
	if len(tables) != 1 {
		t.Fatalf("expected the fixed schema even with no entries, got %d tables", len(tables))
	}
	if len(tables[0].Columns) != 7 {
		t.Fatalf("column count must be constant, got %d", len(tables[0].Columns))
	}
	if len(tables[0].Rows) != 0 {
		t.Fatalf("expected zero rows, got %d", len(tables[0].Rows))
	}
}
