package logparse

import (
	"time"

	json "github.com/goccy/go-json"

	"logbridge/internal/models"
)

// tableColumns is the fixed column schema of every /query response. The
// column list never varies with the data.
var tableColumns = []models.TableColumn{
	{Text: "Time", Type: "time"},
	{Text: "Message", Type: "string"},
	{Text: "Level", Type: "string"},
	{Text: "EventRecordID", Type: "string"},
	{Text: "Computer", Type: "string"},
	{Text: "Tags", Type: "string"},
	{Text: "Fields", Type: "string"},
}

// FormatTable projects canonical entries into the dashboard's tabular
// response. Row order preserves input order; sorting is the caller's job.
func FormatTable(entries []models.LogEntry) []models.TableResponse {
	rows := make([][]any, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []any{
			entry.Timestamp.UTC().Format(time.RFC3339),
			entry.Message,
			entry.Level,
			entry.EventRecordID,
			entry.Computer,
			marshalCell(entry.Tags),
			marshalCell(entry.Fields),
		})
	}

	return []models.TableResponse{{
		Columns: tableColumns,
		Rows:    rows,
		Type:    "table",
	}}
}

// marshalCell serializes tags/fields maps to their canonical JSON text form
// for inclusion as string-typed cells.
func marshalCell(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}
	return string(data)
}
