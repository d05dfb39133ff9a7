package models

import (
	"time"

	json "github.com/goccy/go-json"
)

// LogEntry is the canonical, backend-agnostic log record. Every raw record,
// whether it came from Loki, Kafka or a direct insert, is normalized into this
// shape before anything else touches it.
//
// Tags hold the indexed/queryable string dimensions, Fields the arbitrary
// payload data. A raw input key feeds exactly one of the two, never both.
type LogEntry struct {
	ID            int64             `json:"id,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
	Message       string            `json:"message"`
	Level         string            `json:"level"`
	EventRecordID string            `json:"eventRecordID"`
	Computer      string            `json:"computer,omitempty"`
	Tags          map[string]string `json:"tags"`
	Fields        map[string]any    `json:"fields"`
}

// RawFromBytes decodes one loosely-structured raw record, the input shape of
// the normalizer.
func RawFromBytes(data []byte) (map[string]any, error) {
	var record map[string]any
	err := json.Unmarshal(data, &record)
	return record, err
}
