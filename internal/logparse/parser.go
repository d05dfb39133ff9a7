package logparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"logbridge/internal/models"
)

// Raw records use a flat naming convention: keys prefixed with "tags_" are
// indexed dimensions, keys prefixed with "fields_" are payload data. Bare
// keys (timestamp, message, level) feed resolution but are not extracted.
const (
	tagPrefix   = "tags_"
	fieldPrefix = "fields_"
)

// timestampLayouts are tried in order when the timestamp field is a
// non-numeric string.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	time.RFC1123,
}

// Normalize converts one loosely-structured raw record into the canonical
// LogEntry. It is total: malformed input degrades field by field (timestamp
// falls back to now, level to info, the event ID gets synthesized) instead of
// producing an error.
func Normalize(raw map[string]any) models.LogEntry {
	timestamp := resolveTimestamp(raw)

	entry := models.LogEntry{
		Timestamp:     timestamp,
		Message:       resolveMessage(raw),
		Level:         resolveLevel(raw),
		EventRecordID: resolveEventRecordID(raw, timestamp),
		Tags:          map[string]string{},
		Fields:        map[string]any{},
	}

	for key, value := range raw {
		switch {
		case strings.HasPrefix(key, tagPrefix):
			entry.Tags[strings.TrimPrefix(key, tagPrefix)] = stringify(value)
		case strings.HasPrefix(key, fieldPrefix):
			entry.Fields[strings.TrimPrefix(key, fieldPrefix)] = value
		}
	}

	if computer, ok := entry.Tags["Computer"]; ok {
		entry.Computer = computer
	} else if hostname, ok := entry.Tags["hostname"]; ok {
		entry.Computer = hostname
	}

	return entry
}

// resolveTimestamp interprets a numeric timestamp field as Unix epoch
// seconds. String timestamps are first tried as a numeric epoch, then against
// the permissive layout list. Anything else falls back to the current time.
func resolveTimestamp(raw map[string]any) time.Time {
	switch v := raw["timestamp"].(type) {
	case float64:
		return time.Unix(int64(v), 0).UTC()
	case int64:
		return time.Unix(v, 0).UTC()
	case int:
		return time.Unix(int64(v), 0).UTC()
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return time.Unix(n, 0).UTC()
		}
		if f, err := v.Float64(); err == nil {
			return time.Unix(int64(f), 0).UTC()
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Unix(n, 0).UTC()
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return time.Unix(int64(f), 0).UTC()
		}
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, v); err == nil {
				return ts.UTC()
			}
		}
	}
	return time.Now().UTC()
}

// resolveMessage returns the first non-empty candidate: the data payload
// field, the structured message field, then the bare message field.
func resolveMessage(raw map[string]any) string {
	for _, key := range []string{"fields_Data", "fields_Message", "message"} {
		if value, ok := raw[key]; ok {
			if msg := stringify(value); msg != "" {
				return msg
			}
		}
	}
	return ""
}

func resolveLevel(raw map[string]any) string {
	for _, key := range []string{"level", "tags_Level"} {
		if value, ok := raw[key]; ok {
			if level := stringify(value); level != "" {
				return NormalizeLevel(level)
			}
		}
	}
	return "info"
}

// resolveEventRecordID prefers an explicit event ID. Without one it
// synthesizes timestamp + stream identity so the ID stays stable across
// retries of the same query. A record with no stream identity gets a
// wall-clock ID, which is only weakly unique.
func resolveEventRecordID(raw map[string]any, timestamp time.Time) string {
	if value, ok := raw["fields_EventRecordID"]; ok {
		if id := stringify(value); id != "" {
			return id
		}
	}
	if value, ok := raw[tagPrefix+"filename"]; ok {
		if stream := stringify(value); stream != "" {
			return fmt.Sprintf("%d-%s", timestamp.Unix(), stream)
		}
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
