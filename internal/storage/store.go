package storage

import (
	"context"
	"errors"
	"time"

	"logbridge/internal/models"
)

// ErrReadOnly is returned by stores that cannot accept writes. Callers check
// it with errors.Is; a write against a read-only store must never silently
// no-op.
var ErrReadOnly = errors.New("insert is not supported by the loki-backed store")

// Store is the uniform log storage contract: fetch entries in a time range
// matching ad-hoc filters, or insert one entry. The process constructs one
// implementation at startup and injects it into the request handlers.
type Store interface {
	GetLogs(ctx context.Context, from, to time.Time, filters map[string]string) ([]models.LogEntry, error)
	InsertLog(ctx context.Context, entry models.LogEntry) (models.LogEntry, error)
}
