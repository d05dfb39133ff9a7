package storage

import (
	"context"
	"time"

	"logbridge/internal/logparse"
	"logbridge/internal/loki"
	"logbridge/internal/models"
)

// LokiStore serves reads by translating the filters to a LogQL selector,
// executing a range query and normalizing the raw records. It holds no state
// of its own and is read-only.
type LokiStore struct {
	client *loki.Client
	limit  int
}

// NewLokiStore wraps a Loki client. limit caps the result count per query;
// zero or negative means the executor's default.
func NewLokiStore(client *loki.Client, limit int) *LokiStore {
	return &LokiStore{client: client, limit: limit}
}

func (s *LokiStore) GetLogs(ctx context.Context, from, to time.Time, filters map[string]string) ([]models.LogEntry, error) {
	records, err := s.client.QueryRange(ctx, loki.QueryRangeParams{
		Query: loki.TranslateFilters(filters),
		Start: from.Unix(),
		End:   to.Unix(),
		Limit: s.limit,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]models.LogEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, logparse.Normalize(record))
	}
	return entries, nil
}

func (s *LokiStore) InsertLog(context.Context, models.LogEntry) (models.LogEntry, error) {
	return models.LogEntry{}, ErrReadOnly
}
