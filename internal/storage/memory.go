package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"logbridge/internal/models"
)

const tagPrefix = "tags_"

// MemStore keeps entries in an append-only slice. IDs are assigned at insert
// time, monotonically increasing, and never reused. Reads scan linearly; the
// access pattern is insert-mostly, so one lock around the sequence and the
// ID counter is enough.
type MemStore struct {
	mu     sync.RWMutex
	logs   []models.LogEntry
	nextID int64
}

func NewMemStore() *MemStore {
	return &MemStore{nextID: 1}
}

// GetLogs returns entries whose timestamp falls in the open interval
// (from, to). Both bounds are exclusive. Every tags_-prefixed filter key must
// match the entry's tag exactly; filter keys without the prefix are ignored.
func (s *MemStore) GetLogs(_ context.Context, from, to time.Time, filters map[string]string) ([]models.LogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.LogEntry, 0, len(s.logs))
	for _, entry := range s.logs {
		if !entry.Timestamp.After(from) || !entry.Timestamp.Before(to) {
			continue
		}
		if !matchesFilters(entry, filters) {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// InsertLog assigns the next ID and appends. Never fails.
func (s *MemStore) InsertLog(_ context.Context, entry models.LogEntry) (models.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID
	s.nextID++
	s.logs = append(s.logs, entry)
	return entry, nil
}

func matchesFilters(entry models.LogEntry, filters map[string]string) bool {
	for key, value := range filters {
		if !strings.HasPrefix(key, tagPrefix) {
			continue
		}
		if entry.Tags[strings.TrimPrefix(key, tagPrefix)] != value {
			return false
		}
	}
	return true
}
