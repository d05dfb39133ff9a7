package server

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"logbridge/internal/logparse"
	"logbridge/internal/loki"
	"logbridge/internal/models"
	"logbridge/internal/storage"
)

// tagKeys is the static list of filterable dimensions advertised to the
// dashboard's ad-hoc filter picker.
var tagKeys = []map[string]string{
	{"type": "string", "text": "Computer"},
	{"type": "string", "text": "Level"},
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, []string{"logs"})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var query models.GrafanaQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeError(w, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	from, err := parseRangeBound(query.Range.From)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid range.from", err)
		return
	}
	to, err := parseRangeBound(query.Range.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid range.to", err)
		return
	}

	entries, err := s.store.GetLogs(r.Context(), from, to, query.FilterMap())
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, loki.ErrEmptyQuery) ||
			errors.Is(err, loki.ErrMissingBounds) ||
			errors.Is(err, loki.ErrInvertedRange) {
			status = http.StatusBadRequest
		}
		log.Error().Err(err).Str("from", query.Range.From).Str("to", query.Range.To).Msg("log query failed")
		writeError(w, status, "log query failed", err)
		return
	}

	writeJSON(w, http.StatusOK, logparse.FormatTable(entries))
}

func (s *Server) handleAnnotations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, []any{})
}

func (s *Server) handleTagKeys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, tagKeys)
}

func (s *Server) handleTagValues(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid tag-values request", err)
		return
	}

	// Only level values are enumerable; other tag dimensions are unbounded.
	if body.Key != "Level" {
		writeJSON(w, http.StatusOK, []any{})
		return
	}

	values := make([]map[string]string, 0, len(logparse.Levels()))
	for _, level := range logparse.Levels() {
		values = append(values, map[string]string{"text": level})
	}
	writeJSON(w, http.StatusOK, values)
}

func (s *Server) handleInsertLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid log record", err)
		return
	}

	stored, err := s.store.InsertLog(r.Context(), logparse.Normalize(raw))
	if err != nil {
		if errors.Is(err, storage.ErrReadOnly) {
			writeError(w, http.StatusNotImplemented, "store is read-only", err)
			return
		}
		log.Error().Err(err).Msg("insert failed")
		writeError(w, http.StatusInternalServerError, "insert failed", err)
		return
	}

	writeJSON(w, http.StatusOK, stored)
}

// parseRangeBound accepts the RFC3339 timestamps Grafana sends, with or
// without fractional seconds.
func parseRangeBound(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	writeJSON(w, status, errorResponse{Error: message, Details: err.Error()})
}
