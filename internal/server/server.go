package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"logbridge/internal/storage"
)

// Server exposes the Grafana JSON datasource API in front of an injected
// store. The /test/insert-log route only exists on memory-backed deployments;
// the Loki-backed store is read-only.
type Server struct {
	addr        string
	store       storage.Store
	allowInsert bool
	srv         *http.Server
}

func New(addr string, store storage.Store, allowInsert bool) *Server {
	return &Server{
		addr:        addr,
		store:       store,
		allowInsert: allowInsert,
	}
}

// Handler builds the full route tree with middleware applied. Exposed so
// tests can drive the server through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/search", s.handleSearch)
	mux.HandleFunc("/query", s.handleQuery)
	mux.HandleFunc("/annotations", s.handleAnnotations)
	mux.HandleFunc("/tag-keys", s.handleTagKeys)
	mux.HandleFunc("/tag-values", s.handleTagValues)
	if s.allowInsert {
		mux.HandleFunc("/test/insert-log", s.handleInsertLog)
	}

	return withRequestLog(withCORS(withGzip(mux)))
}

func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("addr", s.addr).Msg("http server listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
