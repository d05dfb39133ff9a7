package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
storage:
  backend: loki
loki:
  url: http://loki.internal:3100
  limit: 500
kafka:
  enabled: true
  brokers:
    - broker1:9092
    - broker2:9092
  topic: logs
  groupID: logbridge
log:
  level: debug
  pretty: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Storage.Backend != "loki" {
		t.Fatalf("backend = %q", cfg.Storage.Backend)
	}
	if cfg.Loki.URL != "http://loki.internal:3100" || cfg.Loki.Limit != 500 {
		t.Fatalf("loki config = %+v", cfg.Loki)
	}
	if cfg.Loki.TimeoutSeconds != 30 {
		t.Fatalf("expected default timeout 30, got %d", cfg.Loki.TimeoutSeconds)
	}
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Topic != "logs" {
		t.Fatalf("kafka config = %+v", cfg.Kafka)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.Pretty {
		t.Fatalf("log config = %+v", cfg.Log)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  addr: \":8080\"\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.Backend != "memory" {
		t.Fatalf("default backend = %q, want memory", cfg.Storage.Backend)
	}
	if cfg.Loki.URL != "http://localhost:3100" || cfg.Loki.Limit != 1000 {
		t.Fatalf("loki defaults = %+v", cfg.Loki)
	}
	if cfg.Kafka.Enabled {
		t.Fatal("kafka must default to disabled")
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("default log level = %q", cfg.Log.Level)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	if _, err := Load(writeConfig(t, "storage:\n  backend: postgres\n")); err == nil {
		t.Fatal("expected an error for an unknown backend")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
