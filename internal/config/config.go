package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// StorageConfig selects the store implementation: "memory" keeps entries
// in-process, "loki" delegates reads to the Loki backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
}

type LokiConfig struct {
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
	Limit          int    `mapstructure:"limit"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"groupID"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Loki    LokiConfig    `mapstructure:"loki"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Log     LogConfig     `mapstructure:"log"`
}

// Load reads the YAML config at path. Every key can be overridden through
// LOGBRIDGE_* environment variables (dots become underscores).
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("storage.backend", "memory")
	v.SetDefault("loki.url", "http://localhost:3100")
	v.SetDefault("loki.timeoutSeconds", 30)
	v.SetDefault("loki.limit", 1000)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("LOGBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Storage.Backend != "memory" && cfg.Storage.Backend != "loki" {
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return cfg, nil
}
