package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"logbridge/internal/config"
	"logbridge/internal/kafka"
	"logbridge/internal/logger"
	"logbridge/internal/logparse"
	"logbridge/internal/loki"
	"logbridge/internal/server"
	"logbridge/internal/storage"
)

func main() {
	cfgPath := "config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfgPath).Msg("load config")
	}

	logger.Init(cfg.Log)

	var store storage.Store
	switch cfg.Storage.Backend {
	case "loki":
		client := loki.NewClient(cfg.Loki.URL, time.Duration(cfg.Loki.TimeoutSeconds)*time.Second)
		store = storage.NewLokiStore(client, cfg.Loki.Limit)
		log.Info().Str("url", cfg.Loki.URL).Msg("using loki-backed store")
	default:
		store = storage.NewMemStore()
		log.Info().Msg("using in-memory store")
	}

	memoryBacked := cfg.Storage.Backend != "loki"

	if cfg.Kafka.Enabled {
		if !memoryBacked {
			log.Warn().Msg("kafka ingestion requires the memory backend, skipping")
		} else {
			go func() {
				err := kafka.StartConsumerGroup(cfg.Kafka, func(record map[string]any) error {
					_, err := store.InsertLog(context.Background(), logparse.Normalize(record))
					return err
				})
				if err != nil {
					log.Error().Err(err).Msg("kafka consumer stopped")
				}
			}()
		}
	}

	srv := server.New(cfg.Server.Addr, store, memoryBacked)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("shutdown complete")
}
