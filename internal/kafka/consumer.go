package kafka

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"logbridge/internal/config"
	"logbridge/internal/models"
)

// StartConsumerGroup reads raw log records from Kafka and hands each one to
// the handler. Message values are loosely-structured JSON objects in the same
// shape the normalizer accepts; a message that is not a JSON object is
// dropped with a warning. Runs until the reader fails permanently.
func StartConsumerGroup(cfg config.KafkaConfig, handler func(map[string]any) error) error {

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})

	for {
		m, err := r.ReadMessage(context.Background())

		if err != nil {
			log.Error().Err(err).Msg("kafka read failed")
			time.Sleep(time.Second)
			continue
		}

		record, err := models.RawFromBytes(m.Value)

		if err != nil {
			log.Warn().Err(err).Msg("invalid log record, dropping")
			continue
		}

		if err := handler(record); err != nil {
			log.Error().Err(err).Msg("handler failed")
		}
	}
}
