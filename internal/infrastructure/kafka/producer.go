// Package kafka contains Kafka producer and consumer infrastructure
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/ibrohimkomilov001-web/kinobot/config"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/events"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/metrics"
)

// Producer publishes domain events with a sarama sync producer
type Producer struct {
	producer sarama.SyncProducer
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg *config.KafkaConfig, m *metrics.Metrics, logger zerolog.Logger) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Info().Strs("brokers", cfg.Brokers).Msg("Kafka producer initialized successfully")

	return NewProducerWithClient(producer, m, logger), nil
}

// NewProducerWithClient wraps an existing sarama producer
func NewProducerWithClient(producer sarama.SyncProducer, m *metrics.Metrics, logger zerolog.Logger) *Producer {
	return &Producer{
		producer: producer,
		metrics:  m,
		logger:   logger,
	}
}

// Publish wraps payload in an envelope and sends it to topic
func (p *Producer) Publish(ctx context.Context, topic, key string, payload any) error {
	start := time.Now()

	envelope, err := events.NewEnvelope(topic, payload, start)
	if err != nil {
		return err
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(envelope.EventID)},
		},
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		p.metrics.RecordKafkaError(topic)
		p.logger.Error().Err(err).Str("topic", topic).Msg("Failed to send Kafka message")
		return err
	}

	p.metrics.RecordKafkaMessage(topic, time.Since(start).Seconds())
	p.logger.Debug().
		Str("topic", topic).
		Str("event_id", envelope.EventID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Kafka message sent successfully")

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		p.logger.Error().Err(err).Msg("Failed to close Kafka producer")
		return err
	}
	p.logger.Info().Msg("Kafka producer closed successfully")
	return nil
}
