// Package kafka contains Kafka delivery handlers
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/events"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/metrics"
)

// Notifier delivers the Telegram messages that follow a domain event
type Notifier interface {
	Notify(ctx context.Context, env *events.Envelope) error
}

// Handlers contains Kafka message handlers
type Handlers struct {
	notifier Notifier
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewHandlers creates new Kafka handlers
func NewHandlers(notifier Notifier, m *metrics.Metrics, logger zerolog.Logger) *Handlers {
	return &Handlers{
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// HandleEvent decodes an event envelope and sends its notifications
func (h *Handlers) HandleEvent(ctx context.Context, msg kafka.Message) error {
	start := time.Now()

	var env events.Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		h.metrics.RecordKafkaError(msg.Topic)
		h.logger.Error().Err(err).Str("topic", msg.Topic).Str("data", string(msg.Value)).Msg("Failed to unmarshal event envelope")
		return fmt.Errorf("unmarshal envelope from %s: %w", msg.Topic, err)
	}
	if env.Type == "" {
		env.Type = msg.Topic
	}

	h.logger.Info().
		Str("event_id", env.EventID).
		Str("type", env.Type).
		Msg("Processing event")

	if err := h.notifier.Notify(ctx, &env); err != nil {
		h.metrics.RecordKafkaError(msg.Topic)
		h.logger.Error().Err(err).Str("event_id", env.EventID).Msg("Failed to send notifications")
		return err
	}

	h.metrics.RecordKafkaMessage(msg.Topic, time.Since(start).Seconds())
	return nil
}
