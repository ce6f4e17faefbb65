// Package workers contains background workers for the bot domain
package workers

import (
	"github.com/rs/zerolog"

	"github.com/ibrohimkomilov001-web/kinobot/config"
	kafkaHandlers "github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/delivery/kafka"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/events"
	kafkainfra "github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/kafka"
)

const notificationGroupSuffix = "-notifications"

// NotificationConsumer reads domain events and turns them into Telegram messages
type NotificationConsumer struct {
	consumer *kafkainfra.Consumer
	logger   zerolog.Logger
}

// NewNotificationConsumer creates the consumer over every notification topic
func NewNotificationConsumer(cfg *config.KafkaConfig, handlers *kafkaHandlers.Handlers, logger zerolog.Logger) *NotificationConsumer {
	logger = logger.With().Str("component", "notification-consumer").Logger()
	return &NotificationConsumer{
		consumer: kafkainfra.NewConsumer(cfg, notificationGroupSuffix, events.NotificationTopics, handlers.HandleEvent, logger),
		logger:   logger,
	}
}

// Start starts consuming in the background
func (c *NotificationConsumer) Start() {
	c.logger.Info().Strs("topics", events.NotificationTopics).Msg("Starting notification consumer...")
	c.consumer.Start()
}

// Stop stops consuming and closes the reader
func (c *NotificationConsumer) Stop() error {
	return c.consumer.Stop()
}
