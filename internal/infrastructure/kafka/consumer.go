package kafka

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/ibrohimkomilov001-web/kinobot/config"
)

const (
	minBytes = 1    // read messages immediately
	maxBytes = 10e6 // 10MB
)

// MessageHandler processes one fetched message
type MessageHandler func(ctx context.Context, msg kafka.Message) error

// Consumer reads a consumer group over several topics with kafka-go
type Consumer struct {
	reader  *kafka.Reader
	handler MessageHandler
	logger  zerolog.Logger
	done    chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewConsumer creates a consumer for topics in the group cfg.GroupID+suffix
func NewConsumer(cfg *config.KafkaConfig, suffix string, topics []string, handler MessageHandler, logger zerolog.Logger) *Consumer {
	groupID := cfg.GroupID + suffix

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     groupID,
		GroupTopics: topics,
		MinBytes:    minBytes,
		MaxBytes:    maxBytes,
		MaxWait:     3 * time.Second,
		StartOffset: kafka.FirstOffset,
	})

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Strs("topics", topics).
		Str("group_id", groupID).
		Msg("Kafka consumer initialized")

	ctx, cancel := context.WithCancel(context.Background())

	return &Consumer{
		reader:  reader,
		handler: handler,
		logger:  logger,
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start starts consuming in a goroutine
func (c *Consumer) Start() {
	go c.consume()
	c.logger.Info().Msg("Kafka consumer started")
}

func (c *Consumer) consume() {
	for {
		select {
		case <-c.ctx.Done():
			c.logger.Info().Msg("Consumer context canceled, stopping")
			return
		case <-c.done:
			c.logger.Info().Msg("Consumer received stop signal")
			return
		default:
			msg, err := c.reader.FetchMessage(c.ctx)
			if err != nil {
				if c.ctx.Err() != nil {
					return
				}
				c.logger.Error().Err(err).Msg("Failed to fetch message")
				continue
			}

			c.logger.Debug().
				Str("topic", msg.Topic).
				Int("partition", msg.Partition).
				Int64("offset", msg.Offset).
				Msg("Received message from Kafka")

			// handler errors are logged and the message is committed; events are notifications only
			if err := c.handler(c.ctx, msg); err != nil {
				c.logger.Error().Err(err).
					Str("topic", msg.Topic).
					Int64("offset", msg.Offset).
					Msg("Failed to handle message")
			}

			if err := c.reader.CommitMessages(c.ctx, msg); err != nil {
				c.logger.Error().Err(err).
					Int64("offset", msg.Offset).
					Msg("Failed to commit message")
			}
		}
	}
}

// Stop cancels consumption and closes the reader
func (c *Consumer) Stop() error {
	c.cancel()
	close(c.done)

	if err := c.reader.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Failed to close Kafka consumer")
		return err
	}

	c.logger.Info().Msg("Kafka consumer stopped")
	return nil
}
