// Package telegram contains Telegram bot infrastructure
package telegram

import (
	"context"
	"fmt"
	"sync/atomic"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
)

// Bot wraps the Telegram bot for infrastructure layer
type Bot struct {
	bot      *tgbot.Bot
	fallback atomic.Pointer[tgbot.HandlerFunc]
	logger   zerolog.Logger
}

// NewBot creates a new Telegram bot wrapper
func NewBot(token string, logger zerolog.Logger) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}

	b := &Bot{logger: logger}

	opts := []tgbot.Option{
		tgbot.WithDefaultHandler(b.defaultHandler),
	}

	bot, err := tgbot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	b.bot = bot

	logger.Info().Msg("Telegram bot created successfully")

	return b, nil
}

// Raw returns the underlying telegram bot for handler registration
func (b *Bot) Raw() *tgbot.Bot {
	return b.bot
}

// Start starts the bot (blocking call)
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info().Msg("Starting Telegram bot...")
	b.bot.Start(ctx)
	b.logger.Info().Msg("Telegram bot stopped")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() error {
	b.logger.Info().Msg("Stopping Telegram bot...")
	return nil
}

// SetFallback sets the handler for user messages no route matched.
// It must be called before Start.
func (b *Bot) SetFallback(handler tgbot.HandlerFunc) {
	b.fallback.Store(&handler)
}

// defaultHandler passes unmatched user messages to the fallback and drops other updates
func (b *Bot) defaultHandler(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		b.logger.Debug().Int64("update_id", update.ID).Msg("Unhandled update")
		return
	}

	fallback := b.fallback.Load()
	if fallback == nil {
		b.logger.Debug().Int64("update_id", update.ID).Msg("Unhandled message, no fallback set")
		return
	}
	(*fallback)(ctx, bot, update)
}
