package telegram

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/ibrohimkomilov001-web/kinobot/config"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/metrics"
)

// Module provides Telegram bot and membership oracle for fx dependency injection
var Module = fx.Module("telegram",
	fx.Provide(provideBot),
	fx.Provide(provideOracle),
	fx.Invoke(registerLifecycle),
)

func provideBot(cfg *config.TelegramConfig, logger zerolog.Logger) (*Bot, error) {
	return NewBot(cfg.BotToken, logger)
}

func provideOracle(bot *Bot, cfg *config.TelegramConfig, m *metrics.Metrics, logger zerolog.Logger) *Oracle {
	return NewOracle(bot.Raw(), cfg, m, logger.With().Str("component", "membership-oracle").Logger())
}

// registerLifecycle registers bot lifecycle hooks
func registerLifecycle(lc fx.Lifecycle, bot *Bot) {
	var cancel context.CancelFunc

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())

			// Start is blocking
			go func() {
				_ = bot.Start(ctx)
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			if cancel != nil {
				cancel()
			}
			return bot.Stop()
		},
	})
}
