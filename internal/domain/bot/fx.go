// Package bot contains the bot domain module
package bot

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/ibrohimkomilov001-web/kinobot/config"
	adminbuissines "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/usecase/buissines"
	kafkaDelivery "github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/delivery/kafka"
	telegramDelivery "github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/delivery/telegram"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/deps"
	redisRepo "github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/repository/redis"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/usecase/buissines"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/workers"
	gatebuissines "github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/usecase/buissines"
	ledgerbuissines "github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/usecase/buissines"
	premiumbuissines "github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/usecase/buissines"
	settingsbuissines "github.com/ibrohimkomilov001-web/kinobot/internal/domain/settings/usecase/buissines"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/metrics"
	redisinfra "github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/redis"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/telegram"
	pkgerrors "github.com/ibrohimkomilov001-web/kinobot/pkg/errors"
)

// Module provides bot domain components for fx dependency injection
var Module = fx.Module("bot",
	// Repository
	fx.Provide(provideWizardStore),

	// Other domains seen through the bot's interfaces
	fx.Provide(
		NewSettingsProvider,
		NewGate,
		NewLedger,
		NewPremium,
		NewAdmins,
	),

	// UseCase
	fx.Provide(buissines.NewUseCase),

	// Delivery - Telegram (needs raw bot from infrastructure)
	fx.Provide(pkgerrors.NewMapper),
	fx.Provide(provideTelegramHandlers),
	fx.Provide(telegramDelivery.NewRouter),

	// Delivery - Kafka
	fx.Provide(provideKafkaHandlers),

	// Workers
	workers.Module,

	// Wire cyclic dependency and register routes
	fx.Invoke(wireAndRegister),
)

func provideWizardStore(client *redisinfra.Client, cfg *config.RedisConfig, logger zerolog.Logger) deps.WizardStore {
	return redisRepo.NewWizardStore(client, cfg, logger.With().Str("component", "wizard-store").Logger())
}

func NewSettingsProvider(uc *settingsbuissines.UseCase) deps.SettingsProvider {
	return uc
}

func NewGate(uc *gatebuissines.UseCase) deps.Gate {
	return uc
}

func NewLedger(uc *ledgerbuissines.UseCase) deps.Ledger {
	return uc
}

func NewPremium(uc *premiumbuissines.UseCase) deps.Premium {
	return uc
}

func NewAdmins(uc *adminbuissines.UseCase) deps.Admins {
	return uc
}

// provideTelegramHandlers creates Telegram handlers with raw bot
func provideTelegramHandlers(uc *buissines.UseCase, bot *telegram.Bot, mapper *pkgerrors.Mapper, logger zerolog.Logger) *telegramDelivery.Handlers {
	return telegramDelivery.NewHandlers(uc, bot.Raw(), mapper, logger.With().Str("component", "telegram-handlers").Logger())
}

func provideKafkaHandlers(uc *buissines.UseCase, m *metrics.Metrics, logger zerolog.Logger) *kafkaDelivery.Handlers {
	return kafkaDelivery.NewHandlers(uc, m, logger.With().Str("component", "notification-handlers").Logger())
}

// wireAndRegister resolves cyclic dependency and registers routes
func wireAndRegister(
	uc *buissines.UseCase,
	handlers *telegramDelivery.Handlers,
	router *telegramDelivery.Router,
	bot *telegram.Bot,
) {
	// Handlers implements deps.TelegramSender interface
	// This resolves the cyclic dependency: UseCase -> TelegramSender <- Handlers -> UseCase
	uc.SetSender(handlers)

	// Register Telegram command routes
	router.RegisterRoutes(bot.Raw())
	bot.SetFallback(handlers.HandleUnmatched)
}
