// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/ibrohimkomilov001-web/kinobot/config"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, metrics, database, redis, kafka, telegram, scheduler, http)
		infrastructure.Module,

		// Domain (admin, settings, premium, gate, ledger, bot)
		domain.Module,
	)
}
