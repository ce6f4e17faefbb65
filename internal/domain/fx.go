// Package domain contains all domain modules
package domain

import (
	"go.uber.org/fx"

	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/settings"
)

// Module aggregates all domain modules for fx dependency injection
var Module = fx.Module("domain",
	admin.Module,
	settings.Module,
	premium.Module,
	gate.Module,
	ledger.Module,
	bot.Module,
)
