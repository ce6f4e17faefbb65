// Package admin contains the admin permission domain module
package admin

import (
	"go.uber.org/fx"

	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/repository/postgres"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/usecase/buissines"
)

// Module provides admin domain components for fx dependency injection
var Module = fx.Module("admin",
	fx.Provide(postgres.NewRepository),
	fx.Provide(buissines.NewUseCase),
)
