// Package settings contains the bot settings domain module
package settings

import (
	"go.uber.org/fx"

	adminbuissines "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/usecase/buissines"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/settings/deps"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/settings/repository/postgres"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/settings/usecase/buissines"
)

// Module provides settings domain components for fx dependency injection
var Module = fx.Module("settings",
	fx.Provide(postgres.NewRepository),
	fx.Provide(NewPermissionChecker),
	fx.Provide(buissines.NewUseCase),
)

func NewPermissionChecker(uc *adminbuissines.UseCase) deps.PermissionChecker {
	return uc
}
