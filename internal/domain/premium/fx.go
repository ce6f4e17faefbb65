// Package premium contains the premium subscription domain module
package premium

import (
	"go.uber.org/fx"

	adminbuissines "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/usecase/buissines"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/deps"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/repository/postgres"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/usecase/buissines"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/workers"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/kafka"
)

// Module provides premium domain components for fx dependency injection
var Module = fx.Module("premium",
	fx.Provide(postgres.NewRepository),
	fx.Provide(NewEventPublisher, NewPermissionChecker),
	fx.Provide(buissines.NewUseCase),
	workers.Module,
)

func NewEventPublisher(producer *kafka.Producer) deps.EventPublisher {
	return producer
}

func NewPermissionChecker(uc *adminbuissines.UseCase) deps.PermissionChecker {
	return uc
}
