// Package ledger contains the referral ledger domain module
package ledger

import (
	"go.uber.org/fx"

	adminbuissines "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/usecase/buissines"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/deps"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/repository/postgres"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/usecase/buissines"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/kafka"
)

// Module provides referral ledger components for fx dependency injection
var Module = fx.Module("ledger",
	fx.Provide(postgres.NewRepository),
	fx.Provide(NewEventPublisher, NewPermissionChecker),
	fx.Provide(buissines.NewUseCase),
)

func NewEventPublisher(producer *kafka.Producer) deps.EventPublisher {
	return producer
}

func NewPermissionChecker(uc *adminbuissines.UseCase) deps.PermissionChecker {
	return uc
}
