// Package gate contains the subscription gate domain module
package gate

import (
	"go.uber.org/fx"

	adminbuissines "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/usecase/buissines"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/deps"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/repository/postgres"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/usecase/buissines"
	premiumbuissines "github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/usecase/buissines"
	settingsbuissines "github.com/ibrohimkomilov001-web/kinobot/internal/domain/settings/usecase/buissines"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/telegram"
)

// Module provides subscription gate components for fx dependency injection
var Module = fx.Module("gate",
	fx.Provide(postgres.NewChannelRepository),
	fx.Provide(postgres.NewJoinRequestRepository),
	fx.Provide(
		NewMembershipOracle,
		NewPremiumChecker,
		NewPermissionChecker,
		NewSettingsWriter,
	),
	fx.Provide(buissines.NewUseCase),
)

func NewMembershipOracle(oracle *telegram.Oracle) deps.MembershipOracle {
	return oracle
}

func NewPremiumChecker(uc *premiumbuissines.UseCase) deps.PremiumChecker {
	return uc
}

func NewPermissionChecker(uc *adminbuissines.UseCase) deps.PermissionChecker {
	return uc
}

func NewSettingsWriter(uc *settingsbuissines.UseCase) deps.SettingsWriter {
	return uc
}
