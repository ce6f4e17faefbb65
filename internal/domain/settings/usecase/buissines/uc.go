// Package buissines contains business logic for the settings domain
package buissines

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	adminentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/settings/deps"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/settings/entities"
	settingserrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/settings/errors"
)

// UseCase builds typed settings snapshots. Every call reads the store again.
type UseCase struct {
	repo        deps.SettingsRepository
	permissions deps.PermissionChecker
	logger      zerolog.Logger
}

// NewUseCase creates a new UseCase instance
func NewUseCase(repo deps.SettingsRepository, permissions deps.PermissionChecker, logger zerolog.Logger) *UseCase {
	return &UseCase{
		repo:        repo,
		permissions: permissions,
		logger:      logger,
	}
}

// GateConfig returns the current gate settings
func (uc *UseCase) GateConfig(ctx context.Context) (entities.GateConfig, error) {
	values, err := uc.load(ctx)
	if err != nil {
		return entities.GateConfig{}, err
	}
	return entities.GateConfig{
		Enabled: values.flag(entities.KeySubscriptionEnabled),
	}, nil
}

// LedgerConfig returns the current referral settings
func (uc *UseCase) LedgerConfig(ctx context.Context) (entities.LedgerConfig, error) {
	values, err := uc.load(ctx)
	if err != nil {
		return entities.LedgerConfig{}, err
	}
	return entities.LedgerConfig{
		Enabled:       values.flag(entities.KeyReferralEnabled),
		Bonus:         values.amount(entities.KeyReferralBonus),
		MinWithdrawal: values.amount(entities.KeyMinWithdrawal),
	}, nil
}

// PaymentConfig returns the current premium purchase settings
func (uc *UseCase) PaymentConfig(ctx context.Context) (entities.PaymentConfig, error) {
	values, err := uc.load(ctx)
	if err != nil {
		return entities.PaymentConfig{}, err
	}
	return entities.PaymentConfig{
		PremiumEnabled: values.flag(entities.KeyPremiumEnabled),
		Card:           values[entities.KeyPaymentCard],
	}, nil
}

// Set validates and stores one setting on behalf of an admin with the settings capability
func (uc *UseCase) Set(ctx context.Context, actorID int64, key, value string) error {
	if err := uc.permissions.Require(ctx, actorID, adminentities.CapabilitySettings); err != nil {
		return err
	}

	def, ok := entities.Lookup(key)
	if !ok {
		return settingserrors.ErrUnknownSetting
	}

	value = strings.TrimSpace(value)
	switch def.Kind {
	case entities.KindBool:
		if value != "0" && value != "1" {
			return settingserrors.ErrInvalidBool
		}
	case entities.KindAmount:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 0 {
			return settingserrors.ErrInvalidAmount
		}
		value = strconv.FormatInt(n, 10)
	}

	if err := uc.repo.Set(ctx, key, value); err != nil {
		return err
	}

	uc.logger.Info().
		Int64("actor_id", actorID).
		Str("key", key).
		Str("value", value).
		Msg("Setting changed")

	return nil
}

// SetEnabled stores a boolean setting
func (uc *UseCase) SetEnabled(ctx context.Context, actorID int64, key string, enabled bool) error {
	value := "0"
	if enabled {
		value = "1"
	}
	return uc.Set(ctx, actorID, key, value)
}

type settingValues map[string]string

func (uc *UseCase) load(ctx context.Context) (settingValues, error) {
	stored, err := uc.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make(settingValues, len(entities.Definitions))
	for _, def := range entities.Definitions {
		out[def.Key] = def.Default
		if v, ok := stored[def.Key]; ok {
			out[def.Key] = v
		}
	}
	return out, nil
}

func (v settingValues) flag(key string) bool {
	return v[key] == "1"
}

// amount falls back to the default when a stored value is malformed
func (v settingValues) amount(key string) int64 {
	n, err := strconv.ParseInt(v[key], 10, 64)
	if err != nil || n < 0 {
		def, _ := entities.Lookup(key)
		n, _ = strconv.ParseInt(def.Default, 10, 64)
	}
	return n
}
