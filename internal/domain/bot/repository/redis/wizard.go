// Package redis stores bot conversation state in Redis
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/ibrohimkomilov001-web/kinobot/config"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/entities"
	boterrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/errors"
)

// jsonStore is the part of the infrastructure redis client used here
type jsonStore interface {
	Key(parts ...string) string
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

// WizardStore keeps one wizard per user with a sliding TTL
type WizardStore struct {
	store  jsonStore
	ttl    time.Duration
	logger zerolog.Logger
}

// NewWizardStore creates a Redis backed wizard store
func NewWizardStore(store jsonStore, cfg *config.RedisConfig, logger zerolog.Logger) *WizardStore {
	return &WizardStore{
		store:  store,
		ttl:    cfg.WizardTTL,
		logger: logger,
	}
}

func (s *WizardStore) key(userID int64) string {
	return s.store.Key("wizard", strconv.FormatInt(userID, 10))
}

// Get returns nil when no wizard is stored or it expired
func (s *WizardStore) Get(ctx context.Context, userID int64) (*entities.Wizard, error) {
	var wizard entities.Wizard
	found, err := s.store.GetJSON(ctx, s.key(userID), &wizard)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to load wizard")
		return nil, fmt.Errorf("%w: %w", boterrors.ErrWizardStore, err)
	}
	if !found {
		return nil, nil
	}
	return &wizard, nil
}

// Save stores the wizard and restarts its TTL
func (s *WizardStore) Save(ctx context.Context, userID int64, wizard *entities.Wizard) error {
	if err := s.store.SetJSON(ctx, s.key(userID), wizard, s.ttl); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to save wizard")
		return fmt.Errorf("%w: %w", boterrors.ErrWizardStore, err)
	}
	return nil
}

// Clear removes the wizard of userID
func (s *WizardStore) Clear(ctx context.Context, userID int64) error {
	if err := s.store.Del(ctx, s.key(userID)); err != nil {
		return fmt.Errorf("%w: %w", boterrors.ErrWizardStore, err)
	}
	return nil
}
