// Package buissines contains business logic for the subscription gate
package buissines

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	adminentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/deps"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/dto"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/entities"
	gateerrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/errors"
	settingsentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/settings/entities"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/metrics"
	pkgerrors "github.com/ibrohimkomilov001-web/kinobot/pkg/errors"
)

// Gate check outcomes recorded in metrics
const (
	resultPremium   = "premium"
	resultDisabled  = "disabled"
	resultSatisfied = "satisfied"
	resultBlocked   = "blocked"
)

// UseCase decides whether a user has joined every required channel
type UseCase struct {
	channels     deps.ChannelRepository
	joinRequests deps.JoinRequestRepository
	oracle       deps.MembershipOracle
	premium      deps.PremiumChecker
	permissions  deps.PermissionChecker
	settings     deps.SettingsWriter
	validate     *validator.Validate
	metrics      *metrics.Metrics
	now          func() time.Time
	logger       zerolog.Logger
}

// NewUseCase creates a new UseCase instance
func NewUseCase(
	channels deps.ChannelRepository,
	joinRequests deps.JoinRequestRepository,
	oracle deps.MembershipOracle,
	premium deps.PremiumChecker,
	permissions deps.PermissionChecker,
	settings deps.SettingsWriter,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		channels:     channels,
		joinRequests: joinRequests,
		oracle:       oracle,
		premium:      premium,
		permissions:  permissions,
		settings:     settings,
		validate:     validator.New(),
		metrics:      m,
		now:          time.Now,
		logger:       logger,
	}
}

// IsSatisfied reports whether userID may use the bot.
// Evaluation stops at the first unsatisfied channel.
func (uc *UseCase) IsSatisfied(ctx context.Context, cfg settingsentities.GateConfig, userID int64) (bool, error) {
	bypass, err := uc.bypass(ctx, cfg, userID)
	if err != nil || bypass {
		return bypass, err
	}

	channels, err := uc.channels.ListActive(ctx)
	if err != nil {
		return false, err
	}

	for _, ch := range channels {
		ok, err := uc.channelSatisfied(ctx, ch, userID)
		if err != nil {
			return false, err
		}
		if !ok {
			uc.metrics.RecordGateCheck(resultBlocked)
			return false, nil
		}
	}

	uc.metrics.RecordGateCheck(resultSatisfied)
	return true, nil
}

// UnsatisfiedChannels evaluates every active channel and returns the ones the user still has to join.
// External links are never part of the result.
func (uc *UseCase) UnsatisfiedChannels(ctx context.Context, cfg settingsentities.GateConfig, userID int64) ([]entities.Channel, error) {
	bypass, err := uc.bypass(ctx, cfg, userID)
	if err != nil || bypass {
		return nil, err
	}

	channels, err := uc.channels.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var missing []entities.Channel
	for _, ch := range channels {
		ok, err := uc.channelSatisfied(ctx, ch, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, ch)
		}
	}
	return missing, nil
}

// PromptChannels returns what the join prompt shows: unsatisfied channels plus promotional external links
func (uc *UseCase) PromptChannels(ctx context.Context, cfg settingsentities.GateConfig, userID int64) ([]dto.ChannelStatus, error) {
	missing, err := uc.UnsatisfiedChannels(ctx, cfg, userID)
	if err != nil {
		return nil, err
	}
	if len(missing) == 0 {
		return nil, nil
	}

	channels, err := uc.channels.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	missingIDs := make(map[string]struct{}, len(missing))
	for _, ch := range missing {
		missingIDs[ch.ChannelID] = struct{}{}
	}

	var prompt []dto.ChannelStatus
	for _, ch := range channels {
		_, isMissing := missingIDs[ch.ChannelID]
		if !isMissing && !ch.IsExternalLink {
			continue
		}
		prompt = append(prompt, dto.ChannelStatus{
			ChannelID: ch.ChannelID,
			Title:     ch.Title,
			URL:       ch.JoinURL(),
			External:  ch.IsExternalLink,
		})
	}
	return prompt, nil
}

// RecordJoinRequest stores proof that userID asked to join a request-group channel
func (uc *UseCase) RecordJoinRequest(ctx context.Context, userID int64, channelID string) error {
	if err := uc.joinRequests.Upsert(ctx, userID, channelID, uc.now()); err != nil {
		return err
	}

	uc.logger.Info().
		Int64("user_id", userID).
		Str("channel_id", channelID).
		Msg("Join request recorded")
	return nil
}

// DeleteJoinRequest removes a recorded join request
func (uc *UseCase) DeleteJoinRequest(ctx context.Context, userID int64, channelID string) error {
	return uc.joinRequests.Delete(ctx, userID, channelID)
}

// AddChannel adds or reactivates a gating channel
func (uc *UseCase) AddChannel(ctx context.Context, actorID int64, req *dto.AddChannelRequest) (*entities.Channel, error) {
	if err := uc.permissions.Require(ctx, actorID, adminentities.CapabilityChannels); err != nil {
		return nil, err
	}

	req.ChannelID = strings.TrimSpace(req.ChannelID)
	if req.IsExternalLink && req.ChannelID == "" {
		req.ChannelID = req.URL
	}
	if err := uc.validate.Struct(req); err != nil {
		return nil, toValidationError(err)
	}
	if req.IsRequestGroup && req.IsExternalLink {
		return nil, gateerrors.ErrConflictingFlags
	}

	channel := &entities.Channel{
		ChannelID:      req.ChannelID,
		Title:          req.Title,
		URL:            req.URL,
		InviteLink:     req.InviteLink,
		IsRequestGroup: req.IsRequestGroup,
		IsExternalLink: req.IsExternalLink,
	}
	if err := uc.channels.Upsert(ctx, channel); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Int64("actor_id", actorID).
		Str("channel_id", channel.ChannelID).
		Bool("request_group", channel.IsRequestGroup).
		Bool("external", channel.IsExternalLink).
		Msg("Channel added")

	return channel, nil
}

// DeactivateChannel soft-deletes a gating channel
func (uc *UseCase) DeactivateChannel(ctx context.Context, actorID int64, channelID string) error {
	if err := uc.permissions.Require(ctx, actorID, adminentities.CapabilityChannels); err != nil {
		return err
	}
	if err := uc.channels.Deactivate(ctx, channelID); err != nil {
		return err
	}

	uc.logger.Info().
		Int64("actor_id", actorID).
		Str("channel_id", channelID).
		Msg("Channel deactivated")
	return nil
}

// ListChannels returns every channel for the admin panel
func (uc *UseCase) ListChannels(ctx context.Context, actorID int64) ([]entities.Channel, error) {
	if err := uc.permissions.Require(ctx, actorID, adminentities.CapabilityChannels); err != nil {
		return nil, err
	}
	return uc.channels.List(ctx)
}

// SetEnabled turns subscription gating on or off globally
func (uc *UseCase) SetEnabled(ctx context.Context, actorID int64, enabled bool) error {
	return uc.settings.SetEnabled(ctx, actorID, settingsentities.KeySubscriptionEnabled, enabled)
}

func (uc *UseCase) bypass(ctx context.Context, cfg settingsentities.GateConfig, userID int64) (bool, error) {
	premium, err := uc.premium.IsCurrentlyPremium(ctx, userID)
	if err != nil {
		return false, err
	}
	if premium {
		uc.metrics.RecordGateCheck(resultPremium)
		return true, nil
	}
	if !cfg.Enabled {
		uc.metrics.RecordGateCheck(resultDisabled)
		return true, nil
	}
	return false, nil
}

// channelSatisfied evaluates one channel. Oracle failures count as not satisfied.
func (uc *UseCase) channelSatisfied(ctx context.Context, ch entities.Channel, userID int64) (bool, error) {
	switch {
	case ch.IsExternalLink:
		return true, nil
	case ch.IsRequestGroup:
		return uc.joinRequests.Exists(ctx, userID, ch.ChannelID)
	}

	status, err := uc.oracle.GetMembershipStatus(ctx, ch.ChannelID, userID)
	if err != nil {
		uc.logger.Warn().Err(err).
			Int64("user_id", userID).
			Str("channel_id", ch.ChannelID).
			Msg("Membership check failed, treating channel as not joined")
		return false, nil
	}
	return status.Satisfies(), nil
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return pkgerrors.NewValidationError(fmt.Sprintf("invalid channel: %s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return gateerrors.ErrInvalidChannel
}
