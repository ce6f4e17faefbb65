// Package buissines contains business logic for the referral ledger
package buissines

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	adminentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/events"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/deps"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/dto"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/entities"
	ledgererrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/errors"
	settingsentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/settings/entities"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/metrics"
	pkgerrors "github.com/ibrohimkomilov001-web/kinobot/pkg/errors"
)

const (
	historyLimit = 10
	topLimit     = 10
)

// UseCase implements the referral ledger
type UseCase struct {
	repo        deps.LedgerRepository
	publisher   deps.EventPublisher
	permissions deps.PermissionChecker
	validate    *validator.Validate
	metrics     *metrics.Metrics
	now         func() time.Time
	logger      zerolog.Logger
}

// NewUseCase creates a new UseCase instance
func NewUseCase(
	repo deps.LedgerRepository,
	publisher deps.EventPublisher,
	permissions deps.PermissionChecker,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		repo:        repo,
		publisher:   publisher,
		permissions: permissions,
		validate:    validator.New(),
		metrics:     m,
		now:         time.Now,
		logger:      logger,
	}
}

// RegisterReferral creates the user on first contact and credits the referrer.
// Returns true only when the user did not exist before.
func (uc *UseCase) RegisterReferral(ctx context.Context, cfg settingsentities.LedgerConfig, user entities.NewUser, referrerID *int64) (bool, error) {
	if user.UserID <= 0 {
		return false, pkgerrors.NewValidationError("user id must be positive")
	}
	if referrerID != nil && *referrerID == user.UserID {
		referrerID = nil
	}

	var bonus int64
	if referrerID != nil && cfg.Enabled {
		bonus = cfg.Bonus
	}

	record := &entities.User{
		UserID:     user.UserID,
		FullName:   user.FullName,
		Username:   user.Username,
		ReferredBy: referrerID,
		JoinedAt:   uc.now(),
	}

	reg, err := uc.repo.Register(ctx, record, bonus)
	if err != nil {
		uc.metrics.RecordLedgerError("register", pkgerrors.TypeOf(err).String())
		return false, err
	}
	if !reg.Created {
		return false, nil
	}

	if !reg.Credited {
		uc.metrics.RecordRegistration(0)
		if bonus > 0 {
			uc.logger.Warn().
				Int64("user_id", user.UserID).
				Int64("referrer_id", *referrerID).
				Msg("Referrer is unknown, bonus not credited")
		}
		return true, nil
	}

	uc.metrics.RecordRegistration(bonus)
	uc.logger.Info().
		Int64("user_id", user.UserID).
		Int64("referrer_id", *referrerID).
		Int64("bonus", bonus).
		Msg("Referral bonus credited")

	uc.publish(ctx, events.TopicReferralCredited, *referrerID, events.ReferralCredited{
		ReferrerID:   *referrerID,
		ReferredID:   user.UserID,
		ReferredName: user.FullName,
		Bonus:        bonus,
	})

	return true, nil
}

// CheckWithdrawalEligibility validates a payout against the current settings.
// Callers run it immediately before RequestWithdrawal.
func (uc *UseCase) CheckWithdrawalEligibility(ctx context.Context, cfg settingsentities.LedgerConfig, userID, amount int64) error {
	if amount <= 0 {
		return ledgererrors.ErrInvalidAmount
	}
	if amount < cfg.MinWithdrawal {
		return pkgerrors.NewValidationError("minimum withdrawal is " + strconv.FormatInt(cfg.MinWithdrawal, 10))
	}

	balance, err := uc.repo.Balance(ctx, userID)
	if err != nil {
		return err
	}
	if balance < amount {
		return ledgererrors.ErrInsufficientBalance
	}
	return nil
}

// RequestWithdrawal debits amount and creates a pending payout request in one step
func (uc *UseCase) RequestWithdrawal(ctx context.Context, userID, amount int64, card string) (*entities.WithdrawalRequest, error) {
	input := dto.WithdrawalInput{UserID: userID, Amount: amount, Card: card}
	if err := uc.validate.Struct(input); err != nil {
		return nil, withdrawalValidationError(err)
	}

	normalized, ok := entities.NormalizeCard(input.Card)
	if !ok {
		return nil, ledgererrors.ErrInvalidCard
	}

	request := &entities.WithdrawalRequest{
		UserID:     userID,
		Amount:     amount,
		CardNumber: normalized,
		CreatedAt:  uc.now(),
	}
	if err := uc.repo.CreateWithdrawal(ctx, request); err != nil {
		uc.metrics.RecordLedgerError("request_withdrawal", pkgerrors.TypeOf(err).String())
		return nil, err
	}

	uc.metrics.RecordWithdrawalRequested(amount)
	uc.logger.Info().
		Uint("request_id", request.ID).
		Int64("user_id", userID).
		Int64("amount", amount).
		Msg("Withdrawal requested")

	uc.publish(ctx, events.TopicWithdrawalRequested, userID, events.WithdrawalRequested{
		RequestID:  request.ID,
		UserID:     userID,
		Amount:     amount,
		CardMasked: entities.MaskCard(normalized),
	})

	return request, nil
}

// ApproveWithdrawal finalizes a pending request. The balance was already debited.
func (uc *UseCase) ApproveWithdrawal(ctx context.Context, requestID uint, adminID int64) (*entities.WithdrawalRequest, error) {
	return uc.resolve(ctx, requestID, adminID, entities.WithdrawalApproved, uc.repo.ApproveWithdrawal)
}

// RejectWithdrawal closes a pending request and refunds its amount
func (uc *UseCase) RejectWithdrawal(ctx context.Context, requestID uint, adminID int64) (*entities.WithdrawalRequest, error) {
	return uc.resolve(ctx, requestID, adminID, entities.WithdrawalRejected, uc.repo.RejectWithdrawal)
}

type resolveFunc func(ctx context.Context, requestID uint, adminID int64, at time.Time) (*entities.WithdrawalRequest, error)

func (uc *UseCase) resolve(ctx context.Context, requestID uint, adminID int64, status entities.WithdrawalStatus, apply resolveFunc) (*entities.WithdrawalRequest, error) {
	if err := uc.permissions.RequireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	request, err := apply(ctx, requestID, adminID, uc.now())
	if err != nil {
		uc.metrics.RecordLedgerError(string(status), pkgerrors.TypeOf(err).String())
		return nil, err
	}

	uc.metrics.RecordWithdrawalResolved(string(status))
	uc.logger.Info().
		Uint("request_id", requestID).
		Int64("admin_id", adminID).
		Int64("user_id", request.UserID).
		Str("status", string(status)).
		Msg("Withdrawal resolved")

	uc.publish(ctx, events.TopicWithdrawalResolved, request.UserID, events.WithdrawalResolved{
		RequestID: request.ID,
		UserID:    request.UserID,
		Amount:    request.Amount,
		Status:    string(status),
		AdminID:   adminID,
	})

	return request, nil
}

// GetUser returns a registered user
func (uc *UseCase) GetUser(ctx context.Context, userID int64) (*entities.User, error) {
	return uc.repo.GetUser(ctx, userID)
}

// Balance returns the user's referral balance
func (uc *UseCase) Balance(ctx context.Context, userID int64) (int64, error) {
	return uc.repo.Balance(ctx, userID)
}

// ReferralCount returns how many users were credited to referrerID
func (uc *UseCase) ReferralCount(ctx context.Context, referrerID int64) (int64, error) {
	return uc.repo.ReferralCount(ctx, referrerID)
}

// BalanceInfo collects everything the balance screen shows
func (uc *UseCase) BalanceInfo(ctx context.Context, cfg settingsentities.LedgerConfig, userID int64) (*dto.BalanceInfo, error) {
	balance, err := uc.repo.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	count, err := uc.repo.ReferralCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceInfo{
		Balance:       balance,
		ReferralCount: count,
		Bonus:         cfg.Bonus,
		MinWithdrawal: cfg.MinWithdrawal,
	}, nil
}

// UserWithdrawals returns the latest payout requests of userID
func (uc *UseCase) UserWithdrawals(ctx context.Context, userID int64) ([]entities.WithdrawalRequest, error) {
	return uc.repo.UserWithdrawals(ctx, userID, historyLimit)
}

// PendingWithdrawals returns requests waiting for an admin decision
func (uc *UseCase) PendingWithdrawals(ctx context.Context, actorID int64) ([]entities.WithdrawalRequest, error) {
	if err := uc.permissions.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return uc.repo.PendingWithdrawals(ctx)
}

// Stats returns referral and payout totals
func (uc *UseCase) Stats(ctx context.Context, actorID int64) (*entities.Stats, error) {
	if err := uc.permissions.Require(ctx, actorID, adminentities.CapabilityStats); err != nil {
		return nil, err
	}
	return uc.repo.Stats(ctx, topLimit)
}

func withdrawalValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Field() {
		case "Amount":
			return ledgererrors.ErrInvalidAmount
		case "Card":
			return ledgererrors.ErrInvalidCard
		}
	}
	return pkgerrors.NewValidationError("invalid withdrawal request")
}

// publish sends an event after the owning transaction committed. Failures are only logged.
func (uc *UseCase) publish(ctx context.Context, topic string, key int64, payload any) {
	if err := uc.publisher.Publish(ctx, topic, strconv.FormatInt(key, 10), payload); err != nil {
		uc.logger.Error().Err(err).Str("topic", topic).Msg("Failed to publish ledger event")
	}
}
