// Package buissines contains business logic for premium subscriptions
package buissines

import (
	"context"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	adminentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/events"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/deps"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/dto"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/entities"
	premiumerrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/errors"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/metrics"
)

// UseCase manages premium plans, subscriptions and purchase requests
type UseCase struct {
	repo        deps.PremiumRepository
	publisher   deps.EventPublisher
	permissions deps.PermissionChecker
	validate    *validator.Validate
	metrics     *metrics.Metrics
	now         func() time.Time
	logger      zerolog.Logger
}

// NewUseCase creates a new UseCase instance
func NewUseCase(
	repo deps.PremiumRepository,
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

// GrantOrExtend adds days of premium to userID. Time stacks onto a currently valid subscription.
func (uc *UseCase) GrantOrExtend(ctx context.Context, userID int64, planID *uint, days int) (*entities.Subscription, error) {
	if days <= 0 {
		return nil, premiumerrors.ErrInvalidDays
	}

	grant, err := uc.repo.GrantOrExtend(ctx, userID, planID, days, uc.now())
	if err != nil {
		return nil, err
	}

	uc.recordGrant(userID, days, grant)
	return &grant.Subscription, nil
}

// Grant is the admin command for gifting premium time
func (uc *UseCase) Grant(ctx context.Context, actorID, userID int64, days int) (*entities.Subscription, error) {
	if err := uc.permissions.Require(ctx, actorID, adminentities.CapabilityPremium); err != nil {
		return nil, err
	}
	return uc.GrantOrExtend(ctx, userID, nil, days)
}

// IsCurrentlyPremium reports whether userID holds a valid subscription right now
func (uc *UseCase) IsCurrentlyPremium(ctx context.Context, userID int64) (bool, error) {
	sub, err := uc.ActiveSubscription(ctx, userID)
	if err != nil {
		return false, err
	}
	return sub != nil, nil
}

// ActiveSubscription returns the valid subscription of userID, or nil
func (uc *UseCase) ActiveSubscription(ctx context.Context, userID int64) (*entities.Subscription, error) {
	subs, err := uc.repo.ActiveSubscriptions(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var current *entities.Subscription
	for i := range subs {
		if !subs[i].ValidAt(now) {
			continue
		}
		if current == nil || subs[i].EndDate.After(current.EndDate) {
			current = &subs[i]
		}
	}
	return current, nil
}

// CreatePlan adds a purchasable plan
func (uc *UseCase) CreatePlan(ctx context.Context, actorID int64, req *dto.CreatePlanRequest) (*entities.Plan, error) {
	if err := uc.permissions.Require(ctx, actorID, adminentities.CapabilityPremium); err != nil {
		return nil, err
	}
	if err := uc.validate.Struct(req); err != nil {
		return nil, premiumerrors.ErrInvalidPlan
	}

	plan := &entities.Plan{
		Name:         req.Name,
		DurationDays: req.DurationDays,
		Price:        req.Price,
		Description:  req.Description,
		IsActive:     true,
	}
	if err := uc.repo.CreatePlan(ctx, plan); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Int64("actor_id", actorID).
		Uint("plan_id", plan.ID).
		Int("days", plan.DurationDays).
		Int64("price", plan.Price).
		Msg("Premium plan created")

	return plan, nil
}

// DeactivatePlan hides a plan from purchase flows. Existing subscriptions are unaffected.
func (uc *UseCase) DeactivatePlan(ctx context.Context, actorID int64, planID uint) error {
	if err := uc.permissions.Require(ctx, actorID, adminentities.CapabilityPremium); err != nil {
		return err
	}
	return uc.repo.DeactivatePlan(ctx, planID)
}

// ListActivePlans returns plans available for purchase
func (uc *UseCase) ListActivePlans(ctx context.Context) ([]entities.Plan, error) {
	return uc.repo.ListActivePlans(ctx)
}

// GetPlan returns a plan by id
func (uc *UseCase) GetPlan(ctx context.Context, planID uint) (*entities.Plan, error) {
	return uc.repo.GetPlan(ctx, planID)
}

// SubmitRequest stores a payment receipt for an active plan
func (uc *UseCase) SubmitRequest(ctx context.Context, req *dto.SubmitRequest) (*entities.Request, error) {
	if err := uc.validate.Struct(req); err != nil {
		return nil, premiumerrors.ErrInvalidReceipt
	}

	plan, err := uc.repo.GetPlan(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, premiumerrors.ErrPlanInactive
	}

	request := &entities.Request{
		UserID:    req.UserID,
		PlanID:    plan.ID,
		FileID:    req.FileID,
		FileType:  req.FileType,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Uint("request_id", request.ID).
		Int64("user_id", req.UserID).
		Uint("plan_id", plan.ID).
		Msg("Premium request submitted")

	uc.publish(ctx, events.TopicPremiumRequested, req.UserID, events.PremiumRequested{
		RequestID: request.ID,
		UserID:    req.UserID,
		PlanID:    plan.ID,
		PlanName:  plan.Name,
		Price:     plan.Price,
		FileID:    req.FileID,
		FileType:  req.FileType,
	})

	return request, nil
}

// PendingRequests returns purchases waiting for a decision
func (uc *UseCase) PendingRequests(ctx context.Context, actorID int64) ([]entities.Request, error) {
	if err := uc.permissions.Require(ctx, actorID, adminentities.CapabilityPremium); err != nil {
		return nil, err
	}
	return uc.repo.PendingRequests(ctx)
}

// ApprovePremiumRequest grants the requested plan and closes the request
func (uc *UseCase) ApprovePremiumRequest(ctx context.Context, requestID uint, adminID int64) (*entities.Subscription, error) {
	if err := uc.permissions.Require(ctx, adminID, adminentities.CapabilityPremium); err != nil {
		return nil, err
	}

	resolution, err := uc.repo.ApproveRequest(ctx, requestID, adminID, uc.now())
	if err != nil {
		return nil, err
	}

	uc.recordGrant(resolution.Request.UserID, resolution.Plan.DurationDays, resolution.Grant)
	uc.metrics.RecordPremiumRequestResolved(string(entities.RequestApproved))

	end := resolution.Grant.Subscription.EndDate
	uc.publish(ctx, events.TopicPremiumResolved, resolution.Request.UserID, events.PremiumResolved{
		RequestID: requestID,
		UserID:    resolution.Request.UserID,
		PlanName:  resolution.Plan.Name,
		Status:    events.StatusApproved,
		AdminID:   adminID,
		EndDate:   &end,
	})

	return &resolution.Grant.Subscription, nil
}

// RejectPremiumRequest closes the request without granting anything
func (uc *UseCase) RejectPremiumRequest(ctx context.Context, requestID uint, adminID int64) error {
	if err := uc.permissions.Require(ctx, adminID, adminentities.CapabilityPremium); err != nil {
		return err
	}

	resolution, err := uc.repo.RejectRequest(ctx, requestID, adminID, uc.now())
	if err != nil {
		return err
	}

	uc.metrics.RecordPremiumRequestResolved(string(entities.RequestRejected))
	uc.logger.Info().
		Uint("request_id", requestID).
		Int64("admin_id", adminID).
		Msg("Premium request rejected")

	uc.publish(ctx, events.TopicPremiumResolved, resolution.Request.UserID, events.PremiumResolved{
		RequestID: requestID,
		UserID:    resolution.Request.UserID,
		PlanName:  resolution.Plan.Name,
		Status:    events.StatusRejected,
		AdminID:   adminID,
	})
	return nil
}

// ExpireLapsed deactivates subscriptions that ran out
func (uc *UseCase) ExpireLapsed(ctx context.Context) (int64, error) {
	expired, err := uc.repo.ExpireLapsed(ctx, uc.now())
	if err != nil {
		return 0, err
	}
	uc.metrics.RecordPremiumExpired(expired)
	return expired, nil
}

func (uc *UseCase) recordGrant(userID int64, days int, grant *entities.Grant) {
	mode := "fresh"
	if grant.Stacked {
		mode = "stacked"
	}
	uc.metrics.RecordPremiumGrant(mode)

	uc.logger.Info().
		Int64("user_id", userID).
		Int("days", days).
		Str("mode", mode).
		Time("end_date", grant.Subscription.EndDate).
		Msg("Premium granted")
}

func (uc *UseCase) publish(ctx context.Context, topic string, key int64, payload any) {
	if err := uc.publisher.Publish(ctx, topic, strconv.FormatInt(key, 10), payload); err != nil {
		uc.logger.Error().Err(err).Str("topic", topic).Msg("Failed to publish premium event")
	}
}
