// Package deps contains interface definitions for premium subscription dependencies
package deps

import (
	"context"
	"time"

	adminentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/entities"
)

// PremiumRepository defines plan, subscription and request persistence
type PremiumRepository interface {
	CreatePlan(ctx context.Context, plan *entities.Plan) error
	GetPlan(ctx context.Context, planID uint) (*entities.Plan, error)
	ListActivePlans(ctx context.Context) ([]entities.Plan, error)
	DeactivatePlan(ctx context.Context, planID uint) error

	// GrantOrExtend stacks days onto the subscription valid at now or opens a new one
	GrantOrExtend(ctx context.Context, userID int64, planID *uint, days int, now time.Time) (*entities.Grant, error)

	// ActiveSubscriptions returns rows flagged active, including lapsed ones
	ActiveSubscriptions(ctx context.Context, userID int64) ([]entities.Subscription, error)

	// ExpireLapsed deactivates active rows whose end date is not after now
	ExpireLapsed(ctx context.Context, now time.Time) (int64, error)

	CreateRequest(ctx context.Context, request *entities.Request) error
	PendingRequests(ctx context.Context) ([]entities.Request, error)

	// ApproveRequest grants the plan and marks the request approved in one transaction
	ApproveRequest(ctx context.Context, requestID uint, adminID int64, now time.Time) (*entities.Resolution, error)
	RejectRequest(ctx context.Context, requestID uint, adminID int64, now time.Time) (*entities.Resolution, error)
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

// PermissionChecker guards premium administration
type PermissionChecker interface {
	Require(ctx context.Context, userID int64, capability adminentities.Capability) error
}
