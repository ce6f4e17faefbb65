// Package deps contains interface definitions for the referral ledger dependencies
package deps

import (
	"context"
	"time"

	adminentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/entities"
)

// LedgerRepository defines balance and withdrawal persistence.
// Every mutating method runs in a single transaction.
type LedgerRepository interface {
	// Register inserts user if absent and credits bonus to user.ReferredBy.
	// An existing user only gets display fields refreshed. A zero bonus skips crediting.
	Register(ctx context.Context, user *entities.User, bonus int64) (entities.Registration, error)

	GetUser(ctx context.Context, userID int64) (*entities.User, error)
	Balance(ctx context.Context, userID int64) (int64, error)
	ReferralCount(ctx context.Context, referrerID int64) (int64, error)

	// CreateWithdrawal debits the user's balance and inserts the pending request
	CreateWithdrawal(ctx context.Context, request *entities.WithdrawalRequest) error

	// ApproveWithdrawal moves a pending request to approved
	ApproveWithdrawal(ctx context.Context, requestID uint, adminID int64, at time.Time) (*entities.WithdrawalRequest, error)

	// RejectWithdrawal moves a pending request to rejected and refunds its amount
	RejectWithdrawal(ctx context.Context, requestID uint, adminID int64, at time.Time) (*entities.WithdrawalRequest, error)

	UserWithdrawals(ctx context.Context, userID int64, limit int) ([]entities.WithdrawalRequest, error)
	PendingWithdrawals(ctx context.Context) ([]entities.WithdrawalRequest, error)
	Stats(ctx context.Context, topLimit int) (*entities.Stats, error)
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

// PermissionChecker guards withdrawal resolution and statistics
type PermissionChecker interface {
	RequireAdmin(ctx context.Context, userID int64) error
	Require(ctx context.Context, userID int64, capability adminentities.Capability) error
}
