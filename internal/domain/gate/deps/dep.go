// Package deps contains interface definitions for the subscription gate dependencies
package deps

import (
	"context"
	"time"

	adminentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/entities"
)

// ChannelRepository defines access to configured channels
type ChannelRepository interface {
	// ListActive returns active channels in creation order
	ListActive(ctx context.Context) ([]entities.Channel, error)

	// List returns all channels, including deactivated ones
	List(ctx context.Context) ([]entities.Channel, error)

	// Upsert inserts a channel or updates and reactivates an existing one
	Upsert(ctx context.Context, channel *entities.Channel) error

	// Deactivate soft-deletes a channel
	Deactivate(ctx context.Context, channelID string) error
}

// JoinRequestRepository defines access to recorded join requests
type JoinRequestRepository interface {
	Exists(ctx context.Context, userID int64, channelID string) (bool, error)
	Upsert(ctx context.Context, userID int64, channelID string, at time.Time) error
	Delete(ctx context.Context, userID int64, channelID string) error
}

// MembershipOracle answers live membership queries
type MembershipOracle interface {
	GetMembershipStatus(ctx context.Context, channelID string, userID int64) (entities.MembershipStatus, error)
}

// PremiumChecker reports whether a user holds valid premium
type PremiumChecker interface {
	IsCurrentlyPremium(ctx context.Context, userID int64) (bool, error)
}

// PermissionChecker guards channel administration
type PermissionChecker interface {
	Require(ctx context.Context, userID int64, capability adminentities.Capability) error
}

// SettingsWriter toggles the global gating flag
type SettingsWriter interface {
	SetEnabled(ctx context.Context, actorID int64, key string, enabled bool) error
}
