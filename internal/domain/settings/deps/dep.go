// Package deps contains interface definitions for the settings domain dependencies
package deps

import (
	"context"

	adminentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
)

// SettingsRepository defines access to the key/value settings table
type SettingsRepository interface {
	// All returns every stored setting
	All(ctx context.Context) (map[string]string, error)

	// Set upserts one setting
	Set(ctx context.Context, key, value string) error
}

// PermissionChecker guards settings changes
type PermissionChecker interface {
	Require(ctx context.Context, userID int64, capability adminentities.Capability) error
}
