// Package deps contains interface definitions for the admin domain dependencies
package deps

import (
	"context"

	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
)

// AdminRepository defines access to stored admin rows
type AdminRepository interface {
	// Get returns the stored admin or ErrAdminNotFound
	Get(ctx context.Context, userID int64) (*entities.Admin, error)

	// Create inserts a new admin row, ErrAdminAlreadyExists on duplicate
	Create(ctx context.Context, admin *entities.Admin) error

	// Delete removes the admin row, ErrAdminNotFound when absent
	Delete(ctx context.Context, userID int64) error

	// Toggle flips one capability and returns its new value
	Toggle(ctx context.Context, userID int64, capability entities.Capability) (bool, error)

	// List returns all stored admins
	List(ctx context.Context) ([]entities.Admin, error)
}
