// Package buissines contains business logic for the admin domain
package buissines

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ibrohimkomilov001-web/kinobot/config"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/deps"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
	adminerrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/errors"
	pkgerrors "github.com/ibrohimkomilov001-web/kinobot/pkg/errors"
)

// UseCase resolves admin capabilities. Nothing is cached between calls.
type UseCase struct {
	repo   deps.AdminRepository
	cfg    *config.AdminConfig
	logger zerolog.Logger
}

// NewUseCase creates a new UseCase instance
func NewUseCase(repo deps.AdminRepository, cfg *config.AdminConfig, logger zerolog.Logger) *UseCase {
	return &UseCase{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// HasCapability reports whether userID may act on capability.
// Super admins always pass, even when a stored row says otherwise.
func (uc *UseCase) HasCapability(ctx context.Context, userID int64, capability entities.Capability) (bool, error) {
	if !capability.Valid() {
		return false, fmt.Errorf("%w: %s", adminerrors.ErrUnknownCapability, capability)
	}

	if uc.cfg.IsSuperAdmin(userID) {
		return true, nil
	}

	admin, err := uc.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, adminerrors.ErrAdminNotFound) {
			return false, nil
		}
		return false, err
	}

	return admin.Permissions.Has(capability), nil
}

// Require returns a PermissionError unless userID holds capability
func (uc *UseCase) Require(ctx context.Context, userID int64, capability entities.Capability) error {
	ok, err := uc.HasCapability(ctx, userID, capability)
	if err != nil {
		return err
	}
	if !ok {
		uc.logger.Warn().
			Int64("user_id", userID).
			Str("capability", capability.String()).
			Msg("Permission denied")
		return pkgerrors.NewPermissionError(fmt.Sprintf("missing %s permission", capability))
	}
	return nil
}

// IsAdmin reports whether userID is a super admin or has a stored admin row
func (uc *UseCase) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	if uc.cfg.IsSuperAdmin(userID) {
		return true, nil
	}

	_, err := uc.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, adminerrors.ErrAdminNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RequireAdmin returns a PermissionError unless userID is an admin
func (uc *UseCase) RequireAdmin(ctx context.Context, userID int64) error {
	ok, err := uc.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return pkgerrors.NewPermissionError("admins only")
	}
	return nil
}

// Permissions returns the effective permissions of userID
func (uc *UseCase) Permissions(ctx context.Context, userID int64) (*entities.Admin, error) {
	if uc.cfg.IsSuperAdmin(userID) {
		return &entities.Admin{
			UserID:      userID,
			Permissions: entities.AllPermissions(),
			SuperAdmin:  true,
		}, nil
	}
	return uc.repo.Get(ctx, userID)
}

// AddAdmin stores a new admin with the default capabilities
func (uc *UseCase) AddAdmin(ctx context.Context, actorID, userID int64) (*entities.Admin, error) {
	if err := uc.Require(ctx, actorID, entities.CapabilityAdmins); err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, adminerrors.ErrInvalidUserID
	}
	if uc.cfg.IsSuperAdmin(userID) {
		return nil, adminerrors.ErrSuperAdminImmutable
	}

	admin := &entities.Admin{
		UserID:      userID,
		Permissions: entities.DefaultPermissions(),
	}
	if err := uc.repo.Create(ctx, admin); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Int64("actor_id", actorID).
		Int64("user_id", userID).
		Msg("Admin added")

	return admin, nil
}

// RemoveAdmin deletes a stored admin
func (uc *UseCase) RemoveAdmin(ctx context.Context, actorID, userID int64) error {
	if err := uc.Require(ctx, actorID, entities.CapabilityAdmins); err != nil {
		return err
	}
	if uc.cfg.IsSuperAdmin(userID) {
		return adminerrors.ErrSuperAdminImmutable
	}

	if err := uc.repo.Delete(ctx, userID); err != nil {
		return err
	}

	uc.logger.Info().
		Int64("actor_id", actorID).
		Int64("user_id", userID).
		Msg("Admin removed")

	return nil
}

// ToggleCapability flips one capability of a stored admin and returns the new value
func (uc *UseCase) ToggleCapability(ctx context.Context, actorID, userID int64, capability entities.Capability) (bool, error) {
	if err := uc.Require(ctx, actorID, entities.CapabilityAdmins); err != nil {
		return false, err
	}
	if !capability.Valid() {
		return false, adminerrors.ErrUnknownCapability
	}
	if uc.cfg.IsSuperAdmin(userID) {
		return false, adminerrors.ErrSuperAdminImmutable
	}

	value, err := uc.repo.Toggle(ctx, userID, capability)
	if err != nil {
		return false, err
	}

	uc.logger.Info().
		Int64("actor_id", actorID).
		Int64("user_id", userID).
		Str("capability", capability.String()).
		Bool("value", value).
		Msg("Admin capability toggled")

	return value, nil
}

// ListAdmins returns configured super admins followed by stored admins
func (uc *UseCase) ListAdmins(ctx context.Context, actorID int64) ([]entities.Admin, error) {
	if err := uc.Require(ctx, actorID, entities.CapabilityAdmins); err != nil {
		return nil, err
	}

	stored, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	admins := make([]entities.Admin, 0, len(uc.cfg.SuperAdminIDs)+len(stored))
	for _, id := range uc.cfg.SuperAdminIDs {
		admins = append(admins, entities.Admin{UserID: id, Permissions: entities.AllPermissions(), SuperAdmin: true})
	}
	for _, a := range stored {
		if uc.cfg.IsSuperAdmin(a.UserID) {
			continue
		}
		admins = append(admins, a)
	}
	return admins, nil
}

// Recipients returns the ids of admins who hold capability, super admins first.
// Used for notifications, so the caller is not checked.
func (uc *UseCase) Recipients(ctx context.Context, capability entities.Capability) ([]int64, error) {
	if !capability.Valid() {
		return nil, fmt.Errorf("%w: %s", adminerrors.ErrUnknownCapability, capability)
	}

	stored, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(uc.cfg.SuperAdminIDs)+len(stored))
	ids = append(ids, uc.cfg.SuperAdminIDs...)
	for _, a := range stored {
		if uc.cfg.IsSuperAdmin(a.UserID) || !a.Permissions.Has(capability) {
			continue
		}
		ids = append(ids, a.UserID)
	}
	return ids, nil
}
