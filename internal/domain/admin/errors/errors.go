// Package errors contains domain-specific errors for the admin domain
package errors

import (
	pkgerrors "github.com/ibrohimkomilov001-web/kinobot/pkg/errors"
)

var (
	ErrAdminNotFound       = pkgerrors.NewNotFoundError("admin not found")
	ErrAdminAlreadyExists  = pkgerrors.NewConflictError("user is already an admin")
	ErrSuperAdminImmutable = pkgerrors.NewConflictError("super admin is configured outside the bot and cannot be changed")
	ErrUnknownCapability   = pkgerrors.NewValidationError("unknown capability")
	ErrInvalidUserID       = pkgerrors.NewValidationError("invalid user ID")
	ErrDatabaseOperation   = pkgerrors.NewInternalError("admin database operation failed")
)
