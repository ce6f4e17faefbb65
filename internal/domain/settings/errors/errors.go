// Package errors contains domain-specific errors for the settings domain
package errors

import (
	pkgerrors "github.com/ibrohimkomilov001-web/kinobot/pkg/errors"
)

var (
	ErrUnknownSetting    = pkgerrors.NewValidationError("unknown setting")
	ErrInvalidBool       = pkgerrors.NewValidationError("value must be 0 or 1")
	ErrInvalidAmount     = pkgerrors.NewValidationError("value must be a non-negative whole number")
	ErrDatabaseOperation = pkgerrors.NewInternalError("settings database operation failed")
)
