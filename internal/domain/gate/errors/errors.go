// Package errors contains domain-specific errors for the subscription gate
package errors

import (
	pkgerrors "github.com/ibrohimkomilov001-web/kinobot/pkg/errors"
)

var (
	ErrChannelNotFound   = pkgerrors.NewNotFoundError("channel not found")
	ErrInvalidChannel    = pkgerrors.NewValidationError("invalid channel")
	ErrConflictingFlags  = pkgerrors.NewValidationError("a channel cannot be both a request group and an external link")
	ErrDatabaseOperation = pkgerrors.NewInternalError("gate database operation failed")
)
