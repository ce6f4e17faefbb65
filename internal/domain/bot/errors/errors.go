// Package errors contains domain-specific errors for the bot domain
package errors

import (
	pkgerrors "github.com/ibrohimkomilov001-web/kinobot/pkg/errors"
)

// Domain errors for bot operations
var (
	ErrInvalidCommand   = pkgerrors.NewValidationError("invalid command arguments")
	ErrInvalidAmount    = pkgerrors.NewValidationError("amount must be a whole number")
	ErrInvalidRequestID = pkgerrors.NewValidationError("invalid request ID")
	ErrNoActiveWizard   = pkgerrors.NewConflictError("nothing to confirm, start again")
	ErrPremiumDisabled  = pkgerrors.NewValidationError("premium purchases are disabled")
	ErrWizardStore      = pkgerrors.NewInternalError("wizard state store error")
	ErrTelegramAPI      = pkgerrors.NewInternalError("telegram API error")
)
