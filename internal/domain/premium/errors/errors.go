// Package errors contains domain-specific errors for premium subscriptions
package errors

import (
	pkgerrors "github.com/ibrohimkomilov001-web/kinobot/pkg/errors"
)

var (
	ErrPlanNotFound      = pkgerrors.NewNotFoundError("premium plan not found")
	ErrRequestNotFound   = pkgerrors.NewNotFoundError("premium request not found")
	ErrAlreadyResolved   = pkgerrors.NewConflictError("premium request already resolved")
	ErrPlanInactive      = pkgerrors.NewValidationError("premium plan is not available")
	ErrInvalidDays       = pkgerrors.NewValidationError("days must be positive")
	ErrInvalidPlan       = pkgerrors.NewValidationError("invalid premium plan")
	ErrInvalidReceipt    = pkgerrors.NewValidationError("payment receipt must be a photo or a document")
	ErrPremiumDisabled   = pkgerrors.NewValidationError("premium sales are disabled")
	ErrDatabaseOperation = pkgerrors.NewInternalError("premium database operation failed")
)
