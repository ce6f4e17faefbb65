// Package errors contains domain-specific errors for the referral ledger
package errors

import (
	pkgerrors "github.com/ibrohimkomilov001-web/kinobot/pkg/errors"
)

var (
	ErrUserNotFound        = pkgerrors.NewNotFoundError("user not found")
	ErrWithdrawalNotFound  = pkgerrors.NewNotFoundError("withdrawal request not found")
	ErrInsufficientBalance = pkgerrors.NewConflictError("insufficient balance")
	ErrAlreadyResolved     = pkgerrors.NewConflictError("withdrawal request already resolved")
	ErrInvalidAmount       = pkgerrors.NewValidationError("amount must be positive")
	ErrInvalidCard         = pkgerrors.NewValidationError("card number must contain 16 digits")
	ErrBelowMinimum        = pkgerrors.NewValidationError("amount is below the minimum withdrawal")
	ErrReferralDisabled    = pkgerrors.NewValidationError("referral program is disabled")
	ErrDatabaseOperation   = pkgerrors.NewInternalError("ledger database operation failed")
)
