package errors

import (
	"errors"

	"github.com/rs/zerolog"
)

const internalMessage = "❌ Xatolik yuz berdi. Iltimos, keyinroq urinib ko'ring."

// Mapper maps domain errors to messages shown to bot users
type Mapper struct {
	logger zerolog.Logger
}

// NewMapper creates a new error mapper
func NewMapper(logger zerolog.Logger) *Mapper {
	return &Mapper{logger: logger}
}

// UserMessage maps an error to the text sent back to the user.
// Business rule failures carry their own message; store failures are logged and hidden.
func (m *Mapper) UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch t := TypeOf(err); t {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeConflict:
		return "⚠️ " + message(err, t)
	case ErrorTypeUnauthorized, ErrorTypePermission:
		return "⛔ " + message(err, t)
	}

	m.logger.Error().Err(err).Msg("internal error")
	return internalMessage
}

// message returns the text of the typed error in the chain, without wrapping context
func message(err error, t ErrorType) string {
	switch t {
	case ErrorTypeValidation:
		var target *ValidationError
		if errors.As(err, &target) {
			return target.msg
		}
	case ErrorTypeNotFound:
		var target *NotFoundError
		if errors.As(err, &target) {
			return target.msg
		}
	case ErrorTypeConflict:
		var target *ConflictError
		if errors.As(err, &target) {
			return target.msg
		}
	case ErrorTypeUnauthorized:
		var target *UnauthorizedError
		if errors.As(err, &target) {
			return target.msg
		}
	case ErrorTypePermission:
		var target *PermissionError
		if errors.As(err, &target) {
			return target.msg
		}
	}
	return err.Error()
}
