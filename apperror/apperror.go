package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Sentinel kinds for the failure taxonomy. Services wrap one of these into
// every business-rule error so callers can branch with errors.Is while the
// message stays clean for API responses.
var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal inconsistency")
)

// Error carries a taxonomy kind plus a user-facing message.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

func newError(kind error, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) *Error {
	return newError(ErrValidation, format, args...)
}

func Unauthorizedf(format string, args ...interface{}) *Error {
	return newError(ErrUnauthorized, format, args...)
}

func Forbiddenf(format string, args ...interface{}) *Error {
	return newError(ErrForbidden, format, args...)
}

func NotFoundf(format string, args ...interface{}) *Error {
	return newError(ErrNotFound, format, args...)
}

func Conflictf(format string, args ...interface{}) *Error {
	return newError(ErrConflict, format, args...)
}

func Internalf(format string, args ...interface{}) *Error {
	return newError(ErrInternal, format, args...)
}

// StatusCode maps an error to the HTTP status the controllers respond with.
// Unrecognized errors are treated as server faults.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
