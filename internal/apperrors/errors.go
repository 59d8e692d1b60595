// Package apperrors defines the error taxonomy surfaced at the API
// boundary. Every failure is terminal for the request; there are no
// retries anywhere in the system.
package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindNotFound Kind = iota
	KindForbidden
	KindConflict
	KindInvalidOperation
	KindRateLimitExceeded
	KindUnauthorized
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func InvalidOperation(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

func RateLimitExceeded(format string, args ...any) *Error {
	return &Error{Kind: KindRateLimitExceeded, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// HTTPStatus maps an error to the status code the boundary reports.
// Duplicate registration and self-follow map to 400, matching the
// behavior the API has always had.
func HTTPStatus(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return fiber.StatusInternalServerError
	}
	switch ae.Kind {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindForbidden:
		return fiber.StatusForbidden
	case KindConflict, KindInvalidOperation:
		return fiber.StatusBadRequest
	case KindRateLimitExceeded:
		return fiber.StatusTooManyRequests
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
