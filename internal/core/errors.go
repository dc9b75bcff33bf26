// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrInvalidTransition covers tier changes and moderation status
	// changes that violate the ordering rules.
	ErrInvalidTransition = errors.New("invalid transition")

	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
	ErrTokenInvalid = errors.New("token invalid")

	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrUpstreamUnavailable is the uniform caller-facing error for the
	// fixtures provider; the subtypes below wrap it so callers can match
	// either the broad class or the specific cause.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	ErrUpstreamTimeout     = fmt.Errorf("upstream timeout: %w", ErrUpstreamUnavailable)
	ErrUpstreamRateLimited = fmt.Errorf("upstream rate limited: %w", ErrUpstreamUnavailable)
	ErrUpstreamSchema      = fmt.Errorf("upstream schema mismatch: %w", ErrUpstreamUnavailable)
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func NewAppError(code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

func UnauthorizedError(message string) *AppError {
	return NewAppError("unauthorized", message, 401)
}

func ForbiddenError(message string) *AppError {
	return NewAppError("forbidden", message, 403)
}

func DuplicateError(field string) *AppError {
	return NewAppError("duplicate", fmt.Sprintf("%s already in use", field), 409)
}

func TokenExpiredError() *AppError {
	return NewAppError("token_expired", "access token has expired", 401)
}

func TokenRevokedError() *AppError {
	return NewAppError("token_revoked", "access token has been revoked", 401)
}

func TokenInvalidError() *AppError {
	return NewAppError("token_invalid", "access token is invalid", 401)
}
