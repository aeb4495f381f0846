package domain

import (
	"errors"
	"strings"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUserNotFound       = errors.New("user not found")

	ErrDuplicateEntry   = errors.New("food log entry already exists")
	ErrNotAuthenticated = errors.New("not authenticated")

	ErrMalformedInput = errors.New("malformed depth samples")
	ErrInvalidImage   = errors.New("invalid image")

	ErrQuotaExceeded       = errors.New("analysis quota exceeded")
	ErrUpstreamFailure     = errors.New("upstream analysis failed")
	ErrUpstreamUnavailable = errors.New("upstream analysis temporarily unavailable")
	ErrUpstreamTimeout     = errors.New("upstream analysis timed out")
)

// ValidationError reports request fields that are missing or malformed.
type ValidationError struct {
	Problems []string
}

func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid request"
	}
	return strings.Join(e.Problems, "; ")
}

// IsRetryable reports whether a failed analysis may succeed if repeated later.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable) || errors.Is(err, ErrUpstreamTimeout)
}
