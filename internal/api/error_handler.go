package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
)

// retryAfterSeconds is advertised on retryable upstream failures.
const retryAfterSeconds = 30

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

type errorMapping struct {
	target error
	status int
	// detailed errors render the full wrapped message; the rest render only
	// the sentinel text.
	detailed bool
}

var errorMappings = []errorMapping{
	{domain.ErrInvalidImage, http.StatusBadRequest, true},
	{domain.ErrMalformedInput, http.StatusBadRequest, true},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, false},
	{domain.ErrUnauthorized, http.StatusUnauthorized, false},
	{domain.ErrNotAuthenticated, http.StatusUnauthorized, false},
	{domain.ErrUserNotFound, http.StatusNotFound, false},
	{domain.ErrUsernameTaken, http.StatusConflict, false},
	{domain.ErrDuplicateEntry, http.StatusConflict, false},
	{domain.ErrQuotaExceeded, http.StatusTooManyRequests, false},
	{domain.ErrUpstreamUnavailable, http.StatusServiceUnavailable, false},
	{domain.ErrUpstreamTimeout, http.StatusGatewayTimeout, false},
	{domain.ErrUpstreamFailure, http.StatusBadGateway, false},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout {
			c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, auth middleware, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error()
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.detailed {
				return m.status, err.Error()
			}
			if m.status >= http.StatusInternalServerError {
				log.Warn().Err(err).Str("path", c.Path()).Msg("upstream analysis error")
			}
			return m.status, m.target.Error()
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
