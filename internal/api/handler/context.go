package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nutrilens/nutrilens-api/internal/api/middleware"
	"github.com/nutrilens/nutrilens-api/internal/core/domain"
)

// ctxUserID extracts the user ID injected by the Auth middleware. An empty
// value means the middleware did not run for this route.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}

func ctxToken(c echo.Context) string {
	token, _ := c.Get(middleware.ContextToken).(string)
	return token
}

// bindAndValidate decodes the JSON body into req and runs the registered
// validator. Malformed bodies are reported as validation errors.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("invalid JSON body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

type messageResponse struct {
	Message string `json:"message"`
}
