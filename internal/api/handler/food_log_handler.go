package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
	"github.com/nutrilens/nutrilens-api/internal/core/ports"
)

type FoodLogHandler struct {
	service ports.FoodLogService
}

func NewFoodLogHandler(service ports.FoodLogService) *FoodLogHandler {
	return &FoodLogHandler{service: service}
}

// LogFood stores a confirmed food entry for the caller.
//
// @Summary      Log a food entry
// @Tags         food
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      logFoodRequest  true  "Entry with client-chosen id"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /log_food [post]
func (h *FoodLogHandler) LogFood(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req logFoodRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	loggedAt, err := parseDate("date", req.Date)
	if err != nil {
		return err
	}

	_, err = h.service.Log(c.Request().Context(), ports.LogFoodInput{
		ID:       req.ID,
		UserID:   userID,
		FoodName: req.FoodName,
		Calories: *req.Calories,
		LoggedAt: loggedAt,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "Food logged successfully"})
}

// GetFoodLogs lists the caller's entries for one local calendar day.
//
// @Summary      List food entries for a day
// @Tags         food
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  true  "Day (YYYY-MM-DD); a datetime is truncated to its day"
// @Success      200   {array}   foodLogItem
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /get_food_logs [get]
func (h *FoodLogHandler) GetFoodLogs(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	raw := c.QueryParam("date")
	if raw == "" {
		return domain.NewValidationError("date is required")
	}
	day, err := parseDate("date", raw)
	if err != nil {
		return err
	}

	entries, err := h.service.ListForDay(c.Request().Context(), userID, day)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toFoodLogItems(entries))
}
