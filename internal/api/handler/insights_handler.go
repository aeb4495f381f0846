package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nutrilens/nutrilens-api/internal/core/ports"
)

type insightsResponse struct {
	WeeklyCalorieData    []int     `json:"weeklyCalorieData"`
	NutrientBreakdown    []float64 `json:"nutrientBreakdown"`
	AverageDailyCalories float64   `json:"averageDailyCalories"`
	Insights             []string  `json:"insights"`
}

type InsightsHandler struct {
	service ports.InsightsService
}

func NewInsightsHandler(service ports.InsightsService) *InsightsHandler {
	return &InsightsHandler{service: service}
}

// GetNutritionInsights summarises the caller's current week.
//
// @Summary      Weekly nutrition insights
// @Tags         insights
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  insightsResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /get_nutrition_insights [get]
func (h *InsightsHandler) GetNutritionInsights(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	ins, err := h.service.Weekly(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, insightsResponse{
		WeeklyCalorieData:    ins.WeeklyCalorieData,
		NutrientBreakdown:    ins.NutrientBreakdown,
		AverageDailyCalories: ins.AverageDaily,
		Insights:             ins.Insights,
	})
}
