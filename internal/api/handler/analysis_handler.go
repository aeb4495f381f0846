package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nutrilens/nutrilens-api/internal/core/ports"
)

type analyzeFoodRequest struct {
	Image string    `json:"image" validate:"required"`
	Lidar []float64 `json:"lidar" validate:"required"`
}

type analyzeFoodResponse struct {
	FoodName string `json:"foodName"`
	Calories int    `json:"calories"`
	Analysis string `json:"analysis"`
}

type AnalysisHandler struct {
	service ports.AnalysisService
}

func NewAnalysisHandler(service ports.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// AnalyzeFood estimates the calories of a photographed dish. Nothing is stored.
//
// @Summary      Analyze a food photo
// @Tags         food
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      analyzeFoodRequest  true  "Base64 image and depth samples (multiple of 256)"
// @Success      200   {object}  analyzeFoodResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      429   {object}  messageResponse
// @Failure      502   {object}  messageResponse
// @Failure      503   {object}  messageResponse
// @Failure      504   {object}  messageResponse
// @Router       /analyze_food [post]
func (h *AnalysisHandler) AnalyzeFood(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req analyzeFoodRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Analyze(c.Request().Context(), ports.AnalyzeFoodInput{
		UserID:      userID,
		ImageBase64: req.Image,
		Depth:       req.Lidar,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, analyzeFoodResponse{
		FoodName: result.FoodName,
		Calories: result.Calories,
		Analysis: result.Analysis,
	})
}
