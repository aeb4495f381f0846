package ports

import (
	"context"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
)

type InsightsService interface {
	Weekly(ctx context.Context, userID string) (*domain.NutritionInsights, error)
}
