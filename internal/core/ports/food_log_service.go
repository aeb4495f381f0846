package ports

import (
	"context"
	"time"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
)

// LogFoodInput is the DTO passed from the transport layer to FoodLogService.
type LogFoodInput struct {
	ID       string
	UserID   string
	FoodName string
	Calories int
	LoggedAt time.Time
}

type FoodLogService interface {
	Log(ctx context.Context, input LogFoodInput) (*domain.FoodLogEntry, error)
	// ListForDay returns the user's entries for the local calendar day containing day.
	ListForDay(ctx context.Context, userID string, day time.Time) ([]domain.FoodLogEntry, error)
}
