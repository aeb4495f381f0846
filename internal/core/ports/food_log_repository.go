package ports

import (
	"context"
	"time"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
)

// FoodLogRepository defines persistence for food log entries.
// All time ranges are half-open: from <= logged_at < to.
type FoodLogRepository interface {
	// Append stores a new entry. Returns domain.ErrDuplicateEntry when the ID
	// already exists.
	Append(ctx context.Context, entry *domain.FoodLogEntry) error
	// ListByOwner returns the owner's entries in range, newest first.
	ListByOwner(ctx context.Context, userID string, from, to time.Time) ([]domain.FoodLogEntry, error)
	// SumCalories returns the owner's calorie total in range (0 when empty).
	SumCalories(ctx context.Context, userID string, from, to time.Time) (int, error)
}
