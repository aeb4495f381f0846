package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
	"github.com/nutrilens/nutrilens-api/internal/core/ports"
	"github.com/nutrilens/nutrilens-api/internal/pkg/metrics"
)

type FoodLogService struct {
	logs  ports.FoodLogRepository
	users ports.UserRepository
	log   zerolog.Logger
	now   func() time.Time
}

func NewFoodLogService(logs ports.FoodLogRepository, users ports.UserRepository, log zerolog.Logger) *FoodLogService {
	return &FoodLogService{logs: logs, users: users, log: log, now: time.Now}
}

// Log stores a confirmed entry for the authenticated user. The owner must exist
// and the client-chosen ID must be unused.
func (s *FoodLogService) Log(ctx context.Context, in ports.LogFoodInput) (*domain.FoodLogEntry, error) {
	if in.UserID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	var problems []string
	if strings.TrimSpace(in.ID) == "" {
		problems = append(problems, "id is required")
	}
	if strings.TrimSpace(in.FoodName) == "" {
		problems = append(problems, "foodName is required")
	}
	if in.Calories < 0 {
		problems = append(problems, "calories must be at least 0")
	}
	if in.LoggedAt.IsZero() {
		problems = append(problems, "date is required")
	}
	if len(problems) > 0 {
		return nil, domain.NewValidationError(problems...)
	}

	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, err
	}

	entry := &domain.FoodLogEntry{
		ID:        strings.TrimSpace(in.ID),
		UserID:    in.UserID,
		FoodName:  strings.TrimSpace(in.FoodName),
		Calories:  in.Calories,
		LoggedAt:  in.LoggedAt,
		CreatedAt: s.now().UTC(),
	}

	if err := s.logs.Append(ctx, entry); err != nil {
		return nil, err
	}

	metrics.FoodLogsCreatedTotal.Inc()
	s.log.Info().
		Str("user_id", entry.UserID).
		Str("entry_id", entry.ID).
		Int("calories", entry.Calories).
		Msg("food logged")

	return entry, nil
}

func (s *FoodLogService) ListForDay(ctx context.Context, userID string, day time.Time) ([]domain.FoodLogEntry, error) {
	from, to := domain.DayWindow(day)
	entries, err := s.logs.ListByOwner(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.FoodLogEntry{}
	}
	return entries, nil
}
