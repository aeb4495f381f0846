package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
	"github.com/nutrilens/nutrilens-api/internal/core/ports"
)

const daysPerWeek = 7

// Static macro split applied to the weekly total: protein, carbs, fat.
var nutrientShares = [3]float64{0.3, 0.3, 0.4}

// InsightsService summarises the current Monday-to-Sunday week.
type InsightsService struct {
	logs  ports.FoodLogRepository
	users ports.UserRepository
	now   func() time.Time
}

func NewInsightsService(logs ports.FoodLogRepository, users ports.UserRepository) *InsightsService {
	return &InsightsService{logs: logs, users: users, now: time.Now}
}

func (s *InsightsService) Weekly(ctx context.Context, userID string) (*domain.NutritionInsights, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	start := domain.WeekStart(s.now().In(time.Local))
	daily := make([]int, 0, daysPerWeek)
	total := 0
	for i := 0; i < daysPerWeek; i++ {
		from := start.AddDate(0, 0, i)
		sum, err := s.logs.SumCalories(ctx, userID, from, from.AddDate(0, 0, 1))
		if err != nil {
			return nil, fmt.Errorf("weekly insights: day %d: %w", i, err)
		}
		daily = append(daily, sum)
		total += sum
	}

	breakdown := make([]float64, len(nutrientShares))
	for i, share := range nutrientShares {
		breakdown[i] = float64(total) * share
	}

	avg := float64(total) / daysPerWeek
	return &domain.NutritionInsights{
		WeeklyCalorieData: daily,
		NutrientBreakdown: breakdown,
		AverageDaily:      avg,
		Insights:          insightMessages(avg, user.DailyCalorieGoal),
	}, nil
}

func insightMessages(avg float64, goal int) []string {
	msgs := []string{
		fmt.Sprintf("Your average daily calorie intake this week was %.0f calories.", avg),
		fmt.Sprintf("Your calorie goal is %d calories per day.", goal),
	}
	switch g := float64(goal); {
	case avg > g:
		msgs = append(msgs, "You're currently above your calorie goal. Consider reducing portion sizes or choosing lower-calorie options.")
	case avg < g:
		msgs = append(msgs, "You're currently below your calorie goal. Make sure you're eating enough to meet your nutritional needs.")
	default:
		msgs = append(msgs, "You're right on your calorie goal. Keep it up!")
	}
	return msgs
}
