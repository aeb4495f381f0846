package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
)

type logFoodRequest struct {
	ID       string `json:"id" validate:"required"`
	FoodName string `json:"foodName" validate:"required"`
	Calories *int   `json:"calories" validate:"required,min=0"`
	Date     string `json:"date" validate:"required"`
}

type foodLogItem struct {
	ID       string `json:"id"`
	FoodName string `json:"foodName"`
	Calories int    `json:"calories"`
	Date     string `json:"date"`
}

func toFoodLogItems(entries []domain.FoodLogEntry) []foodLogItem {
	items := make([]foodLogItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, foodLogItem{
			ID:       e.ID,
			FoodName: e.FoodName,
			Calories: e.Calories,
			Date:     e.LoggedAt.In(time.Local).Format(time.RFC3339),
		})
	}
	return items
}

// Layouts without a zone are read in server local time.
var localDateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDate accepts RFC 3339, an ISO 8601 local datetime or a bare date.
func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	for _, layout := range localDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewValidationError(fmt.Sprintf("%s must be an ISO 8601 date or datetime", field))
}
