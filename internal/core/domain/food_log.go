package domain

import "time"

// FoodLogEntry is a single confirmed meal. The ID is chosen by the client.
type FoodLogEntry struct {
	ID        string
	UserID    string
	FoodName  string
	Calories  int
	LoggedAt  time.Time
	CreatedAt time.Time
}

// DayWindow returns the half-open interval [day 00:00, next day 00:00) in the
// location of t.
func DayWindow(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// WeekStart returns midnight of the most recent Monday on or before t.
func WeekStart(t time.Time) time.Time {
	day, _ := DayWindow(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
