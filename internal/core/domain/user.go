package domain

import "time"

// DefaultDailyCalorieGoal is assigned to every newly registered user.
const DefaultDailyCalorieGoal = 2000

// User models an account owner. PasswordHash never leaves the service layer.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	PasswordHash     string    `json:"-"`
	DailyCalorieGoal int       `json:"daily_calorie_goal"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
