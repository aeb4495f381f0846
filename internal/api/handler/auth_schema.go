package handler

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type updateProfileRequest struct {
	Username         string `json:"username" validate:"required"`
	DailyCalorieGoal *int   `json:"daily_calorie_goal" validate:"required,gt=0"`
}

type profileResponse struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	DailyCalorieGoal int    `json:"daily_calorie_goal"`
}
