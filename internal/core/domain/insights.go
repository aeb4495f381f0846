package domain

// NutritionInsights is the weekly summary shown on the insights screen.
type NutritionInsights struct {
	WeeklyCalorieData []int
	// NutrientBreakdown holds protein, carb and fat calories in that order.
	NutrientBreakdown []float64
	AverageDaily      float64
	Insights          []string
}
