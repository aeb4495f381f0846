package domain

// FoodAnalysis is the structured result of an analysis request. It is never
// persisted; the client confirms it through the log action.
type FoodAnalysis struct {
	FoodName  string
	Calories  int
	Analysis  string
	VolumeCm3 float64
	// Fallback is true when the model reply could not be parsed and the
	// defaults were used.
	Fallback bool
}

// UnknownFood is the name reported when the model reply has no usable name.
const UnknownFood = "Unknown"
