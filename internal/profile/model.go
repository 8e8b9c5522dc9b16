package profile

// Plan holds the user's daily nutrition targets. A zero value means the
// goal is not set; contribution percentages for unset goals stay 0.
type Plan struct {
	DailyCalories float64 `json:"daily_calories"`
	DailyProtein  float64 `json:"daily_protein"`
	DailyCarbs    float64 `json:"daily_carbs"`
	DailyFat      float64 `json:"daily_fat"`
}

// Questionnaire holds the user's dietary constraints.
type Questionnaire struct {
	Allergies    []string `json:"allergies"`
	DietaryStyle string   `json:"dietary_style"` // "vegan", "vegetarian", "none", ...
	Kosher       bool     `json:"kosher"`
}

// Profile is the read model the scorer consumes. Either half may be nil
// when the user never filled it in or its fetch failed.
type Profile struct {
	Plan          *Plan          `json:"plan,omitempty"`
	Questionnaire *Questionnaire `json:"questionnaire,omitempty"`
}
