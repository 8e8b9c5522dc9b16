package meallog

import "time"

// ScanPrefix marks log rows that were created from a product scan.
// The history feed keys off it to tell scans apart from manual entries.
const ScanPrefix = "[scan] "

// Meal periods accepted by the log.
var MealPeriods = []string{"breakfast", "lunch", "dinner", "snack"}

// Entry is one logged consumption. Nutrition values are absolute for
// the logged quantity, not per 100 g.
type Entry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"-"`
	Name          string    `json:"name"`
	Barcode       string    `json:"barcode,omitempty"`
	QuantityGrams float64   `json:"quantity_grams"`
	MealPeriod    string    `json:"meal_period"`
	Calories      float64   `json:"calories"`
	Protein       float64   `json:"protein"`
	Carbs         float64   `json:"carbs"`
	Fat           float64   `json:"fat"`
	CreatedAt     time.Time `json:"created_at"`
}

// Totals is the summed nutrition of a set of entries.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Entries  int     `json:"entries"`
}
