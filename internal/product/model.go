package product

import "time"

// Nutrition holds values normalized to 100 g of product.
// The four macros are always known; everything else is optional and
// stays nil when the source did not report it (nil != zero).
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`

	Fiber        *float64 `json:"fiber,omitempty"`
	Sugar        *float64 `json:"sugar,omitempty"`
	SodiumMg     *float64 `json:"sodium_mg,omitempty"`
	SaturatedFat *float64 `json:"saturated_fat,omitempty"`
	TransFat     *float64 `json:"trans_fat,omitempty"`
	Cholesterol  *float64 `json:"cholesterol,omitempty"`
	Potassium    *float64 `json:"potassium,omitempty"`
	Calcium      *float64 `json:"calcium,omitempty"`
	Iron         *float64 `json:"iron,omitempty"`
	VitaminC     *float64 `json:"vitamin_c,omitempty"`
	VitaminD     *float64 `json:"vitamin_d,omitempty"`
}

// Product is the canonical record for a scanned item.
// Barcode doubles as the storage key; photo-only items get a synthetic
// img_<ts>_<rand> identifier so they can still be upserted.
type Product struct {
	Barcode  string `json:"barcode"`
	Name     string `json:"name"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"`

	Nutrition Nutrition `json:"nutrition_per_100g"`

	Ingredients []string `json:"ingredients,omitempty"`
	Allergens   []string `json:"allergens,omitempty"`
	Labels      []string `json:"labels,omitempty"`

	HealthScore          *int     `json:"health_score,omitempty"`
	ImageURL             string   `json:"image_url,omitempty"`
	ServingSize          string   `json:"serving_size,omitempty"`
	ServingsPerContainer *float64 `json:"servings_per_container,omitempty"`

	EstimatedPrice  *float64 `json:"estimated_price,omitempty"`
	PricePer100g    *float64 `json:"price_per_100g,omitempty"`
	PriceConfidence string   `json:"price_confidence,omitempty"`

	// ScannedBy is the user whose scan first brought the product in.
	ScannedBy string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
