package registry

import (
	"strings"

	"nutriscan/internal/pricing"
	"nutriscan/internal/product"
)

// Open Food Facts wire schema, trimmed to the fields we map.
type offLookupResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

type offProduct struct {
	Code        string        `json:"code"`
	ProductName string        `json:"product_name"`
	Brands      string        `json:"brands"`
	Categories  string        `json:"categories"`
	Nutriments  offNutriments `json:"nutriments"`

	IngredientsText string   `json:"ingredients_text"`
	AllergensTags   []string `json:"allergens_tags"`
	LabelsTags      []string `json:"labels_tags"`

	ImageURL       string   `json:"image_url"`
	ServingSize    string   `json:"serving_size"`
	NutriscorScore *float64 `json:"nutriscore_score"`
}

type offNutriments struct {
	EnergyKcal100g   float64  `json:"energy-kcal_100g"`
	Proteins100g     float64  `json:"proteins_100g"`
	Carbohydrates    float64  `json:"carbohydrates_100g"`
	Fat100g          float64  `json:"fat_100g"`
	Fiber100g        *float64 `json:"fiber_100g"`
	Sugars100g       *float64 `json:"sugars_100g"`
	Sodium100g       *float64 `json:"sodium_100g"`
	SaturatedFat100g *float64 `json:"saturated-fat_100g"`
	TransFat100g     *float64 `json:"trans-fat_100g"`
	Cholesterol100g  *float64 `json:"cholesterol_100g"`
	Potassium100g    *float64 `json:"potassium_100g"`
	Calcium100g      *float64 `json:"calcium_100g"`
	Iron100g         *float64 `json:"iron_100g"`
	VitaminC100g     *float64 `json:"vitamin-c_100g"`
	VitaminD100g     *float64 `json:"vitamin-d_100g"`
}

// mapProduct translates the provider schema into the canonical record
// and annotates it with a price estimate, so every product leaving the
// registry layer is already price-tagged.
func mapProduct(off *offProduct, barcode string) *product.Product {
	if barcode == "" {
		barcode = off.Code
	}

	p := &product.Product{
		Barcode:  barcode,
		Name:     off.ProductName,
		Brand:    firstToken(off.Brands),
		Category: firstToken(off.Categories),
		Nutrition: product.Nutrition{
			Calories:     nonNegative(off.Nutriments.EnergyKcal100g),
			Protein:      nonNegative(off.Nutriments.Proteins100g),
			Carbs:        nonNegative(off.Nutriments.Carbohydrates),
			Fat:          nonNegative(off.Nutriments.Fat100g),
			Fiber:        off.Nutriments.Fiber100g,
			Sugar:        off.Nutriments.Sugars100g,
			SodiumMg:     gramsToMg(off.Nutriments.Sodium100g),
			SaturatedFat: off.Nutriments.SaturatedFat100g,
			TransFat:     off.Nutriments.TransFat100g,
			Cholesterol:  off.Nutriments.Cholesterol100g,
			Potassium:    off.Nutriments.Potassium100g,
			Calcium:      off.Nutriments.Calcium100g,
			Iron:         off.Nutriments.Iron100g,
			VitaminC:     off.Nutriments.VitaminC100g,
			VitaminD:     off.Nutriments.VitaminD100g,
		},
		Ingredients: splitList(off.IngredientsText),
		Allergens:   cleanTags(off.AllergensTags),
		Labels:      cleanTags(off.LabelsTags),
		ImageURL:    off.ImageURL,
		ServingSize: off.ServingSize,
	}

	if off.NutriscorScore != nil {
		// Nutri-Score raw points run -15 (best) to 40 (worst); fold onto 0-100.
		score := int((40 - *off.NutriscorScore) / 55 * 100)
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		p.HealthScore = &score
	}

	est := pricing.Estimate(p.Name, p.Category, 100)
	p.EstimatedPrice = &est.EstimatedPrice
	p.PricePer100g = &est.PricePer100g
	p.PriceConfidence = est.Confidence

	return p
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func gramsToMg(g *float64) *float64 {
	if g == nil {
		return nil
	}
	mg := *g * 1000
	return &mg
}

// firstToken takes the first entry of a comma-separated taxonomy string.
func firstToken(s string) string {
	if idx := strings.Index(s, ","); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// cleanTags strips the "en:" language prefix OFF puts on tag values.
func cleanTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if idx := strings.Index(t, ":"); idx >= 0 {
			t = t[idx+1:]
		}
		t = strings.ReplaceAll(t, "-", " ")
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
