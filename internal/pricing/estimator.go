package pricing

import "strings"

// Confidence tiers for an estimate. The heuristic path never produces
// ConfidenceHigh; that tier is reserved for a real market-price feed.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Quote is a deterministic price guess for a quantity of product.
type Quote struct {
	EstimatedPrice float64 `json:"estimated_price"`
	PricePer100g   float64 `json:"price_per_100g"`
	Confidence     string  `json:"confidence"`
	RangeLow       float64 `json:"range_low"`
	RangeHigh      float64 `json:"range_high"`
	Currency       string  `json:"currency"`
}

const defaultPricePer100g = 4.0

type basePrice struct {
	key     string
	per100g float64
}

// Reference shelf prices per 100 g, in ILS, for coarse categories.
// Ordered slice, not a map: first match wins and stays deterministic.
var basePrices = []basePrice{
	{"dairy", 3.5},
	{"cheese", 6.0},
	{"meat", 9.0},
	{"fish", 10.0},
	{"produce", 2.0},
	{"fruit", 2.5},
	{"vegetable", 2.0},
	{"snack", 5.0},
	{"beverage", 1.5},
	{"drink", 1.5},
	{"bakery", 3.0},
	{"bread", 2.5},
	{"grain", 2.0},
	{"cereal", 3.5},
	{"sweet", 5.5},
	{"chocolate", 7.0},
	{"frozen", 4.5},
	{"canned", 3.0},
	{"sauce", 4.0},
	{"oil", 5.0},
}

// Estimate maps (name, category, quantityGrams) to a price guess.
// Pure function: no network, no randomness, identical inputs give
// identical outputs.
func Estimate(name, category string, quantityGrams float64) Quote {
	if quantityGrams <= 0 {
		quantityGrams = 100
	}

	per100, matched := matchBasePrice(category, name)

	price := per100 * quantityGrams / 100

	confidence := ConfidenceLow
	if matched {
		// Substring heuristic against a reference table, so never "high".
		confidence = ConfidenceMedium
	}

	return Quote{
		EstimatedPrice: round2(price),
		PricePer100g:   round2(per100),
		Confidence:     confidence,
		RangeLow:       round2(price * 0.8),
		RangeHigh:      round2(price * 1.2),
		Currency:       "ILS",
	}
}

func matchBasePrice(category, name string) (float64, bool) {
	category = strings.ToLower(category)
	name = strings.ToLower(name)

	for _, bp := range basePrices {
		if category != "" && strings.Contains(category, bp.key) {
			return bp.per100g, true
		}
	}
	for _, bp := range basePrices {
		if name != "" && strings.Contains(name, bp.key) {
			return bp.per100g, true
		}
	}
	return defaultPricePer100g, false
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
