package scoring

import (
	"fmt"
	"strings"

	"nutriscan/internal/product"
	"nutriscan/internal/profile"
)

const baselineScore = 70

// Adjustment weights. Applied in a fixed order to a running total that
// is only clamped once, right before the narrative bucket lookup.
const (
	penaltyAllergen   = 30
	penaltyVegan      = 20
	penaltyVegetarian = 20
	penaltyKosher     = 15
	penaltySugar      = 10
	penaltySodium     = 10
	bonusProtein      = 10
	bonusFiber        = 5
)

const (
	sugarThreshold   = 15.0  // g per 100 g
	sodiumThreshold  = 500.0 // mg per 100 g
	proteinThreshold = 10.0  // g per 100 g
	fiberThreshold   = 5.0   // g per 100 g
)

// Contribution is the share of the user's daily targets that 100 g of
// the product covers, in percent. 0 when the goal is not set.
type Contribution struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Analysis is computed per (product, user) pair and never persisted.
type Analysis struct {
	CompatibilityScore int          `json:"compatibility_score"`
	DailyContribution  Contribution `json:"daily_contribution"`
	Alerts             []string     `json:"alerts"`
	Recommendations    []string     `json:"recommendations"`
	HealthAssessment   string       `json:"health_assessment"`
}

// Score rates a product against a user's constraints and goals.
// Pure function; a nil or empty profile degrades to neutral defaults
// instead of failing.
func Score(p *product.Product, prof *profile.Profile) Analysis {
	analysis := Analysis{
		Alerts:          []string{},
		Recommendations: []string{},
	}

	score := baselineScore

	var q *profile.Questionnaire
	var plan *profile.Plan
	if prof != nil {
		q = prof.Questionnaire
		plan = prof.Plan
	}

	if q != nil {
		// 1. Declared allergies vs product allergens.
		for _, allergy := range q.Allergies {
			if matched, allergen := matchAllergen(allergy, p.Allergens); matched {
				score -= penaltyAllergen
				analysis.Alerts = append(analysis.Alerts,
					fmt.Sprintf("contains %s, which matches your declared allergy", allergen))
			}
		}

		// 2. Dietary style.
		style := strings.ToLower(q.DietaryStyle)
		switch style {
		case "vegan":
			if !hasLabel(p.Labels, "vegan") {
				score -= penaltyVegan
				analysis.Alerts = append(analysis.Alerts, "not suitable for a vegan diet")
			}
		case "vegetarian":
			if hasLabel(p.Labels, "meat") {
				score -= penaltyVegetarian
				analysis.Alerts = append(analysis.Alerts, "contains meat")
			}
		}

		// 3. Kosher requirement.
		if q.Kosher && !hasLabel(p.Labels, "kosher") {
			score -= penaltyKosher
			analysis.Alerts = append(analysis.Alerts, "no kosher certification")
		}
	}

	// 4-5. Nutrition penalties; only fire when the value is known.
	if p.Nutrition.Sugar != nil && *p.Nutrition.Sugar > sugarThreshold {
		score -= penaltySugar
		analysis.Alerts = append(analysis.Alerts, "high in sugar")
	}
	if p.Nutrition.SodiumMg != nil && *p.Nutrition.SodiumMg > sodiumThreshold {
		score -= penaltySodium
		analysis.Alerts = append(analysis.Alerts, "high in sodium")
	}

	// 6-7. Nutrition bonuses.
	if p.Nutrition.Protein > proteinThreshold {
		score += bonusProtein
		analysis.Recommendations = append(analysis.Recommendations, "good source of protein")
	}
	if p.Nutrition.Fiber != nil && *p.Nutrition.Fiber > fiberThreshold {
		score += bonusFiber
		analysis.Recommendations = append(analysis.Recommendations, "good source of fiber")
	}

	analysis.CompatibilityScore = clamp(score)
	analysis.HealthAssessment = assessment(analysis.CompatibilityScore)
	analysis.DailyContribution = contribution(&p.Nutrition, plan)

	return analysis
}

func matchAllergen(allergy string, allergens []string) (bool, string) {
	allergy = strings.ToLower(strings.TrimSpace(allergy))
	if allergy == "" {
		return false, ""
	}
	for _, a := range allergens {
		lower := strings.ToLower(a)
		if strings.Contains(lower, allergy) || strings.Contains(allergy, lower) {
			return true, a
		}
	}
	return false, ""
}

func hasLabel(labels []string, want string) bool {
	for _, l := range labels {
		if strings.Contains(strings.ToLower(l), want) {
			return true
		}
	}
	return false
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func assessment(score int) string {
	switch {
	case score >= 80:
		return "excellent fit"
	case score >= 60:
		return "fit with minor caveats"
	case score >= 40:
		return "several nutritional concerns"
	case score >= 20:
		return "not recommended for your goals"
	default:
		return "strongly conflicts with your dietary needs"
	}
}

func contribution(n *product.Nutrition, plan *profile.Plan) Contribution {
	c := Contribution{}
	if plan == nil {
		return c
	}

	c.Calories = percent(n.Calories, plan.DailyCalories)
	c.Protein = percent(n.Protein, plan.DailyProtein)
	c.Carbs = percent(n.Carbs, plan.DailyCarbs)
	c.Fat = percent(n.Fat, plan.DailyFat)
	return c
}

func percent(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return round1(value / target * 100)
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
