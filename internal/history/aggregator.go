package history

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"nutriscan/internal/meallog"
	"nutriscan/internal/product"
)

const maxEntries = 100

// Entry is a display-only projection over the two record kinds the feed
// merges. Computed on read, never stored.
type Entry struct {
	Type          string            `json:"type"` // "product" | "meal"
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Brand         string            `json:"brand,omitempty"`
	Nutrition     product.Nutrition `json:"nutrition_per_100g"`
	QuantityGrams *float64          `json:"quantity_grams,omitempty"`
	MealPeriod    string            `json:"meal_period,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

type ProductSource interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]product.Product, error)
}

type MealSource interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]meallog.Entry, error)
}

// Aggregator reconstructs a user's scan history from persisted products
// and scan-sourced meal-log rows.
type Aggregator struct {
	products ProductSource
	meals    MealSource
}

func NewAggregator(products ProductSource, meals MealSource) *Aggregator {
	return &Aggregator{products: products, meals: meals}
}

// GetHistory merges both sources into one feed, newest first, capped at
// 100 entries. A failing source degrades to an empty list instead of
// failing the whole call.
func (a *Aggregator) GetHistory(ctx context.Context, userID string) []Entry {
	entries := make([]Entry, 0, maxEntries)

	products, err := a.products.ListByUser(ctx, userID, maxEntries)
	if err != nil {
		log.Printf("HISTORY_PRODUCTS_FAILED user=%s err=%v", userID, err)
		products = nil
	}
	for i := range products {
		entries = append(entries, fromProduct(&products[i]))
	}

	meals, err := a.meals.ListByUser(ctx, userID, maxEntries)
	if err != nil {
		log.Printf("HISTORY_MEALS_FAILED user=%s err=%v", userID, err)
		meals = nil
	}
	for i := range meals {
		if !strings.HasPrefix(meals[i].Name, meallog.ScanPrefix) {
			continue
		}
		entries = append(entries, fromMeal(&meals[i]))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}
	return entries
}

func fromProduct(p *product.Product) Entry {
	return Entry{
		Type:      "product",
		ID:        p.Barcode,
		Name:      p.Name,
		Brand:     p.Brand,
		Nutrition: p.Nutrition,
		CreatedAt: p.CreatedAt,
	}
}

// fromMeal reverse-derives the per-100g view from the absolute
// nutrition the log stores for the consumed quantity.
func fromMeal(e *meallog.Entry) Entry {
	quantity := e.QuantityGrams

	var n product.Nutrition
	if quantity > 0 {
		factor := 100 / quantity
		n = product.Nutrition{
			Calories: e.Calories * factor,
			Protein:  e.Protein * factor,
			Carbs:    e.Carbs * factor,
			Fat:      e.Fat * factor,
		}
	}

	return Entry{
		Type:          "meal",
		ID:            e.ID,
		Name:          strings.TrimPrefix(e.Name, meallog.ScanPrefix),
		Nutrition:     n,
		QuantityGrams: &quantity,
		MealPeriod:    e.MealPeriod,
		CreatedAt:     e.CreatedAt,
	}
}
