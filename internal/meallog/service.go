package meallog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"nutriscan/internal/product"
	"nutriscan/internal/profile"
)

var ErrInvalidEntry = errors.New("invalid log entry")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add logs a scanned product. Nutrition is scaled from per-100g to the
// consumed quantity, and the name carries the scan prefix so the
// history feed can recognize the row.
func (s *Service) Add(
	ctx context.Context,
	userID string,
	p *product.Product,
	quantityGrams float64,
	mealPeriod string,
) (*Entry, error) {

	if p == nil || p.Name == "" {
		return nil, ErrInvalidEntry
	}
	if quantityGrams <= 0 {
		return nil, ErrInvalidEntry
	}
	if !validPeriod(mealPeriod) {
		return nil, ErrInvalidEntry
	}

	factor := quantityGrams / 100

	entry := &Entry{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          ScanPrefix + p.Name,
		Barcode:       p.Barcode,
		QuantityGrams: quantityGrams,
		MealPeriod:    strings.ToLower(mealPeriod),
		Calories:      p.Nutrition.Calories * factor,
		Protein:       p.Nutrition.Protein * factor,
		Carbs:         p.Nutrition.Carbs * factor,
		Fat:           p.Nutrition.Fat * factor,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// Summary is today's logged totals next to the user's plan targets.
type Summary struct {
	Totals Totals        `json:"totals"`
	Plan   *profile.Plan `json:"plan,omitempty"`
}

// TodaySummary sums everything logged since local midnight.
func (s *Service) TodaySummary(
	ctx context.Context,
	userID string,
	plan *profile.Plan,
) (*Summary, error) {

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	totals, err := s.repo.SumSince(ctx, userID, midnight)
	if err != nil {
		return nil, err
	}

	return &Summary{Totals: totals, Plan: plan}, nil
}

func validPeriod(period string) bool {
	period = strings.ToLower(period)
	for _, p := range MealPeriods {
		if p == period {
			return true
		}
	}
	return false
}
