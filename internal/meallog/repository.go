package meallog

import (
	"context"
	"time"
)

// Repository defines the data-access contract.
type Repository interface {
	Insert(ctx context.Context, entry *Entry) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error)
	SumSince(ctx context.Context, userID string, since time.Time) (Totals, error)
}
