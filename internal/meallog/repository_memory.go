package meallog

import (
	"context"
	"sort"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu      sync.Mutex
	entries []Entry
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Insert(ctx context.Context, entry *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, *entry)
	return nil
}

func (r *InMemoryRepository) ListByUser(
	ctx context.Context,
	userID string,
	limit int,
) ([]Entry, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Entry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) SumSince(
	ctx context.Context,
	userID string,
	since time.Time,
) (Totals, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	var t Totals
	for _, e := range r.entries {
		if e.UserID != userID || e.CreatedAt.Before(since) {
			continue
		}
		t.Calories += e.Calories
		t.Protein += e.Protein
		t.Carbs += e.Carbs
		t.Fat += e.Fat
		t.Entries++
	}
	return t, nil
}
