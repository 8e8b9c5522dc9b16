package product

import (
	"context"
	"sort"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu       sync.Mutex
	products map[string]*Product
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		products: make(map[string]*Product),
	}
}

func (r *InMemoryRepository) FindByBarcode(
	ctx context.Context,
	barcode string,
) (*Product, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[barcode]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *p
	return &copied, nil
}

func (r *InMemoryRepository) Upsert(ctx context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *p
	now := time.Now()
	if existing, ok := r.products[p.Barcode]; ok {
		copied.CreatedAt = existing.CreatedAt
	} else {
		copied.CreatedAt = now
	}
	copied.UpdatedAt = now

	r.products[p.Barcode] = &copied
	return nil
}

func (r *InMemoryRepository) TouchAccess(ctx context.Context, barcode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.products[barcode]; ok {
		p.UpdatedAt = time.Now()
	}
	return nil
}

func (r *InMemoryRepository) ListByUser(
	ctx context.Context,
	userID string,
	limit int,
) ([]Product, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	var products []Product
	for _, p := range r.products {
		if p.ScannedBy == userID {
			products = append(products, *p)
		}
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (r *InMemoryRepository) CountByUser(
	ctx context.Context,
	userID string,
) (int, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, p := range r.products {
		if p.ScannedBy == userID {
			count++
		}
	}
	return count, nil
}
