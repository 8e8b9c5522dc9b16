package product

import (
	"context"
	"errors"
	"testing"
)

type fakeRegistry struct {
	product *Product
	err     error
	calls   int
}

func (f *fakeRegistry) GetByBarcode(ctx context.Context, barcode string) (*Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.product
	return &copied, nil
}

// countingRepo wraps the in-memory repo to count upserts.
type countingRepo struct {
	*InMemoryRepository
	upserts int
}

func (r *countingRepo) Upsert(ctx context.Context, p *Product) error {
	r.upserts++
	return r.InMemoryRepository.Upsert(ctx, p)
}

func sample(barcode string) *Product {
	return &Product{
		Barcode:   barcode,
		Name:      "Oat Milk",
		Category:  "beverages",
		Nutrition: Nutrition{Calories: 45, Protein: 1, Carbs: 7, Fat: 1.5},
	}
}

func TestResolveCacheHitSkipsRegistry(t *testing.T) {
	repo := NewInMemoryRepository()
	_ = repo.Upsert(context.Background(), sample("123"))

	registry := &fakeRegistry{product: sample("123")}
	resolver := NewResolver(repo, registry)

	p, err := resolver.Resolve(context.Background(), "123", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Oat Milk" {
		t.Fatalf("wrong product: %+v", p)
	}
	if registry.calls != 0 {
		t.Fatalf("cache hit must not call the registry, got %d calls", registry.calls)
	}
}

func TestResolveCacheHitTouchesWatermark(t *testing.T) {
	repo := NewInMemoryRepository()
	_ = repo.Upsert(context.Background(), sample("123"))

	before, _ := repo.FindByBarcode(context.Background(), "123")

	resolver := NewResolver(repo, &fakeRegistry{})
	if _, err := resolver.Resolve(context.Background(), "123", "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, _ := repo.FindByBarcode(context.Background(), "123")
	if after.UpdatedAt.Before(before.UpdatedAt) {
		t.Fatal("cache hit should advance the updated_at watermark")
	}
}

func TestResolveMissQueriesRegistryOnceAndWritesThrough(t *testing.T) {
	repo := &countingRepo{InMemoryRepository: NewInMemoryRepository()}
	registry := &fakeRegistry{product: sample("456")}
	resolver := NewResolver(repo, registry)

	p, err := resolver.Resolve(context.Background(), "456", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if registry.calls != 1 {
		t.Fatalf("expected exactly one registry call, got %d", registry.calls)
	}
	if repo.upserts != 1 {
		t.Fatalf("expected exactly one upsert, got %d", repo.upserts)
	}

	stored, err := repo.FindByBarcode(context.Background(), "456")
	if err != nil {
		t.Fatalf("write-through missing: %v", err)
	}
	if stored.Name != p.Name || stored.Barcode != p.Barcode ||
		stored.Nutrition != p.Nutrition {
		t.Fatalf("stored record differs from returned one:\n%+v\n%+v", stored, p)
	}
	if stored.ScannedBy != "u1" {
		t.Fatalf("write-through should record the scanning user, got %q", stored.ScannedBy)
	}
}

func TestResolveBothSourcesFail(t *testing.T) {
	repo := NewInMemoryRepository()
	registry := &fakeRegistry{err: errors.New("registry unavailable")}
	resolver := NewResolver(repo, registry)

	_, err := resolver.Resolve(context.Background(), "789", "u1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveEmptyBarcode(t *testing.T) {
	resolver := NewResolver(NewInMemoryRepository(), &fakeRegistry{})

	_, err := resolver.Resolve(context.Background(), "", "u1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
