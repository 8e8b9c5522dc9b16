package product

import (
	"context"
	"errors"
	"log"
)

// RegistryLookup is the slice of the external registry the resolver needs.
type RegistryLookup interface {
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)
}

// Resolver resolves a barcode: local store first, then the external
// registry with write-through, then ErrNotFound. It issues at most one
// external call per request; retries belong to the search path.
type Resolver struct {
	repo     Repository
	registry RegistryLookup
}

func NewResolver(repo Repository, registry RegistryLookup) *Resolver {
	return &Resolver{repo: repo, registry: registry}
}

func (r *Resolver) Resolve(
	ctx context.Context,
	barcode string,
	userID string,
) (*Product, error) {

	if barcode == "" {
		return nil, ErrNotFound
	}

	// 1. Local store. A hit short-circuits: touch the access watermark
	// and return without going to the network.
	p, err := r.repo.FindByBarcode(ctx, barcode)
	if err == nil {
		if touchErr := r.repo.TouchAccess(ctx, barcode); touchErr != nil {
			log.Printf("RESOLVE_TOUCH_FAILED barcode=%s err=%v", barcode, touchErr)
		}
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		// Store trouble is treated as a miss; the registry can still answer.
		log.Printf("RESOLVE_STORE_FAILED barcode=%s err=%v", barcode, err)
	}

	// 2. External registry, single attempt.
	p, err = r.registry.GetByBarcode(ctx, barcode)
	if err != nil {
		log.Printf("RESOLVE_MISS barcode=%s err=%v", barcode, err)
		return nil, ErrNotFound
	}

	// 3. Write-through so the next scan is a cache hit.
	p.ScannedBy = userID
	if err := r.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}
