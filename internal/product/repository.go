package product

import (
	"context"
	"errors"
)

// ErrNotFound means no source could resolve the barcode.
// Callers treat it as a definitive "product not found", never as retryable.
var ErrNotFound = errors.New("product not found")

// Repository defines the data-access contract.
// Resolver and the scan service depend ONLY on this interface.
type Repository interface {
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)
	Upsert(ctx context.Context, p *Product) error
	TouchAccess(ctx context.Context, barcode string) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Product, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}
