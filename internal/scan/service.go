package scan

import (
	"context"
	"log"

	"nutriscan/internal/pricing"
	"nutriscan/internal/product"
	"nutriscan/internal/profile"
	"nutriscan/internal/scoring"
	"nutriscan/internal/vision"
)

// Searcher is the free-text side of the external registry.
type Searcher interface {
	SearchByName(ctx context.Context, query string, page int) []product.Product
}

// Result pairs the resolved product with its personalized assessment.
type Result struct {
	Product  *product.Product `json:"product"`
	Analysis scoring.Analysis `json:"analysis"`
}

// Service orchestrates the two scan paths: barcode through the
// resolver, photo through the vision extractor. Either way the product
// ends up persisted and scored against the requesting user's profile.
type Service struct {
	resolver  *product.Resolver
	extractor *vision.Extractor
	searcher  Searcher
	products  product.Repository
	profiles  *profile.Service
}

func NewService(
	resolver *product.Resolver,
	extractor *vision.Extractor,
	searcher Searcher,
	products product.Repository,
	profiles *profile.Service,
) *Service {
	return &Service{
		resolver:  resolver,
		extractor: extractor,
		searcher:  searcher,
		products:  products,
		profiles:  profiles,
	}
}

// ScanBarcode resolves a barcode and scores the result for the user.
func (s *Service) ScanBarcode(
	ctx context.Context,
	barcode string,
	userID string,
) (*Result, error) {

	p, err := s.resolver.Resolve(ctx, barcode, userID)
	if err != nil {
		return nil, err
	}

	log.Printf("SCAN_RESOLVED barcode=%s name=%q", p.Barcode, p.Name)

	prof := s.profiles.Load(ctx, userID)
	return &Result{Product: p, Analysis: scoring.Score(p, prof)}, nil
}

// ScanImage extracts a product from a photo, price-annotates it,
// persists it under its (possibly synthetic) identifier and scores it.
// The raw image is never stored.
func (s *Service) ScanImage(
	ctx context.Context,
	imageData []byte,
	userID string,
) (*Result, error) {

	p, err := s.extractor.ExtractFromImage(ctx, imageData)
	if err != nil {
		return nil, err
	}

	est := pricing.Estimate(p.Name, p.Category, 100)
	p.EstimatedPrice = &est.EstimatedPrice
	p.PricePer100g = &est.PricePer100g
	p.PriceConfidence = est.Confidence

	p.ScannedBy = userID
	if err := s.products.Upsert(ctx, p); err != nil {
		return nil, err
	}

	log.Printf("SCAN_EXTRACTED barcode=%s name=%q", p.Barcode, p.Name)

	prof := s.profiles.Load(ctx, userID)
	return &Result{Product: p, Analysis: scoring.Score(p, prof)}, nil
}

// Search proxies free-text search. Never fails; terminal registry
// trouble comes back as an empty list.
func (s *Service) Search(ctx context.Context, query string, page int) []product.Product {
	return s.searcher.SearchByName(ctx, query, page)
}
