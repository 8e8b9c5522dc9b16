package product

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// row payload stored as JSONB; barcode, name and ownership stay as columns
// so lookups and per-user listings hit plain indexes.
type productDoc struct {
	Brand                string    `json:"brand,omitempty"`
	Category             string    `json:"category,omitempty"`
	Nutrition            Nutrition `json:"nutrition_per_100g"`
	Ingredients          []string  `json:"ingredients,omitempty"`
	Allergens            []string  `json:"allergens,omitempty"`
	Labels               []string  `json:"labels,omitempty"`
	HealthScore          *int      `json:"health_score,omitempty"`
	ImageURL             string    `json:"image_url,omitempty"`
	ServingSize          string    `json:"serving_size,omitempty"`
	ServingsPerContainer *float64  `json:"servings_per_container,omitempty"`
	EstimatedPrice       *float64  `json:"estimated_price,omitempty"`
	PricePer100g         *float64  `json:"price_per_100g,omitempty"`
	PriceConfidence      string    `json:"price_confidence,omitempty"`
}

func (r *PostgresRepository) FindByBarcode(
	ctx context.Context,
	barcode string,
) (*Product, error) {

	p := &Product{}
	var doc []byte

	err := r.db.QueryRow(ctx, `
		SELECT barcode, name, scanned_by, doc, created_at, updated_at
		FROM products
		WHERE barcode = $1
	`, barcode).Scan(&p.Barcode, &p.Name, &p.ScannedBy, &doc, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var d productDoc
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, err
	}
	applyDoc(p, &d)

	return p, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, p *Product) error {
	doc, err := json.Marshal(toDoc(p))
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO products (barcode, name, scanned_by, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (barcode) DO UPDATE
		SET name = $2,
		    doc = $4,
		    updated_at = now()
	`, p.Barcode, p.Name, p.ScannedBy, doc)

	return err
}

func (r *PostgresRepository) TouchAccess(ctx context.Context, barcode string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE products
		SET updated_at = now()
		WHERE barcode = $1
	`, barcode)

	return err
}

func (r *PostgresRepository) ListByUser(
	ctx context.Context,
	userID string,
	limit int,
) ([]Product, error) {

	rows, err := r.db.Query(ctx, `
		SELECT barcode, name, scanned_by, doc, created_at, updated_at
		FROM products
		WHERE scanned_by = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product

	for rows.Next() {
		var p Product
		var doc []byte

		if err := rows.Scan(
			&p.Barcode,
			&p.Name,
			&p.ScannedBy,
			&doc,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}

		var d productDoc
		if err := json.Unmarshal(doc, &d); err != nil {
			return nil, err
		}
		applyDoc(&p, &d)

		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *PostgresRepository) CountByUser(
	ctx context.Context,
	userID string,
) (int, error) {

	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM products WHERE scanned_by = $1
	`, userID).Scan(&count)

	return count, err
}

func toDoc(p *Product) *productDoc {
	return &productDoc{
		Brand:                p.Brand,
		Category:             p.Category,
		Nutrition:            p.Nutrition,
		Ingredients:          p.Ingredients,
		Allergens:            p.Allergens,
		Labels:               p.Labels,
		HealthScore:          p.HealthScore,
		ImageURL:             p.ImageURL,
		ServingSize:          p.ServingSize,
		ServingsPerContainer: p.ServingsPerContainer,
		EstimatedPrice:       p.EstimatedPrice,
		PricePer100g:         p.PricePer100g,
		PriceConfidence:      p.PriceConfidence,
	}
}

func applyDoc(p *Product, d *productDoc) {
	p.Brand = d.Brand
	p.Category = d.Category
	p.Nutrition = d.Nutrition
	p.Ingredients = d.Ingredients
	p.Allergens = d.Allergens
	p.Labels = d.Labels
	p.HealthScore = d.HealthScore
	p.ImageURL = d.ImageURL
	p.ServingSize = d.ServingSize
	p.ServingsPerContainer = d.ServingsPerContainer
	p.EstimatedPrice = d.EstimatedPrice
	p.PricePer100g = d.PricePer100g
	p.PriceConfidence = d.PriceConfidence
}
