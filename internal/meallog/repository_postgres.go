package meallog

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, entry *Entry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO meal_logs (
			id, user_id, name, barcode, quantity_grams, meal_period,
			calories, protein, carbs, fat, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		entry.ID,
		entry.UserID,
		entry.Name,
		entry.Barcode,
		entry.QuantityGrams,
		entry.MealPeriod,
		entry.Calories,
		entry.Protein,
		entry.Carbs,
		entry.Fat,
		entry.CreatedAt,
	)

	return err
}

func (r *PostgresRepository) ListByUser(
	ctx context.Context,
	userID string,
	limit int,
) ([]Entry, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, barcode, quantity_grams, meal_period,
		       calories, protein, carbs, fat, created_at
		FROM meal_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry

	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Name,
			&e.Barcode,
			&e.QuantityGrams,
			&e.MealPeriod,
			&e.Calories,
			&e.Protein,
			&e.Carbs,
			&e.Fat,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *PostgresRepository) SumSince(
	ctx context.Context,
	userID string,
	since time.Time,
) (Totals, error) {

	var t Totals

	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(calories), 0),
		       COALESCE(SUM(protein), 0),
		       COALESCE(SUM(carbs), 0),
		       COALESCE(SUM(fat), 0),
		       COUNT(*)
		FROM meal_logs
		WHERE user_id = $1
		  AND created_at >= $2
	`, userID, since).Scan(&t.Calories, &t.Protein, &t.Carbs, &t.Fat, &t.Entries)

	return t, err
}
