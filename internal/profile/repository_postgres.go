package profile

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

func (r *PostgresRepository) GetPlan(
	ctx context.Context,
	userID string,
) (*Plan, error) {

	plan := &Plan{}

	err := r.db.QueryRow(ctx, `
		SELECT daily_calories, daily_protein, daily_carbs, daily_fat
		FROM user_plans
		WHERE user_id = $1
	`, userID).Scan(
		&plan.DailyCalories,
		&plan.DailyProtein,
		&plan.DailyCarbs,
		&plan.DailyFat,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotSet
		}
		return nil, err
	}

	return plan, nil
}

func (r *PostgresRepository) GetQuestionnaire(
	ctx context.Context,
	userID string,
) (*Questionnaire, error) {

	q := &Questionnaire{}
	var allergies []byte

	err := r.db.QueryRow(ctx, `
		SELECT allergies, dietary_style, kosher
		FROM user_questionnaires
		WHERE user_id = $1
	`, userID).Scan(&allergies, &q.DietaryStyle, &q.Kosher)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotSet
		}
		return nil, err
	}

	if len(allergies) > 0 {
		if err := json.Unmarshal(allergies, &q.Allergies); err != nil {
			return nil, err
		}
	}

	return q, nil
}

func (r *PostgresRepository) UpsertPlan(
	ctx context.Context,
	userID string,
	plan *Plan,
) error {

	_, err := r.db.Exec(ctx, `
		INSERT INTO user_plans (user_id, daily_calories, daily_protein, daily_carbs, daily_fat, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (user_id) DO UPDATE
		SET daily_calories = $2,
		    daily_protein = $3,
		    daily_carbs = $4,
		    daily_fat = $5,
		    updated_at = now()
	`, userID, plan.DailyCalories, plan.DailyProtein, plan.DailyCarbs, plan.DailyFat)

	return err
}

func (r *PostgresRepository) UpsertQuestionnaire(
	ctx context.Context,
	userID string,
	q *Questionnaire,
) error {

	allergies, err := json.Marshal(q.Allergies)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO user_questionnaires (user_id, allergies, dietary_style, kosher, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_id) DO UPDATE
		SET allergies = $2,
		    dietary_style = $3,
		    kosher = $4,
		    updated_at = now()
	`, userID, allergies, q.DietaryStyle, q.Kosher)

	return err
}
