package profile

import (
	"context"
	"errors"
)

var ErrNotSet = errors.New("profile not set")

// Repository defines the data-access contract.
type Repository interface {
	GetPlan(ctx context.Context, userID string) (*Plan, error)
	GetQuestionnaire(ctx context.Context, userID string) (*Questionnaire, error)
	UpsertPlan(ctx context.Context, userID string, plan *Plan) error
	UpsertQuestionnaire(ctx context.Context, userID string, q *Questionnaire) error
}
