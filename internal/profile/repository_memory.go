package profile

import (
	"context"
	"sync"
)

type InMemoryRepository struct {
	mu             sync.Mutex
	plans          map[string]*Plan
	questionnaires map[string]*Questionnaire
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		plans:          make(map[string]*Plan),
		questionnaires: make(map[string]*Questionnaire),
	}
}

func (r *InMemoryRepository) GetPlan(ctx context.Context, userID string) (*Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan, ok := r.plans[userID]
	if !ok {
		return nil, ErrNotSet
	}
	copied := *plan
	return &copied, nil
}

func (r *InMemoryRepository) GetQuestionnaire(ctx context.Context, userID string) (*Questionnaire, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.questionnaires[userID]
	if !ok {
		return nil, ErrNotSet
	}
	copied := *q
	return &copied, nil
}

func (r *InMemoryRepository) UpsertPlan(ctx context.Context, userID string, plan *Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *plan
	r.plans[userID] = &copied
	return nil
}

func (r *InMemoryRepository) UpsertQuestionnaire(ctx context.Context, userID string, q *Questionnaire) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *q
	r.questionnaires[userID] = &copied
	return nil
}
