package profile

import (
	"context"
	"errors"
	"testing"
)

// failingRepo lets each half of the profile fail independently.
type failingRepo struct {
	*InMemoryRepository
	planErr          error
	questionnaireErr error
}

func (r *failingRepo) GetPlan(ctx context.Context, userID string) (*Plan, error) {
	if r.planErr != nil {
		return nil, r.planErr
	}
	return r.InMemoryRepository.GetPlan(ctx, userID)
}

func (r *failingRepo) GetQuestionnaire(ctx context.Context, userID string) (*Questionnaire, error) {
	if r.questionnaireErr != nil {
		return nil, r.questionnaireErr
	}
	return r.InMemoryRepository.GetQuestionnaire(ctx, userID)
}

func TestLoadReturnsBothHalves(t *testing.T) {
	repo := NewInMemoryRepository()
	_ = repo.UpsertPlan(context.Background(), "u1", &Plan{DailyCalories: 2000})
	_ = repo.UpsertQuestionnaire(context.Background(), "u1", &Questionnaire{
		Allergies: []string{"peanuts"},
		Kosher:    true,
	})

	p := NewService(repo).Load(context.Background(), "u1")

	if p.Plan == nil || p.Plan.DailyCalories != 2000 {
		t.Fatalf("plan missing or wrong: %+v", p.Plan)
	}
	if p.Questionnaire == nil || !p.Questionnaire.Kosher {
		t.Fatalf("questionnaire missing or wrong: %+v", p.Questionnaire)
	}
}

func TestLoadFailingPlanDoesNotBlockQuestionnaire(t *testing.T) {
	inner := NewInMemoryRepository()
	_ = inner.UpsertQuestionnaire(context.Background(), "u1", &Questionnaire{
		DietaryStyle: "vegan",
	})

	repo := &failingRepo{
		InMemoryRepository: inner,
		planErr:            errors.New("db down"),
	}

	p := NewService(repo).Load(context.Background(), "u1")

	if p.Plan != nil {
		t.Fatalf("expected nil plan on failure, got %+v", p.Plan)
	}
	if p.Questionnaire == nil || p.Questionnaire.DietaryStyle != "vegan" {
		t.Fatalf("questionnaire should survive plan failure: %+v", p.Questionnaire)
	}
}

func TestLoadUnknownUserIsEmptyNotError(t *testing.T) {
	p := NewService(NewInMemoryRepository()).Load(context.Background(), "nobody")

	if p == nil {
		t.Fatal("Load must never return nil")
	}
	if p.Plan != nil || p.Questionnaire != nil {
		t.Fatalf("expected empty profile, got %+v", p)
	}
}
