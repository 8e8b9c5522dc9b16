package profile

import (
	"context"
	"errors"
	"log"
	"sync"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Load fetches the plan and the questionnaire concurrently and waits for
// both. Each half defaults to nil on its own failure, so a broken plan
// query never hides a perfectly good questionnaire (and vice versa).
// Load itself never fails.
func (s *Service) Load(ctx context.Context, userID string) *Profile {
	var (
		wg   sync.WaitGroup
		plan *Plan
		q    *Questionnaire
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		p, err := s.repo.GetPlan(ctx, userID)
		if err != nil {
			if !errors.Is(err, ErrNotSet) {
				log.Printf("PROFILE_PLAN_FAILED user=%s err=%v", userID, err)
			}
			return
		}
		plan = p
	}()

	go func() {
		defer wg.Done()
		res, err := s.repo.GetQuestionnaire(ctx, userID)
		if err != nil {
			if !errors.Is(err, ErrNotSet) {
				log.Printf("PROFILE_QUESTIONNAIRE_FAILED user=%s err=%v", userID, err)
			}
			return
		}
		q = res
	}()

	wg.Wait()

	return &Profile{Plan: plan, Questionnaire: q}
}

func (s *Service) Save(ctx context.Context, userID string, p *Profile) error {
	if p == nil {
		return errors.New("empty profile")
	}

	if p.Plan != nil {
		if err := s.repo.UpsertPlan(ctx, userID, p.Plan); err != nil {
			return err
		}
	}
	if p.Questionnaire != nil {
		if err := s.repo.UpsertQuestionnaire(ctx, userID, p.Questionnaire); err != nil {
			return err
		}
	}
	return nil
}
