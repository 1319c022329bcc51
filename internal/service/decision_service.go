package service

import (
	"context"
	"time"

	"invest-research/internal/dto"
	"invest-research/internal/model"
	"invest-research/internal/repository"
	"invest-research/pkg/logger"
	"invest-research/pkg/utils"
)

// DecisionPatterns aggregates the decision journal: how often each action is
// taken and how the graded calls turned out.
type DecisionPatterns struct {
	Total          int            `json:"total"`
	ByAction       map[string]int `json:"by_action"`
	Graded         int            `json:"graded"`
	Correct        int            `json:"correct"`
	Incorrect      int            `json:"incorrect"`
	AccuracyPct    float64        `json:"accuracy_pct"`
	PendingOutcome int            `json:"pending_outcome"`
}

type DecisionService interface {
	Create(ctx context.Context, req *dto.DecisionRequest) (*model.Decision, error)
	Update(ctx context.Context, id string, req *dto.DecisionRequest) (*model.Decision, error)
	List(ctx context.Context) ([]model.Decision, error)
	Delete(ctx context.Context, id string) error
	Patterns(ctx context.Context) (*DecisionPatterns, error)
}

type decisionService struct {
	log          *logger.Logger
	decisionRepo repository.DecisionRepository
}

func NewDecisionService(log *logger.Logger, decisionRepo repository.DecisionRepository) DecisionService {
	return &decisionService{log: log, decisionRepo: decisionRepo}
}

func (s *decisionService) Create(ctx context.Context, req *dto.DecisionRequest) (*model.Decision, error) {
	decision := &model.Decision{UserID: model.DefaultUserID}
	applyDecisionRequest(decision, req)
	if err := s.decisionRepo.Create(ctx, decision); err != nil {
		return nil, err
	}
	return decision, nil
}

func (s *decisionService) Update(ctx context.Context, id string, req *dto.DecisionRequest) (*model.Decision, error) {
	decision, err := s.decisionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyDecisionRequest(decision, req)
	if err := s.decisionRepo.Save(ctx, decision); err != nil {
		return nil, err
	}
	return decision, nil
}

func applyDecisionRequest(decision *model.Decision, req *dto.DecisionRequest) {
	decision.Ticker = utils.NormalizeTicker(req.Ticker)
	decision.Action = req.Action
	decision.PriceAtDecision = req.PriceAtDecision
	decision.Thesis = req.Thesis
	decision.Reasoning = req.Reasoning
	decision.Outcome = req.Outcome
	decision.AnalysisID = req.AnalysisID
	decision.HoldingID = req.HoldingID

	decision.DecisionDate = time.Now().UTC()
	if req.DecisionDate != "" {
		if d, err := time.Parse("2006-01-02", req.DecisionDate); err == nil {
			decision.DecisionDate = d
		}
	}
}

func (s *decisionService) List(ctx context.Context) ([]model.Decision, error) {
	return s.decisionRepo.List(ctx, model.DefaultUserID)
}

func (s *decisionService) Delete(ctx context.Context, id string) error {
	if _, err := s.decisionRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.decisionRepo.Delete(ctx, id)
}

func (s *decisionService) Patterns(ctx context.Context) (*DecisionPatterns, error) {
	decisions, err := s.decisionRepo.List(ctx, model.DefaultUserID)
	if err != nil {
		return nil, err
	}

	patterns := &DecisionPatterns{
		Total:    len(decisions),
		ByAction: map[string]int{},
	}
	for i := range decisions {
		patterns.ByAction[decisions[i].Action]++
		if decisions[i].Outcome == nil {
			continue
		}
		switch *decisions[i].Outcome {
		case model.OutcomeCorrect:
			patterns.Graded++
			patterns.Correct++
		case model.OutcomeIncorrect:
			patterns.Graded++
			patterns.Incorrect++
		case model.OutcomePending:
			patterns.PendingOutcome++
		}
	}
	if patterns.Graded > 0 {
		patterns.AccuracyPct = float64(patterns.Correct) / float64(patterns.Graded) * 100
	}
	return patterns, nil
}
