package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"invest-research/config"
	"invest-research/internal/dto"
	"invest-research/internal/model"
	"invest-research/internal/prompt"
	"invest-research/internal/repository"
	"invest-research/pkg/logger"
	"invest-research/pkg/utils"
)

const (
	analysisTemperature = 0.3
	scanTemperature     = 0.2
	chatTemperature     = 0.5
	simplifyTemperature = 0.6
)

// AnalysisService runs Buffett-style company research jobs. Start and
// Refresh return as soon as the job record is written; the search and
// generation phases run detached so an HTTP disconnect cannot abort them.
type AnalysisService interface {
	Start(ctx context.Context, ticker string) (*model.CompanyAnalysis, error)
	Refresh(ctx context.Context, id string, notes string) (*model.CompanyAnalysis, error)
	Get(ctx context.Context, id string) (*model.CompanyAnalysis, error)
	List(ctx context.Context) ([]model.CompanyAnalysis, error)
	Update(ctx context.Context, id string, req *dto.UpdateAnalysisRequest) (*model.CompanyAnalysis, error)
	Delete(ctx context.Context, id string) error
}

type analysisService struct {
	cfg           *config.Config
	log           *logger.Logger
	analysisRepo  repository.CompanyAnalysisRepository
	searchRepo    repository.SearchRepository
	genRepo       repository.GenerationRepository
	watchlistRepo repository.WatchlistRepository
}

func NewAnalysisService(
	cfg *config.Config,
	log *logger.Logger,
	analysisRepo repository.CompanyAnalysisRepository,
	searchRepo repository.SearchRepository,
	genRepo repository.GenerationRepository,
	watchlistRepo repository.WatchlistRepository,
) AnalysisService {
	return &analysisService{
		cfg:           cfg,
		log:           log,
		analysisRepo:  analysisRepo,
		searchRepo:    searchRepo,
		genRepo:       genRepo,
		watchlistRepo: watchlistRepo,
	}
}

func (s *analysisService) Start(ctx context.Context, ticker string) (*model.CompanyAnalysis, error) {
	ticker = utils.NormalizeTicker(ticker)

	analysis := &model.CompanyAnalysis{
		UserID: model.DefaultUserID,
		Ticker: ticker,
		Status: model.StatusInProgress,
	}
	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		return nil, err
	}

	id := analysis.ID
	utils.GoSafe(func() {
		// Detached from the request context on purpose: closing the
		// browser tab must not abort a running research job.
		bgCtx := context.Background()
		if err := s.runAnalysis(bgCtx, id, ticker); err != nil {
			s.log.ErrorContext(bgCtx, "company analysis failed",
				logger.StringField("analysis_id", id),
				logger.StringField("ticker", ticker),
				logger.ErrorField(err),
			)
			s.markFailed(bgCtx, id)
		}
	}, func(recovered interface{}) {
		s.markFailed(context.Background(), id)
	})

	return analysis, nil
}

func (s *analysisService) runAnalysis(ctx context.Context, id, ticker string) error {
	queries := prompt.BuffettQueries(ticker)
	searchData, err := s.searchRepo.SearchBatch(ctx, queries)
	if err != nil {
		return err
	}

	analysis, err := s.analysisRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// Checkpoint the search results before generation so a generation
	// failure never loses them.
	analysis.RawSearchData = jsonbMarshal(searchData)
	if err := s.analysisRepo.Save(ctx, analysis); err != nil {
		return err
	}

	return s.generateAndComplete(ctx, analysis, searchData, nil, nil)
}

// generateAndComplete runs the generation phase shared by Start and Refresh
// and writes the COMPLETE record.
func (s *analysisService) generateAndComplete(
	ctx context.Context,
	analysis *model.CompanyAnalysis,
	searchData []dto.SearchResult,
	notes []dto.ResearchNote,
	questions []dto.GeneratedQuestion,
) error {
	userPrompt := prompt.BuffettUserPrompt(analysis.Ticker, searchData, notes, questions)
	opts := dto.GenerationOptions{
		SystemPrompt: prompt.BuffettSystemPrompt(),
		Model:        s.cfg.AI.AnalysisModel,
		MaxTokens:    s.cfg.Research.AnalysisMaxTokens,
		Temperature:  analysisTemperature,
	}

	var result dto.BuffettResult
	raw, err := s.genRepo.CompleteJSON(ctx, []dto.Message{{Role: dto.RoleUser, Content: userPrompt}}, opts, &result)
	if err != nil {
		return err
	}

	applyBuffettResult(analysis, &result, repository.StripCodeFence(raw))
	analysis.Status = model.StatusComplete
	if err := s.analysisRepo.Save(ctx, analysis); err != nil {
		return err
	}

	if analysis.Verdict != nil &&
		(*analysis.Verdict == model.VerdictBuy || *analysis.Verdict == model.VerdictWatch) {
		s.autoAddToWatchlist(ctx, analysis)
	}
	return nil
}

// autoAddToWatchlist tracks a BUY/WATCH verdict on the watchlist. An already
// tracked ticker is fine; any other failure is logged but never fails the
// analysis.
func (s *analysisService) autoAddToWatchlist(ctx context.Context, analysis *model.CompanyAnalysis) {
	item := &model.WatchlistItem{
		UserID: analysis.UserID,
		Ticker: analysis.Ticker,
		Reason: analysis.VerdictReasoning,
	}
	if analysis.CompanyName != nil {
		item.CompanyName = *analysis.CompanyName
	}

	err := s.watchlistRepo.Create(ctx, item)
	if err == nil {
		s.log.InfoContext(ctx, "verdict added ticker to watchlist",
			logger.StringField("ticker", analysis.Ticker),
			logger.StringField("verdict", *analysis.Verdict),
		)
		return
	}
	if !isDuplicateKey(err) {
		s.log.ErrorContext(ctx, "failed to auto-add ticker to watchlist",
			logger.StringField("ticker", analysis.Ticker),
			logger.ErrorField(err),
		)
	}
}

func (s *analysisService) Refresh(ctx context.Context, id string, notes string) (*model.CompanyAnalysis, error) {
	analysis, err := s.analysisRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if analysis.Status == model.StatusInProgress || analysis.Status == model.StatusUpdating {
		return nil, ErrAnalysisInProgress
	}
	if len(analysis.RawSearchData) == 0 {
		return nil, ErrMissingSearchData
	}

	var storedNotes []dto.ResearchNote
	if err := decodeJSONB(analysis.ResearchNotes, &storedNotes); err != nil {
		s.log.WarnContext(ctx, "discarding unreadable research notes",
			logger.StringField("analysis_id", id), logger.ErrorField(err))
		storedNotes = nil
	}
	if notes != "" {
		storedNotes = append(storedNotes, dto.ResearchNote{
			ID:        uuid.NewString(),
			Content:   notes,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		})
		analysis.ResearchNotes = jsonbMarshal(storedNotes)
	}

	analysis.Status = model.StatusUpdating
	if err := s.analysisRepo.Save(ctx, analysis); err != nil {
		return nil, err
	}

	utils.GoSafe(func() {
		bgCtx := context.Background()
		if err := s.runRefresh(bgCtx, id); err != nil {
			s.log.ErrorContext(bgCtx, "analysis refresh failed",
				logger.StringField("analysis_id", id),
				logger.ErrorField(err),
			)
			s.revertToComplete(bgCtx, id)
		}
	}, func(recovered interface{}) {
		s.revertToComplete(context.Background(), id)
	})

	return analysis, nil
}

func (s *analysisService) runRefresh(ctx context.Context, id string) error {
	analysis, err := s.analysisRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	var searchData []dto.SearchResult
	if err := json.Unmarshal(analysis.RawSearchData, &searchData); err != nil {
		return err
	}
	var notes []dto.ResearchNote
	if err := decodeJSONB(analysis.ResearchNotes, &notes); err != nil {
		notes = nil
	}
	var questions []dto.GeneratedQuestion
	if err := decodeJSONB(analysis.GeneratedQuestions, &questions); err != nil {
		questions = nil
	}

	return s.generateAndComplete(ctx, analysis, searchData, notes, questions)
}

func (s *analysisService) markFailed(ctx context.Context, id string) {
	analysis, err := s.analysisRepo.FindByID(ctx, id)
	if err != nil {
		s.log.ErrorContext(ctx, "cannot mark analysis failed",
			logger.StringField("analysis_id", id), logger.ErrorField(err))
		return
	}
	analysis.Status = model.StatusFailed
	if err := s.analysisRepo.Save(ctx, analysis); err != nil {
		s.log.ErrorContext(ctx, "cannot mark analysis failed",
			logger.StringField("analysis_id", id), logger.ErrorField(err))
	}
}

// revertToComplete undoes a failed refresh. The prior COMPLETE result is
// still in the row; only the status needs to go back.
func (s *analysisService) revertToComplete(ctx context.Context, id string) {
	analysis, err := s.analysisRepo.FindByID(ctx, id)
	if err != nil {
		s.log.ErrorContext(ctx, "cannot revert analysis after failed refresh",
			logger.StringField("analysis_id", id), logger.ErrorField(err))
		return
	}
	analysis.Status = model.StatusComplete
	if err := s.analysisRepo.Save(ctx, analysis); err != nil {
		s.log.ErrorContext(ctx, "cannot revert analysis after failed refresh",
			logger.StringField("analysis_id", id), logger.ErrorField(err))
	}
}

func (s *analysisService) Get(ctx context.Context, id string) (*model.CompanyAnalysis, error) {
	return s.analysisRepo.FindByID(ctx, id)
}

func (s *analysisService) List(ctx context.Context) ([]model.CompanyAnalysis, error) {
	return s.analysisRepo.List(ctx, model.DefaultUserID)
}

func (s *analysisService) Update(ctx context.Context, id string, req *dto.UpdateAnalysisRequest) (*model.CompanyAnalysis, error) {
	analysis, err := s.analysisRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.GeneratedQuestions != nil {
		analysis.GeneratedQuestions = jsonbMarshal(req.GeneratedQuestions)
	}
	if req.ResearchNotes != nil {
		analysis.ResearchNotes = jsonbMarshal(req.ResearchNotes)
	}
	if err := s.analysisRepo.Save(ctx, analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}

func (s *analysisService) Delete(ctx context.Context, id string) error {
	if _, err := s.analysisRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.analysisRepo.Delete(ctx, id)
}
