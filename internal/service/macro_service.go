package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"invest-research/config"
	"invest-research/internal/dto"
	"invest-research/internal/model"
	"invest-research/internal/prompt"
	"invest-research/internal/repository"
	"invest-research/pkg/cache"
	"invest-research/pkg/logger"
	"invest-research/pkg/utils"
)

const macroContextCacheKey = "macro:context"

// MacroService runs Dalio-style macro regime scans and provides the macro
// context block embedded in portfolio-scan prompts.
type MacroService interface {
	Start(ctx context.Context) (*model.MacroReport, error)
	Get(ctx context.Context, id string) (*model.MacroReport, error)
	Latest(ctx context.Context) (*model.MacroReport, error)
	List(ctx context.Context, limit int) ([]model.MacroReport, error)
	// Context returns the latest completed report flattened to prompt
	// text, or "" when no report completed yet.
	Context(ctx context.Context) string
	// Chat answers a follow-up question about a completed report,
	// carrying the prior conversation turns.
	Chat(ctx context.Context, id, question string, history []dto.Message) (string, error)
	// Simplify returns the plain-language rewrite of a completed report,
	// generating and caching it on first request.
	Simplify(ctx context.Context, id string) (string, error)
}

type macroService struct {
	cfg        *config.Config
	log        *logger.Logger
	macroRepo  repository.MacroReportRepository
	searchRepo repository.SearchRepository
	genRepo    repository.GenerationRepository
	cache      cache.Cache
}

func NewMacroService(
	cfg *config.Config,
	log *logger.Logger,
	macroRepo repository.MacroReportRepository,
	searchRepo repository.SearchRepository,
	genRepo repository.GenerationRepository,
	inmemoryCache cache.Cache,
) MacroService {
	return &macroService{
		cfg:        cfg,
		log:        log,
		macroRepo:  macroRepo,
		searchRepo: searchRepo,
		genRepo:    genRepo,
		cache:      inmemoryCache,
	}
}

func (s *macroService) Start(ctx context.Context) (*model.MacroReport, error) {
	report := &model.MacroReport{
		UserID: model.DefaultUserID,
		Status: model.StatusInProgress,
	}
	if err := s.macroRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	id := report.ID
	utils.GoSafe(func() {
		bgCtx := context.Background()
		if err := s.runScan(bgCtx, id); err != nil {
			s.log.ErrorContext(bgCtx, "macro scan failed",
				logger.StringField("report_id", id),
				logger.ErrorField(err),
			)
			s.markFailed(bgCtx, id)
		}
	}, func(recovered interface{}) {
		s.markFailed(context.Background(), id)
	})

	return report, nil
}

func (s *macroService) runScan(ctx context.Context, id string) error {
	queries := prompt.DalioQueries()
	searchData, err := s.searchRepo.SearchBatch(ctx, queries)
	if err != nil {
		return err
	}

	report, err := s.macroRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	report.RawSearchData = jsonbMarshal(searchData)
	if err := s.macroRepo.Save(ctx, report); err != nil {
		return err
	}

	opts := dto.GenerationOptions{
		SystemPrompt: prompt.DalioSystemPrompt(),
		Model:        s.cfg.AI.AnalysisModel,
		MaxTokens:    s.cfg.Research.AnalysisMaxTokens,
		Temperature:  analysisTemperature,
	}

	var result dto.DalioResult
	raw, err := s.genRepo.CompleteJSON(ctx, []dto.Message{{Role: dto.RoleUser, Content: prompt.DalioUserPrompt(searchData)}}, opts, &result)
	if err != nil {
		return err
	}

	applyDalioResult(report, &result, repository.StripCodeFence(raw))
	report.Status = model.StatusComplete
	if err := s.macroRepo.Save(ctx, report); err != nil {
		return err
	}

	// The cached prompt context is stale now.
	s.cache.Delete(macroContextCacheKey)
	return nil
}

func (s *macroService) markFailed(ctx context.Context, id string) {
	report, err := s.macroRepo.FindByID(ctx, id)
	if err != nil {
		s.log.ErrorContext(ctx, "cannot mark macro report failed",
			logger.StringField("report_id", id), logger.ErrorField(err))
		return
	}
	report.Status = model.StatusFailed
	if err := s.macroRepo.Save(ctx, report); err != nil {
		s.log.ErrorContext(ctx, "cannot mark macro report failed",
			logger.StringField("report_id", id), logger.ErrorField(err))
	}
}

func (s *macroService) Get(ctx context.Context, id string) (*model.MacroReport, error) {
	return s.macroRepo.FindByID(ctx, id)
}

func (s *macroService) Latest(ctx context.Context) (*model.MacroReport, error) {
	return s.macroRepo.FindLatest(ctx, model.DefaultUserID)
}

func (s *macroService) List(ctx context.Context, limit int) ([]model.MacroReport, error) {
	return s.macroRepo.List(ctx, model.DefaultUserID, limit)
}

func (s *macroService) Context(ctx context.Context) string {
	if cached, ok := s.cache.Get(macroContextCacheKey); ok {
		if text, ok := cached.(string); ok {
			return text
		}
	}

	report, err := s.macroRepo.FindLatestComplete(ctx, model.DefaultUserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.WarnContext(ctx, "cannot load macro context", logger.ErrorField(err))
		}
		return ""
	}

	text := reportContextText(report)
	s.cache.Set(macroContextCacheKey, text, s.cfg.Cache.DefaultExpiration)
	return text
}

func (s *macroService) Chat(ctx context.Context, id, question string, history []dto.Message) (string, error) {
	report, err := s.completeReport(ctx, id)
	if err != nil {
		return "", err
	}

	messages := make([]dto.Message, 0, len(history)+1)
	for _, turn := range history {
		if turn.Role != dto.RoleUser && turn.Role != dto.RoleAssistant {
			continue
		}
		messages = append(messages, turn)
	}
	messages = append(messages, dto.Message{Role: dto.RoleUser, Content: question})

	return s.genRepo.Complete(ctx, messages, dto.GenerationOptions{
		SystemPrompt: prompt.MacroChatSystemPrompt(reportContextText(report)),
		Model:        s.cfg.AI.AnalysisModel,
		MaxTokens:    s.cfg.Research.AnalysisMaxTokens,
		Temperature:  chatTemperature,
	})
}

func (s *macroService) Simplify(ctx context.Context, id string) (string, error) {
	report, err := s.completeReport(ctx, id)
	if err != nil {
		return "", err
	}
	if report.SimplifiedReport != nil && *report.SimplifiedReport != "" {
		return *report.SimplifiedReport, nil
	}

	simplified, err := s.genRepo.Complete(ctx, []dto.Message{
		{Role: dto.RoleUser, Content: prompt.MacroSimplifyUserPrompt(reportContextText(report))},
	}, dto.GenerationOptions{
		SystemPrompt: prompt.MacroSimplifySystemPrompt(),
		Model:        s.cfg.AI.AnalysisModel,
		MaxTokens:    s.cfg.Research.AnalysisMaxTokens,
		Temperature:  simplifyTemperature,
	})
	if err != nil {
		return "", err
	}

	report.SimplifiedReport = &simplified
	if err := s.macroRepo.Save(ctx, report); err != nil {
		return "", err
	}
	return simplified, nil
}

func (s *macroService) completeReport(ctx context.Context, id string) (*model.MacroReport, error) {
	report, err := s.macroRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.Status != model.StatusComplete {
		return nil, ErrReportNotComplete
	}
	return report, nil
}

func reportContextText(report *model.MacroReport) string {
	cycles := map[string]string{
		"Short Term Debt Cycle": jsonbText(report.ShortTermDebtCycle),
		"Long Term Debt Cycle":  jsonbText(report.LongTermDebtCycle),
		"Business Cycle":        jsonbText(report.BusinessCycle),
	}
	indicators := map[string]string{
		"Fed Funds Rate":    floatText(report.FedFundsRate, "%.2f%%"),
		"CPI Inflation":     floatText(report.CPIInflation, "%.2f%%"),
		"PCE Inflation":     floatText(report.PCEInflation, "%.2f%%"),
		"Unemployment Rate": floatText(report.UnemploymentRate, "%.2f%%"),
		"GDP Growth":        floatText(report.GDPGrowth, "%.2f%%"),
		"Yield Curve":       jsonbText(report.YieldCurve),
		"Credit Spreads":    jsonbText(report.CreditSpreads),
		"M2 Money Supply":   jsonbText(report.M2MoneySupply),
	}
	return prompt.MacroReportContext(report.RiskLevel, report.ExecutiveSummary, cycles, indicators)
}

func jsonbText(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return string(data)
}

func floatText(v *float64, format string) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf(format, *v)
}
