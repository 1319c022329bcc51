package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"invest-research/config"
	"invest-research/internal/dto"
	"invest-research/internal/model"
	"invest-research/internal/prompt"
	"invest-research/internal/repository"
	"invest-research/pkg/logger"
	"invest-research/pkg/telegram"
	"invest-research/pkg/utils"
)

// AllocationBucketView is one row of the current-vs-target allocation
// comparison.
type AllocationBucketView struct {
	Bucket         string  `json:"bucket"`
	CurrentValue   float64 `json:"current_value"`
	CurrentPercent float64 `json:"current_percent"`
	TargetPercent  float64 `json:"target_percent"`
	DriftPercent   float64 `json:"drift_percent"`
	Suggestion     string  `json:"suggestion,omitempty"`
}

type AllocationView struct {
	TotalValue float64                `json:"total_value"`
	Buckets    []AllocationBucketView `json:"buckets"`
}

// allocationDriftThreshold is the drift (in percentage points) above which a
// rebalancing suggestion is emitted.
const allocationDriftThreshold = 5.0

// PortfolioService owns holdings, the allocation view, portfolio news scans
// and the alerts those scans produce.
type PortfolioService interface {
	CreateHolding(ctx context.Context, req *dto.HoldingRequest) (*model.Holding, error)
	UpdateHolding(ctx context.Context, id string, req *dto.HoldingRequest) (*model.Holding, error)
	ListHoldings(ctx context.Context) ([]model.Holding, error)
	DeleteHolding(ctx context.Context, id string) error

	Allocation(ctx context.Context) (*AllocationView, error)

	StartScan(ctx context.Context) (*model.PortfolioScan, error)
	GetScan(ctx context.Context, id string) (*model.PortfolioScan, error)
	ListScans(ctx context.Context, limit int) ([]model.PortfolioScan, error)

	ListAlerts(ctx context.Context, filter repository.AlertFilter) ([]model.PortfolioAlert, error)
	UpdateAlertStatus(ctx context.Context, id, status string) (*model.PortfolioAlert, error)
	MarkAllAlertsRead(ctx context.Context) (int64, error)
}

type portfolioService struct {
	cfg           *config.Config
	log           *logger.Logger
	holdingRepo   repository.HoldingRepository
	scanRepo      repository.PortfolioScanRepository
	alertRepo     repository.AlertRepository
	watchlistRepo repository.WatchlistRepository
	settingsRepo  repository.SettingsRepository
	searchRepo    repository.SearchRepository
	genRepo       repository.GenerationRepository
	macroService  MacroService
	notifier      *telegram.Notifier
}

func NewPortfolioService(
	cfg *config.Config,
	log *logger.Logger,
	holdingRepo repository.HoldingRepository,
	scanRepo repository.PortfolioScanRepository,
	alertRepo repository.AlertRepository,
	watchlistRepo repository.WatchlistRepository,
	settingsRepo repository.SettingsRepository,
	searchRepo repository.SearchRepository,
	genRepo repository.GenerationRepository,
	macroService MacroService,
	notifier *telegram.Notifier,
) PortfolioService {
	return &portfolioService{
		cfg:           cfg,
		log:           log,
		holdingRepo:   holdingRepo,
		scanRepo:      scanRepo,
		alertRepo:     alertRepo,
		watchlistRepo: watchlistRepo,
		settingsRepo:  settingsRepo,
		searchRepo:    searchRepo,
		genRepo:       genRepo,
		macroService:  macroService,
		notifier:      notifier,
	}
}

func (s *portfolioService) CreateHolding(ctx context.Context, req *dto.HoldingRequest) (*model.Holding, error) {
	holding := &model.Holding{UserID: model.DefaultUserID}
	applyHoldingRequest(holding, req)
	if err := s.holdingRepo.Create(ctx, holding); err != nil {
		return nil, err
	}
	return holding, nil
}

func (s *portfolioService) UpdateHolding(ctx context.Context, id string, req *dto.HoldingRequest) (*model.Holding, error) {
	holding, err := s.holdingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyHoldingRequest(holding, req)
	if err := s.holdingRepo.Save(ctx, holding); err != nil {
		return nil, err
	}
	return holding, nil
}

func applyHoldingRequest(holding *model.Holding, req *dto.HoldingRequest) {
	holding.Ticker = utils.NormalizeTicker(req.Ticker)
	holding.CompanyName = req.CompanyName
	holding.AssetType = req.AssetType
	holding.Quantity = req.Quantity
	holding.CostBasis = req.CostBasis
	holding.CurrentPrice = req.CurrentPrice
	holding.Thesis = req.Thesis
	holding.ExitCriteria = req.ExitCriteria
	if req.Status != "" {
		holding.Status = req.Status
	}
	if req.EntryDate != "" {
		if entry, err := time.Parse("2006-01-02", req.EntryDate); err == nil {
			holding.EntryDate = entry
		}
	}
}

func (s *portfolioService) ListHoldings(ctx context.Context) ([]model.Holding, error) {
	return s.holdingRepo.List(ctx, model.DefaultUserID)
}

func (s *portfolioService) DeleteHolding(ctx context.Context, id string) error {
	if _, err := s.holdingRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.holdingRepo.Delete(ctx, id)
}

func (s *portfolioService) Allocation(ctx context.Context) (*AllocationView, error) {
	holdings, err := s.holdingRepo.List(ctx, model.DefaultUserID)
	if err != nil {
		return nil, err
	}

	targets := model.DefaultAllocationTargets()
	settings, err := s.settingsRepo.Get(ctx, model.DefaultUserID)
	if err == nil {
		var saved map[string]float64
		if decodeErr := decodeJSONB(settings.AllocationTargets, &saved); decodeErr == nil && len(saved) > 0 {
			targets = saved
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	totals := map[string]float64{}
	var totalValue float64
	for i := range holdings {
		if holdings[i].Status != model.EntityStatusActive {
			continue
		}
		value := holdings[i].CurrentValue()
		totals[model.AllocationBucket(holdings[i].AssetType)] += value
		totalValue += value
	}

	view := &AllocationView{TotalValue: totalValue}
	for _, bucket := range []string{"liquid", "equities", "crypto", "bonds", "other"} {
		row := AllocationBucketView{
			Bucket:        bucket,
			CurrentValue:  totals[bucket],
			TargetPercent: targets[bucket],
		}
		if totalValue > 0 {
			row.CurrentPercent = totals[bucket] / totalValue * 100
		}
		row.DriftPercent = row.CurrentPercent - row.TargetPercent
		switch {
		case row.DriftPercent > allocationDriftThreshold:
			row.Suggestion = fmt.Sprintf("Overweight by %.1f%%; consider trimming %s", row.DriftPercent, bucket)
		case row.DriftPercent < -allocationDriftThreshold:
			row.Suggestion = fmt.Sprintf("Underweight by %.1f%%; consider adding to %s", -row.DriftPercent, bucket)
		}
		view.Buckets = append(view.Buckets, row)
	}
	return view, nil
}

func (s *portfolioService) StartScan(ctx context.Context) (*model.PortfolioScan, error) {
	// Cooperative guard: one running scan per user. Checked, not locked;
	// two simultaneous requests may still both pass.
	if existing, err := s.scanRepo.FindInProgress(ctx, model.DefaultUserID); err == nil {
		return nil, &ErrScanInProgress{ScanID: existing.ID}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	holdings, err := s.holdingRepo.ListWithTicker(ctx, model.DefaultUserID)
	if err != nil {
		return nil, err
	}
	holdings = activeHoldings(holdings)
	if len(holdings) == 0 {
		return nil, ErrNoActiveHoldings
	}

	tickers := make([]string, 0, len(holdings))
	for i := range holdings {
		tickers = append(tickers, holdings[i].Ticker)
	}

	scan := &model.PortfolioScan{
		UserID:         model.DefaultUserID,
		Status:         model.StatusInProgress,
		TickersScanned: jsonbMarshal(tickers),
	}
	if err := s.scanRepo.Create(ctx, scan); err != nil {
		return nil, err
	}

	id := scan.ID
	utils.GoSafe(func() {
		bgCtx := context.Background()
		if err := s.runScan(bgCtx, id, holdings, tickers); err != nil {
			s.log.ErrorContext(bgCtx, "portfolio scan failed",
				logger.StringField("scan_id", id),
				logger.ErrorField(err),
			)
			s.markScanFailed(bgCtx, id)
		}
	}, func(recovered interface{}) {
		s.markScanFailed(context.Background(), id)
	})

	return scan, nil
}

func activeHoldings(holdings []model.Holding) []model.Holding {
	active := holdings[:0]
	for i := range holdings {
		if holdings[i].Status == model.EntityStatusActive {
			active = append(active, holdings[i])
		}
	}
	return active
}

func (s *portfolioService) runScan(ctx context.Context, id string, holdings []model.Holding, tickers []string) error {
	queries := prompt.PortfolioScanQueries(tickers)
	searchData, err := s.searchRepo.SearchBatch(ctx, queries)
	if err != nil {
		return err
	}

	scan, err := s.scanRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	scan.RawSearchData = jsonbMarshal(searchData)
	if err := s.scanRepo.Save(ctx, scan); err != nil {
		return err
	}

	contexts := make([]dto.HoldingContext, 0, len(holdings))
	for i := range holdings {
		h := &holdings[i]
		contexts = append(contexts, dto.HoldingContext{
			Ticker:       h.Ticker,
			CompanyName:  h.CompanyName,
			AssetType:    h.AssetType,
			CurrentValue: h.CurrentValue(),
			Thesis:       h.Thesis,
			ExitCriteria: h.ExitCriteria,
		})
	}

	userPrompt := prompt.PortfolioScanUserPrompt(contexts, searchData, s.macroService.Context(ctx))
	opts := dto.GenerationOptions{
		SystemPrompt: prompt.PortfolioScanSystemPrompt(),
		Model:        s.cfg.AI.ScanModel,
		MaxTokens:    s.cfg.Research.ScanMaxTokens,
		Temperature:  scanTemperature,
	}

	var result dto.PortfolioScanResult
	raw, err := s.genRepo.CompleteJSON(ctx, []dto.Message{{Role: dto.RoleUser, Content: userPrompt}}, opts, &result)
	if err != nil {
		return err
	}

	alerts := s.buildScanAlerts(id, result.Alerts)
	alerts = append(alerts, s.addWatchlistSuggestions(ctx, id, result.WatchlistSuggestions)...)
	if err := s.alertRepo.CreateBatch(ctx, alerts); err != nil {
		return err
	}

	scan.RawResponse = jsonbRaw([]byte(repository.StripCodeFence(raw)))
	scan.Summary = result.Summary
	scan.AlertsGenerated = len(alerts)
	scan.Status = model.StatusComplete
	if err := s.scanRepo.Save(ctx, scan); err != nil {
		return err
	}

	s.notifyCritical(alerts)
	return nil
}

func (s *portfolioService) buildScanAlerts(scanID string, scanAlerts []dto.ScanAlert) []model.PortfolioAlert {
	alerts := make([]model.PortfolioAlert, 0, len(scanAlerts))
	for _, a := range scanAlerts {
		alerts = append(alerts, model.PortfolioAlert{
			UserID:          model.DefaultUserID,
			Ticker:          a.Ticker,
			AlertType:       a.AlertType,
			Severity:        a.Severity,
			SeverityLevel:   model.SeverityLevel(a.Severity),
			Title:           a.Title,
			Description:     a.Description,
			ActionSuggested: a.ActionSuggested,
			Source:          "PORTFOLIO_SCAN",
			ScanID:          &scanID,
		})
	}
	return alerts
}

// addWatchlistSuggestions adds suggested tickers to the watchlist and emits
// one INFO alert per suggestion. A ticker already on the watchlist is skipped
// silently but still gets its alert.
func (s *portfolioService) addWatchlistSuggestions(ctx context.Context, scanID string, suggestions []dto.WatchlistSuggestion) []model.PortfolioAlert {
	var alerts []model.PortfolioAlert
	for _, suggestion := range suggestions {
		ticker := utils.NormalizeTicker(suggestion.Ticker)
		if ticker == "" {
			continue
		}
		item := &model.WatchlistItem{
			UserID:      model.DefaultUserID,
			Ticker:      ticker,
			CompanyName: suggestion.CompanyName,
			Reason:      utils.ToPointer(suggestion.Reason),
		}
		if err := s.watchlistRepo.Create(ctx, item); err != nil && !isDuplicateKey(err) {
			s.log.ErrorContext(ctx, "failed to add scan suggestion to watchlist",
				logger.StringField("ticker", ticker), logger.ErrorField(err))
		}
		alerts = append(alerts, model.PortfolioAlert{
			UserID:        model.DefaultUserID,
			Ticker:        utils.ToPointer(ticker),
			AlertType:     model.AlertTypeWatchlistAdd,
			Severity:      model.SeverityInfo,
			SeverityLevel: model.SeverityLevel(model.SeverityInfo),
			Title:         fmt.Sprintf("%s added to watchlist", ticker),
			Description:   suggestion.Reason,
			Source:        "PORTFOLIO_SCAN",
			ScanID:        &scanID,
		})
	}
	return alerts
}

// notifyCritical pushes a Telegram message when the scan produced any
// CRITICAL alert. Best-effort.
func (s *portfolioService) notifyCritical(alerts []model.PortfolioAlert) {
	if s.notifier == nil || !s.notifier.Enabled() {
		return
	}
	var lines []string
	for i := range alerts {
		if alerts[i].Severity != model.SeverityCritical {
			continue
		}
		line := alerts[i].Title
		if alerts[i].Ticker != nil {
			line = fmt.Sprintf("[%s] %s", *alerts[i].Ticker, line)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return
	}
	s.notifier.Send("Critical portfolio alerts:\n" + strings.Join(lines, "\n"))
}

func (s *portfolioService) markScanFailed(ctx context.Context, id string) {
	scan, err := s.scanRepo.FindByID(ctx, id)
	if err != nil {
		s.log.ErrorContext(ctx, "cannot mark portfolio scan failed",
			logger.StringField("scan_id", id), logger.ErrorField(err))
		return
	}
	scan.Status = model.StatusFailed
	if err := s.scanRepo.Save(ctx, scan); err != nil {
		s.log.ErrorContext(ctx, "cannot mark portfolio scan failed",
			logger.StringField("scan_id", id), logger.ErrorField(err))
	}
}

func (s *portfolioService) GetScan(ctx context.Context, id string) (*model.PortfolioScan, error) {
	return s.scanRepo.FindByID(ctx, id)
}

func (s *portfolioService) ListScans(ctx context.Context, limit int) ([]model.PortfolioScan, error) {
	return s.scanRepo.List(ctx, model.DefaultUserID, limit)
}

func (s *portfolioService) ListAlerts(ctx context.Context, filter repository.AlertFilter) ([]model.PortfolioAlert, error) {
	return s.alertRepo.List(ctx, model.DefaultUserID, filter)
}

func (s *portfolioService) UpdateAlertStatus(ctx context.Context, id, status string) (*model.PortfolioAlert, error) {
	if err := s.alertRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.alertRepo.FindByID(ctx, id)
}

func (s *portfolioService) MarkAllAlertsRead(ctx context.Context) (int64, error) {
	return s.alertRepo.MarkAllRead(ctx, model.DefaultUserID)
}
