package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"invest-research/config"
	"invest-research/internal/dto"
	"invest-research/internal/model"
	"invest-research/internal/prompt"
	"invest-research/internal/repository"
	"invest-research/pkg/logger"
	"invest-research/pkg/utils"
)

// WatchlistService owns the watchlist and its evaluation scans.
type WatchlistService interface {
	Add(ctx context.Context, req *dto.WatchlistItemRequest) (*model.WatchlistItem, error)
	Update(ctx context.Context, id string, req *dto.UpdateWatchlistItemRequest) (*model.WatchlistItem, error)
	List(ctx context.Context) ([]model.WatchlistItem, error)
	Delete(ctx context.Context, id string) error

	StartScan(ctx context.Context) (*model.WatchlistScan, error)
	GetScan(ctx context.Context, id string) (*model.WatchlistScan, error)
	ListScans(ctx context.Context, limit int) ([]model.WatchlistScan, error)
}

type watchlistService struct {
	cfg           *config.Config
	log           *logger.Logger
	watchlistRepo repository.WatchlistRepository
	scanRepo      repository.WatchlistScanRepository
	searchRepo    repository.SearchRepository
	genRepo       repository.GenerationRepository
}

func NewWatchlistService(
	cfg *config.Config,
	log *logger.Logger,
	watchlistRepo repository.WatchlistRepository,
	scanRepo repository.WatchlistScanRepository,
	searchRepo repository.SearchRepository,
	genRepo repository.GenerationRepository,
) WatchlistService {
	return &watchlistService{
		cfg:           cfg,
		log:           log,
		watchlistRepo: watchlistRepo,
		scanRepo:      scanRepo,
		searchRepo:    searchRepo,
		genRepo:       genRepo,
	}
}

func (s *watchlistService) Add(ctx context.Context, req *dto.WatchlistItemRequest) (*model.WatchlistItem, error) {
	item := &model.WatchlistItem{
		UserID:          model.DefaultUserID,
		Ticker:          utils.NormalizeTicker(req.Ticker),
		CompanyName:     req.CompanyName,
		Reason:          req.Reason,
		TargetPrice:     req.TargetPrice,
		TargetCondition: req.TargetCondition,
	}
	if err := s.watchlistRepo.Create(ctx, item); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrTickerAlreadyWatched
		}
		return nil, err
	}
	return item, nil
}

func (s *watchlistService) Update(ctx context.Context, id string, req *dto.UpdateWatchlistItemRequest) (*model.WatchlistItem, error) {
	item, err := s.watchlistRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CompanyName != nil {
		item.CompanyName = *req.CompanyName
	}
	if req.Reason != nil {
		item.Reason = req.Reason
	}
	if req.TargetPrice != nil {
		item.TargetPrice = req.TargetPrice
	}
	if req.TargetCondition != nil {
		item.TargetCondition = req.TargetCondition
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if err := s.watchlistRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *watchlistService) List(ctx context.Context) ([]model.WatchlistItem, error) {
	return s.watchlistRepo.List(ctx, model.DefaultUserID)
}

func (s *watchlistService) Delete(ctx context.Context, id string) error {
	if _, err := s.watchlistRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.watchlistRepo.Delete(ctx, id)
}

func (s *watchlistService) StartScan(ctx context.Context) (*model.WatchlistScan, error) {
	if existing, err := s.scanRepo.FindInProgress(ctx, model.DefaultUserID); err == nil {
		return nil, &ErrScanInProgress{ScanID: existing.ID}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	items, err := s.watchlistRepo.ListActive(ctx, model.DefaultUserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyWatchlist
	}

	tickers := make([]string, 0, len(items))
	for i := range items {
		tickers = append(tickers, items[i].Ticker)
	}

	scan := &model.WatchlistScan{
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
		if err := s.runScan(bgCtx, id, items, tickers); err != nil {
			s.log.ErrorContext(bgCtx, "watchlist scan failed",
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

func (s *watchlistService) runScan(ctx context.Context, id string, items []model.WatchlistItem, tickers []string) error {
	queries := prompt.WatchlistScanQueries(tickers)
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

	contexts := make([]dto.WatchlistItemContext, 0, len(items))
	for i := range items {
		contexts = append(contexts, dto.WatchlistItemContext{
			Ticker:          items[i].Ticker,
			Reason:          items[i].Reason,
			TargetPrice:     items[i].TargetPrice,
			TargetCondition: items[i].TargetCondition,
		})
	}

	opts := dto.GenerationOptions{
		SystemPrompt: prompt.WatchlistScanSystemPrompt(),
		Model:        s.cfg.AI.ScanModel,
		MaxTokens:    s.cfg.Research.ScanMaxTokens,
		Temperature:  scanTemperature,
	}

	var result dto.WatchlistScanResult
	raw, err := s.genRepo.CompleteJSON(ctx, []dto.Message{{Role: dto.RoleUser, Content: prompt.WatchlistScanUserPrompt(contexts, searchData)}}, opts, &result)
	if err != nil {
		return err
	}

	s.applyEvaluations(ctx, items, result.Evaluations)

	scan.RawResponse = jsonbRaw([]byte(repository.StripCodeFence(raw)))
	scan.Summary = result.Summary
	scan.ItemsChecked = len(result.Evaluations)
	scan.Status = model.StatusComplete
	return s.scanRepo.Save(ctx, scan)
}

// applyEvaluations stamps each evaluated item with the scan time and its
// latest status note. Evaluations for unknown tickers are ignored.
func (s *watchlistService) applyEvaluations(ctx context.Context, items []model.WatchlistItem, evaluations []dto.WatchlistEvaluation) {
	byTicker := make(map[string]*model.WatchlistItem, len(items))
	for i := range items {
		byTicker[items[i].Ticker] = &items[i]
	}

	now := time.Now().UTC()
	for _, eval := range evaluations {
		item, ok := byTicker[utils.NormalizeTicker(eval.Ticker)]
		if !ok {
			continue
		}
		item.LastChecked = &now
		if eval.Note != "" {
			item.LatestNote = utils.ToPointer(eval.Note)
		}
		if err := s.watchlistRepo.Save(ctx, item); err != nil {
			s.log.ErrorContext(ctx, "failed to update watchlist item after scan",
				logger.StringField("ticker", item.Ticker), logger.ErrorField(err))
		}
	}
}

func (s *watchlistService) markScanFailed(ctx context.Context, id string) {
	scan, err := s.scanRepo.FindByID(ctx, id)
	if err != nil {
		s.log.ErrorContext(ctx, "cannot mark watchlist scan failed",
			logger.StringField("scan_id", id), logger.ErrorField(err))
		return
	}
	scan.Status = model.StatusFailed
	if err := s.scanRepo.Save(ctx, scan); err != nil {
		s.log.ErrorContext(ctx, "cannot mark watchlist scan failed",
			logger.StringField("scan_id", id), logger.ErrorField(err))
	}
}

func (s *watchlistService) GetScan(ctx context.Context, id string) (*model.WatchlistScan, error) {
	return s.scanRepo.FindByID(ctx, id)
}

func (s *watchlistService) ListScans(ctx context.Context, limit int) ([]model.WatchlistScan, error) {
	return s.scanRepo.List(ctx, model.DefaultUserID, limit)
}
