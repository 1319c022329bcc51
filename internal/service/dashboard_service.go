package service

import (
	"context"
	"time"

	"invest-research/internal/model"
	"invest-research/internal/repository"
	"invest-research/pkg/cache"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 30 * time.Second
)

// DashboardStats is the landing-page summary.
type DashboardStats struct {
	PortfolioValue    float64 `json:"portfolio_value"`
	PortfolioCost     float64 `json:"portfolio_cost"`
	PortfolioGain     float64 `json:"portfolio_gain"`
	PortfolioGainPct  float64 `json:"portfolio_gain_pct"`
	HoldingsCount     int     `json:"holdings_count"`
	WatchlistCount    int     `json:"watchlist_count"`
	AnalysesCount     int     `json:"analyses_count"`
	UnreadAlertsCount int64   `json:"unread_alerts_count"`
	LatestMacroRisk   *string `json:"latest_macro_risk"`
}

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	holdingRepo   repository.HoldingRepository
	watchlistRepo repository.WatchlistRepository
	analysisRepo  repository.CompanyAnalysisRepository
	alertRepo     repository.AlertRepository
	macroRepo     repository.MacroReportRepository
	cache         cache.Cache
}

func NewDashboardService(
	holdingRepo repository.HoldingRepository,
	watchlistRepo repository.WatchlistRepository,
	analysisRepo repository.CompanyAnalysisRepository,
	alertRepo repository.AlertRepository,
	macroRepo repository.MacroReportRepository,
	inmemoryCache cache.Cache,
) DashboardService {
	return &dashboardService{
		holdingRepo:   holdingRepo,
		watchlistRepo: watchlistRepo,
		analysisRepo:  analysisRepo,
		alertRepo:     alertRepo,
		macroRepo:     macroRepo,
		cache:         inmemoryCache,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if cached, ok := s.cache.Get(dashboardCacheKey); ok {
		if stats, ok := cached.(*DashboardStats); ok {
			return stats, nil
		}
	}

	stats := &DashboardStats{}

	holdings, err := s.holdingRepo.List(ctx, model.DefaultUserID)
	if err != nil {
		return nil, err
	}
	for i := range holdings {
		if holdings[i].Status != model.EntityStatusActive {
			continue
		}
		stats.HoldingsCount++
		stats.PortfolioValue += holdings[i].CurrentValue()
		stats.PortfolioCost += holdings[i].TotalCost()
	}
	stats.PortfolioGain = stats.PortfolioValue - stats.PortfolioCost
	if stats.PortfolioCost > 0 {
		stats.PortfolioGainPct = stats.PortfolioGain / stats.PortfolioCost * 100
	}

	watchlist, err := s.watchlistRepo.ListActive(ctx, model.DefaultUserID)
	if err != nil {
		return nil, err
	}
	stats.WatchlistCount = len(watchlist)

	analyses, err := s.analysisRepo.List(ctx, model.DefaultUserID)
	if err != nil {
		return nil, err
	}
	stats.AnalysesCount = len(analyses)

	unread, err := s.alertRepo.CountUnread(ctx, model.DefaultUserID)
	if err != nil {
		return nil, err
	}
	stats.UnreadAlertsCount = unread

	if report, err := s.macroRepo.FindLatestComplete(ctx, model.DefaultUserID); err == nil {
		stats.LatestMacroRisk = report.RiskLevel
	}

	s.cache.Set(dashboardCacheKey, stats, dashboardCacheTTL)
	return stats, nil
}
