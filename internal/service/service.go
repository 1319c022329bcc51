package service

import (
	"invest-research/config"
	"invest-research/internal/repository"
	"invest-research/pkg/cache"
	"invest-research/pkg/logger"
	"invest-research/pkg/telegram"
)

type Service struct {
	AnalysisService  AnalysisService
	MacroService     MacroService
	PortfolioService PortfolioService
	WatchlistService WatchlistService
	DecisionService  DecisionService
	SettingsService  SettingsService
	DashboardService DashboardService
	SchedulerService SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
	notifier *telegram.Notifier,
) *Service {
	macroService := NewMacroService(cfg, log, repo.MacroReportRepo, repo.SearchRepo, repo.GenerationRepo, inmemoryCache)
	analysisService := NewAnalysisService(cfg, log, repo.CompanyAnalysisRepo, repo.SearchRepo, repo.GenerationRepo, repo.WatchlistRepo)
	portfolioService := NewPortfolioService(cfg, log, repo.HoldingRepo, repo.PortfolioScanRepo, repo.AlertRepo, repo.WatchlistRepo, repo.SettingsRepo, repo.SearchRepo, repo.GenerationRepo, macroService, notifier)
	watchlistService := NewWatchlistService(cfg, log, repo.WatchlistRepo, repo.WatchlistScanRepo, repo.SearchRepo, repo.GenerationRepo)

	return &Service{
		AnalysisService:  analysisService,
		MacroService:     macroService,
		PortfolioService: portfolioService,
		WatchlistService: watchlistService,
		DecisionService:  NewDecisionService(log, repo.DecisionRepo),
		SettingsService:  NewSettingsService(repo.SettingsRepo),
		DashboardService: NewDashboardService(repo.HoldingRepo, repo.WatchlistRepo, repo.CompanyAnalysisRepo, repo.AlertRepo, repo.MacroReportRepo, inmemoryCache),
		SchedulerService: NewSchedulerService(cfg, log, portfolioService, watchlistService),
	}
}
