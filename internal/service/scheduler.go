package service

import (
	"context"
	"errors"

	"github.com/robfig/cron/v3"

	"invest-research/config"
	"invest-research/pkg/logger"
)

// SchedulerService triggers portfolio and watchlist scans on the cron
// expressions from config. Either expression may be empty to disable that
// scan.
type SchedulerService interface {
	Start() error
	Stop()
}

type schedulerService struct {
	cfg              *config.Config
	log              *logger.Logger
	cron             *cron.Cron
	portfolioService PortfolioService
	watchlistService WatchlistService
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	portfolioService PortfolioService,
	watchlistService WatchlistService,
) SchedulerService {
	return &schedulerService{
		cfg:              cfg,
		log:              log,
		cron:             cron.New(),
		portfolioService: portfolioService,
		watchlistService: watchlistService,
	}
}

func (s *schedulerService) Start() error {
	if expr := s.cfg.Scheduler.PortfolioScanCron; expr != "" {
		if _, err := s.cron.AddFunc(expr, s.runPortfolioScan); err != nil {
			return err
		}
		s.log.Info("scheduled portfolio scans", logger.StringField("cron", expr))
	}
	if expr := s.cfg.Scheduler.WatchlistScanCron; expr != "" {
		if _, err := s.cron.AddFunc(expr, s.runWatchlistScan); err != nil {
			return err
		}
		s.log.Info("scheduled watchlist scans", logger.StringField("cron", expr))
	}
	s.cron.Start()
	return nil
}

func (s *schedulerService) Stop() {
	<-s.cron.Stop().Done()
}

func (s *schedulerService) runPortfolioScan() {
	ctx := context.Background()
	scan, err := s.portfolioService.StartScan(ctx)
	if err != nil {
		var inProgress *ErrScanInProgress
		switch {
		case errors.As(err, &inProgress):
			s.log.InfoContext(ctx, "skipping scheduled portfolio scan, one is running",
				logger.StringField("scan_id", inProgress.ScanID))
		case errors.Is(err, ErrNoActiveHoldings):
			s.log.InfoContext(ctx, "skipping scheduled portfolio scan, nothing to scan")
		default:
			s.log.ErrorContext(ctx, "scheduled portfolio scan failed to start", logger.ErrorField(err))
		}
		return
	}
	s.log.InfoContext(ctx, "scheduled portfolio scan started", logger.StringField("scan_id", scan.ID))
}

func (s *schedulerService) runWatchlistScan() {
	ctx := context.Background()
	scan, err := s.watchlistService.StartScan(ctx)
	if err != nil {
		var inProgress *ErrScanInProgress
		switch {
		case errors.As(err, &inProgress):
			s.log.InfoContext(ctx, "skipping scheduled watchlist scan, one is running",
				logger.StringField("scan_id", inProgress.ScanID))
		case errors.Is(err, ErrEmptyWatchlist):
			s.log.InfoContext(ctx, "skipping scheduled watchlist scan, watchlist is empty")
		default:
			s.log.ErrorContext(ctx, "scheduled watchlist scan failed to start", logger.ErrorField(err))
		}
		return
	}
	s.log.InfoContext(ctx, "scheduled watchlist scan started", logger.StringField("scan_id", scan.ID))
}
