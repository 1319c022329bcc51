package repository

import (
	"fmt"

	"gorm.io/gorm"

	"invest-research/config"
	"invest-research/pkg/logger"
)

type Repository struct {
	UserRepo            UserRepository
	CompanyAnalysisRepo CompanyAnalysisRepository
	MacroReportRepo     MacroReportRepository
	PortfolioScanRepo   PortfolioScanRepository
	WatchlistScanRepo   WatchlistScanRepository
	AlertRepo           AlertRepository
	WatchlistRepo       WatchlistRepository
	HoldingRepo         HoldingRepository
	DecisionRepo        DecisionRepository
	SettingsRepo        SettingsRepository
	SearchRepo          SearchRepository
	GenerationRepo      GenerationRepository
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	generationRepo, err := newGenerationRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	return &Repository{
		UserRepo:            NewUserRepository(db),
		CompanyAnalysisRepo: NewCompanyAnalysisRepository(db),
		MacroReportRepo:     NewMacroReportRepository(db),
		PortfolioScanRepo:   NewPortfolioScanRepository(db),
		WatchlistScanRepo:   NewWatchlistScanRepository(db),
		AlertRepo:           NewAlertRepository(db),
		WatchlistRepo:       NewWatchlistRepository(db),
		HoldingRepo:         NewHoldingRepository(db),
		DecisionRepo:        NewDecisionRepository(db),
		SettingsRepo:        NewSettingsRepository(db),
		SearchRepo:          NewPerplexitySearchRepository(cfg, log),
		GenerationRepo:      generationRepo,
	}, nil
}

func newGenerationRepository(cfg *config.Config, log *logger.Logger) (GenerationRepository, error) {
	switch cfg.AI.Provider {
	case config.AIProviderClaude:
		return NewClaudeRepository(cfg, log), nil
	case config.AIProviderGemini:
		return NewGeminiRepository(cfg, log)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AI.Provider)
	}
}
