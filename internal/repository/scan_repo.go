package repository

import (
	"context"

	"gorm.io/gorm"

	"invest-research/internal/model"
)

// PortfolioScanRepository stores news-scan job records for holdings.
// FindInProgress is the single-flight guard: at most one scan per user may
// be IN_PROGRESS at a time.
type PortfolioScanRepository interface {
	Create(ctx context.Context, scan *model.PortfolioScan) error
	Save(ctx context.Context, scan *model.PortfolioScan) error
	FindByID(ctx context.Context, id string) (*model.PortfolioScan, error)
	FindInProgress(ctx context.Context, userID string) (*model.PortfolioScan, error)
	List(ctx context.Context, userID string, limit int) ([]model.PortfolioScan, error)
}

type portfolioScanRepository struct {
	db *gorm.DB
}

func NewPortfolioScanRepository(db *gorm.DB) PortfolioScanRepository {
	return &portfolioScanRepository{db: db}
}

func (r *portfolioScanRepository) Create(ctx context.Context, scan *model.PortfolioScan) error {
	return r.db.WithContext(ctx).Create(scan).Error
}

func (r *portfolioScanRepository) Save(ctx context.Context, scan *model.PortfolioScan) error {
	return r.db.WithContext(ctx).Save(scan).Error
}

func (r *portfolioScanRepository) FindByID(ctx context.Context, id string) (*model.PortfolioScan, error) {
	var scan model.PortfolioScan
	if err := r.db.WithContext(ctx).First(&scan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &scan, nil
}

func (r *portfolioScanRepository) FindInProgress(ctx context.Context, userID string) (*model.PortfolioScan, error) {
	var scan model.PortfolioScan
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.StatusInProgress).
		Order("created_at DESC").
		First(&scan).Error
	if err != nil {
		return nil, err
	}
	return &scan, nil
}

func (r *portfolioScanRepository) List(ctx context.Context, userID string, limit int) ([]model.PortfolioScan, error) {
	var scans []model.PortfolioScan
	db := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&scans).Error; err != nil {
		return nil, err
	}
	return scans, nil
}

// WatchlistScanRepository stores scan job records for watchlist items, with
// the same single-flight guard as portfolio scans.
type WatchlistScanRepository interface {
	Create(ctx context.Context, scan *model.WatchlistScan) error
	Save(ctx context.Context, scan *model.WatchlistScan) error
	FindByID(ctx context.Context, id string) (*model.WatchlistScan, error)
	FindInProgress(ctx context.Context, userID string) (*model.WatchlistScan, error)
	List(ctx context.Context, userID string, limit int) ([]model.WatchlistScan, error)
}

type watchlistScanRepository struct {
	db *gorm.DB
}

func NewWatchlistScanRepository(db *gorm.DB) WatchlistScanRepository {
	return &watchlistScanRepository{db: db}
}

func (r *watchlistScanRepository) Create(ctx context.Context, scan *model.WatchlistScan) error {
	return r.db.WithContext(ctx).Create(scan).Error
}

func (r *watchlistScanRepository) Save(ctx context.Context, scan *model.WatchlistScan) error {
	return r.db.WithContext(ctx).Save(scan).Error
}

func (r *watchlistScanRepository) FindByID(ctx context.Context, id string) (*model.WatchlistScan, error) {
	var scan model.WatchlistScan
	if err := r.db.WithContext(ctx).First(&scan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &scan, nil
}

func (r *watchlistScanRepository) FindInProgress(ctx context.Context, userID string) (*model.WatchlistScan, error) {
	var scan model.WatchlistScan
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.StatusInProgress).
		Order("created_at DESC").
		First(&scan).Error
	if err != nil {
		return nil, err
	}
	return &scan, nil
}

func (r *watchlistScanRepository) List(ctx context.Context, userID string, limit int) ([]model.WatchlistScan, error) {
	var scans []model.WatchlistScan
	db := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&scans).Error; err != nil {
		return nil, err
	}
	return scans, nil
}
