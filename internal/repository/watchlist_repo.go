package repository

import (
	"context"

	"gorm.io/gorm"

	"invest-research/internal/model"
)

type WatchlistRepository interface {
	// Create inserts an item; inserting a ticker the user already tracks
	// fails with gorm.ErrDuplicatedKey.
	Create(ctx context.Context, item *model.WatchlistItem) error
	Save(ctx context.Context, item *model.WatchlistItem) error
	FindByID(ctx context.Context, id string) (*model.WatchlistItem, error)
	List(ctx context.Context, userID string) ([]model.WatchlistItem, error)
	ListActive(ctx context.Context, userID string) ([]model.WatchlistItem, error)
	Delete(ctx context.Context, id string) error
}

type watchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func (r *watchlistRepository) Create(ctx context.Context, item *model.WatchlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *watchlistRepository) Save(ctx context.Context, item *model.WatchlistItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *watchlistRepository) FindByID(ctx context.Context, id string) (*model.WatchlistItem, error) {
	var item model.WatchlistItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *watchlistRepository) List(ctx context.Context, userID string) ([]model.WatchlistItem, error) {
	var items []model.WatchlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *watchlistRepository) ListActive(ctx context.Context, userID string) ([]model.WatchlistItem, error) {
	var items []model.WatchlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.EntityStatusActive).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *watchlistRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.WatchlistItem{}, "id = ?", id).Error
}
