package repository

import (
	"context"

	"gorm.io/gorm"

	"invest-research/internal/model"
)

type HoldingRepository interface {
	Create(ctx context.Context, holding *model.Holding) error
	Save(ctx context.Context, holding *model.Holding) error
	FindByID(ctx context.Context, id string) (*model.Holding, error)
	List(ctx context.Context, userID string) ([]model.Holding, error)
	ListWithTicker(ctx context.Context, userID string) ([]model.Holding, error)
	Delete(ctx context.Context, id string) error
}

type holdingRepository struct {
	db *gorm.DB
}

func NewHoldingRepository(db *gorm.DB) HoldingRepository {
	return &holdingRepository{db: db}
}

func (r *holdingRepository) Create(ctx context.Context, holding *model.Holding) error {
	return r.db.WithContext(ctx).Create(holding).Error
}

func (r *holdingRepository) Save(ctx context.Context, holding *model.Holding) error {
	return r.db.WithContext(ctx).Save(holding).Error
}

func (r *holdingRepository) FindByID(ctx context.Context, id string) (*model.Holding, error) {
	var holding model.Holding
	if err := r.db.WithContext(ctx).First(&holding, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &holding, nil
}

func (r *holdingRepository) List(ctx context.Context, userID string) ([]model.Holding, error) {
	var holdings []model.Holding
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&holdings).Error
	if err != nil {
		return nil, err
	}
	return holdings, nil
}

// ListWithTicker returns only holdings with a ticker symbol, the ones news
// scans can research. Cash and similar untickered assets are skipped.
func (r *holdingRepository) ListWithTicker(ctx context.Context, userID string) ([]model.Holding, error) {
	var holdings []model.Holding
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND ticker <> '' AND asset_type <> ?", userID, model.AssetTypeCash).
		Order("created_at ASC").
		Find(&holdings).Error
	if err != nil {
		return nil, err
	}
	return holdings, nil
}

func (r *holdingRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Holding{}, "id = ?", id).Error
}
