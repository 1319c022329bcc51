package repository

import (
	"context"

	"gorm.io/gorm"

	"invest-research/internal/model"
)

type AlertFilter struct {
	Status   string
	Severity string
	Limit    int
}

type AlertRepository interface {
	Create(ctx context.Context, alert *model.PortfolioAlert) error
	CreateBatch(ctx context.Context, alerts []model.PortfolioAlert) error
	FindByID(ctx context.Context, id string) (*model.PortfolioAlert, error)
	// List returns alerts most urgent first: severity rank descending, then
	// newest first within a rank.
	List(ctx context.Context, userID string, filter AlertFilter) ([]model.PortfolioAlert, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *model.PortfolioAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepository) CreateBatch(ctx context.Context, alerts []model.PortfolioAlert) error {
	if len(alerts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&alerts).Error
}

func (r *alertRepository) FindByID(ctx context.Context, id string) (*model.PortfolioAlert, error) {
	var alert model.PortfolioAlert
	if err := r.db.WithContext(ctx).First(&alert, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepository) List(ctx context.Context, userID string, filter AlertFilter) ([]model.PortfolioAlert, error) {
	var alerts []model.PortfolioAlert
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Severity != "" {
		db = db.Where("severity = ?", filter.Severity)
	}
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}
	err := db.Order("severity_level DESC, created_at DESC").Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PortfolioAlert{}).
		Where("user_id = ? AND status = ?", userID, model.AlertStatusUnread).
		Count(&count).Error
	return count, err
}

func (r *alertRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).
		Model(&model.PortfolioAlert{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *alertRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.PortfolioAlert{}).
		Where("user_id = ? AND status = ?", userID, model.AlertStatusUnread).
		Update("status", model.AlertStatusRead)
	return res.RowsAffected, res.Error
}
