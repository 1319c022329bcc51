package repository

import (
	"context"

	"gorm.io/gorm"

	"invest-research/internal/model"
)

type MacroReportRepository interface {
	Create(ctx context.Context, report *model.MacroReport) error
	Save(ctx context.Context, report *model.MacroReport) error
	FindByID(ctx context.Context, id string) (*model.MacroReport, error)
	FindLatest(ctx context.Context, userID string) (*model.MacroReport, error)
	FindLatestComplete(ctx context.Context, userID string) (*model.MacroReport, error)
	List(ctx context.Context, userID string, limit int) ([]model.MacroReport, error)
}

type macroReportRepository struct {
	db *gorm.DB
}

func NewMacroReportRepository(db *gorm.DB) MacroReportRepository {
	return &macroReportRepository{db: db}
}

func (r *macroReportRepository) Create(ctx context.Context, report *model.MacroReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *macroReportRepository) Save(ctx context.Context, report *model.MacroReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *macroReportRepository) FindByID(ctx context.Context, id string) (*model.MacroReport, error) {
	var report model.MacroReport
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *macroReportRepository) FindLatest(ctx context.Context, userID string) (*model.MacroReport, error) {
	var report model.MacroReport
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *macroReportRepository) FindLatestComplete(ctx context.Context, userID string) (*model.MacroReport, error) {
	var report model.MacroReport
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.StatusComplete).
		Order("created_at DESC").
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *macroReportRepository) List(ctx context.Context, userID string, limit int) ([]model.MacroReport, error) {
	var reports []model.MacroReport
	db := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
