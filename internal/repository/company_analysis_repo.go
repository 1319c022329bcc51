package repository

import (
	"context"

	"gorm.io/gorm"

	"invest-research/internal/model"
)

type CompanyAnalysisRepository interface {
	Create(ctx context.Context, analysis *model.CompanyAnalysis) error
	Save(ctx context.Context, analysis *model.CompanyAnalysis) error
	FindByID(ctx context.Context, id string) (*model.CompanyAnalysis, error)
	List(ctx context.Context, userID string) ([]model.CompanyAnalysis, error)
	Delete(ctx context.Context, id string) error
}

type companyAnalysisRepository struct {
	db *gorm.DB
}

func NewCompanyAnalysisRepository(db *gorm.DB) CompanyAnalysisRepository {
	return &companyAnalysisRepository{db: db}
}

func (r *companyAnalysisRepository) Create(ctx context.Context, analysis *model.CompanyAnalysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

func (r *companyAnalysisRepository) Save(ctx context.Context, analysis *model.CompanyAnalysis) error {
	return r.db.WithContext(ctx).Save(analysis).Error
}

func (r *companyAnalysisRepository) FindByID(ctx context.Context, id string) (*model.CompanyAnalysis, error) {
	var analysis model.CompanyAnalysis
	if err := r.db.WithContext(ctx).First(&analysis, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (r *companyAnalysisRepository) List(ctx context.Context, userID string) ([]model.CompanyAnalysis, error) {
	var analyses []model.CompanyAnalysis
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&analyses).Error
	if err != nil {
		return nil, err
	}
	return analyses, nil
}

func (r *companyAnalysisRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.CompanyAnalysis{}, "id = ?", id).Error
}
