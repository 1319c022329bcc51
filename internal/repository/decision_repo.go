package repository

import (
	"context"

	"gorm.io/gorm"

	"invest-research/internal/model"
)

type DecisionRepository interface {
	Create(ctx context.Context, decision *model.Decision) error
	Save(ctx context.Context, decision *model.Decision) error
	FindByID(ctx context.Context, id string) (*model.Decision, error)
	List(ctx context.Context, userID string) ([]model.Decision, error)
	ListByTicker(ctx context.Context, userID, ticker string) ([]model.Decision, error)
	Delete(ctx context.Context, id string) error
}

type decisionRepository struct {
	db *gorm.DB
}

func NewDecisionRepository(db *gorm.DB) DecisionRepository {
	return &decisionRepository{db: db}
}

func (r *decisionRepository) Create(ctx context.Context, decision *model.Decision) error {
	return r.db.WithContext(ctx).Create(decision).Error
}

func (r *decisionRepository) Save(ctx context.Context, decision *model.Decision) error {
	return r.db.WithContext(ctx).Save(decision).Error
}

func (r *decisionRepository) FindByID(ctx context.Context, id string) (*model.Decision, error) {
	var decision model.Decision
	if err := r.db.WithContext(ctx).First(&decision, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &decision, nil
}

func (r *decisionRepository) List(ctx context.Context, userID string) ([]model.Decision, error) {
	var decisions []model.Decision
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("decision_date DESC, created_at DESC").
		Find(&decisions).Error
	if err != nil {
		return nil, err
	}
	return decisions, nil
}

func (r *decisionRepository) ListByTicker(ctx context.Context, userID, ticker string) ([]model.Decision, error) {
	var decisions []model.Decision
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND ticker = ?", userID, ticker).
		Order("decision_date DESC, created_at DESC").
		Find(&decisions).Error
	if err != nil {
		return nil, err
	}
	return decisions, nil
}

func (r *decisionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Decision{}, "id = ?", id).Error
}
