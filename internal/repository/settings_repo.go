package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"invest-research/internal/model"
)

type SettingsRepository interface {
	// Get returns the user's settings row, or gorm.ErrRecordNotFound when
	// none was saved yet. Callers fall back to defaults.
	Get(ctx context.Context, userID string) (*model.UserSettings, error)
	Upsert(ctx context.Context, settings *model.UserSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, userID string) (*model.UserSettings, error) {
	var settings model.UserSettings
	if err := r.db.WithContext(ctx).First(&settings, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *model.UserSettings) error {
	var existing model.UserSettings
	err := r.db.WithContext(ctx).First(&existing, "user_id = ?", settings.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(settings).Error
	}
	if err != nil {
		return err
	}
	settings.ID = existing.ID
	settings.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(settings).Error
}
