package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"invest-research/internal/dto"
	"invest-research/internal/model"
	"invest-research/internal/repository"
)

type SettingsService interface {
	// Get returns the saved settings, or the defaults when none were
	// saved yet.
	Get(ctx context.Context) (*model.UserSettings, error)
	Update(ctx context.Context, req *dto.SettingsRequest) (*model.UserSettings, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) Get(ctx context.Context) (*model.UserSettings, error) {
	settings, err := s.settingsRepo.Get(ctx, model.DefaultUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.UserSettings{
			UserID:            model.DefaultUserID,
			AllocationTargets: jsonbMarshal(model.DefaultAllocationTargets()),
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, req *dto.SettingsRequest) (*model.UserSettings, error) {
	settings := &model.UserSettings{
		UserID:            model.DefaultUserID,
		AllocationTargets: jsonbMarshal(req.AllocationTargets),
	}
	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
