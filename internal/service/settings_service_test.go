package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invest-research/internal/dto"
	"invest-research/internal/model"
)

func TestSettingsService(t *testing.T) {
	t.Run("get falls back to defaults", func(t *testing.T) {
		svc := NewSettingsService(newFakeSettingsRepo())

		settings, err := svc.Get(context.Background())
		require.NoError(t, err)

		var targets map[string]float64
		require.NoError(t, json.Unmarshal(settings.AllocationTargets, &targets))
		assert.Equal(t, model.DefaultAllocationTargets(), targets)
	})

	t.Run("update persists and get returns it", func(t *testing.T) {
		svc := NewSettingsService(newFakeSettingsRepo())

		want := map[string]float64{"liquid": 40, "equities": 40, "crypto": 5, "bonds": 10, "other": 5}
		_, err := svc.Update(context.Background(), &dto.SettingsRequest{AllocationTargets: want})
		require.NoError(t, err)

		settings, err := svc.Get(context.Background())
		require.NoError(t, err)

		var targets map[string]float64
		require.NoError(t, json.Unmarshal(settings.AllocationTargets, &targets))
		assert.Equal(t, want, targets)
	})
}
