package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invest-research/internal/model"
	"invest-research/pkg/cache"
	"invest-research/pkg/utils"
)

func TestDashboardService_Stats(t *testing.T) {
	holdingRepo := newFakeHoldingRepo()
	watchlistRepo := newFakeWatchlistRepo()
	analysisRepo := newFakeAnalysisRepo()
	alertRepo := newFakeAlertRepo()
	macroRepo := newFakeMacroRepo()

	svc := NewDashboardService(holdingRepo, watchlistRepo, analysisRepo,
		alertRepo, macroRepo, cache.NewCache(time.Minute, time.Minute))

	ctx := context.Background()
	require.NoError(t, holdingRepo.Create(ctx, &model.Holding{
		UserID:       model.DefaultUserID,
		Ticker:       "COST",
		AssetType:    model.AssetTypeEquity,
		Quantity:     10,
		CostBasis:    400,
		CurrentPrice: 500,
		Status:       model.EntityStatusActive,
	}))
	require.NoError(t, holdingRepo.Create(ctx, &model.Holding{
		UserID:       model.DefaultUserID,
		Ticker:       "SOLD",
		AssetType:    model.AssetTypeEquity,
		Quantity:     5,
		CurrentPrice: 100,
		Status:       model.EntityStatusArchived,
	}))
	require.NoError(t, watchlistRepo.Create(ctx, &model.WatchlistItem{UserID: model.DefaultUserID, Ticker: "ASML"}))
	require.NoError(t, analysisRepo.Create(ctx, &model.CompanyAnalysis{UserID: model.DefaultUserID, Ticker: "COST", Status: model.StatusComplete}))
	require.NoError(t, alertRepo.Create(ctx, &model.PortfolioAlert{UserID: model.DefaultUserID, Status: model.AlertStatusUnread}))
	require.NoError(t, macroRepo.Create(ctx, &model.MacroReport{
		UserID:    model.DefaultUserID,
		Status:    model.StatusComplete,
		RiskLevel: utils.ToPointer("ELEVATED"),
	}))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 5000.0, stats.PortfolioValue)
	assert.Equal(t, 4000.0, stats.PortfolioCost)
	assert.Equal(t, 1000.0, stats.PortfolioGain)
	assert.InDelta(t, 25.0, stats.PortfolioGainPct, 0.001)
	assert.Equal(t, 1, stats.HoldingsCount)
	assert.Equal(t, 1, stats.WatchlistCount)
	assert.Equal(t, 1, stats.AnalysesCount)
	assert.Equal(t, int64(1), stats.UnreadAlertsCount)
	require.NotNil(t, stats.LatestMacroRisk)
	assert.Equal(t, "ELEVATED", *stats.LatestMacroRisk)

	// Stats are cached; a new holding does not show up right away.
	require.NoError(t, holdingRepo.Create(ctx, &model.Holding{
		UserID:       model.DefaultUserID,
		Ticker:       "NVDA",
		AssetType:    model.AssetTypeEquity,
		Quantity:     1,
		CurrentPrice: 900,
		Status:       model.EntityStatusActive,
	}))
	cached, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, cached.PortfolioValue)
}
