package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"invest-research/internal/dto"
	"invest-research/internal/model"
	"invest-research/pkg/cache"
	"invest-research/pkg/logger"
)

const macroScanResponse = `{
	"executiveSummary": "Late-cycle conditions with restrictive policy.",
	"cyclePositions": {
		"shortTermDebtCycle": {"phase": "late tightening", "confidence": 0.7},
		"longTermDebtCycle": {"phase": "high debt burden"},
		"businessCycle": {"phase": "late expansion"}
	},
	"indicators": {
		"fedFundsRate": 4.25,
		"cpiInflation": 2.9,
		"unemploymentRate": 4.1,
		"yieldCurve": {"spread2s10s": 0.15}
	},
	"historicalAnalog": {
		"period": "1994-1995",
		"description": "Soft landing after a fast hiking cycle.",
		"similarities": ["Fast hikes", "Resilient labor market"]
	},
	"portfolioImplications": {"equities": "Favor quality balance sheets"},
	"thingsToWatch": ["Credit spreads", "Continuing claims"],
	"riskLevel": "ELEVATED",
	"riskAssessment": "Policy error risk dominates."
}`

type macroFixture struct {
	svc        MacroService
	macroRepo  *fakeMacroRepo
	searchRepo *fakeSearchRepo
	genRepo    *fakeGenRepo
	cache      cache.Cache
}

func newMacroFixture() *macroFixture {
	f := &macroFixture{
		macroRepo:  newFakeMacroRepo(),
		searchRepo: &fakeSearchRepo{},
		genRepo:    &fakeGenRepo{response: macroScanResponse},
		cache:      cache.NewCache(time.Minute, time.Minute),
	}
	f.svc = NewMacroService(testConfig(), logger.NewNop(), f.macroRepo, f.searchRepo, f.genRepo, f.cache)
	return f
}

func (f *macroFixture) waitForReport(t *testing.T, id string, status string) *model.MacroReport {
	t.Helper()
	var found *model.MacroReport
	require.Eventually(t, func() bool {
		report, err := f.macroRepo.FindByID(context.Background(), id)
		if err != nil || report.Status != status {
			return false
		}
		found = report
		return true
	}, 2*time.Second, 10*time.Millisecond)
	return found
}

func TestMacroService_Start(t *testing.T) {
	t.Run("completes with mapped indicators", func(t *testing.T) {
		f := newMacroFixture()

		started, err := f.svc.Start(context.Background())
		require.NoError(t, err)
		assert.Equal(t, model.StatusInProgress, started.Status)

		report := f.waitForReport(t, started.ID, model.StatusComplete)
		require.NotNil(t, report.RiskLevel)
		assert.Equal(t, "ELEVATED", *report.RiskLevel)
		require.NotNil(t, report.FedFundsRate)
		assert.Equal(t, 4.25, *report.FedFundsRate)
		assert.NotEmpty(t, report.ShortTermDebtCycle)
		assert.NotEmpty(t, report.RawSearchData)
	})

	t.Run("generation failure keeps search data", func(t *testing.T) {
		f := newMacroFixture()
		f.genRepo.err = fmt.Errorf("model overloaded")

		started, err := f.svc.Start(context.Background())
		require.NoError(t, err)

		report := f.waitForReport(t, started.ID, model.StatusFailed)
		assert.NotEmpty(t, report.RawSearchData)
		assert.Nil(t, report.RiskLevel)
	})
}

func TestMacroService_Context(t *testing.T) {
	t.Run("empty without a completed report", func(t *testing.T) {
		f := newMacroFixture()
		assert.Empty(t, f.svc.Context(context.Background()))
	})

	t.Run("renders the latest completed report", func(t *testing.T) {
		f := newMacroFixture()
		started, err := f.svc.Start(context.Background())
		require.NoError(t, err)
		f.waitForReport(t, started.ID, model.StatusComplete)

		text := f.svc.Context(context.Background())
		assert.Contains(t, text, "ELEVATED")
		assert.Contains(t, text, "4.25%")
	})

	t.Run("new scan invalidates the cached context", func(t *testing.T) {
		f := newMacroFixture()
		started, err := f.svc.Start(context.Background())
		require.NoError(t, err)
		f.waitForReport(t, started.ID, model.StatusComplete)
		first := f.svc.Context(context.Background())
		assert.Contains(t, first, "ELEVATED")

		_, ok := f.cache.Get("macro:context")
		assert.True(t, ok)

		second, err := f.svc.Start(context.Background())
		require.NoError(t, err)
		f.waitForReport(t, second.ID, model.StatusComplete)

		_, ok = f.cache.Get("macro:context")
		assert.False(t, ok)
	})
}

func TestMacroService_Chat(t *testing.T) {
	t.Run("answers over the completed report", func(t *testing.T) {
		f := newMacroFixture()
		started, err := f.svc.Start(context.Background())
		require.NoError(t, err)
		f.waitForReport(t, started.ID, model.StatusComplete)

		f.genRepo.response = "Rates are restrictive, so cash still yields well."
		history := []dto.Message{
			{Role: dto.RoleUser, Content: "What does ELEVATED mean here?"},
			{Role: dto.RoleAssistant, Content: "Multiple warning signs are active."},
			{Role: "system", Content: "ignored"},
		}
		answer, err := f.svc.Chat(context.Background(), started.ID, "Should I hold more cash?", history)
		require.NoError(t, err)
		assert.Equal(t, "Rates are restrictive, so cash still yields well.", answer)

		messages := f.genRepo.messages()
		require.Len(t, messages, 3)
		assert.Equal(t, dto.RoleAssistant, messages[1].Role)
		assert.Equal(t, "Should I hold more cash?", messages[2].Content)
		assert.Contains(t, f.genRepo.opts().SystemPrompt, "ELEVATED")
	})

	t.Run("rejects an incomplete report", func(t *testing.T) {
		f := newMacroFixture()
		report := &model.MacroReport{UserID: model.DefaultUserID, Status: model.StatusInProgress}
		require.NoError(t, f.macroRepo.Create(context.Background(), report))

		_, err := f.svc.Chat(context.Background(), report.ID, "Anything new?", nil)
		assert.ErrorIs(t, err, ErrReportNotComplete)

		_, err = f.svc.Chat(context.Background(), "missing", "Anything new?", nil)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestMacroService_Simplify(t *testing.T) {
	t.Run("generates once and caches on the report", func(t *testing.T) {
		f := newMacroFixture()
		started, err := f.svc.Start(context.Background())
		require.NoError(t, err)
		f.waitForReport(t, started.ID, model.StatusComplete)
		scanCalls := f.genRepo.callCount()

		f.genRepo.response = "## The Big Picture\nMoney is expensive to borrow right now."
		first, err := f.svc.Simplify(context.Background(), started.ID)
		require.NoError(t, err)
		assert.Contains(t, first, "The Big Picture")
		assert.Equal(t, scanCalls+1, f.genRepo.callCount())

		stored, err := f.macroRepo.FindByID(context.Background(), started.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.SimplifiedReport)
		assert.Equal(t, first, *stored.SimplifiedReport)

		second, err := f.svc.Simplify(context.Background(), started.ID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, scanCalls+1, f.genRepo.callCount())
	})

	t.Run("rejects an incomplete report", func(t *testing.T) {
		f := newMacroFixture()
		report := &model.MacroReport{UserID: model.DefaultUserID, Status: model.StatusFailed}
		require.NoError(t, f.macroRepo.Create(context.Background(), report))

		_, err := f.svc.Simplify(context.Background(), report.ID)
		assert.ErrorIs(t, err, ErrReportNotComplete)
	})
}
