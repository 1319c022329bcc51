package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invest-research/internal/dto"
	"invest-research/internal/model"
	"invest-research/pkg/utils"
)

func TestApplyBuffettResult(t *testing.T) {
	t.Run("empty result leaves analysis fields null", func(t *testing.T) {
		analysis := &model.CompanyAnalysis{Ticker: "COST"}

		assert.NotPanics(t, func() {
			applyBuffettResult(analysis, &dto.BuffettResult{}, "{}")
		})

		assert.Nil(t, analysis.CompanyName)
		assert.Nil(t, analysis.Verdict)
		assert.Nil(t, analysis.MoatScore)
		assert.Nil(t, analysis.BusinessQualityScore)
		assert.Nil(t, analysis.RevenueGrowth)
		// Risks and catalysts are always written, as empty arrays.
		assert.Equal(t, "[]", string(analysis.KeyRisks))
		assert.Equal(t, "[]", string(analysis.KeyCatalysts))
	})

	t.Run("partial result maps only what is present", func(t *testing.T) {
		analysis := &model.CompanyAnalysis{Ticker: "COST"}

		applyBuffettResult(analysis, &dto.BuffettResult{
			Verdict: utils.ToPointer(model.VerdictWatch),
			Scores:  &dto.BuffettScores{BusinessQuality: utils.ToPointer(7.5)},
		}, `{"verdict":"WATCH"}`)

		require.NotNil(t, analysis.Verdict)
		assert.Equal(t, model.VerdictWatch, *analysis.Verdict)
		require.NotNil(t, analysis.BusinessQualityScore)
		assert.Equal(t, 7.5, *analysis.BusinessQualityScore)
		assert.Nil(t, analysis.ManagementScore)
		assert.Nil(t, analysis.MoatType)
	})

	t.Run("refresh with sparse result keeps prior company name", func(t *testing.T) {
		analysis := &model.CompanyAnalysis{
			Ticker:      "COST",
			CompanyName: utils.ToPointer("Costco Wholesale"),
		}

		applyBuffettResult(analysis, &dto.BuffettResult{}, "{}")

		require.NotNil(t, analysis.CompanyName)
		assert.Equal(t, "Costco Wholesale", *analysis.CompanyName)
	})

	t.Run("null raw response is not stored", func(t *testing.T) {
		analysis := &model.CompanyAnalysis{Ticker: "COST"}
		applyBuffettResult(analysis, &dto.BuffettResult{}, "null")
		assert.Nil(t, analysis.RawResponse)
	})
}

func TestApplyDalioResult(t *testing.T) {
	t.Run("empty result leaves report fields null", func(t *testing.T) {
		report := &model.MacroReport{}

		assert.NotPanics(t, func() {
			applyDalioResult(report, &dto.DalioResult{}, "{}")
		})

		assert.Nil(t, report.RiskLevel)
		assert.Nil(t, report.FedFundsRate)
		assert.Nil(t, report.ShortTermDebtCycle)
	})

	t.Run("indicators map individually", func(t *testing.T) {
		report := &model.MacroReport{}

		applyDalioResult(report, &dto.DalioResult{
			Indicators: &dto.DalioIndicators{
				FedFundsRate: utils.ToPointer(4.25),
				YieldCurve:   []byte(`{"spread2s10s":0.15}`),
			},
		}, "{}")

		require.NotNil(t, report.FedFundsRate)
		assert.Equal(t, 4.25, *report.FedFundsRate)
		assert.JSONEq(t, `{"spread2s10s":0.15}`, string(report.YieldCurve))
		assert.Nil(t, report.CPIInflation)
	})
}

func TestJsonbStrings(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{name: "nil becomes empty array", in: nil, want: "[]"},
		{name: "values kept", in: []string{"a", "b"}, want: `["a","b"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(jsonbStrings(tt.in)))
		})
	}
}
