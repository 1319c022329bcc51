package service

import (
	"encoding/json"

	"gorm.io/datatypes"

	"invest-research/internal/dto"
	"invest-research/internal/model"
)

// The generation output is an untrusted contract: any field may be missing,
// null, or the wrong shape. The mapping functions below copy whatever is
// present and leave the rest NULL. They never panic and never invent values.

func jsonbRaw(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return datatypes.JSON(raw)
}

func jsonbMarshal(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func jsonbStrings(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	return jsonbMarshal(values)
}

// decodeJSONB decodes a stored jsonb column, leaving dest untouched when the
// column is empty.
func decodeJSONB(data datatypes.JSON, dest interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}

func applyBuffettResult(a *model.CompanyAnalysis, res *dto.BuffettResult, raw string) {
	a.RawResponse = jsonbRaw(json.RawMessage(raw))

	if res.CompanyName != nil {
		a.CompanyName = res.CompanyName
	}
	a.ExecutiveSummary = res.ExecutiveSummary
	a.Verdict = res.Verdict
	a.VerdictReasoning = res.VerdictReasoning

	if f := res.Financials; f != nil {
		a.RevenueGrowth = jsonbRaw(f.RevenueGrowth)
		a.OwnerEarnings = jsonbRaw(f.OwnerEarnings)
		a.Margins = jsonbRaw(f.Margins)
		a.ROIC = jsonbRaw(f.ROIC)
		a.DebtToEquity = f.DebtToEquity
		a.FreeCashFlow = jsonbRaw(f.FreeCashFlow)
	}

	if m := res.Moat; m != nil {
		a.MoatType = m.Type
		a.MoatScore = m.Score
		a.MoatEvidence = jsonbStrings(m.Evidence)
		a.MoatThreats = jsonbStrings(m.Threats)
	}

	if d := res.AIDisruption; d != nil {
		a.AIDisruptionLevel = d.Level
		a.AIDisruptionScore = d.Score
		a.AIDisruptionAnalysis = d.Analysis
	}

	if s := res.Scores; s != nil {
		a.BusinessQualityScore = s.BusinessQuality
		a.ManagementScore = s.Management
		a.FinancialStrengthScore = s.FinancialStrength
		a.ValuationScore = s.Valuation
		a.MoatDurabilityScore = s.MoatDurability
	}

	a.KeyRisks = jsonbStrings(res.KeyRisks)
	a.KeyCatalysts = jsonbStrings(res.KeyCatalysts)

	if res.GeneratedQuestions != nil {
		a.GeneratedQuestions = jsonbMarshal(res.GeneratedQuestions)
	}
}

func applyDalioResult(r *model.MacroReport, res *dto.DalioResult, raw string) {
	r.RawResponse = jsonbRaw(json.RawMessage(raw))

	r.ExecutiveSummary = res.ExecutiveSummary
	r.RiskLevel = res.RiskLevel

	if c := res.CyclePositions; c != nil {
		r.ShortTermDebtCycle = jsonbRaw(c.ShortTermDebtCycle)
		r.LongTermDebtCycle = jsonbRaw(c.LongTermDebtCycle)
		r.BusinessCycle = jsonbRaw(c.BusinessCycle)
	}

	if i := res.Indicators; i != nil {
		r.FedFundsRate = i.FedFundsRate
		r.YieldCurve = jsonbRaw(i.YieldCurve)
		r.CPIInflation = i.CPIInflation
		r.PCEInflation = i.PCEInflation
		r.UnemploymentRate = i.UnemploymentRate
		r.GDPGrowth = i.GDPGrowth
		r.CreditSpreads = jsonbRaw(i.CreditSpreads)
		r.M2MoneySupply = jsonbRaw(i.M2MoneySupply)
	}

	if h := res.HistoricalAnalog; h != nil {
		r.HistoricalAnalogPeriod = h.Period
		r.HistoricalAnalogDescription = h.Description
		r.HistoricalAnalogSimilarities = jsonbStrings(h.Similarities)
		r.HistoricalAnalogDifferences = jsonbStrings(h.Differences)
	}

	r.PortfolioImplications = jsonbRaw(res.PortfolioImplications)
	r.ThingsToWatch = jsonbRaw(res.ThingsToWatch)
}
