package dto

import "encoding/json"

// BuffettResult is the expected shape of the company-analysis generation
// output. Every field is optional: the model is asked for this schema but
// nothing guarantees it, so mapping must tolerate any part being absent.
type BuffettResult struct {
	CompanyName      *string `json:"companyName"`
	ExecutiveSummary *string `json:"executiveSummary"`

	Financials   *BuffettFinancials   `json:"financials"`
	Moat         *BuffettMoat         `json:"moat"`
	AIDisruption *BuffettAIDisruption `json:"aiDisruption"`
	Scores       *BuffettScores       `json:"scores"`

	Verdict          *string `json:"verdict"`
	VerdictReasoning *string `json:"verdictReasoning"`

	KeyRisks     []string `json:"keyRisks"`
	KeyCatalysts []string `json:"keyCatalysts"`

	GeneratedQuestions []GeneratedQuestion `json:"generatedQuestions"`
}

// BuffettFinancials keeps the nested metric blobs opaque: they are persisted
// as jsonb and rendered by the UI, never interpreted by the core.
type BuffettFinancials struct {
	RevenueGrowth json.RawMessage `json:"revenueGrowth"`
	OwnerEarnings json.RawMessage `json:"ownerEarnings"`
	Margins       json.RawMessage `json:"margins"`
	ROIC          json.RawMessage `json:"roic"`
	DebtToEquity  *float64        `json:"debtToEquity"`
	FreeCashFlow  json.RawMessage `json:"freeCashFlow"`
}

type BuffettMoat struct {
	Type                 *string  `json:"type"`
	Score                *float64 `json:"score"`
	Evidence             []string `json:"evidence"`
	Threats              []string `json:"threats"`
	DurabilityAssessment *string  `json:"durabilityAssessment"`
}

type BuffettAIDisruption struct {
	Level             *string  `json:"level"`
	Score             *float64 `json:"score"`
	Analysis          *string  `json:"analysis"`
	Timeframe         *string  `json:"timeframe"`
	MitigatingFactors []string `json:"mitigatingFactors"`
}

type BuffettScores struct {
	BusinessQuality   *float64 `json:"businessQuality"`
	Management        *float64 `json:"management"`
	FinancialStrength *float64 `json:"financialStrength"`
	Valuation         *float64 `json:"valuation"`
	MoatDurability    *float64 `json:"moatDurability"`
	Overall           *float64 `json:"overall"`
}

// GeneratedQuestion is one research question produced by the analysis; the
// refresh flow feeds them back so the model can mark them answered instead
// of regenerating from scratch.
type GeneratedQuestion struct {
	Question string `json:"question"`
	Category string `json:"category"`
	Answered bool   `json:"answered"`
}

// ResearchNote is a user-entered note included in refresh prompts.
type ResearchNote struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}
