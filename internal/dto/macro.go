package dto

import "encoding/json"

// DalioResult is the expected shape of the macro-scan generation output.
// All fields optional, same contract caveat as BuffettResult.
type DalioResult struct {
	ExecutiveSummary *string `json:"executiveSummary"`

	CyclePositions *DalioCyclePositions `json:"cyclePositions"`
	Indicators     *DalioIndicators     `json:"indicators"`

	HistoricalAnalog *DalioHistoricalAnalog `json:"historicalAnalog"`

	PortfolioImplications json.RawMessage `json:"portfolioImplications"`
	ThingsToWatch         json.RawMessage `json:"thingsToWatch"`

	RiskLevel      *string `json:"riskLevel"`
	RiskAssessment *string `json:"riskAssessment"`
}

type DalioCyclePositions struct {
	ShortTermDebtCycle json.RawMessage `json:"shortTermDebtCycle"`
	LongTermDebtCycle  json.RawMessage `json:"longTermDebtCycle"`
	BusinessCycle      json.RawMessage `json:"businessCycle"`
}

type DalioIndicators struct {
	FedFundsRate     *float64        `json:"fedFundsRate"`
	YieldCurve       json.RawMessage `json:"yieldCurve"`
	CPIInflation     *float64        `json:"cpiInflation"`
	PCEInflation     *float64        `json:"pceInflation"`
	UnemploymentRate *float64        `json:"unemploymentRate"`
	GDPGrowth        *float64        `json:"gdpGrowth"`
	CreditSpreads    json.RawMessage `json:"creditSpreads"`
	M2MoneySupply    json.RawMessage `json:"m2MoneySupply"`
}

type DalioHistoricalAnalog struct {
	Period       *string  `json:"period"`
	Description  *string  `json:"description"`
	Similarities []string `json:"similarities"`
	Differences  []string `json:"differences"`
	HowItPlayed  *string  `json:"howItPlayed"`
}
