package dto

// PortfolioScanResult is the expected shape of the portfolio-scan generation
// output.
type PortfolioScanResult struct {
	Alerts               []ScanAlert           `json:"alerts"`
	WatchlistSuggestions []WatchlistSuggestion `json:"watchlistSuggestions"`
	Summary              *string               `json:"summary"`
}

type ScanAlert struct {
	Ticker          *string `json:"ticker"`
	AlertType       string  `json:"alertType"`
	Severity        string  `json:"severity"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	ActionSuggested *string `json:"actionSuggested"`
}

type WatchlistSuggestion struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"companyName"`
	Reason      string `json:"reason"`
}

// WatchlistScanResult is the expected shape of the watchlist-scan generation
// output.
type WatchlistScanResult struct {
	Evaluations []WatchlistEvaluation `json:"evaluations"`
	Summary     *string               `json:"summary"`
}

type WatchlistEvaluation struct {
	Ticker       string   `json:"ticker"`
	CurrentPrice *float64 `json:"currentPrice"`
	PriceChange7d *float64 `json:"priceChange7d"`
	NewsHeadline *string  `json:"newsHeadline"`
	Note         string   `json:"note"`
	TargetHit    bool     `json:"targetHit"`
	Urgency      string   `json:"urgency"`
}

// HoldingContext is the slice of a holding visible to scan prompts.
type HoldingContext struct {
	Ticker       string
	CompanyName  string
	AssetType    string
	CurrentValue float64
	Thesis       *string
	ExitCriteria *string
}

// WatchlistItemContext is the slice of a watchlist item visible to scan
// prompts.
type WatchlistItemContext struct {
	Ticker          string
	Reason          *string
	TargetPrice     *float64
	TargetCondition *string
}
