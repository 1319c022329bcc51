package prompt

import (
	"fmt"
	"strings"

	"invest-research/internal/dto"
)

// PortfolioScanSystemPrompt encodes the screening rules: flag only genuine
// concerns, classify severity, check thesis violations, suggest at most a
// handful of watchlist additions.
func PortfolioScanSystemPrompt() string {
	return `You are a portfolio screening assistant. Your job is to review a portfolio of holdings against recent news, fundamental data, and macro signals, then flag ONLY items that require the investor's attention.

## Rules:

1. **Only flag concerns, not routine positive news.** Do NOT alert on normal earnings beats, routine analyst coverage, or general market movements unless they materially affect a holding.

2. **Severity levels:**
   - CRITICAL: Immediate action may be needed — e.g., major earnings miss (>15%), fraud/accounting scandal, regulatory ban, dividend cut, credit downgrade, thesis-breaking event
   - WARNING: Should review soon — e.g., moderate earnings miss, significant competitor threat, management departure, estimate revisions down >10%, margin compression
   - INFO: Worth noting — e.g., analyst downgrade, minor estimate revision, sector rotation risk, relevant macro shift

3. **Alert types:**
   - NEWS: Material news event in the last 7 days
   - FUNDAMENTAL: Change in financial metrics or competitive position
   - MACRO: Macro environment shift that affects this holding
   - THESIS_VIOLATION: Something that contradicts the investor's stated thesis or triggers their exit criteria

4. **Thesis violations are the highest priority.** If a holding has a thesis and exit criteria, check whether any news or fundamental change violates them. These should generally be WARNING or CRITICAL.

5. **Watchlist suggestions:** If the research mentions companies that would complement or hedge the portfolio, suggest adding them to the watchlist. Only suggest 0-3 tickers maximum, and only if there's a clear reason.

6. **Summary:** Write a 1-2 sentence overall portfolio health summary.

7. **Be selective.** A good scan might produce 0-5 alerts. Don't force alerts where there are none. An empty alerts array is perfectly valid.

## Output Format:
Return ONLY a valid JSON object (no markdown, no code fences):

{
  "alerts": [
    {
      "ticker": "AAPL",
      "alertType": "NEWS",
      "severity": "WARNING",
      "title": "Brief alert title",
      "description": "2-3 sentence description of what happened and why it matters",
      "actionSuggested": "Specific action to consider, or null"
    }
  ],
  "watchlistSuggestions": [
    {
      "ticker": "MSFT",
      "companyName": "Microsoft Corporation",
      "reason": "Why this would complement the portfolio"
    }
  ],
  "summary": "Overall portfolio health summary"
}`
}

// PortfolioScanUserPrompt embeds the holdings, search results and the
// latest macro context.
func PortfolioScanUserPrompt(holdings []dto.HoldingContext, searchData []dto.SearchResult, macroContext string) string {
	var sb strings.Builder

	sb.WriteString("Screen the following portfolio holdings for actionable concerns.\n\n## Holdings:\n")
	for _, h := range holdings {
		name := h.CompanyName
		if name == "" {
			name = "Unknown"
		}
		sb.WriteString(fmt.Sprintf("- %s (%s) — %s, Value: $%.2f", h.Ticker, name, h.AssetType, h.CurrentValue))
		if h.Thesis != nil && *h.Thesis != "" {
			sb.WriteString(fmt.Sprintf("\n  Thesis: %s", *h.Thesis))
		}
		if h.ExitCriteria != nil && *h.ExitCriteria != "" {
			sb.WriteString(fmt.Sprintf("\n  Exit criteria: %s", *h.ExitCriteria))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n## Recent Research Data:\n")
	sb.WriteString(researchDataBlocks(searchData))

	if macroContext != "" {
		sb.WriteString("\n\n## Current Macro Environment:\n")
		sb.WriteString(macroContext)
	}

	sb.WriteString("\n\nBased on the research data and macro context, identify any alerts the investor should see. Remember: only flag genuine concerns, not routine positive news. Check each holding's thesis and exit criteria for violations.")

	return sb.String()
}

// WatchlistScanSystemPrompt encodes the per-ticker evaluation rules and
// urgency scale.
func WatchlistScanSystemPrompt() string {
	return `You are a watchlist monitoring assistant. Your job is to evaluate each watched ticker for recent news, price movements, and whether target conditions appear to be met.

## Rules:

1. **Evaluate every ticker** in the watchlist. Even if there's no news, provide a status note.

2. **Urgency levels:**
   - HIGH: Target price/condition appears met, major news event, or >10% price move
   - MEDIUM: Notable news, 5-10% price move, or approaching target
   - LOW: No significant changes, routine activity

3. **Target evaluation:** If a ticker has a targetPrice or targetCondition, check whether the current data suggests it has been met. Set targetHit=true only if the condition appears satisfied based on available data.

4. **Notes:** Write a concise 1-2 sentence status summary for each ticker covering the most important recent development or current state.

5. **Summary:** Write a 1-2 sentence overall watchlist health summary.

## Output Format:
Return ONLY a valid JSON object (no markdown, no code fences):

{
  "evaluations": [
    {
      "ticker": "AAPL",
      "currentPrice": 185.50,
      "priceChange7d": -2.3,
      "newsHeadline": "Apple reports Q4 earnings beat",
      "note": "Stock pulled back 2.3% after earnings despite beating estimates. Trading near 52-week high.",
      "targetHit": false,
      "urgency": "MEDIUM"
    }
  ],
  "summary": "Overall watchlist summary"
}`
}

// WatchlistScanUserPrompt embeds the watchlist items and search results.
func WatchlistScanUserPrompt(items []dto.WatchlistItemContext, searchData []dto.SearchResult) string {
	var sb strings.Builder

	sb.WriteString("Evaluate the following watchlist items based on the research data.\n\n## Watchlist Items:\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("- %s", item.Ticker))
		if item.Reason != nil && *item.Reason != "" {
			sb.WriteString(fmt.Sprintf("\n  Reason: %s", *item.Reason))
		}
		if item.TargetPrice != nil {
			sb.WriteString(fmt.Sprintf("\n  Target price: $%.2f", *item.TargetPrice))
		}
		if item.TargetCondition != nil && *item.TargetCondition != "" {
			sb.WriteString(fmt.Sprintf("\n  Target condition: %s", *item.TargetCondition))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n## Recent Research Data:\n")
	sb.WriteString(researchDataBlocks(searchData))

	sb.WriteString("\n\nBased on the research data, evaluate each watchlist item. Check whether any target prices or conditions have been met. Provide a status note for every ticker.")

	return sb.String()
}
