package prompt

import (
	"fmt"
	"strings"
)

// BuffettQueries returns one research question per analysis dimension for a
// company analysis: financials, moat, management, AI disruption, recent
// news, competition and valuation.
func BuffettQueries(ticker string) []string {
	return []string{
		fmt.Sprintf("What are %s's key financial metrics for the last 5 years? Include revenue, net income, free cash flow, operating margins, ROIC, ROE, debt-to-equity ratio, and owner earnings. Provide specific numbers for each year.", ticker),
		fmt.Sprintf("What is %s's competitive moat? Analyze their pricing power, switching costs, network effects, intangible assets (brands, patents), cost advantages, and market position. How durable is the moat? What threatens it?", ticker),
		fmt.Sprintf("Who is the current management team at %s? Analyze their capital allocation track record, insider ownership, compensation structure, and strategic vision. Have they demonstrated shareholder-friendly practices?", ticker),
		fmt.Sprintf("How might AI and automation disrupt %s's business model? What percentage of their revenue could be at risk from AI disruption in the next 5-10 years? Are they investing in AI capabilities? What's their AI strategy?", ticker),
		fmt.Sprintf("What are the most significant recent developments for %s in the last 6 months? Include earnings results, strategic announcements, regulatory changes, market share changes, and analyst upgrades/downgrades.", ticker),
		fmt.Sprintf("Who are %s's main competitors? How does %s compare on margins, growth, market share, and competitive positioning? Are any competitors threatening their market position?", ticker, ticker),
		fmt.Sprintf("What is %s's current valuation? Include P/E ratio (TTM and forward), P/FCF, EV/EBITDA, PEG ratio, and how these compare to the company's 5-year average and sector peers. What are analysts' price targets?", ticker),
	}
}

// DalioQueries returns one research question per macro category for a
// regime scan.
func DalioQueries() []string {
	return []string{
		"What is the current Federal Reserve monetary policy stance? Include the current fed funds rate, recent FOMC decisions, dot plot projections, quantitative tightening status, and forward guidance. What is the Fed signaling about future rate moves?",
		"What are current US interest rates across the yield curve? Include 2-year, 5-year, 10-year, and 30-year Treasury yields. Is the yield curve inverted? What are investment-grade and high-yield credit spreads? How are lending standards changing?",
		"What are the latest US inflation readings? Include CPI (headline and core), PCE (headline and core), PPI, and wage growth. Are inflation expectations anchored? What is the trend direction? Compare to the Fed's 2% target.",
		"What is the current state of the US labor market? Include unemployment rate, nonfarm payrolls trend, jobless claims, job openings (JOLTS), labor force participation, and any leading indicators of weakness. What is the latest GDP growth rate?",
		"What is the current state of US government and private sector debt? Include federal debt-to-GDP, deficit spending levels, corporate debt levels, consumer debt, M2 money supply growth, and bank reserves. Are there any liquidity stress signals?",
		"What has Ray Dalio or Bridgewater Associates said recently about the economic outlook, debt cycles, and market positioning? Include any recent interviews, writings, or LinkedIn posts from the last 3 months.",
		"What is the current market sentiment? Include the VIX level, put-call ratios, AAII investor sentiment, fund flows, margin debt levels, and any extreme positioning. What are the biggest risks markets are pricing or not pricing?",
	}
}

// PortfolioScanQueries returns the cross-ticker screening questions for a
// portfolio scan.
func PortfolioScanQueries(tickers []string) []string {
	tickerList := strings.Join(tickers, ", ")
	return []string{
		fmt.Sprintf("What are the most significant material events for these stocks in the last 7 days: %s? For each ticker that has notable news, include: earnings surprises, SEC filings, analyst upgrades/downgrades, management changes, >5%% price moves, regulatory actions, or material announcements. Only mention tickers with actual material news — skip those with nothing notable.", tickerList),
		fmt.Sprintf("For the following stocks, what are the most significant fundamental changes or emerging threats in the last 30 days: %s? Include: revenue/earnings estimate revisions, competitive threats, market share shifts, supply chain issues, margin pressure, debt concerns, or business model risks. Only mention tickers with meaningful fundamental changes — skip those with stable fundamentals.", tickerList),
	}
}

// WatchlistScanQueries returns the cross-ticker questions for a watchlist
// scan.
func WatchlistScanQueries(tickers []string) []string {
	tickerList := strings.Join(tickers, ", ")
	return []string{
		fmt.Sprintf("What are the most significant news and events for these stocks in the last 14 days: %s? For each ticker with notable news, include: earnings announcements, analyst upgrades/downgrades, price moves greater than 5%%, M&A activity, regulatory actions, management changes, or material announcements. Skip tickers with nothing notable.", tickerList),
		fmt.Sprintf("For the following stocks, provide current price and valuation data: %s. For each ticker include: current stock price, 52-week high and low, recent analyst price targets, forward P/E ratio, and any significant price level breaks. Focus on factual data points.", tickerList),
	}
}
