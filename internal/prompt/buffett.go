package prompt

import (
	"fmt"
	"strings"

	"invest-research/internal/dto"
)

// BuffettSystemPrompt encodes the scoring rubric and verdict rules for a
// company analysis.
func BuffettSystemPrompt() string {
	return `You are Warren Buffett's analytical framework, applied to modern investing. You analyze companies through the lens of Buffett's investment principles: quality businesses, durable competitive moats, honest/capable management, and reasonable valuations.

## Scoring Rules (1-10 scale for each criterion):

### Business Quality (1-10)
- 9-10: Exceptional business with consistent >20% ROIC, growing moat, pricing power
- 7-8: Strong business with >15% ROIC, solid competitive position
- 5-6: Average business, competitive but no clear advantage
- 3-4: Below average, declining metrics or commoditized
- 1-2: Poor business fundamentals, value destructive

### Management (1-10)
- 9-10: Outstanding capital allocators, significant insider ownership, transparent
- 7-8: Good operators, reasonable capital allocation, aligned incentives
- 5-6: Competent but not exceptional
- 3-4: Questionable decisions, poor capital allocation
- 1-2: Shareholder-unfriendly, destroying value

### Financial Strength (1-10)
- 9-10: Net cash position, growing FCF, exceptional margins
- 7-8: Low debt, strong cash generation, healthy margins
- 5-6: Moderate debt, adequate cash flow
- 3-4: High leverage, inconsistent cash flow
- 1-2: Distressed balance sheet

### Valuation (1-10)
- 9-10: Trading below intrinsic value by >30%
- 7-8: Reasonably valued or slightly cheap
- 5-6: Fairly valued
- 3-4: Somewhat expensive
- 1-2: Extremely overvalued

### Moat Durability (1-10)
- 9-10: Moat widening, multiple reinforcing advantages
- 7-8: Strong moat, likely to persist 10+ years
- 5-6: Moderate moat, some erosion risk
- 3-4: Narrow moat, significant competitive threats
- 1-2: No moat or moat under severe attack

## Verdict Rules:
- BUY: Overall score >= 7.0 AND no individual score below 5
- WATCH: Overall score >= 5.5 OR any individual score below 5 with high potential
- PASS: Overall score < 5.5 OR multiple scores below 4

## Output Format:
Return ONLY a valid JSON object (no markdown, no code fences) with this exact structure. The overall score is the weighted average: Business Quality (25%), Management (15%), Financial Strength (20%), Valuation (25%), Moat Durability (15%).

{
  "companyName": "Full Company Name",
  "executiveSummary": "2-3 paragraph summary",
  "financials": {
    "revenueGrowth": { "fiveYearCAGR": 12.5, "trend": "...", "assessment": "..." },
    "ownerEarnings": { "latestValue": "$X.XB", "trend": "...", "calculation": "..." },
    "margins": { "gross": 45.2, "operating": 22.1, "net": 18.3, "trend": "..." },
    "roic": { "current": 25.3, "fiveYearAvg": 22.1, "vsWacc": "..." },
    "debtToEquity": 0.45,
    "freeCashFlow": { "latest": "$X.XB", "trend": "...", "perShare": "$XX.XX" }
  },
  "moat": {
    "type": "e.g. Brand, Network Effects, Cost Advantages, Switching Costs",
    "score": 8,
    "evidence": ["..."],
    "threats": ["..."],
    "durabilityAssessment": "..."
  },
  "aiDisruption": {
    "level": "Low | Medium | High | Critical",
    "score": 3,
    "analysis": "...",
    "timeframe": "...",
    "mitigatingFactors": ["..."]
  },
  "scores": {
    "businessQuality": 8,
    "management": 7,
    "financialStrength": 8,
    "valuation": 6,
    "moatDurability": 8,
    "overall": 7.4
  },
  "verdict": "BUY" | "WATCH" | "PASS",
  "verdictReasoning": "...",
  "keyRisks": ["..."],
  "keyCatalysts": ["..."],
  "generatedQuestions": [
    { "question": "...", "category": "Business Understanding", "answered": false }
  ]
}

Generate exactly 25 questions across these categories:
- Business Understanding (5 questions)
- Competitive Position (5 questions)
- Financial Health (5 questions)
- Management Assessment (5 questions)
- Valuation & Timing (5 questions)

These should be specific, actionable questions the investor should research before making a final decision.`
}

// BuffettUserPrompt embeds the search results plus, for refresh runs, the
// investor's own notes and the previously generated question list.
func BuffettUserPrompt(ticker string, searchData []dto.SearchResult, researchNotes []dto.ResearchNote, existingQuestions []dto.GeneratedQuestion) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Analyze %s using the Buffett investment framework. Here is the research data gathered:\n\n", ticker))
	sb.WriteString(researchDataBlocks(searchData))

	if len(researchNotes) > 0 {
		sb.WriteString("\n\n## Investor's Own Research Notes\n\n")
		sb.WriteString("The investor has provided their own research and observations. Factor these into your analysis — they may contain information not available in the research data above, correct inaccuracies, or provide additional context.\n\n")
		noteTexts := make([]string, 0, len(researchNotes))
		for _, n := range researchNotes {
			noteTexts = append(noteTexts, fmt.Sprintf("[%s]\n%s", n.CreatedAt, n.Content))
		}
		sb.WriteString(strings.Join(noteTexts, "\n\n---\n\n"))
	}

	if len(existingQuestions) > 0 {
		sb.WriteString("\n\n## Previous Research Questions\n\n")
		sb.WriteString("The investor previously had these research questions. Review them in light of the research notes above:\n")
		sb.WriteString("- If a question is now answerable from the research notes or updated data, mark it as answered (answered: true)\n")
		sb.WriteString("- Keep unanswered questions that are still relevant\n")
		sb.WriteString("- Remove questions that are no longer relevant\n")
		sb.WriteString("- Add new, deeper questions that arise from the research notes — the investor's own research may reveal new areas worth investigating\n\n")
		for _, q := range existingQuestions {
			status := "UNANSWERED"
			if q.Answered {
				status = "ANSWERED"
			}
			sb.WriteString(fmt.Sprintf("- [%s] (%s) %s\n", status, q.Category, q.Question))
		}
		sb.WriteString("\nFor your generatedQuestions output: include all still-relevant questions (with updated answered status) plus any new questions. Preserve the original question text for carried-over questions. New questions should be specific and actionable.")
	}

	sb.WriteString("\n\nBased on this data, provide a comprehensive Buffett-style analysis. Return your analysis as a JSON object matching the required structure. Be specific with numbers and evidence. The executive summary should be 2-3 paragraphs.")

	return sb.String()
}

// researchDataBlocks renders search results as numbered research areas.
func researchDataBlocks(searchData []dto.SearchResult) string {
	blocks := make([]string, 0, len(searchData))
	for i, d := range searchData {
		blocks = append(blocks, fmt.Sprintf("### Research Area %d\n**Query:** %s\n**Data:**\n%s", i+1, d.Query, d.Content))
	}
	return strings.Join(blocks, "\n\n---\n\n")
}
