package dto

// SearchResult is one answered research query. A failed query keeps its slot
// in the batch with empty content.
type SearchResult struct {
	Query     string   `json:"query"`
	Content   string   `json:"content"`
	Citations []string `json:"citations"`
}

// PerplexityRequest is the chat/completions payload for the search service.
type PerplexityRequest struct {
	Model       string              `json:"model"`
	Messages    []PerplexityMessage `json:"messages"`
	MaxTokens   int                 `json:"max_tokens"`
	Temperature float64             `json:"temperature"`
}

type PerplexityMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type PerplexityResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}
