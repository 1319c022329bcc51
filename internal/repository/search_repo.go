package repository

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"invest-research/config"
	"invest-research/internal/dto"
	"invest-research/pkg/httpclient"
	"invest-research/pkg/logger"
	"invest-research/pkg/utils"
)

// SearchRepository runs web research queries through the Perplexity API.
type SearchRepository interface {
	Search(ctx context.Context, query string) (dto.SearchResult, error)
	// SearchBatch answers every query, in order, running at most the
	// configured concurrency at a time. A failed query does not fail the
	// batch; its slot carries an empty-content result.
	SearchBatch(ctx context.Context, queries []string) ([]dto.SearchResult, error)
}

type perplexitySearchRepository struct {
	httpClient httpclient.HTTPClient
	cfg        *config.Config
	log        *logger.Logger
	limiter    *rate.Limiter
}

func NewPerplexitySearchRepository(cfg *config.Config, log *logger.Logger) SearchRepository {
	return &perplexitySearchRepository{
		httpClient: httpclient.New(cfg.Perplexity.BaseURL, cfg.Perplexity.Timeout, cfg.Perplexity.APIKey),
		cfg:        cfg,
		log:        log,
		limiter:    requestLimiter(cfg.Perplexity.MaxRequestPerMin),
	}
}

func (r *perplexitySearchRepository) Search(ctx context.Context, query string) (dto.SearchResult, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return dto.SearchResult{Query: query}, fmt.Errorf("rate limiter wait: %w", err)
	}

	req := dto.PerplexityRequest{
		Model: r.cfg.Perplexity.Model,
		Messages: []dto.PerplexityMessage{
			{Role: "system", Content: "You are a financial research assistant. Provide factual, sourced information with specific numbers and dates where available."},
			{Role: "user", Content: query},
		},
		MaxTokens:   r.cfg.Perplexity.MaxTokens,
		Temperature: r.cfg.Perplexity.Temperature,
	}

	var perplexityResp dto.PerplexityResponse
	resp, err := r.httpClient.Post(ctx, "/chat/completions", req, nil, &perplexityResp)
	if err != nil {
		return dto.SearchResult{Query: query}, fmt.Errorf("perplexity request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return dto.SearchResult{Query: query}, fmt.Errorf("perplexity returned status %d: %s", resp.StatusCode, string(resp.Body))
	}
	if len(perplexityResp.Choices) == 0 {
		return dto.SearchResult{Query: query}, fmt.Errorf("perplexity returned no choices")
	}

	return dto.SearchResult{
		Query:     query,
		Content:   perplexityResp.Choices[0].Message.Content,
		Citations: perplexityResp.Citations,
	}, nil
}

func (r *perplexitySearchRepository) SearchBatch(ctx context.Context, queries []string) ([]dto.SearchResult, error) {
	results := runSearchBatch(ctx, queries, r.cfg.Research.SearchConcurrency, func(ctx context.Context, query string) (dto.SearchResult, error) {
		return r.Search(ctx, query)
	})

	failed := 0
	for _, res := range results {
		if res.Content == "" {
			failed++
		}
	}
	if failed > 0 {
		r.log.WarnContext(ctx, "search batch finished with failed queries",
			logger.IntField("total", len(queries)),
			logger.IntField("failed", failed),
		)
	}
	return results, nil
}

// runSearchBatch executes queries in sequential chunks of at most concurrency,
// the queries inside a chunk running in parallel. The returned slice always
// has one entry per query, positionally matched; a query whose search failed
// keeps its slot with empty content. A cancelled context stops new chunks
// from starting, their slots filled like failed queries.
func runSearchBatch(ctx context.Context, queries []string, concurrency int, search func(ctx context.Context, query string) (dto.SearchResult, error)) []dto.SearchResult {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]dto.SearchResult, len(queries))
	for start := 0; start < len(queries); start += concurrency {
		if !utils.ShouldContinue(ctx) {
			for i := start; i < len(queries); i++ {
				results[i] = dto.SearchResult{Query: queries[i], Content: "", Citations: []string{}}
			}
			break
		}

		end := start + concurrency
		if end > len(queries) {
			end = len(queries)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				res, err := search(gctx, queries[i])
				if err != nil {
					results[i] = dto.SearchResult{Query: queries[i], Content: "", Citations: []string{}}
					return nil
				}
				results[i] = res
				return nil
			})
		}
		g.Wait() //nolint:errcheck // workers never return errors
	}
	return results
}
