package repository

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"invest-research/config"
	"invest-research/internal/dto"
	"invest-research/pkg/logger"
)

type geminiRepository struct {
	client  *genai.Client
	cfg     *config.Config
	log     *logger.Logger
	limiter *rate.Limiter
}

func NewGeminiRepository(cfg *config.Config, log *logger.Logger) (GenerationRepository, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.AI.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiRepository{
		client:  client,
		cfg:     cfg,
		log:     log,
		limiter: requestLimiter(cfg.AI.MaxRequestPerMin),
	}, nil
}

func (r *geminiRepository) Complete(ctx context.Context, messages []dto.Message, opts dto.GenerationOptions) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait: %w", err)
	}

	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := "user"
		if m.Role == dto.RoleAssistant {
			role = "model"
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.Role(role)))
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(opts.Temperature)),
		MaxOutputTokens: int32(opts.MaxTokens),
	}
	if opts.SystemPrompt != "" {
		genCfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(opts.SystemPrompt)},
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.AI.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := r.client.Models.GenerateContent(ctx, opts.Model, contents, genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	r.log.DebugContext(ctx, "gemini generation finished",
		logger.StringField("model", opts.Model),
		logger.Float64Field("duration_seconds", time.Since(start).Seconds()),
	)

	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		return "", ErrTruncatedOutput
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}

func (r *geminiRepository) CompleteJSON(ctx context.Context, messages []dto.Message, opts dto.GenerationOptions, dest interface{}) (string, error) {
	text, err := r.Complete(ctx, messages, opts)
	if err != nil {
		return "", err
	}
	if err := decodeJSONOutput(text, dest); err != nil {
		return text, err
	}
	return text, nil
}
