package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"invest-research/config"
	"invest-research/internal/dto"
	"invest-research/pkg/logger"
)

type claudeRepository struct {
	client  anthropic.Client
	cfg     *config.Config
	log     *logger.Logger
	limiter *rate.Limiter
}

func NewClaudeRepository(cfg *config.Config, log *logger.Logger) GenerationRepository {
	return &claudeRepository{
		client:  anthropic.NewClient(option.WithAPIKey(cfg.AI.AnthropicAPIKey)),
		cfg:     cfg,
		log:     log,
		limiter: requestLimiter(cfg.AI.MaxRequestPerMin),
	}
}

func (r *claudeRepository) Complete(ctx context.Context, messages []dto.Message, opts dto.GenerationOptions) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait: %w", err)
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(opts.Model),
		MaxTokens:   int64(opts.MaxTokens),
		Temperature: anthropic.Float(opts.Temperature),
		Messages:    buildAnthropicMessages(messages),
	}
	if opts.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: opts.SystemPrompt}}
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.AI.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := r.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages.new: %w", err)
	}

	r.log.DebugContext(ctx, "claude generation finished",
		logger.StringField("model", opts.Model),
		logger.IntField("input_tokens", int(resp.Usage.InputTokens)),
		logger.IntField("output_tokens", int(resp.Usage.OutputTokens)),
		logger.Float64Field("duration_seconds", time.Since(start).Seconds()),
	)

	if resp.StopReason == anthropic.StopReasonMaxTokens {
		return "", ErrTruncatedOutput
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("claude response has no text content")
}

func (r *claudeRepository) CompleteJSON(ctx context.Context, messages []dto.Message, opts dto.GenerationOptions, dest interface{}) (string, error) {
	text, err := r.Complete(ctx, messages, opts)
	if err != nil {
		return "", err
	}
	if err := decodeJSONOutput(text, dest); err != nil {
		return text, err
	}
	return text, nil
}

func buildAnthropicMessages(messages []dto.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case dto.RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return out
}
