package repository

import (
	"context"
	"fmt"
	"strings"

	"stock-sentiment-tracker/internal/sentiment/config"
	"stock-sentiment-tracker/pkg/logger"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicSummaryRepository generates summaries with the Anthropic Messages API.
type anthropicSummaryRepository struct {
	client *anthropic.Client
	cfg    config.Anthropic
	logger *logger.Logger
}

// NewAnthropicSummaryRepository creates a new instance of anthropicSummaryRepository.
func NewAnthropicSummaryRepository(cfg config.Anthropic, log *logger.Logger) SummaryRepository {
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return &anthropicSummaryRepository{
		client: &client,
		cfg:    cfg,
		logger: log,
	}
}

func (r *anthropicSummaryRepository) GenerateSummary(ctx context.Context, ticker string, headlines []string) (string, error) {
	prompt := BuildSummaryPrompt(ticker, headlines)

	resp, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(r.cfg.Model),
		MaxTokens: int64(r.cfg.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		sb.WriteString(block.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: no content found in Anthropic response", ErrMalformedResponse)
	}
	return text, nil
}
