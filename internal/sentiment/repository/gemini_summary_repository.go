package repository

import (
	"context"
	"fmt"
	"strings"

	"stock-sentiment-tracker/internal/sentiment/config"
	"stock-sentiment-tracker/pkg/logger"

	"google.golang.org/genai"
)

// geminiSummaryRepository generates summaries with the Google Gemini API.
type geminiSummaryRepository struct {
	cfg         config.Gemini
	logger      *logger.Logger
	genAiClient *genai.Client
}

// NewGeminiSummaryRepository creates a new instance of geminiSummaryRepository.
func NewGeminiSummaryRepository(cfg config.Gemini, log *logger.Logger, genAiClient *genai.Client) SummaryRepository {
	return &geminiSummaryRepository{
		cfg:         cfg,
		logger:      log,
		genAiClient: genAiClient,
	}
}

func (r *geminiSummaryRepository) GenerateSummary(ctx context.Context, ticker string, headlines []string) (string, error) {
	prompt := BuildSummaryPrompt(ticker, headlines)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	r.logger.Debug("Sending headlines to Gemini", logger.StringField("ticker", ticker), logger.IntField("headlines", len(headlines)))

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: no content found in Gemini response", ErrMalformedResponse)
	}
	return text, nil
}
