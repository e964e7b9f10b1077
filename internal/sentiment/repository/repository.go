package repository

import (
	"context"
	"fmt"
	"time"

	"stock-sentiment-tracker/internal/entity"
	"stock-sentiment-tracker/internal/sentiment/config"
	"stock-sentiment-tracker/pkg/logger"

	"golang.org/x/time/rate"
)

// NewsRepository fetches recent headlines for a search query, most recent first.
type NewsRepository interface {
	Fetch(ctx context.Context, query string) ([]entity.Headline, error)
	Name() string
}

// SentimentRepository performs a single classification call and returns
// P(positive) - P(negative). Retries are the caller's concern.
type SentimentRepository interface {
	Classify(ctx context.Context, text string) (float64, error)
}

// SummaryRepository turns a list of headlines into a narrative paragraph.
type SummaryRepository interface {
	GenerateSummary(ctx context.Context, ticker string, headlines []string) (string, error)
}

// newRequestLimiter spaces requests evenly over a minute; zero disables limiting.
func newRequestLimiter(maxPerMinute int) *rate.Limiter {
	if maxPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMinute)), 1)
}

// NewNewsRepository picks the headline source named by cfg.Provider.
func NewNewsRepository(cfg config.NewsAPI, log *logger.Logger) (NewsRepository, error) {
	switch cfg.Provider {
	case "", "newsapi":
		return NewNewsAPIRepository(cfg, log), nil
	case "google_rss":
		return NewGoogleRSSRepository(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown news provider %q", cfg.Provider)
	}
}
