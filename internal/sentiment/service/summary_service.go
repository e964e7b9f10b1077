package service

import (
	"context"
	"fmt"
	"time"

	"stock-sentiment-tracker/internal/entity"
	"stock-sentiment-tracker/internal/sentiment/repository"
	"stock-sentiment-tracker/pkg/common"
	"stock-sentiment-tracker/pkg/logger"
)

// SummaryService produces a narrative summary of the latest headlines for a ticker.
type SummaryService interface {
	Summarize(ctx context.Context, target entity.Target) string
}

// NewSummaryService creates a new SummaryService. cache may be nil.
func NewSummaryService(
	log *logger.Logger,
	newsRepo repository.NewsRepository,
	summaryRepo repository.SummaryRepository,
	cache repository.SummaryCacheRepository,
	maxHeadlines int,
	cacheTTL time.Duration,
) SummaryService {
	return &summaryService{
		logger:       log,
		newsRepo:     newsRepo,
		summaryRepo:  summaryRepo,
		cache:        cache,
		maxHeadlines: maxHeadlines,
		cacheTTL:     cacheTTL,
	}
}

type summaryService struct {
	logger       *logger.Logger
	newsRepo     repository.NewsRepository
	summaryRepo  repository.SummaryRepository
	cache        repository.SummaryCacheRepository
	maxHeadlines int
	cacheTTL     time.Duration
}

// Summarize always returns text; failures map to fixed fallback sentences.
func (s *summaryService) Summarize(ctx context.Context, target entity.Target) string {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, target.Ticker)
		if err != nil {
			s.logger.Warn("Summary cache read failed", logger.ErrorField(err), logger.StringField("ticker", target.Ticker))
		} else if ok {
			return cached
		}
	}

	headlines, err := s.newsRepo.Fetch(ctx, target.TickerQuery())
	if err != nil {
		s.logger.Error("Failed to fetch headlines for summary", logger.ErrorField(err), logger.StringField("ticker", target.Ticker))
		return common.SummaryFallback
	}

	titles := make([]string, 0, s.maxHeadlines)
	for _, h := range headlines {
		if len(titles) >= s.maxHeadlines {
			break
		}
		if NonEmptyTitle(h.Title) {
			titles = append(titles, h.Title)
		}
	}
	if len(titles) == 0 {
		return fmt.Sprintf("No relevant headlines found for %s.", target.Ticker)
	}

	summary, err := s.summaryRepo.GenerateSummary(ctx, target.Ticker, titles)
	if err != nil {
		s.logger.Error("Failed to generate summary", logger.ErrorField(err), logger.StringField("ticker", target.Ticker))
		return common.SummaryFallback
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, target.Ticker, summary, s.cacheTTL); err != nil {
			s.logger.Warn("Summary cache write failed", logger.ErrorField(err), logger.StringField("ticker", target.Ticker))
		}
	}
	return summary
}
