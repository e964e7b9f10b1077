package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"stock-sentiment-tracker/internal/entity"
	"stock-sentiment-tracker/internal/sentiment/config"
	"stock-sentiment-tracker/internal/sentiment/repository"
	"stock-sentiment-tracker/pkg/logger"
	"stock-sentiment-tracker/pkg/utils"
)

// maxLoggedTextLength bounds the headline excerpt attached to degraded-score logs.
const maxLoggedTextLength = 80

// SentimentScorer scores a single text. It never fails: anything that cannot
// be scored comes back as a degraded neutral score.
type SentimentScorer interface {
	Score(ctx context.Context, text string) entity.SentimentScore
}

// NewSentimentScorer creates a scorer with the retry policy from cfg.
func NewSentimentScorer(cfg config.HuggingFace, repo repository.SentimentRepository, log *logger.Logger) SentimentScorer {
	return &sentimentScorer{
		repo:           repo,
		logger:         log,
		maxTextLength:  cfg.MaxTextLength,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		sleep:          sleepContext,
	}
}

type sentimentScorer struct {
	repo           repository.SentimentRepository
	logger         *logger.Logger
	maxTextLength  int
	maxAttempts    int
	initialBackoff time.Duration
	sleep          sleepFunc
}

// Score retries only server-side failures, doubling the wait after each one.
func (s *sentimentScorer) Score(ctx context.Context, text string) entity.SentimentScore {
	if strings.TrimSpace(text) == "" {
		return entity.SentimentScore{}
	}
	text = utils.TruncateRunes(text, s.maxTextLength)

	backoff := s.initialBackoff
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		value, err := s.repo.Classify(ctx, text)
		if err == nil {
			return entity.SentimentScore{Value: clampScore(value)}
		}

		if !errors.Is(err, repository.ErrServerFailure) || attempt == s.maxAttempts {
			s.logger.Warn("Sentiment scoring degraded to neutral",
				logger.ErrorField(err),
				logger.IntField("attempt", attempt),
				logger.StringField("text", utils.TruncateRunes(text, maxLoggedTextLength)))
			return entity.DegradedScore(err.Error())
		}

		s.logger.Info("Inference server failure, retrying",
			logger.ErrorField(err),
			logger.IntField("attempt", attempt),
			logger.DurationField("backoff", backoff))
		if err := s.sleep(ctx, backoff); err != nil {
			return entity.DegradedScore(err.Error())
		}
		backoff *= 2
	}

	return entity.DegradedScore("no attempts configured")
}

func clampScore(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
