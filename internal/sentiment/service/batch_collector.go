package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock-sentiment-tracker/internal/entity"
	"stock-sentiment-tracker/internal/sentiment/config"
	"stock-sentiment-tracker/internal/sentiment/dto"
	"stock-sentiment-tracker/internal/sentiment/repository"
	"stock-sentiment-tracker/pkg/logger"
	"stock-sentiment-tracker/pkg/telegram"
	"stock-sentiment-tracker/pkg/utils"

	"gorm.io/datatypes"
)

// ErrRunInProgress is returned when another collector run holds the run lock.
var ErrRunInProgress = errors.New("collector run already in progress")

// BatchCollector performs one daily pass over every configured target.
type BatchCollector interface {
	Run(ctx context.Context) (*dto.RunReport, error)
}

// BatchCollectorOption customises a BatchCollector.
type BatchCollectorOption func(*batchCollector)

// WithRunLock makes runs mutually exclusive across processes.
func WithRunLock(lock repository.RunLockRepository) BatchCollectorOption {
	return func(c *batchCollector) { c.lock = lock }
}

// WithNotifier sends the run report to Telegram after each run.
func WithNotifier(n telegram.Notifier) BatchCollectorOption {
	return func(c *batchCollector) { c.notifier = n }
}

// NewBatchCollector creates a new BatchCollector.
func NewBatchCollector(
	cfg *config.Config,
	log *logger.Logger,
	newsRepo repository.NewsRepository,
	aggregator Aggregator,
	store repository.DailySentimentRepository,
	opts ...BatchCollectorOption,
) BatchCollector {
	c := &batchCollector{
		targets:      cfg.Collector.Targets,
		targetDelay:  cfg.Collector.TargetDelay,
		maxHeadlines: cfg.Collector.MaxHeadlines,
		lockTTL:      cfg.Collector.RunLockTTL,
		location:     utils.LoadLocation(cfg.App.Timezone),
		logger:       log,
		newsRepo:     newsRepo,
		aggregator:   aggregator,
		store:        store,
		sleep:        sleepContext,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type batchCollector struct {
	targets      []entity.Target
	targetDelay  time.Duration
	maxHeadlines int
	lockTTL      time.Duration
	location     *time.Location
	logger       *logger.Logger
	newsRepo     repository.NewsRepository
	aggregator   Aggregator
	store        repository.DailySentimentRepository
	lock         repository.RunLockRepository
	notifier     telegram.Notifier
	sleep        sleepFunc
	now          func() time.Time
}

// Run processes targets in configured order. A rate-limited news source stops
// the run without error; the remaining targets stay pending until the next
// run. A persistence failure aborts the run with an error.
func (c *batchCollector) Run(ctx context.Context) (*dto.RunReport, error) {
	if c.lock != nil {
		release, ok, err := c.lock.Acquire(ctx, c.lockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrRunInProgress
		}
		defer release()
	}

	today := utils.DateOf(c.now(), c.location)
	report := &dto.RunReport{
		RecordDate: today.Format(time.DateOnly),
		StartedAt:  c.now(),
		Outcomes:   make([]dto.TargetOutcome, len(c.targets)),
	}
	for i, t := range c.targets {
		report.Outcomes[i] = dto.TargetOutcome{Ticker: t.Ticker, State: dto.TargetStatePending}
	}

	c.logger.Info("Starting daily sentiment collection",
		logger.IntField("targets", len(c.targets)),
		logger.StringField("record_date", report.RecordDate))

	var runErr error
	for i, target := range c.targets {
		if !utils.ShouldContinue(ctx, c.logger) {
			break
		}

		outcome, err := c.processTarget(ctx, target, today)
		if errors.Is(err, repository.ErrRateLimited) {
			c.logger.Warn("Rate limit hit, stopping collector for today",
				logger.StringField("ticker", target.Ticker),
				logger.IntField("pending", len(c.targets)-i))
			report.RateLimited = true
			break
		}
		if err != nil {
			report.Outcomes[i] = outcome
			runErr = err
			break
		}
		report.Outcomes[i] = outcome

		c.logger.Debug("Waiting before next target", logger.DurationField("delay", c.targetDelay))
		if err := c.sleep(ctx, c.targetDelay); err != nil {
			break
		}
	}

	report.FinishedAt = c.now()
	c.logger.Info("Daily sentiment collection finished",
		logger.IntField("stored", report.Count(dto.TargetStateStored)),
		logger.IntField("skipped_empty", report.Count(dto.TargetStateSkippedEmpty)),
		logger.IntField("skipped_failed", report.Count(dto.TargetStateSkippedFailed)),
		logger.IntField("pending", report.Count(dto.TargetStatePending)),
		logger.BoolField("rate_limited", report.RateLimited))

	c.notify(report, runErr)

	return report, runErr
}

// processTarget returns ErrRateLimited as-is, a wrapped error for persistence
// failures, and nil for every target-local outcome.
func (c *batchCollector) processTarget(ctx context.Context, target entity.Target, today time.Time) (dto.TargetOutcome, error) {
	outcome := dto.TargetOutcome{Ticker: target.Ticker, State: dto.TargetStatePending}
	query := target.SearchQuery()
	c.logger.Info("Processing target", logger.StringField("ticker", target.Ticker), logger.StringField("query", query))

	headlines, err := c.newsRepo.Fetch(ctx, query)
	if errors.Is(err, repository.ErrRateLimited) {
		return outcome, err
	}
	if err != nil {
		c.logger.Error("Failed to fetch headlines", logger.ErrorField(err), logger.StringField("ticker", target.Ticker))
		outcome.State = dto.TargetStateSkippedFailed
		outcome.Error = err.Error()
		return outcome, nil
	}
	if len(headlines) == 0 {
		c.logger.Info("No articles found, skipping", logger.StringField("ticker", target.Ticker))
		outcome.State = dto.TargetStateSkippedEmpty
		return outcome, nil
	}

	result, ok := c.aggregator.Aggregate(ctx, capHeadlines(headlines, c.maxHeadlines))
	if !ok {
		c.logger.Warn("Sentiment analysis produced no data, skipping", logger.StringField("ticker", target.Ticker))
		outcome.State = dto.TargetStateSkippedFailed
		outcome.Error = "no headlines with a title"
		return outcome, nil
	}

	record := &entity.DailySentiment{
		RecordDate:     datatypes.Date(today),
		Ticker:         target.Ticker,
		SentimentScore: result.MeanScore,
		ArticleCount:   result.Considered,
		PositiveCount:  result.PositiveCount,
		NegativeCount:  result.NegativeCount,
	}
	if err := c.store.Upsert(ctx, record); err != nil {
		c.logger.Error("Failed to store daily sentiment", logger.ErrorField(err), logger.StringField("ticker", target.Ticker))
		outcome.State = dto.TargetStateSkippedFailed
		outcome.Error = err.Error()
		return outcome, fmt.Errorf("store daily sentiment for %s: %w", target.Ticker, err)
	}

	c.logger.Info("Stored daily sentiment",
		logger.StringField("ticker", target.Ticker),
		logger.Float64Field("score", result.MeanScore),
		logger.IntField("articles", result.Considered),
		logger.IntField("positive", result.PositiveCount),
		logger.IntField("negative", result.NegativeCount),
		logger.IntField("degraded", result.DegradedCount))

	outcome.State = dto.TargetStateStored
	outcome.SentimentScore = result.MeanScore
	outcome.ArticleCount = result.Considered
	outcome.PositiveCount = result.PositiveCount
	outcome.NegativeCount = result.NegativeCount
	return outcome, nil
}

func (c *batchCollector) notify(report *dto.RunReport, runErr error) {
	if c.notifier == nil {
		return
	}
	messages := telegram.FormatRunReport(*report)
	if runErr != nil {
		messages = append(messages, telegram.FormatErrorAlertMessage(report.FinishedAt, "collector run aborted", runErr.Error()))
	}
	for _, message := range messages {
		if err := c.notifier.SendMessage(message); err != nil {
			c.logger.Error("Failed to send Telegram notification", logger.ErrorField(err))
		}
	}
}
