package service

import (
	"context"
	"time"

	"stock-sentiment-tracker/internal/entity"
	"stock-sentiment-tracker/internal/sentiment/config"
	"stock-sentiment-tracker/internal/sentiment/repository"
	"stock-sentiment-tracker/pkg/logger"

	"github.com/shopspring/decimal"
)

// PublishFunc delivers one snapshot to a subscriber.
type PublishFunc func(entity.LiveSnapshot) error

// LiveFeed computes live sentiment snapshots and streams them on an interval.
type LiveFeed interface {
	// Acquire reserves a subscriber slot; ok is false when the feed is full.
	Acquire() (release func(), ok bool)
	// Snapshot never fails: any upstream problem yields the zero snapshot.
	Snapshot(ctx context.Context, target entity.Target) entity.LiveSnapshot
	// Stream publishes a snapshot immediately and then once per interval
	// until ctx is done or publishing fails.
	Stream(ctx context.Context, target entity.Target, publish PublishFunc) error
}

// NewLiveFeed creates a new LiveFeed.
func NewLiveFeed(cfg config.LiveFeed, log *logger.Logger, newsRepo repository.NewsRepository, aggregator Aggregator) LiveFeed {
	maxSubscribers := cfg.MaxSubscribers
	if maxSubscribers <= 0 {
		maxSubscribers = 1
	}
	return &liveFeed{
		interval:      cfg.Interval,
		maxHeadlines:  cfg.MaxHeadlines,
		minTitleWords: cfg.MinTitleWords,
		logger:        log,
		newsRepo:      newsRepo,
		aggregator:    aggregator,
		slots:         make(chan struct{}, maxSubscribers),
		after:         time.After,
	}
}

type liveFeed struct {
	interval      time.Duration
	maxHeadlines  int
	minTitleWords int
	logger        *logger.Logger
	newsRepo      repository.NewsRepository
	aggregator    Aggregator
	slots         chan struct{}
	after         func(time.Duration) <-chan time.Time
}

func (f *liveFeed) Acquire() (func(), bool) {
	select {
	case f.slots <- struct{}{}:
		return func() { <-f.slots }, true
	default:
		return nil, false
	}
}

func (f *liveFeed) Snapshot(ctx context.Context, target entity.Target) entity.LiveSnapshot {
	headlines, err := f.newsRepo.Fetch(ctx, target.TickerQuery())
	if err != nil {
		f.logger.Warn("Live fetch failed, reporting no data",
			logger.ErrorField(err), logger.StringField("ticker", target.Ticker))
		return entity.LiveSnapshot{}
	}

	var filters []HeadlineFilter
	if f.minTitleWords > 0 {
		filters = append(filters, MoreThanWords(f.minTitleWords))
	}
	result, ok := f.aggregator.Aggregate(ctx, capHeadlines(headlines, f.maxHeadlines), filters...)
	if !ok {
		return entity.LiveSnapshot{}
	}

	return entity.LiveSnapshot{
		AverageSentiment: decimal.NewFromFloat(result.MeanScore).Round(3).InexactFloat64(),
		ArticleCount:     result.Considered,
	}
}

func (f *liveFeed) Stream(ctx context.Context, target entity.Target, publish PublishFunc) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		// An in-flight cycle runs to completion even if the subscriber leaves.
		snapshot := f.Snapshot(context.WithoutCancel(ctx), target)
		if ctx.Err() != nil {
			return nil
		}
		if err := publish(snapshot); err != nil {
			return err
		}
		f.logger.Debug("Published live snapshot",
			logger.StringField("ticker", target.Ticker),
			logger.Float64Field("average_sentiment", snapshot.AverageSentiment),
			logger.IntField("article_count", snapshot.ArticleCount))

		select {
		case <-ctx.Done():
			return nil
		case <-f.after(f.interval):
		}
	}
}
