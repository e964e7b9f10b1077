package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock-sentiment-tracker/internal/entity"
	"stock-sentiment-tracker/internal/sentiment/config"
	"stock-sentiment-tracker/internal/sentiment/repository"
	"stock-sentiment-tracker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLiveFeed(news *fakeNewsRepo, scorer SentimentScorer, maxSubscribers int) *liveFeed {
	return NewLiveFeed(config.LiveFeed{
		Interval:       900 * time.Second,
		MaxHeadlines:   20,
		MinTitleWords:  3,
		MaxSubscribers: maxSubscribers,
	}, logger.NewNop(), news, NewAggregator(scorer)).(*liveFeed)
}

func TestLiveFeed_Snapshot(t *testing.T) {
	news := newFakeNewsRepo()
	news.results["TSLA"] = headlines(
		"Tesla deliveries beat forecasts",
		"Tesla recalls vehicles worldwide",
		"Tesla up",
		"",
	)
	scorer := tableScorer{
		"Tesla deliveries beat forecasts":  {Value: 0.83333},
		"Tesla recalls vehicles worldwide": {Value: -0.2},
		"Tesla up":                         {Value: 1},
	}

	snap := newTestLiveFeed(news, scorer, 1).Snapshot(context.Background(), entity.Target{Ticker: "TSLA"})

	assert.Equal(t, 2, snap.ArticleCount)
	assert.Equal(t, 0.317, snap.AverageSentiment)
	assert.Equal(t, []string{"TSLA"}, news.Queries())
}

func TestLiveFeed_SnapshotUsesQueryOverride(t *testing.T) {
	news := newFakeNewsRepo()
	target := entity.Target{Ticker: "AAPL", Name: "Apple Inc.", Query: `"Apple Inc." AND (stock OR finance)`}

	newTestLiveFeed(news, tableScorer{}, 1).Snapshot(context.Background(), target)

	assert.Equal(t, []string{target.Query}, news.Queries())
}

func TestLiveFeed_SnapshotNoData(t *testing.T) {
	news := newFakeNewsRepo()
	news.results["AMD"] = headlines("AMD rises", "AMD")
	news.errs["INTC"] = repository.ErrFetchFailed
	feed := newTestLiveFeed(news, tableScorer{}, 1)

	assert.Equal(t, entity.LiveSnapshot{}, feed.Snapshot(context.Background(), entity.Target{Ticker: "AMD"}))
	assert.Equal(t, entity.LiveSnapshot{}, feed.Snapshot(context.Background(), entity.Target{Ticker: "INTC"}))
	assert.Equal(t, entity.LiveSnapshot{}, feed.Snapshot(context.Background(), entity.Target{Ticker: "ORCL"}))
}

func TestLiveFeed_StreamPushesOnceBeforeDisconnect(t *testing.T) {
	news := newFakeNewsRepo()
	news.results["NFLX"] = headlines(
		"Netflix adds record subscribers",
		"Netflix raises prices again",
		"Netflix stock climbs higher",
		"Netflix beats revenue estimates",
		"Netflix expands ad tier",
	)
	scorer := tableScorer{}
	for _, h := range news.results["NFLX"] {
		scorer[h.Title] = entity.SentimentScore{Value: 0.2}
	}
	feed := newTestLiveFeed(news, scorer, 1)

	ctx, cancel := context.WithCancel(context.Background())
	var waited []time.Duration
	feed.after = func(d time.Duration) <-chan time.Time {
		waited = append(waited, d)
		cancel()
		return make(chan time.Time)
	}

	var pushes []entity.LiveSnapshot
	err := feed.Stream(ctx, entity.Target{Ticker: "NFLX"}, func(s entity.LiveSnapshot) error {
		pushes = append(pushes, s)
		return nil
	})

	require.NoError(t, err)
	require.Len(t, pushes, 1)
	assert.Equal(t, entity.LiveSnapshot{AverageSentiment: 0.2, ArticleCount: 5}, pushes[0])
	assert.Equal(t, []time.Duration{900 * time.Second}, waited)
}

func TestLiveFeed_StreamRepeatsEachInterval(t *testing.T) {
	news := newFakeNewsRepo()
	feed := newTestLiveFeed(news, tableScorer{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	feed.after = func(time.Duration) <-chan time.Time {
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}

	pushes := 0
	err := feed.Stream(ctx, entity.Target{Ticker: "IBM"}, func(entity.LiveSnapshot) error {
		pushes++
		if pushes == 3 {
			cancel()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, pushes)
	assert.Len(t, news.Queries(), 3)
}

func TestLiveFeed_StreamStopsWhenDisconnectRacesTimer(t *testing.T) {
	news := newFakeNewsRepo()
	feed := newTestLiveFeed(news, tableScorer{}, 1)
	var cancel context.CancelFunc
	// The subscriber leaves while the wait is ending, so both select cases are ready.
	feed.after = func(time.Duration) <-chan time.Time {
		cancel()
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}

	for i := 0; i < 50; i++ {
		news.queries = nil
		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		err := feed.Stream(ctx, entity.Target{Ticker: "IBM"}, func(entity.LiveSnapshot) error { return nil })
		cancel()
		require.NoError(t, err)
		assert.Len(t, news.Queries(), 1)
	}
}

func TestLiveFeed_NegativeMinTitleWordsDisablesFilter(t *testing.T) {
	news := newFakeNewsRepo()
	news.results["AMD"] = headlines("AMD rises")
	feed := NewLiveFeed(config.LiveFeed{MaxHeadlines: 20, MinTitleWords: -1, MaxSubscribers: 1},
		logger.NewNop(), news, NewAggregator(tableScorer{"AMD rises": {Value: 0.5}}))

	snap := feed.Snapshot(context.Background(), entity.Target{Ticker: "AMD"})

	assert.Equal(t, entity.LiveSnapshot{AverageSentiment: 0.5, ArticleCount: 1}, snap)
}

func TestLiveFeed_StreamReturnsPublishFault(t *testing.T) {
	feed := newTestLiveFeed(newFakeNewsRepo(), tableScorer{}, 1)
	boom := errors.New("write: broken pipe")

	err := feed.Stream(context.Background(), entity.Target{Ticker: "IBM"}, func(entity.LiveSnapshot) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestLiveFeed_StreamSkipsPushAfterCancel(t *testing.T) {
	feed := newTestLiveFeed(newFakeNewsRepo(), tableScorer{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pushes := 0
	err := feed.Stream(ctx, entity.Target{Ticker: "IBM"}, func(entity.LiveSnapshot) error {
		pushes++
		return nil
	})

	require.NoError(t, err)
	assert.Zero(t, pushes)
}

func TestLiveFeed_AcquireBoundsSubscribers(t *testing.T) {
	feed := newTestLiveFeed(newFakeNewsRepo(), tableScorer{}, 2)

	release1, ok := feed.Acquire()
	require.True(t, ok)
	_, ok = feed.Acquire()
	require.True(t, ok)
	_, ok = feed.Acquire()
	assert.False(t, ok)

	release1()
	_, ok = feed.Acquire()
	assert.True(t, ok)
}
