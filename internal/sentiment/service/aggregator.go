package service

import (
	"context"
	"strings"
	"sync"

	"stock-sentiment-tracker/internal/entity"
	"stock-sentiment-tracker/pkg/utils"
)

const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// HeadlineFilter decides whether a headline takes part in aggregation.
type HeadlineFilter func(title string) bool

// NonEmptyTitle keeps headlines with non-blank titles.
func NonEmptyTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}

// MoreThanWords keeps headlines with strictly more than n words.
func MoreThanWords(n int) HeadlineFilter {
	return func(title string) bool {
		return utils.WordCount(title) > n
	}
}

// AggregateResult is the reduction of a batch of scores.
type AggregateResult struct {
	MeanScore     float64
	Considered    int
	PositiveCount int
	NegativeCount int
	DegradedCount int
}

// Aggregator scores a batch of headlines concurrently and reduces the scores.
type Aggregator interface {
	// Aggregate returns ok=false when no headline survives the filters.
	Aggregate(ctx context.Context, headlines []entity.Headline, filters ...HeadlineFilter) (AggregateResult, bool)
}

// NewAggregator creates a new Aggregator.
func NewAggregator(scorer SentimentScorer) Aggregator {
	return &aggregator{scorer: scorer}
}

type aggregator struct {
	scorer SentimentScorer
}

func (a *aggregator) Aggregate(ctx context.Context, headlines []entity.Headline, filters ...HeadlineFilter) (AggregateResult, bool) {
	titles := filterTitles(headlines, filters)
	if len(titles) == 0 {
		return AggregateResult{}, false
	}

	scores := make([]entity.SentimentScore, len(titles))
	var wg sync.WaitGroup
	for i, title := range titles {
		scores[i] = entity.DegradedScore("not scored")
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			scores[i] = a.scorer.Score(ctx, title)
		})
	}
	wg.Wait()

	return reduceScores(scores), true
}

func filterTitles(headlines []entity.Headline, filters []HeadlineFilter) []string {
	titles := make([]string, 0, len(headlines))
	for _, h := range headlines {
		if !NonEmptyTitle(h.Title) {
			continue
		}
		keep := true
		for _, f := range filters {
			if !f(h.Title) {
				keep = false
				break
			}
		}
		if keep {
			titles = append(titles, h.Title)
		}
	}
	return titles
}

func reduceScores(scores []entity.SentimentScore) AggregateResult {
	var (
		result AggregateResult
		sum    float64
	)
	for _, s := range scores {
		sum += s.Value
		switch {
		case s.Value > positiveThreshold:
			result.PositiveCount++
		case s.Value < negativeThreshold:
			result.NegativeCount++
		}
		if s.Degraded {
			result.DegradedCount++
		}
	}
	result.Considered = len(scores)
	result.MeanScore = sum / float64(len(scores))
	return result
}

// capHeadlines keeps at most n headlines, most recent first.
func capHeadlines(headlines []entity.Headline, n int) []entity.Headline {
	if n > 0 && len(headlines) > n {
		return headlines[:n]
	}
	return headlines
}
