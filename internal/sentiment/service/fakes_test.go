package service

import (
	"context"
	"sync"
	"time"

	"stock-sentiment-tracker/internal/entity"
)

type fakeNewsRepo struct {
	mu      sync.Mutex
	results map[string][]entity.Headline
	errs    map[string]error
	queries []string
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{results: map[string][]entity.Headline{}, errs: map[string]error{}}
}

func (f *fakeNewsRepo) Fetch(_ context.Context, query string) ([]entity.Headline, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if err := f.errs[query]; err != nil {
		return nil, err
	}
	return f.results[query], nil
}

func (f *fakeNewsRepo) Name() string { return "fake" }

func (f *fakeNewsRepo) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

// fakeClassifier returns queued results in order, then the fallback.
type fakeClassifier struct {
	mu       sync.Mutex
	values   []float64
	errs     []error
	fallback float64
	calls    []string
}

func (f *fakeClassifier) Classify(_ context.Context, text string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.calls)
	f.calls = append(f.calls, text)
	if i < len(f.errs) && f.errs[i] != nil {
		return 0, f.errs[i]
	}
	if i < len(f.values) {
		return f.values[i], nil
	}
	return f.fallback, nil
}

// tableScorer scores by exact title.
type tableScorer map[string]entity.SentimentScore

func (s tableScorer) Score(_ context.Context, text string) entity.SentimentScore {
	return s[text]
}

type fakeStore struct {
	mu      sync.Mutex
	rows    map[string]entity.DailySentiment
	err     error
	upserts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[string]entity.DailySentiment{}}
}

func (s *fakeStore) key(r entity.DailySentiment) string {
	return r.Date().Format(time.DateOnly) + "|" + r.Ticker
}

func (s *fakeStore) EnsureSchema(context.Context) error { return nil }

func (s *fakeStore) Upsert(_ context.Context, record *entity.DailySentiment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	if s.err != nil {
		return s.err
	}
	s.rows[s.key(*record)] = *record
	return nil
}

func (s *fakeStore) FindByTicker(_ context.Context, ticker string) ([]entity.DailySentiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []entity.DailySentiment
	for _, r := range s.rows {
		if r.Ticker == ticker {
			out = append(out, r)
		}
	}
	return out, nil
}

type recordingSleep struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordingSleep) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.delays = append(r.delays, d)
	r.mu.Unlock()
	return ctx.Err()
}

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) SendMessage(text string) error {
	n.messages = append(n.messages, text)
	return nil
}

type fakeRunLock struct {
	held     bool
	released bool
}

func (l *fakeRunLock) Acquire(context.Context, time.Duration) (func(), bool, error) {
	if l.held {
		return nil, false, nil
	}
	l.held = true
	return func() { l.released = true }, true, nil
}

type fakeSummaryRepo struct {
	summary string
	err     error
	got     []string
}

func (f *fakeSummaryRepo) GenerateSummary(_ context.Context, _ string, headlines []string) (string, error) {
	f.got = headlines
	return f.summary, f.err
}

type fakeSummaryCache struct {
	values map[string]string
	ttl    time.Duration
}

func (c *fakeSummaryCache) Get(_ context.Context, ticker string) (string, bool, error) {
	v, ok := c.values[ticker]
	return v, ok, nil
}

func (c *fakeSummaryCache) Set(_ context.Context, ticker, summary string, ttl time.Duration) error {
	if c.values == nil {
		c.values = map[string]string{}
	}
	c.values[ticker] = summary
	c.ttl = ttl
	return nil
}

func headlines(titles ...string) []entity.Headline {
	out := make([]entity.Headline, 0, len(titles))
	for _, t := range titles {
		out = append(out, entity.Headline{Title: t})
	}
	return out
}

