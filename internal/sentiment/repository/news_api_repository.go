package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"stock-sentiment-tracker/internal/entity"
	"stock-sentiment-tracker/internal/sentiment/config"
	"stock-sentiment-tracker/internal/sentiment/dto"
	"stock-sentiment-tracker/pkg/logger"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// newsAPIRepository queries the NewsAPI "everything" endpoint.
type newsAPIRepository struct {
	client         *http.Client
	cfg            config.NewsAPI
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	cache          *cache.Cache
}

// NewNewsAPIRepository creates a NewsRepository backed by NewsAPI.
func NewNewsAPIRepository(cfg config.NewsAPI, log *logger.Logger) NewsRepository {
	r := &newsAPIRepository{
		client:         &http.Client{Timeout: cfg.Timeout},
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.MaxRequestPerMinute),
	}
	if cfg.CacheTTL > 0 {
		r.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return r
}

func (r *newsAPIRepository) Name() string {
	return "newsapi"
}

// Fetch returns headlines for query, most recent first.
func (r *newsAPIRepository) Fetch(ctx context.Context, query string) ([]entity.Headline, error) {
	if r.cache != nil {
		if cached, ok := r.cache.Get(query); ok {
			headlines := cached.([]entity.Headline)
			return append([]entity.Headline(nil), headlines...), nil
		}
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: wait for request limit: %v", ErrFetchFailed, err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", r.cfg.Language)
	params.Set("sortBy", r.cfg.SortBy)
	params.Set("apiKey", r.cfg.APIKey)
	if r.cfg.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(r.cfg.PageSize))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrFetchFailed, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to NewsAPI", logger.ErrorField(err), logger.StringField("query", query))
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		r.logger.Warn("NewsAPI rate limit hit", logger.StringField("query", query))
		return nil, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		r.logger.Error("Received non-OK response from NewsAPI",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("query", query),
			logger.StringField("body", string(body)))
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	var payload dto.NewsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrFetchFailed, ErrMalformedResponse, err)
	}

	headlines := make([]entity.Headline, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		headlines = append(headlines, entity.Headline{
			Title:             strings.TrimSpace(a.Title),
			SourcePublishedAt: a.PublishedAt,
		})
	}
	sortMostRecentFirst(headlines)

	if r.cache != nil {
		r.cache.SetDefault(query, append([]entity.Headline(nil), headlines...))
	}
	return headlines, nil
}

// sortMostRecentFirst orders by publish time descending, keeping source order for ties.
func sortMostRecentFirst(headlines []entity.Headline) {
	sort.SliceStable(headlines, func(i, j int) bool {
		return headlines[i].SourcePublishedAt.After(headlines[j].SourcePublishedAt)
	})
}
