package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"stock-sentiment-tracker/internal/entity"
	"stock-sentiment-tracker/internal/sentiment/config"
	"stock-sentiment-tracker/pkg/logger"
	"stock-sentiment-tracker/pkg/utils"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"
)

// googleRSSRepository reads headlines from the Google News RSS search feed.
type googleRSSRepository struct {
	parser         *gofeed.Parser
	cfg            config.NewsAPI
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewGoogleRSSRepository creates a NewsRepository backed by Google News RSS.
func NewGoogleRSSRepository(cfg config.NewsAPI, log *logger.Logger) NewsRepository {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: cfg.Timeout}
	return &googleRSSRepository{
		parser:         parser,
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.MaxRequestPerMinute),
	}
}

func (r *googleRSSRepository) Name() string {
	return "google_rss"
}

func (r *googleRSSRepository) Fetch(ctx context.Context, query string) ([]entity.Headline, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: wait for request limit: %v", ErrFetchFailed, err)
	}

	lang := r.cfg.Language
	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", lang)
	params.Set("gl", "US")
	params.Set("ceid", "US:"+lang)
	feedURL := r.cfg.GoogleRSSURL + "?" + params.Encode()

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests {
			r.logger.Warn("Google News RSS rate limit hit", logger.StringField("query", query))
			return nil, ErrRateLimited
		}
		r.logger.Error("Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("query", query))
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	headlines := make([]entity.Headline, 0, len(feed.Items))
	for _, item := range feed.Items {
		h := entity.Headline{Title: strings.TrimSpace(utils.CleanToValidUTF8(item.Title))}
		if item.PublishedParsed != nil {
			h.SourcePublishedAt = *item.PublishedParsed
		}
		headlines = append(headlines, h)
	}
	sortMostRecentFirst(headlines)

	return headlines, nil
}
