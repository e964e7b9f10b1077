package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stock-sentiment-tracker/internal/sentiment/config"
	"stock-sentiment-tracker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRSSFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>"Tesla" - Google News</title>
    <item>
      <title>Tesla shares slide after delivery miss - Reuters</title>
      <pubDate>Wed, 01 May 2024 08:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Tesla unveils cheaper model - Bloomberg</title>
      <pubDate>Wed, 01 May 2024 12:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func newTestRSSConfig(url string) config.NewsAPI {
	return config.NewsAPI{
		Provider:     "google_rss",
		GoogleRSSURL: url,
		Language:     "en",
		Timeout:      5 * time.Second,
	}
}

func TestGoogleRSSRepository_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Tesla", q.Get("q"))
		assert.Equal(t, "en", q.Get("hl"))
		assert.Equal(t, "US:en", q.Get("ceid"))
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(testRSSFeed))
	}))
	defer server.Close()

	repo := NewGoogleRSSRepository(newTestRSSConfig(server.URL), logger.NewNop())
	headlines, err := repo.Fetch(context.Background(), "Tesla")

	require.NoError(t, err)
	require.Len(t, headlines, 2)
	assert.Equal(t, "Tesla unveils cheaper model - Bloomberg", headlines[0].Title)
	assert.Equal(t, "Tesla shares slide after delivery miss - Reuters", headlines[1].Title)
	assert.Equal(t, "google_rss", repo.Name())
}

func TestGoogleRSSRepository_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, want: ErrRateLimited},
		{name: "server error", status: http.StatusBadGateway, want: ErrFetchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := NewGoogleRSSRepository(newTestRSSConfig(server.URL), logger.NewNop()).
				Fetch(context.Background(), "Tesla")

			assert.ErrorIs(t, err, tt.want)
		})
	}
}
