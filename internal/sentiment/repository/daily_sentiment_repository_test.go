package repository

import (
	"context"
	"testing"
	"time"

	"stock-sentiment-tracker/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func day(y int, m time.Month, d int) datatypes.Date {
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestDailySentimentRepository_UpsertReplacesSameKey(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewDailySentimentRepository(db)
	require.NoError(t, repo.EnsureSchema(ctx))

	require.NoError(t, repo.Upsert(ctx, &entity.DailySentiment{
		RecordDate: day(2024, 5, 1), Ticker: "AAPL", SentimentScore: 0.1, ArticleCount: 2, PositiveCount: 1, NegativeCount: 1,
	}))
	require.NoError(t, repo.Upsert(ctx, &entity.DailySentiment{
		RecordDate: day(2024, 5, 1), Ticker: "AAPL", SentimentScore: -0.3, ArticleCount: 5, PositiveCount: 0, NegativeCount: 3,
	}))

	records, err := repo.FindByTicker(ctx, "AAPL")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, -0.3, records[0].SentimentScore, 1e-9)
	assert.Equal(t, 5, records[0].ArticleCount)
	assert.Equal(t, 0, records[0].PositiveCount)
	assert.Equal(t, 3, records[0].NegativeCount)
}

func TestDailySentimentRepository_FindByTickerOrdersByDate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewDailySentimentRepository(db)
	require.NoError(t, repo.EnsureSchema(ctx))

	for _, r := range []entity.DailySentiment{
		{RecordDate: day(2024, 5, 3), Ticker: "MSFT", SentimentScore: 0.3, ArticleCount: 1},
		{RecordDate: day(2024, 5, 1), Ticker: "MSFT", SentimentScore: 0.1, ArticleCount: 1},
		{RecordDate: day(2024, 5, 2), Ticker: "NVDA", SentimentScore: 0.9, ArticleCount: 1},
		{RecordDate: day(2024, 5, 2), Ticker: "MSFT", SentimentScore: 0.2, ArticleCount: 1},
	} {
		record := r
		require.NoError(t, repo.Upsert(ctx, &record))
	}

	records, err := repo.FindByTicker(ctx, "MSFT")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2024-05-01", records[0].Date().Format("2006-01-02"))
	assert.Equal(t, "2024-05-02", records[1].Date().Format("2006-01-02"))
	assert.Equal(t, "2024-05-03", records[2].Date().Format("2006-01-02"))

	none, err := repo.FindByTicker(ctx, "ORCL")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDailySentimentRepository_EnsureSchemaUpgradesLegacyTable(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, db.Exec(`CREATE TABLE daily_sentiment (
		id BIGSERIAL PRIMARY KEY,
		record_date DATE NOT NULL,
		ticker TEXT NOT NULL,
		sentiment_score DOUBLE PRECISION NOT NULL,
		article_count INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT daily_sentiment_record_date_ticker_key UNIQUE (record_date, ticker)
	)`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO daily_sentiment (record_date, ticker, sentiment_score, article_count) VALUES ('2024-04-30', 'TSLA', 0.42, 7)`,
	).Error)

	repo := NewDailySentimentRepository(db)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.EnsureSchema(ctx))

	records, err := repo.FindByTicker(ctx, "TSLA")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 0.42, records[0].SentimentScore, 1e-9)
	assert.Equal(t, 7, records[0].ArticleCount)
	assert.Zero(t, records[0].PositiveCount)
	assert.Zero(t, records[0].NegativeCount)
}
