package repository

import (
	"context"
	"fmt"

	"stock-sentiment-tracker/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// schemaStatements bring an empty or legacy database to the current shape.
// Every statement is additive and safe to repeat.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS daily_sentiment (
		id BIGSERIAL PRIMARY KEY,
		record_date DATE NOT NULL,
		ticker TEXT NOT NULL,
		sentiment_score DOUBLE PRECISION NOT NULL,
		article_count INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT daily_sentiment_record_date_ticker_key UNIQUE (record_date, ticker)
	)`,
	`ALTER TABLE daily_sentiment ADD COLUMN IF NOT EXISTS positive_count INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE daily_sentiment ADD COLUMN IF NOT EXISTS negative_count INTEGER NOT NULL DEFAULT 0`,
}

// DailySentimentRepository persists one aggregate per (record_date, ticker).
type DailySentimentRepository interface {
	EnsureSchema(ctx context.Context) error
	Upsert(ctx context.Context, record *entity.DailySentiment) error
	FindByTicker(ctx context.Context, ticker string) ([]entity.DailySentiment, error)
}

// NewDailySentimentRepository creates a new instance of DailySentimentRepository.
func NewDailySentimentRepository(db *gorm.DB) DailySentimentRepository {
	return &dailySentimentRepository{db: db}
}

type dailySentimentRepository struct {
	db *gorm.DB
}

// EnsureSchema creates the table if missing and adds the count columns to
// tables that predate them. Existing rows get 0 for the new columns.
func (r *dailySentimentRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if err := r.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("ensure daily_sentiment schema: %w", err)
		}
	}
	return nil
}

// Upsert inserts the record or fully replaces the existing row with the same key.
func (r *dailySentimentRepository) Upsert(ctx context.Context, record *entity.DailySentiment) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "record_date"}, {Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"sentiment_score",
			"article_count",
			"positive_count",
			"negative_count",
			"updated_at",
		}),
	}).Create(record).Error
}

// FindByTicker returns the ticker's history in ascending date order.
func (r *dailySentimentRepository) FindByTicker(ctx context.Context, ticker string) ([]entity.DailySentiment, error) {
	var records []entity.DailySentiment
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("record_date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
