package entity

import (
	"time"

	"gorm.io/datatypes"
)

// DailySentiment is the aggregated sentiment of one ticker on one calendar day.
// (record_date, ticker) is unique; a later write fully replaces the earlier one.
type DailySentiment struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	RecordDate     datatypes.Date `gorm:"type:date;not null;uniqueIndex:daily_sentiment_record_date_ticker_key,priority:1" json:"record_date"`
	Ticker         string         `gorm:"type:text;not null;uniqueIndex:daily_sentiment_record_date_ticker_key,priority:2" json:"ticker"`
	SentimentScore float64        `gorm:"not null" json:"sentiment_score"`
	ArticleCount   int            `gorm:"not null" json:"article_count"`
	PositiveCount  int            `gorm:"not null" json:"positive_count"`
	NegativeCount  int            `gorm:"not null" json:"negative_count"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the DailySentiment model.
func (DailySentiment) TableName() string {
	return "daily_sentiment"
}

// Date returns the record date as a time.Time at midnight.
func (d DailySentiment) Date() time.Time {
	return time.Time(d.RecordDate)
}
