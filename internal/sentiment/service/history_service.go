package service

import (
	"context"
	"strings"

	"stock-sentiment-tracker/internal/sentiment/dto"
	"stock-sentiment-tracker/internal/sentiment/repository"
)

// HistoryService reads the stored daily series for a ticker.
type HistoryService interface {
	GetHistory(ctx context.Context, ticker string) ([]dto.HistoryPoint, error)
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(store repository.DailySentimentRepository) HistoryService {
	return &historyService{store: store}
}

type historyService struct {
	store repository.DailySentimentRepository
}

func (s *historyService) GetHistory(ctx context.Context, ticker string) ([]dto.HistoryPoint, error) {
	records, err := s.store.FindByTicker(ctx, strings.ToUpper(ticker))
	if err != nil {
		return nil, err
	}

	points := make([]dto.HistoryPoint, 0, len(records))
	for _, r := range records {
		points = append(points, dto.HistoryPoint{
			RecordDate:     r.Date().Format("2006-01-02"),
			SentimentScore: r.SentimentScore,
			ArticleCount:   r.ArticleCount,
			PositiveCount:  r.PositiveCount,
			NegativeCount:  r.NegativeCount,
		})
	}
	return points, nil
}
