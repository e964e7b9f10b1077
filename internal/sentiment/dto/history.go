package dto

// HistoryPoint is one day of a ticker's sentiment history.
type HistoryPoint struct {
	RecordDate     string  `json:"record_date" example:"2024-05-01"`
	SentimentScore float64 `json:"sentiment_score"`
	ArticleCount   int     `json:"article_count"`
	PositiveCount  int     `json:"positive_count"`
	NegativeCount  int     `json:"negative_count"`
}

// SummaryResponse is the narrative summary body.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
