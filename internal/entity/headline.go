package entity

import "time"

// Headline is a single news article title returned by a news source.
type Headline struct {
	Title             string
	SourcePublishedAt time.Time
}

// SentimentScore is a score in [-1, 1]. Degraded marks a score that could
// not be obtained and was replaced with the neutral value.
type SentimentScore struct {
	Value    float64
	Degraded bool
	Reason   string
}

// DegradedScore returns the neutral score used when scoring fails.
func DegradedScore(reason string) SentimentScore {
	return SentimentScore{Value: 0, Degraded: true, Reason: reason}
}
