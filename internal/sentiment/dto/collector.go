package dto

import "time"

// TargetState is the terminal state of one target within a collector run.
type TargetState string

const (
	TargetStatePending       TargetState = "pending"
	TargetStateStored        TargetState = "stored"
	TargetStateSkippedEmpty  TargetState = "skipped_empty"
	TargetStateSkippedFailed TargetState = "skipped_failed"
)

// TargetOutcome records how one target finished.
type TargetOutcome struct {
	Ticker         string      `json:"ticker"`
	State          TargetState `json:"state"`
	SentimentScore float64     `json:"sentiment_score,omitempty"`
	ArticleCount   int         `json:"article_count,omitempty"`
	PositiveCount  int         `json:"positive_count,omitempty"`
	NegativeCount  int         `json:"negative_count,omitempty"`
	Error          string      `json:"error,omitempty"`
}

// RunReport summarises one collector pass over all targets.
type RunReport struct {
	RecordDate  string          `json:"record_date"`
	StartedAt   time.Time       `json:"started_at"`
	FinishedAt  time.Time       `json:"finished_at"`
	RateLimited bool            `json:"rate_limited"`
	Outcomes    []TargetOutcome `json:"outcomes"`
}

// Count returns how many targets ended in the given state.
func (r RunReport) Count(state TargetState) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.State == state {
			n++
		}
	}
	return n
}
