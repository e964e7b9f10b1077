package common

const (
	RedisKeyCollectorRunLock = "sentiment.collector.run.lock"
	RedisKeySummaryPrefix    = "sentiment.summary."

	CloseReasonInternalError = "An unexpected server error occurred."
	SummaryFallback          = "Failed to generate summary due to an error."
)
