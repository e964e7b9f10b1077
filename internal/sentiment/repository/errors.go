package repository

import "errors"

var (
	// ErrFetchFailed is returned when a news source could not be queried.
	ErrFetchFailed = errors.New("news fetch failed")

	// ErrRateLimited is returned when a news source answers 429. It is
	// distinct from ErrFetchFailed because it aborts the remaining batch.
	ErrRateLimited = errors.New("news source rate limited")

	// ErrServerFailure is returned for 5xx answers from the inference API.
	ErrServerFailure = errors.New("inference server failure")

	// ErrClientFailure is returned for 4xx answers and transport errors.
	ErrClientFailure = errors.New("inference client failure")

	// ErrMalformedResponse is returned when a payload has an unexpected shape.
	ErrMalformedResponse = errors.New("malformed response")
)
