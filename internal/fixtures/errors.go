package fixtures

import (
	"fmt"
	"time"
)

// AuthError indicates the upstream API rejected the API key
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("fixtures API authentication failed (status %d)", e.StatusCode)
}

// RateLimitError indicates the upstream API throttled the request.
// RetryAfter is zero when the API gave no hint.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("fixtures API rate limited (retry after %s)", e.RetryAfter)
	}
	return "fixtures API rate limited"
}

// FetchError covers any other unexpected upstream response:
// non-2xx status codes and malformed payloads.
type FetchError struct {
	StatusCode int
	Reason     string
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fixtures API request failed (status %d): %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("fixtures API request failed: %s", e.Reason)
}
