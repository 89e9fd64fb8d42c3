// ABOUTME: Backoff helper for outbound API calls
// ABOUTME: Exponential with jitter, capped; used by the LLM summarizer
package util

import (
	"math/rand/v2"
	"time"
)

const maxBackoff = 30 * time.Second

// Backoff returns the delay before the given retry attempt: base doubled
// per attempt with +/-25% jitter, capped at 30s. Attempt 0 means no wait.
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}

	d := base * time.Duration(1<<uint(attempt))
	if d > maxBackoff || d <= 0 {
		d = maxBackoff
	}

	jitter := time.Duration(rand.Int64N(int64(d)/2)) - d/4
	return d + jitter
}
