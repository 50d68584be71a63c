package utils

import (
	"fmt"
	"time"
)

// Retry holds the parameters for the exponential back-off strategy used
// when opening remote source streams.
type Retry struct {
	Attempts  int
	BaseDelay time.Duration
	Logger    *Logger
}

// Do executes fn, retrying with exponential back-off until it succeeds or
// all attempts are exhausted.
func (r *Retry) Do(operationName string, fn func() error) error {
	var lastErr error
	delay := r.BaseDelay

	for attempt := 1; attempt <= r.Attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < r.Attempts {
			if r.Logger != nil {
				r.Logger.Warn("[retry] %s failed (attempt %d/%d): %v — retrying in %v",
					operationName, attempt, r.Attempts, lastErr, delay)
			}
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, r.Attempts, lastErr)
}
