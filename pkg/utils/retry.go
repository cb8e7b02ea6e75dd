package utils

import (
	"context"
	"fmt"
	"time"
)

// WithRetry runs fn until it succeeds, returns a non-recoverable error, or
// maxAttempts is reached. The wait between attempts grows linearly from baseDelay.
func WithRetry(ctx context.Context, maxAttempts int, baseDelay time.Duration, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return WrapError(err, ErrorTypeTimeout, "operation cancelled")
		}

		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if !IsRecoverable(err) {
			return err
		}

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return WrapError(ctx.Err(), ErrorTypeTimeout, "operation cancelled")
			case <-time.After(baseDelay * time.Duration(attempt)):
			}
		}
	}

	return WrapError(lastErr, "", fmt.Sprintf("operation failed after %d attempts", maxAttempts))
}
