// File: internal/database/retry.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/iyunix/chat-api/internal/logger"
)

// RetryConfig defines connect retry behavior. The delay doubles after each
// failed attempt up to MaxDelay.
type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
	MaxDelay    time.Duration
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 5,
		Delay:       time.Second,
		MaxDelay:    8 * time.Second,
	}
}

// RetryWithBackoff calls fn until it succeeds, attempts run out or ctx ends.
func RetryWithBackoff(ctx context.Context, config *RetryConfig, log logger.Logger, fn func(ctx context.Context, attempt int) error) error {
	if config == nil {
		config = DefaultRetryConfig()
	}
	attempts := config.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := config.Delay
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := fn(ctx, attempt)
		if err == nil {
			if attempt > 1 {
				log.Info("operation succeeded after retry", "attempts", attempt)
			}
			return nil
		}
		lastErr = err
		log.Warn("operation failed", "attempt", attempt, "max_attempts", attempts, "error", err)

		// Don't wait after last attempt
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		if delay < config.MaxDelay {
			delay *= 2
			if delay > config.MaxDelay {
				delay = config.MaxDelay
			}
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
