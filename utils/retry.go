package utils

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryConfig bounds a retried operation: up to MaxAttempts executions with
// BaseDelay*2^(attempt-1) waits in between.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// BackoffDelay returns the wait after the given 1-indexed failed attempt.
func (c RetryConfig) BackoffDelay(attempt int) time.Duration {
	return c.BaseDelay << (attempt - 1)
}

func (c RetryConfig) newBackOff() backoff.BackOff {
	attempts := c.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = 24 * time.Hour // never cap below the pure exponential
	b.MaxElapsedTime = 0
	return backoff.WithMaxRetries(b, uint64(attempts-1))
}

// Retry runs op until it succeeds, returns a backoff.Permanent error, or
// MaxAttempts executions have failed. The last error is returned on
// exhaustion. Permanent errors abort immediately without sleeping.
func Retry(op func() error, cfg RetryConfig, what string) error {
	return retryWithTimer(op, cfg, what, nil)
}

// retryWithTimer exists so tests can substitute the backoff timer.
func retryWithTimer(op func() error, cfg RetryConfig, what string, timer backoff.Timer) error {
	attempt := 0
	wrapped := func() error {
		attempt++
		PrintDebug("%s: attempt %d/%d", what, attempt, cfg.MaxAttempts)
		return op()
	}
	notify := func(err error, delay time.Duration) {
		PrintWarning("%s failed (attempt %d/%d): %v", what, attempt, cfg.MaxAttempts, err)
		PrintStatus("Retrying in %s...", delay)
	}

	err := backoff.RetryNotifyWithTimer(wrapped, cfg.newBackOff(), notify, timer)
	if err != nil {
		PrintError("%s failed after %d attempts", what, attempt)
	}
	return err
}
