package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrRetriesExhausted   = errors.New("retries exhausted")
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than 0")
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryPolicy runs an operation up to MaxAttempts times, waiting BaseDelay, 2*BaseDelay, 4*BaseDelay...
// between attempts.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Sleep       SleepFunc
	// Retryable decides whether an error is worth another attempt. Nil retries everything.
	Retryable func(error) bool
	OnRetry   func(attempt int, wait time.Duration, err error)
}

type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() []error {
	return []error{ErrRetriesExhausted, e.Err}
}

// MaxBackoff caps a single wait between attempts.
const MaxBackoff = 5 * time.Minute

// Backoff returns the wait after the given failed attempt (1-based), never more than MaxBackoff.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if p.BaseDelay <= 0 {
		return 0
	}
	if p.BaseDelay >= MaxBackoff {
		return MaxBackoff
	}
	if attempt < 1 {
		attempt = 1
	}
	wait := p.BaseDelay
	for i := 1; i < attempt; i++ {
		if wait >= MaxBackoff/2 {
			return MaxBackoff
		}
		wait <<= 1
	}
	return wait
}

func (p RetryPolicy) sleeper() SleepFunc {
	if p.Sleep != nil {
		return p.Sleep
	}
	return SleepContext
}

// Do returns the number of attempts made and the final error, if any.
// A cancelled context is never retried; a non-retryable error is returned as is.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error) (int, error) {
	if p.MaxAttempts <= 0 {
		return 0, ErrInvalidMaxAttempts
	}
	sleep := p.sleeper()

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return attempt - 1, err
		}

		err := op(ctx)
		if err == nil {
			return attempt, nil
		}
		lastErr = err

		if ctxErr := ctx.Err(); ctxErr != nil {
			return attempt, ctxErr
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return attempt, err
		}
		if attempt == p.MaxAttempts {
			break
		}

		wait := p.Backoff(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, wait, err)
		}
		if err := sleep(ctx, wait); err != nil {
			return attempt, err
		}
	}
	return p.MaxAttempts, &ExhaustedError{Attempts: p.MaxAttempts, Err: lastErr}
}
