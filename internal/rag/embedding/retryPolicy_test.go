package embedding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSleeper records requested waits without blocking.
type fakeSleeper struct {
	waits []time.Duration
}

func (f *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	f.waits = append(f.waits, d)
	return ctx.Err()
}

func TestRetryPolicy_Backoff(t *testing.T) {
	p := RetryPolicy{BaseDelay: 100 * time.Millisecond}
	assert.Equal(t, 100*time.Millisecond, p.Backoff(1))
	assert.Equal(t, 200*time.Millisecond, p.Backoff(2))
	assert.Equal(t, 400*time.Millisecond, p.Backoff(3))
	assert.Equal(t, 100*time.Millisecond, p.Backoff(0), "attempt below 1 behaves like the first")
	assert.Positive(t, p.Backoff(100), "large attempts must not overflow")
}

func TestRetryPolicy_BackoffIsCapped(t *testing.T) {
	tests := []struct {
		name    string
		base    time.Duration
		attempt int
		want    time.Duration
	}{
		{"grows below the cap", time.Minute, 3, 4 * time.Minute},
		{"doubling crosses the cap", time.Minute, 4, MaxBackoff},
		{"large base large attempt", 10 * time.Second, 31, MaxBackoff},
		{"huge base", 1 << 40, 31, MaxBackoff},
		{"max int base", time.Duration(1<<63 - 1), 2, MaxBackoff},
		{"zero base", 0, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RetryPolicy{BaseDelay: tt.base}.Backoff(tt.attempt)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, time.Duration(0))
		})
	}
}

func TestRetryPolicy_InvalidMaxAttempts(t *testing.T) {
	attempts, err := RetryPolicy{MaxAttempts: 0}.Do(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	assert.Zero(t, attempts)
}

func TestRetryPolicy_Ceiling(t *testing.T) {
	const maxAttempts = 3

	// fails K times then succeeds: succeeds iff K < maxAttempts, never more than maxAttempts calls
	for k := 0; k <= maxAttempts+1; k++ {
		sleeper := &fakeSleeper{}
		p := RetryPolicy{MaxAttempts: maxAttempts, BaseDelay: time.Second, Sleep: sleeper.Sleep}

		calls := 0
		attempts, err := p.Do(context.Background(), func(context.Context) error {
			calls++
			if calls <= k {
				return errors.New("rate limited")
			}
			return nil
		})

		assert.LessOrEqual(t, calls, maxAttempts, "k=%d", k)
		assert.Equal(t, calls, attempts, "k=%d", k)
		if k < maxAttempts {
			require.NoError(t, err, "k=%d", k)
			assert.Equal(t, k+1, calls, "k=%d", k)
			assert.Len(t, sleeper.waits, k, "one wait per failure, k=%d", k)
		} else {
			require.Error(t, err, "k=%d", k)
			assert.ErrorIs(t, err, ErrRetriesExhausted, "k=%d", k)
			assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, sleeper.waits, "no wait after the last attempt")
		}
	}
}

func TestRetryPolicy_ExhaustedKeepsCause(t *testing.T) {
	cause := errors.New("quota exceeded")
	_, err := RetryPolicy{MaxAttempts: 2, Sleep: (&fakeSleeper{}).Sleep}.Do(context.Background(), func(context.Context) error {
		return cause
	})

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 2, exhausted.Attempts)
	assert.ErrorIs(t, err, cause)
}

func TestRetryPolicy_NonRetryableStopsImmediately(t *testing.T) {
	permanent := errors.New("invalid api key")
	sleeper := &fakeSleeper{}
	p := RetryPolicy{
		MaxAttempts: 5,
		Sleep:       sleeper.Sleep,
		Retryable:   func(err error) bool { return !errors.Is(err, permanent) },
	}

	calls := 0
	attempts, err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return permanent
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, attempts)
	assert.ErrorIs(t, err, permanent)
	assert.NotErrorIs(t, err, ErrRetriesExhausted)
	assert.Empty(t, sleeper.waits)
}

func TestRetryPolicy_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := RetryPolicy{MaxAttempts: 10, Sleep: (&fakeSleeper{}).Sleep}.Do(ctx, func(context.Context) error {
		calls++
		if calls == 2 {
			cancel()
		}
		return errors.New("error")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, calls, "should stop when the context is canceled")
}

func TestRetryPolicy_OnRetryHook(t *testing.T) {
	var seen []int
	p := RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		Sleep:       (&fakeSleeper{}).Sleep,
		OnRetry:     func(attempt int, wait time.Duration, err error) { seen = append(seen, attempt) },
	}
	_, _ = p.Do(context.Background(), func(context.Context) error { return errors.New("boom") })
	assert.Equal(t, []int{1, 2}, seen)
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, SleepContext(ctx, time.Hour), context.Canceled)
	assert.NoError(t, SleepContext(context.Background(), time.Millisecond))
}
