package services

import (
	"context"
	"fmt"
	"time"
)

// RetryOptions bounds one retry ladder. Delay doubles after every failed
// attempt, no jitter.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// DefaultRetry is the shared policy for document store calls.
var DefaultRetry = RetryOptions{MaxAttempts: 3, InitialDelay: 300 * time.Millisecond}

// ModelRetry is the per-tier policy for generative model calls.
var ModelRetry = RetryOptions{MaxAttempts: 3, InitialDelay: 1000 * time.Millisecond}

// RetryWithBackoff runs fn up to opts.MaxAttempts times, sleeping between
// attempts with exponential backoff. The last error is returned once the
// attempt budget is exhausted or the context ends mid-wait.
func RetryWithBackoff[T any](ctx context.Context, opts RetryOptions, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if opts.MaxAttempts <= 0 {
		opts = DefaultRetry
	}
	delay := opts.InitialDelay
	var lastErr error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if attempt == opts.MaxAttempts {
			break
		}
		fmt.Printf("Attempt %d/%d failed, retrying in %v: %v\n", attempt, opts.MaxAttempts, delay, err)
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return zero, lastErr
}
