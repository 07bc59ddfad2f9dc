// Package retry exposes bounded retries with backoff for operations which may fail transiently.
package retry

import (
	"context"
	"time"
)

// ShouldRetryFunc allows control over which errors are retried, when not supplied any non-nil error is retried.
type ShouldRetryFunc func(attempt int, err error) bool

// LogFunc is run before each retry attempt after a failure, when not supplied logging is skipped.
type LogFunc func(attempt int, err error)

// Options encapsulates the options available when running a function with retries.
type Options struct {
	// MaxAttempts is the total number of times the function is run before giving up.
	MaxAttempts int

	// MinDelay is the delay after the first failure, subsequent delays double up to 'MaxDelay'.
	MinDelay time.Duration

	// MaxDelay bounds the backoff between attempts.
	MaxDelay time.Duration

	// ShouldRetry is a custom retry predicate, when not supplied this defaults to 'err != nil'.
	ShouldRetry ShouldRetryFunc

	// Log is run before each retry.
	Log LogFunc
}

func (o *Options) defaults() {
	if o.MaxAttempts == 0 {
		o.MaxAttempts = 3
	}

	if o.MinDelay == 0 {
		o.MinDelay = 50 * time.Millisecond
	}

	if o.MaxDelay == 0 {
		o.MaxDelay = 2*time.Second + 500*time.Millisecond
	}
}

// Run executes the given function until it succeeds, the retry predicate rejects the returned error, or the maximum
// number of attempts is reached. Backoff between attempts is exponential and honors context cancellation.
func Run(ctx context.Context, options Options, fn func(attempt int) error) error {
	options.defaults()

	var (
		err   error
		delay = options.MinDelay
	)

	for attempt := 1; attempt <= options.MaxAttempts; attempt++ {
		err = fn(attempt)
		if err == nil {
			return nil
		}

		if options.ShouldRetry != nil && !options.ShouldRetry(attempt, err) {
			return err
		}

		if attempt == options.MaxAttempts {
			break
		}

		if options.Log != nil {
			options.Log(attempt, err)
		}

		if cancelErr := cancellableSleep(ctx, delay); cancelErr != nil {
			return &RetriesAbortedError{attempts: attempt, err: err}
		}

		delay *= 2
		if delay > options.MaxDelay {
			delay = options.MaxDelay
		}
	}

	return &RetriesExhaustedError{attempts: options.MaxAttempts, err: err}
}

// cancellableSleep sleeps for the given duration, returning early with an error if the context is cancelled.
func cancellableSleep(ctx context.Context, duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
