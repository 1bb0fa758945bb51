// Package retry runs an operation with exponential backoff. It exists for
// outbound calls to external providers, where a transient failure should be
// retried but a rejected request should surface immediately.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

var (
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
	ErrContextCanceled    = errors.New("context canceled during retry")
)

// Config controls the backoff schedule. Zero values fall back to one second
// doubling up to thirty, with 10% jitter.
type Config struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	JitterFactor    float64
}

func (c *Config) applyDefaults() {
	if c.InitialInterval <= 0 {
		c.InitialInterval = time.Second
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = 30 * time.Second
	}
	if c.Multiplier <= 0 {
		c.Multiplier = 2.0
	}
	if c.JitterFactor < 0 {
		c.JitterFactor = 0
	}
	if c.JitterFactor > 1 {
		c.JitterFactor = 1
	}
}

// Operation is retried until it succeeds, returns a permanent error, or
// exhausts the schedule.
type Operation func(ctx context.Context) error

// permanentError stops the retry loop immediately.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks an error as not worth retrying. Do strips the mark before
// reporting it, so callers match against the original error.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Result reports how the retry loop ended. When the schedule is exhausted,
// Err is ErrMaxRetriesExceeded and LastError carries the final attempt's
// error.
type Result struct {
	Err       error
	LastError error
	Attempts  int
}

// Do runs op under cfg's backoff schedule. A nil cfg uses the defaults.
func Do(ctx context.Context, cfg *Config, op Operation) *Result {
	if cfg == nil {
		cfg = &Config{MaxRetries: 5, JitterFactor: 0.1}
	}
	cfg.applyDefaults()

	result := &Result{}
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		result.Attempts = attempt + 1

		if ctx.Err() != nil {
			result.Err = ErrContextCanceled
			result.LastError = lastErr
			return result
		}

		err := op(ctx)
		if err == nil {
			return result
		}
		lastErr = err

		var perm *permanentError
		if errors.As(err, &perm) {
			result.Err = perm.err
			result.LastError = perm.err
			return result
		}

		if attempt == cfg.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			result.Err = ErrContextCanceled
			result.LastError = lastErr
			return result
		case <-time.After(interval(cfg, attempt)):
		}
	}

	result.Err = ErrMaxRetriesExceeded
	result.LastError = lastErr
	return result
}

// interval computes the backoff before the next attempt, jittered to avoid
// synchronized retries.
func interval(cfg *Config, attempt int) time.Duration {
	d := float64(cfg.InitialInterval) * math.Pow(cfg.Multiplier, float64(attempt))
	if cfg.JitterFactor > 0 {
		jitter := d * cfg.JitterFactor
		d += (rand.Float64()*2 - 1) * jitter
	}
	if d > float64(cfg.MaxInterval) {
		d = float64(cfg.MaxInterval)
	}
	if d < 0 {
		d = float64(cfg.InitialInterval)
	}
	return time.Duration(d)
}
