package resilience

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/riskibarqy/tournament-dashboard/internal/platform/logging"
)

// RetryConfig bounds a Retrier. Zero fields fall back to DefaultRetryConfig.
type RetryConfig struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:     3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

func (c RetryConfig) withDefaults() RetryConfig {
	def := DefaultRetryConfig()
	if c.MaxAttempts < 1 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.InitialInterval <= 0 {
		c.InitialInterval = def.InitialInterval
	}
	c.MaxInterval = max(c.MaxInterval, c.InitialInterval)
	return c
}

// Retrier runs an operation with capped exponential backoff.
type Retrier struct {
	cfg    RetryConfig
	logger *logging.Logger
}

func NewRetrier(cfg RetryConfig, logger *logging.Logger) *Retrier {
	if logger == nil {
		logger = logging.Default()
	}
	return &Retrier{
		cfg:    cfg.withDefaults(),
		logger: logger,
	}
}

func (r *Retrier) Config() RetryConfig {
	return r.cfg
}

// Permanent marks err so that Retry stops immediately.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// Retry calls fn until it succeeds, returns a Permanent error, the attempt
// budget is spent, or ctx is done.
func Retry[T any](ctx context.Context, r *Retrier, name string, fn func(context.Context) (T, error)) (T, error) {
	if r == nil {
		r = NewRetrier(DefaultRetryConfig(), nil)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.cfg.InitialInterval
	policy.MaxInterval = r.cfg.MaxInterval

	attempt := 0
	return backoff.Retry(ctx,
		func() (T, error) {
			attempt++
			return fn(ctx)
		},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(r.cfg.MaxAttempts)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			r.logger.WarnContext(ctx, "operation failed, retrying",
				"operation", name,
				"attempt", attempt,
				"max_attempts", r.cfg.MaxAttempts,
				"retry_in", wait,
				"error", err,
			)
		}),
	)
}
