package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetrier(attempts int) *Retrier {
	return NewRetrier(RetryConfig{
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}, nil)
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := Retry(context.Background(), fastRetrier(3), "load", func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("temporary")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || calls != 3 {
		t.Fatalf("unexpected result=%q calls=%d", got, calls)
	}
}

func TestRetry_StopsAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	calls := 0
	_, err := Retry(context.Background(), fastRetrier(2), "load", func(context.Context) (int, error) {
		calls++
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
}

func TestRetry_PermanentErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	invalid := errors.New("invalid dataset")
	calls := 0
	_, err := Retry(context.Background(), fastRetrier(5), "load", func(context.Context) (int, error) {
		calls++
		return 0, Permanent(invalid)
	})
	if !errors.Is(err, invalid) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
}

func TestRetryConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	got := NewRetrier(RetryConfig{InitialInterval: time.Second, MaxInterval: time.Millisecond}, nil).Config()
	if got.MaxAttempts != DefaultRetryConfig().MaxAttempts {
		t.Fatalf("expected default attempts, got %d", got.MaxAttempts)
	}
	if got.MaxInterval != time.Second {
		t.Fatalf("max interval should not be below initial, got %s", got.MaxInterval)
	}
}
