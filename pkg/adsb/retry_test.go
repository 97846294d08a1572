package adsb

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries:        maxRetries,
		InitialDelay:      time.Millisecond,
		MaxDelay:          10 * time.Millisecond,
		Multiplier:        2.0,
		RespectRetryAfter: true,
	}
}

func TestRetryWithBackoff(t *testing.T) {
	t.Run("Succeeds on first attempt", func(t *testing.T) {
		calls := 0
		got, err := RetryWithBackoff(context.Background(), fastRetryConfig(3), func() (int, error) {
			calls++
			return 42, nil
		})
		if err != nil {
			t.Fatalf("Expected success, got %v", err)
		}
		if got != 42 || calls != 1 {
			t.Errorf("Expected 42 after 1 call, got %d after %d", got, calls)
		}
	})

	t.Run("Retries until success", func(t *testing.T) {
		calls := 0
		got, err := RetryWithBackoff(context.Background(), fastRetryConfig(3), func() (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("transient")
			}
			return "ok", nil
		})
		if err != nil {
			t.Fatalf("Expected eventual success, got %v", err)
		}
		if got != "ok" || calls != 3 {
			t.Errorf("Expected ok after 3 calls, got %q after %d", got, calls)
		}
	})

	t.Run("Gives up after max retries", func(t *testing.T) {
		calls := 0
		permanent := errors.New("permanent")
		_, err := RetryWithBackoff(context.Background(), fastRetryConfig(2), func() (int, error) {
			calls++
			return 0, permanent
		})
		if err == nil {
			t.Fatal("Expected failure")
		}
		if !errors.Is(err, permanent) {
			t.Errorf("Expected wrapped last error, got %v", err)
		}
		// Initial attempt plus 2 retries.
		if calls != 3 {
			t.Errorf("Expected 3 calls, got %d", calls)
		}
	})

	t.Run("Honors Retry-After on rate limits", func(t *testing.T) {
		calls := 0
		start := time.Now()
		_, err := RetryWithBackoff(context.Background(), fastRetryConfig(1), func() (int, error) {
			calls++
			if calls == 1 {
				return 0, &RateLimitError{
					StatusCode: 429,
					RetryAfter: 20 * time.Millisecond,
					Message:    "rate limit exceeded",
				}
			}
			return 7, nil
		})
		if err != nil {
			t.Fatalf("Expected success after rate limit, got %v", err)
		}
		if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
			t.Errorf("Expected at least the Retry-After wait, waited %v", elapsed)
		}
	})

	t.Run("Cancelled context aborts the wait", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cfg := RetryConfig{
			MaxRetries:   3,
			InitialDelay: time.Hour,
			MaxDelay:     time.Hour,
			Multiplier:   2.0,
		}

		done := make(chan error, 1)
		go func() {
			_, err := RetryWithBackoff(ctx, cfg, func() (int, error) {
				return 0, errors.New("always fails")
			})
			done <- err
		}()

		cancel()
		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Expected context cancellation, got %v", err)
			}
		case <-time.After(time.Second):
			t.Fatal("Retry did not abort on cancellation")
		}
	})
}

func TestIsRateLimitError(t *testing.T) {
	rle := &RateLimitError{StatusCode: 429, Message: "rate limit exceeded"}

	if _, ok := IsRateLimitError(rle); !ok {
		t.Error("Expected direct RateLimitError to match")
	}
	if _, ok := IsRateLimitError(errors.New("other")); ok {
		t.Error("Expected plain error not to match")
	}

	wrapped := &RateLimitError{StatusCode: 429, RetryAfter: 3 * time.Second, Message: "rate limit exceeded"}
	got, ok := IsRateLimitError(wrapped)
	if !ok || got.RetryAfter != 3*time.Second {
		t.Errorf("Expected wrapped error with Retry-After, got %v", got)
	}
}
