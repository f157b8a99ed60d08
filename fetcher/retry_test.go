package fetcher

import (
	"testing"
	"time"
)

func TestRetryPolicyDelayGrowth(t *testing.T) {
	policy := RetryPolicy{
		MaxAttempts: 5,
		Backoff:     time.Second,
		BackoffMax:  time.Minute,
	}

	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second}
	for i, expected := range want {
		if got := policy.delay(i + 1); got != expected {
			t.Fatalf("delay(%d) = %v, want %v", i+1, got, expected)
		}
	}
}

func TestRetryPolicyDelayCapped(t *testing.T) {
	policy := RetryPolicy{
		MaxAttempts: 10,
		Backoff:     time.Second,
		BackoffMax:  5 * time.Second,
	}

	if got := policy.delay(8); got != 5*time.Second {
		t.Fatalf("delay(8) = %v, want cap %v", got, 5*time.Second)
	}
}

func TestRetryPolicyZeroBackoff(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3}
	if got := policy.delay(2); got != 0 {
		t.Fatalf("delay(2) = %v, want 0", got)
	}
}
