package fetcher

import (
	"time"

	"github.com/aluiziolira/go-scrape-carrera/config"
)

// RetryPolicy describes how transient fetch failures are retried. It is
// a plain value so tests can substitute a zero-delay policy.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	BackoffMax  time.Duration
	// WaitBudget caps the cumulative backoff spent on a single URL;
	// once the next delay would exceed it, the fetch is exhausted.
	WaitBudget time.Duration
}

// PolicyFromConfig builds the run's retry policy from configuration.
func PolicyFromConfig(cfg *config.Config) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		Backoff:     cfg.RetryBackoff,
		BackoffMax:  cfg.RetryBackoffMax,
		WaitBudget:  cfg.RetryWaitBudget,
	}
}

// delay computes the exponential backoff before the given retry
// attempt (1-based), capped at BackoffMax.
func (p RetryPolicy) delay(attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}

	base := p.Backoff
	if base <= 0 {
		return 0
	}

	delay := base * time.Duration(1<<(attempt-1))
	if p.BackoffMax > 0 && delay > p.BackoffMax {
		delay = p.BackoffMax
	}
	return delay
}
