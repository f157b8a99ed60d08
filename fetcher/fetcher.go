// Package fetcher retrieves classification pages with bounded
// concurrency and retry.
package fetcher

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/aluiziolira/go-scrape-carrera/config"
	"github.com/gocolly/colly/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Fetcher issues HTTP GETs through a shared admission gate. The gate is
// run-scoped: it bounds in-flight requests, not logical targets, and a
// caller blocks until a slot frees up. Transient failures are retried
// per the policy; a slot is held for the whole attempt sequence.
type Fetcher struct {
	collector *colly.Collector
	gate      chan struct{}
	policy    RetryPolicy
	metrics   *Metrics
	cache     *lru.Cache[string, []byte]
	sleep     func(time.Duration)

	requestCount int64
	retryCount   int64
	errorCount   int64
}

// New builds a fetcher configured from cfg.
func New(cfg *config.Config, metrics *Metrics) (*Fetcher, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url must include a host")
	}

	collector := colly.NewCollector(
		colly.AllowedDomains(parsed.Host),
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	collector.IgnoreRobotsTxt = true
	collector.SetRequestTimeout(cfg.Timeout)
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	cache, err := lru.New[string, []byte](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create body cache: %w", err)
	}

	return &Fetcher{
		collector: collector,
		gate:      make(chan struct{}, cfg.Concurrency),
		policy:    PolicyFromConfig(cfg),
		metrics:   metrics,
		cache:     cache,
		sleep:     time.Sleep,
	}, nil
}

// WithTransport replaces the underlying transport. Used by tests to
// plug in a mock.
func (f *Fetcher) WithTransport(transport http.RoundTripper) {
	f.collector.WithTransport(transport)
}

// Fetch retrieves one URL, blocking until an admission-gate slot is
// free. 4xx responses fail immediately; timeouts, connection failures,
// and 5xx responses are retried with exponential backoff until the
// policy's attempt count or cumulative wait budget runs out, at which
// point an *ExhaustedError is returned.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	select {
	case f.gate <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	f.metrics.GateAcquired()
	defer func() {
		<-f.gate
		f.metrics.GateReleased()
	}()

	if body, ok := f.cache.Get(pageURL); ok {
		f.metrics.IncRequest("cached")
		return body, nil
	}

	var lastErr error
	var waited time.Duration
	attempts := 0
	for attempt := 1; attempt <= f.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attempts = attempt
		atomic.AddInt64(&f.requestCount, 1)
		f.metrics.IncRequest("attempt")
		start := time.Now()
		body, status, err := f.visit(pageURL)
		f.metrics.ObserveDuration(time.Since(start))

		if err == nil {
			f.cache.Add(pageURL, body)
			return body, nil
		}

		classified := classifyError(err, status)
		atomic.AddInt64(&f.errorCount, 1)
		f.metrics.IncError(errorTypeLabel(classified))
		if !isTransient(classified) {
			return nil, classified
		}
		lastErr = classified

		if attempt == f.policy.MaxAttempts {
			break
		}
		delay := f.policy.delay(attempt)
		if f.policy.WaitBudget > 0 && waited+delay > f.policy.WaitBudget {
			break
		}
		waited += delay
		atomic.AddInt64(&f.retryCount, 1)
		f.metrics.IncRetries()
		f.sleep(delay)
	}

	exhausted := &ExhaustedError{URL: pageURL, Attempts: attempts, Err: lastErr}
	f.metrics.IncError(errorTypeLabel(exhausted))
	return nil, exhausted
}

// Metrics exposes the run's metric collectors.
func (f *Fetcher) Metrics() *Metrics {
	return f.metrics
}

// Stats reports the request, retry, and error counts accumulated over
// the run.
func (f *Fetcher) Stats() (requests, retries, errors int) {
	return int(atomic.LoadInt64(&f.requestCount)),
		int(atomic.LoadInt64(&f.retryCount)),
		int(atomic.LoadInt64(&f.errorCount))
}

// visit performs a single request through a callback-free clone of the
// collector, in the manner of a one-shot scrape.
func (f *Fetcher) visit(pageURL string) ([]byte, int, error) {
	c := f.collector.Clone()

	var body []byte
	status := 0
	var visitErr error

	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = append([]byte(nil), r.Body...)
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		visitErr = err
	})

	if err := c.Visit(pageURL); err != nil && visitErr == nil {
		visitErr = err
	}
	c.Wait()

	if visitErr != nil {
		return nil, status, visitErr
	}
	return body, status, nil
}
