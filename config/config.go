package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds downloader configuration.
type Config struct {
	BaseURL         string
	Concurrency     int // maximum in-flight fetches (admission gate size)
	Timeout         time.Duration
	MaxAttempts     int
	RetryBackoff    time.Duration
	RetryBackoffMax time.Duration
	RetryWaitBudget time.Duration // cumulative backoff allowed per URL
	CacheSize       int
	OutputFile      string
	OutputFormat    string // csv, json, dual, or sqlite
	UserAgent       string
	Verbose         bool
	MetricsAddr     string
}

// DefaultConfig returns the defaults for the 2025 classifications site.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:         "https://www.carreradelasempresas.com/clasificaciones25",
		Concurrency:     5,
		Timeout:         10 * time.Second,
		MaxAttempts:     5,
		RetryBackoff:    1 * time.Second,
		RetryBackoffMax: 30 * time.Second,
		RetryWaitBudget: 60 * time.Second,
		CacheSize:       128,
		OutputFile:      "data/clasificaciones.csv",
		OutputFormat:    "csv",
		UserAgent:       "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
		Verbose:         false,
		MetricsAddr:     "",
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}

	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("max attempts must be positive")
	}
	if c.RetryBackoff < 0 {
		return fmt.Errorf("retry backoff cannot be negative")
	}
	if c.RetryBackoffMax < 0 {
		return fmt.Errorf("retry backoff max cannot be negative")
	}
	if c.RetryBackoffMax > 0 && c.RetryBackoff > c.RetryBackoffMax {
		return fmt.Errorf("retry backoff (%s) cannot exceed retry backoff max (%s)", c.RetryBackoff, c.RetryBackoffMax)
	}
	if c.RetryWaitBudget < 0 {
		return fmt.Errorf("retry wait budget cannot be negative")
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	switch c.OutputFormat {
	case "csv", "json", "dual", "sqlite":
	default:
		return fmt.Errorf("output format must be csv, json, dual, or sqlite")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}

	return nil
}
