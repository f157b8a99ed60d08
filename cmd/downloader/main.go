package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aluiziolira/go-scrape-carrera/config"
	"github.com/aluiziolira/go-scrape-carrera/fetcher"
	"github.com/aluiziolira/go-scrape-carrera/models"
	"github.com/aluiziolira/go-scrape-carrera/pipeline"
	"github.com/aluiziolira/go-scrape-carrera/scraper"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	defaultCfg := config.DefaultConfig()
	concurrencyDefault := defaultCfg.Concurrency
	if value, ok, err := config.EnvInt("CARRERA_CONCURRENCY"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid CARRERA_CONCURRENCY: %v\n", err)
		os.Exit(1)
	} else if ok {
		concurrencyDefault = value
	}
	outputDefault := defaultCfg.OutputFile
	if value, ok := config.EnvString("CARRERA_OUTPUT"); ok {
		outputDefault = value
	}
	baseURLDefault := defaultCfg.BaseURL
	if value, ok := config.EnvString("CARRERA_BASE_URL"); ok {
		baseURLDefault = value
	}
	metricsDefault := defaultCfg.MetricsAddr
	if value, ok := config.EnvString("CARRERA_METRICS_ADDR"); ok {
		metricsDefault = value
	}

	concurrency := flag.Int("concurrency", concurrencyDefault, "Maximum in-flight fetches")
	maxAttempts := flag.Int("max-attempts", defaultCfg.MaxAttempts, "Maximum fetch attempts per URL")
	retryBackoffMs := flag.Int("retry-backoff", int(defaultCfg.RetryBackoff/time.Millisecond), "Initial retry backoff (milliseconds)")
	retryBackoffMaxMs := flag.Int("retry-backoff-max", int(defaultCfg.RetryBackoffMax/time.Millisecond), "Maximum retry backoff (milliseconds)")
	retryWaitBudgetMs := flag.Int("retry-wait-budget", int(defaultCfg.RetryWaitBudget/time.Millisecond), "Cumulative backoff budget per URL (milliseconds)")
	timeoutMs := flag.Int("timeout", int(defaultCfg.Timeout/time.Millisecond), "Per-request timeout (milliseconds)")
	outputFile := flag.String("output", outputDefault, "Output file path")
	outputFormat := flag.String("format", defaultCfg.OutputFormat, "Output format: csv, json, dual, or sqlite")
	verbose := flag.Bool("v", false, "Enable verbose logging")
	baseURL := flag.String("base-url", baseURLDefault, "Classifications site base URL")
	metricsAddr := flag.String("metrics-addr", metricsDefault, "Prometheus metrics listen address (e.g. :9090)")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := config.DefaultConfig()
	cfg.BaseURL = *baseURL
	cfg.Concurrency = *concurrency
	cfg.MaxAttempts = *maxAttempts
	cfg.RetryBackoff = time.Duration(*retryBackoffMs) * time.Millisecond
	cfg.RetryBackoffMax = time.Duration(*retryBackoffMaxMs) * time.Millisecond
	cfg.RetryWaitBudget = time.Duration(*retryWaitBudgetMs) * time.Millisecond
	cfg.Timeout = time.Duration(*timeoutMs) * time.Millisecond
	cfg.OutputFile = *outputFile
	cfg.OutputFormat = strings.ToLower(*outputFormat)
	cfg.Verbose = *verbose
	cfg.MetricsAddr = *metricsAddr

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("starting download",
		slog.String("base_url", cfg.BaseURL),
		slog.Int("concurrency", cfg.Concurrency),
		slog.String("output", cfg.OutputFile),
	)

	metrics := fetcher.NewMetrics()
	f, err := fetcher.New(cfg, metrics)
	if err != nil {
		slog.Error("initialising fetcher", slog.Any("error", err))
		os.Exit(1)
	}

	writer, err := createWriter(cfg.OutputFormat, cfg.OutputFile)
	if err != nil {
		slog.Error("creating writer", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := writer.Close(); err != nil {
			slog.Error("close writer", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received, waiting for in-flight work to finish")
	}()

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	p := pipeline.New(writer)
	s := scraper.New(cfg, f)

	result, err := s.Run(ctx, p)
	if err != nil {
		slog.Error("download failed", slog.Any("error", err))
		os.Exit(1)
	}

	if err := p.Close(); err != nil {
		slog.Error("persisting snapshot failed", slog.Any("error", err))
		os.Exit(1)
	}
	result.TotalRecords = p.Total()

	if err := writer.Validate(); err != nil {
		slog.Error("output validation failed", slog.Any("error", err))
		os.Exit(1)
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	printSummary(result, p.Summary(), cfg.OutputFile)
}

func createWriter(format, filename string) (pipeline.OutputWriter, error) {
	switch format {
	case "json":
		return pipeline.NewJSONWriter(filename)
	case "csv":
		return pipeline.NewCSVWriter(filename)
	case "dual":
		jsonFilename := strings.TrimSuffix(filename, ".csv") + ".json"
		return pipeline.NewDualWriter(filename, jsonFilename)
	case "sqlite":
		return pipeline.NewSQLiteWriter(filename)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func printSummary(result *models.RunResult, summary []pipeline.GroupCount, outputFile string) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Download complete")

	fmt.Printf("  Total rows:    %d\n", result.TotalRecords)
	fmt.Printf("  Requests:      %d\n", result.RequestCount)
	fmt.Printf("  Errors:        %d\n", result.ErrorCount)
	fmt.Printf("  Retries:       %d\n", result.RetryCount)
	fmt.Printf("  Duration:      %v\n", result.EndTime.Sub(result.StartTime))
	fmt.Printf("  Output file:   %s\n", outputFile)

	if len(result.Skipped) > 0 {
		fmt.Printf("  Skipped targets:\n")
		for _, skip := range result.Skipped {
			fmt.Printf("    %-28s %v\n", skip.Label, skip.Err)
		}
	}

	fmt.Println("\n  Rows by category:")
	for _, group := range summary {
		fmt.Printf("    %-12s %-5s %-2s %6d\n", group.Categoria, group.Distancia, group.Sexo, group.Rows)
	}
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
