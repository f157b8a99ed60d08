// Package scraper orchestrates the download of every classification
// target into the merge pipeline.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aluiziolira/go-scrape-carrera/config"
	"github.com/aluiziolira/go-scrape-carrera/fetcher"
	"github.com/aluiziolira/go-scrape-carrera/models"
	"github.com/aluiziolira/go-scrape-carrera/parser"
	"github.com/aluiziolira/go-scrape-carrera/pipeline"
)

// Scraper walks the fixed target list, fetching and parsing each one.
// Concurrency is bounded at the fetch level by the fetcher's admission
// gate, so every target gets its own goroutine.
type Scraper struct {
	cfg     *config.Config
	fetcher *fetcher.Fetcher
	targets []models.Target

	mu      sync.Mutex
	skipped []models.SkippedTarget
}

// New builds a scraper over the full target enumeration.
func New(cfg *config.Config, f *fetcher.Fetcher) *Scraper {
	return &Scraper{
		cfg:     cfg,
		fetcher: f,
		targets: AllTargets(cfg.BaseURL),
	}
}

// Run downloads all targets and contributes their records to the
// pipeline in enumeration order. A target abandoned after retry
// exhaustion is recorded and skipped; it never aborts its siblings, so
// Run only fails on setup-level problems.
func (s *Scraper) Run(ctx context.Context, p *pipeline.Pipeline) (*models.RunResult, error) {
	start := time.Now()

	var wg sync.WaitGroup
	for i, target := range s.targets {
		wg.Add(1)
		go func(index int, t models.Target) {
			defer wg.Done()

			records, err := s.downloadTarget(ctx, t)
			s.fetcher.Metrics().IncRecords(t.Categoria, len(records))
			if len(records) > 0 {
				if err := p.Contribute(index, records); err != nil {
					slog.Error("pipeline contribute failed",
						slog.String("target", t.Label()),
						slog.Any("error", err),
					)
				}
			}
			if err != nil {
				s.recordSkip(t, err)
				slog.Warn("target incomplete",
					slog.String("target", t.Label()),
					slog.Int("rows", len(records)),
					slog.Any("error", err),
				)
				return
			}
			slog.Info("target complete",
				slog.String("target", t.Label()),
				slog.Int("rows", len(records)),
			)
		}(i, target)
	}
	wg.Wait()

	requests, retries, errs := s.fetcher.Stats()
	return &models.RunResult{
		StartTime:    start,
		EndTime:      time.Now(),
		RequestCount: requests,
		RetryCount:   retries,
		ErrorCount:   errs,
		Skipped:      s.snapshotSkipped(),
	}, nil
}

// downloadTarget fetches and parses one target. For paginated targets
// the first page must complete before the remaining pages are issued,
// since it carries the page count. Partial results are returned
// alongside the error when later pages fail.
func (s *Scraper) downloadTarget(ctx context.Context, t models.Target) ([]models.Result, error) {
	body, err := s.fetcher.Fetch(ctx, t.URL)
	if err != nil {
		return nil, err
	}

	if t.IsTeam() {
		return parser.ParseTeams(body, t.Categoria, t.Distancia, t.Sexo, t.NumCorredores), nil
	}

	records := parser.ParseIndividual(body, t.Categoria, t.Distancia, t.Sexo)
	if !t.Paginated {
		return records, nil
	}

	maxPage := parser.MaxPage(body)
	if maxPage <= 1 {
		return records, nil
	}
	slog.Debug("pagination discovered",
		slog.String("target", t.Label()),
		slog.Int("pages", maxPage),
	)

	pages := make([][]models.Result, maxPage+1)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for page := 2; page <= maxPage; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			pageURL := fmt.Sprintf("%s&page=%d", t.URL, page)
			pageBody, err := s.fetcher.Fetch(ctx, pageURL)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("page %d: %w", page, err)
				}
				mu.Unlock()
				return
			}
			pages[page] = parser.ParseIndividual(pageBody, t.Categoria, t.Distancia, t.Sexo)
		}(page)
	}
	wg.Wait()

	for page := 2; page <= maxPage; page++ {
		records = append(records, pages[page]...)
	}
	return records, firstErr
}

func (s *Scraper) recordSkip(t models.Target, err error) {
	s.mu.Lock()
	s.skipped = append(s.skipped, models.SkippedTarget{Label: t.Label(), Err: err})
	s.mu.Unlock()
}

func (s *Scraper) snapshotSkipped() []models.SkippedTarget {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SkippedTarget, len(s.skipped))
	copy(out, s.skipped)
	return out
}
