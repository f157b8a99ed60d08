// Package pipeline merges per-target record batches and persists the
// final snapshot.
package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aluiziolira/go-scrape-carrera/models"
)

var (
	// ErrPipelineClosed is returned when Contribute is called after Close.
	ErrPipelineClosed = errors.New("pipeline: closed")
)

// OutputWriter defines the interface for snapshot output.
type OutputWriter interface {
	Write(records []models.Result) error
	Close() error
	Validate() error
}

// GroupCount is one row of the per-category summary.
type GroupCount struct {
	Categoria string
	Distancia string
	Sexo      string
	Rows      int
}

// Pipeline is the merge point for concurrently completing targets. Each
// target contributes its own batch exactly once, keyed by enumeration
// index; batches are never mutated after contribution. Close flattens
// them in enumeration order and writes a single snapshot.
type Pipeline struct {
	writer OutputWriter

	mu      sync.Mutex
	batches map[int][]models.Result
	closed  bool

	summary []GroupCount
	total   int
}

// New builds a pipeline over the given writer.
func New(writer OutputWriter) *Pipeline {
	return &Pipeline{
		writer:  writer,
		batches: make(map[int][]models.Result),
	}
}

// Contribute records one target's batch under its enumeration index.
func (p *Pipeline) Contribute(index int, records []models.Result) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPipelineClosed
	}
	if _, ok := p.batches[index]; ok {
		return fmt.Errorf("pipeline: duplicate contribution for target %d", index)
	}
	p.batches[index] = records
	return nil
}

// Close flattens all contributed batches in target enumeration order
// and persists the snapshot. The writer itself stays open; the caller
// owns its lifecycle.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true

	indexes := make([]int, 0, len(p.batches))
	for index := range p.batches {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)

	var merged []models.Result
	for _, index := range indexes {
		merged = append(merged, p.batches[index]...)
	}
	p.total = len(merged)
	p.summary = summarize(merged)
	p.mu.Unlock()

	if err := p.writer.Write(merged); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Total reports the number of merged records. Valid after Close.
func (p *Pipeline) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// Summary reports per-category row counts. Valid after Close.
func (p *Pipeline) Summary() []GroupCount {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]GroupCount, len(p.summary))
	copy(out, p.summary)
	return out
}

func summarize(records []models.Result) []GroupCount {
	type key struct {
		categoria string
		distancia string
		sexo      string
	}

	counts := make(map[key]int)
	for _, r := range records {
		counts[key{r.Categoria, r.Distancia, r.Sexo}]++
	}

	summary := make([]GroupCount, 0, len(counts))
	for k, rows := range counts {
		summary = append(summary, GroupCount{
			Categoria: k.categoria,
			Distancia: k.distancia,
			Sexo:      k.sexo,
			Rows:      rows,
		})
	}
	sort.Slice(summary, func(i, j int) bool {
		a, b := summary[i], summary[j]
		if a.Categoria != b.Categoria {
			return a.Categoria < b.Categoria
		}
		if a.Distancia != b.Distancia {
			return a.Distancia < b.Distancia
		}
		return a.Sexo < b.Sexo
	})
	return summary
}
