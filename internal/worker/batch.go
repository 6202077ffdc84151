package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/imradgraph/internal/model"
	"github.com/ppiankov/imradgraph/internal/oracle"
	"github.com/ppiankov/imradgraph/internal/patterns"
	"github.com/ppiankov/imradgraph/internal/pipeline"
)

// DocumentJob extracts one document with its own pattern-store copy.
type DocumentJob struct {
	Path   string
	Runner *pipeline.Pipeline
}

// DocumentResult carries one extraction outcome plus the store copy
// the run mutated.
type DocumentResult struct {
	Path   string
	Report *model.Report
	Store  *patterns.Store
	Error  error
}

// Err implements Result.
func (r *DocumentResult) Err() error {
	return r.Error
}

// Execute implements Job.
func (j *DocumentJob) Execute(ctx context.Context) Result {
	report, err := j.Runner.ExtractFile(ctx, j.Path)
	return &DocumentResult{
		Path:   j.Path,
		Report: report,
		Store:  j.Runner.Store(),
		Error:  err,
	}
}

// BatchProcessor extracts many documents concurrently. The base
// pattern store is cloned per document and merged back sequentially
// after all jobs finish, so there is exactly one writer.
type BatchProcessor struct {
	cfg      *model.Config
	store    *patterns.Store
	provider oracle.Provider
}

// NewBatchProcessor creates a batch processor around the shared store.
func NewBatchProcessor(cfg *model.Config, store *patterns.Store, provider oracle.Provider) *BatchProcessor {
	return &BatchProcessor{cfg: cfg, store: store, provider: provider}
}

// ProcessFiles extracts every path concurrently and returns the
// per-document results. Learned patterns from all documents are merged
// into the base store and persisted once.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*DocumentResult {
	if len(paths) == 0 {
		return []*DocumentResult{}
	}

	pool := NewPool(ctx, b.cfg.Concurrency.Workers)
	pool.Start()

	for _, path := range paths {
		p := pipeline.New(b.cfg, b.store.Clone(), b.provider, pipeline.Options{})
		pool.Submit(&DocumentJob{Path: path, Runner: p})
	}

	results := pool.Wait()

	docResults := make([]*DocumentResult, len(results))
	merged := 0
	for i, r := range results {
		dr := r.(*DocumentResult)
		docResults[i] = dr
		if dr.Error == nil {
			merged += b.store.Merge(dr.Store)
		}
	}

	if b.cfg.Store.Learn && merged > 0 {
		if err := b.store.Save(); err != nil && b.cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "Warning: could not save pattern store: %v\n", err)
		}
	}
	return docResults
}

// ReadPathsFromFile reads document paths from a list file, one per
// line, skipping blanks, comments, and duplicates.
func ReadPathsFromFile(listPath string) ([]string, error) {
	f, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return paths, nil
}
