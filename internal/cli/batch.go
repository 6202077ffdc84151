package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/imradgraph/internal/patterns"
	"github.com/ppiankov/imradgraph/internal/pipeline"
	"github.com/ppiankov/imradgraph/internal/worker"
)

var (
	batchConcurrency int
	batchOutDir      string
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Extract graphs from many documents concurrently",
	Long: `Batch reads document paths from a file (one per line, # comments
allowed) and extracts each one on a worker pool. Every document sees a
private copy of the pattern store; anything learned is merged back and
saved once at the end.

Example:
  imradgraph batch papers.txt --concurrency 8 --out reports/`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "number of concurrent extractions")
	batchCmd.Flags().StringVar(&batchOutDir, "out", ".", "directory for per-document JSON reports")
	batchCmd.Flags().StringVar(&storePath, "store", "learned_patterns.json", "learned pattern store path")
	batchCmd.Flags().BoolVar(&noLearn, "no-learn", false, "disable pattern mining from oracle labels")
	batchCmd.Flags().BoolVar(&semanticMode, "semantic", false, "use the semantic scorer instead of the built-in cue table")
	batchCmd.Flags().StringVar(&oracleProvider, "oracle", "", "classification oracle (openai, anthropic, ollama; empty disables)")
	batchCmd.Flags().StringVar(&oracleModel, "oracle-model", "", "oracle model name")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the oracle response cache")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "overall batch timeout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	paths, err := worker.ReadPathsFromFile(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no document paths in %s", args[0])
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = batchConcurrency

	store := patterns.Load(cfg.Store.Path)
	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fmt.Printf("Processing %d documents with %d workers\n", len(paths), batchConcurrency)

	proc := worker.NewBatchProcessor(cfg, store, provider)
	results := proc.ProcessFiles(ctx, paths)

	var failed int
	for _, res := range results {
		if res.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", res.Path, res.Error)
			continue
		}
		out := filepath.Join(batchOutDir, reportName(res.Path))
		if err := pipeline.WriteJSON(res.Report, out); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Warning: write %s: %v\n", out, err)
			continue
		}
		fmt.Printf("  %s: %d nodes, %d edges -> %s\n",
			res.Path, len(res.Report.Nodes), len(res.Report.Edges), out)
	}

	fmt.Printf("Done: %d succeeded, %d failed, %d patterns in store\n",
		len(results)-failed, failed, store.Len())
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

func reportName(docPath string) string {
	base := filepath.Base(docPath)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".json"
}
