package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/imradgraph/internal/model"
	"github.com/ppiankov/imradgraph/internal/oracle"
	"github.com/ppiankov/imradgraph/internal/patterns"
	"github.com/ppiankov/imradgraph/internal/pipeline"
	"github.com/ppiankov/imradgraph/internal/storage"
)

var (
	outJSON        string
	outCSV         string
	semanticMode   bool
	storePath      string
	noLearn        bool
	oracleProvider string
	oracleModel    string
	dbPath         string
	noCache        bool
	timeout        time.Duration
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract an IMRaD knowledge graph from one document",
	Long: `Extract reads a plain-text or HTML document, splits it into IMRaD
sections, types its sentences, and links the typed nodes into a
directed graph.

Example:
  imradgraph extract paper.txt
  imradgraph extract paper.txt --json graph.json --csv paper
  imradgraph extract paper.txt --semantic
  imradgraph extract paper.txt --oracle openai --oracle-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	extractCmd.Flags().StringVar(&outCSV, "csv", "", "output CSV base path (writes <base>_nodes.csv and <base>_edges.csv)")
	extractCmd.Flags().BoolVar(&semanticMode, "semantic", false, "use the semantic scorer instead of the built-in cue table")
	extractCmd.Flags().StringVar(&storePath, "store", "learned_patterns.json", "learned pattern store path")
	extractCmd.Flags().BoolVar(&noLearn, "no-learn", false, "disable pattern mining from oracle labels")
	extractCmd.Flags().StringVar(&oracleProvider, "oracle", "", "classification oracle (openai, anthropic, ollama; empty disables)")
	extractCmd.Flags().StringVar(&oracleModel, "oracle-model", "", "oracle model name")
	extractCmd.Flags().StringVar(&dbPath, "db", "", "SQLite graph database path (empty disables persistence)")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the oracle response cache")
	extractCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall extraction timeout")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	store := patterns.Load(cfg.Store.Path)
	if verbose {
		fmt.Fprintf(os.Stderr, "Pattern store: %s (%d learned patterns)\n", cfg.Store.Path, store.Len())
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, store, provider, pipeline.Options{Persist: true})
	report, err := p.ExtractFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	if err := renderReport(ctx, cfg, report); err != nil {
		return err
	}

	fmt.Printf("Extracted %d nodes and %d edges from %s (%d sections)\n",
		len(report.Nodes), len(report.Edges), report.Document, len(report.Sections))
	if report.Stats.PatternsLearned > 0 {
		fmt.Printf("Learned %d new cue patterns\n", report.Stats.PatternsLearned)
	}
	return nil
}

// buildConfig merges defaults with CLI flags and environment keys.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Store.Path = storePath
	cfg.Store.Learn = !noLearn
	cfg.Cache.Enabled = !noCache
	cfg.Database.Path = dbPath
	cfg.Output.Verbose = verbose
	if semanticMode {
		cfg.Mode = "semantic"
	}

	if oracleProvider != "" {
		cfg.Oracle.Provider = oracleProvider
		cfg.Oracle.Model = oracleModel

		switch oracleProvider {
		case "openai":
			cfg.Oracle.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.Oracle.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.Oracle.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.Oracle.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.Oracle.BaseURL = baseURL
			}
		}
	}
	return cfg, nil
}

// buildProvider assembles the oracle with its cache and rate-limit
// decorators. A nil return with nil error means the oracle is off.
func buildProvider(cfg *model.Config) (oracle.Provider, error) {
	provider, err := oracle.NewProvider(oracle.Config{
		Provider:  cfg.Oracle.Provider,
		Model:     cfg.Oracle.Model,
		APIKey:    cfg.Oracle.APIKey,
		BaseURL:   cfg.Oracle.BaseURL,
		Timeout:   cfg.Oracle.Timeout,
		MaxTokens: cfg.Oracle.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}

	if cfg.Cache.Enabled {
		provider = oracle.NewCached(provider, cfg.Cache.Dir, cfg.Cache.TTL)
	}
	return oracle.NewRateLimited(provider, cfg.Oracle.RatePerSecond, cfg.Oracle.Burst), nil
}

// renderReport writes the requested outputs and persists the run.
func renderReport(ctx context.Context, cfg *model.Config, report *model.Report) error {
	if outJSON != "" {
		if err := pipeline.WriteJSON(report, outJSON); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}
	if outCSV != "" {
		if err := pipeline.WriteCSV(report, outCSV); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote CSV: %s_nodes.csv, %s_edges.csv\n", outCSV, outCSV)
		}
	}

	if cfg.Database.Path != "" {
		db, err := storage.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		runID, err := db.SaveReport(ctx, report)
		if err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Stored run %s in %s\n", runID, cfg.Database.Path)
		}
	}
	return nil
}
