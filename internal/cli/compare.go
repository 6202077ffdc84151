package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/imradgraph/internal/input"
	"github.com/ppiankov/imradgraph/internal/patterns"
	"github.com/ppiankov/imradgraph/internal/pipeline"
)

var (
	compareJSON    string
	compareTimeout time.Duration
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <file>",
	Short: "Run both extraction modes on one document and diff the results",
	Long: `Compare extracts the same document with the built-in cue table and
with the semantic scorer, then reports where the two methods agree,
where they diverge, and what the semantic method adds (roles,
entities, extra nodes).

Example:
  imradgraph compare paper.txt
  imradgraph compare paper.txt --json comparison.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&compareJSON, "json", "", "write the full comparison as JSON")
	compareCmd.Flags().StringVar(&storePath, "store", "learned_patterns.json", "learned pattern store path")
	compareCmd.Flags().StringVar(&oracleProvider, "oracle", "", "classification oracle (openai, anthropic, ollama; empty disables)")
	compareCmd.Flags().StringVar(&oracleModel, "oracle-model", "", "oracle model name")
	compareCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the oracle response cache")
	compareCmd.Flags().DurationVar(&compareTimeout, "timeout", 10*time.Minute, "overall comparison timeout")
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), compareTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	store := patterns.Load(cfg.Store.Path)
	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	text, err := input.ReadDocument(args[0])
	if err != nil {
		return err
	}

	cmp, err := pipeline.Compare(ctx, cfg, store, provider, args[0], text)
	if err != nil {
		return fmt.Errorf("compare: %w", err)
	}

	fmt.Printf("Comparison for %s\n", cmp.Document)
	fmt.Printf("  Rule mode:     %d nodes, %d edges\n", len(cmp.Rule.Nodes), len(cmp.Rule.Edges))
	fmt.Printf("  Semantic mode: %d nodes, %d edges\n", len(cmp.Semantic.Nodes), len(cmp.Semantic.Edges))
	fmt.Printf("  Agreement:     %d same-type, %d diverged, %d rule-only, %d semantic-only\n",
		cmp.AgreedTexts, cmp.DivergedTexts, cmp.RuleOnly, cmp.SemanticOnly)
	if len(cmp.RolesSeen) > 0 {
		fmt.Println("  Semantic roles:")
		for role, n := range cmp.RolesSeen {
			fmt.Printf("    %s: %d\n", role, n)
		}
	}
	fmt.Printf("  Entities extracted: %d\n", cmp.EntitiesTotal)

	if compareJSON != "" {
		if err := writeComparisonJSON(cmp, compareJSON); err != nil {
			return err
		}
		fmt.Printf("Wrote comparison: %s\n", compareJSON)
	}
	return nil
}

func writeComparisonJSON(cmp *pipeline.Comparison, path string) error {
	data, err := json.MarshalIndent(cmp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal comparison: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write comparison: %w", err)
	}
	return nil
}
