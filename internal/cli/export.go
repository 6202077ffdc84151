package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/imradgraph/internal/storage"
)

var (
	exportDB   string
	exportJSON string
	exportYAML string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored extraction runs from the graph database",
	Long: `Export dumps every stored run, with its nodes and edges, from the
SQLite graph database to JSON or YAML.

Example:
  imradgraph export --db graphs.db --json runs.json
  imradgraph export --db graphs.db --yaml runs.yaml`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportDB, "db", "graphs.db", "SQLite graph database path")
	exportCmd.Flags().StringVar(&exportJSON, "json", "", "JSON output path")
	exportCmd.Flags().StringVar(&exportYAML, "yaml", "", "YAML output path")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportJSON == "" && exportYAML == "" {
		return fmt.Errorf("nothing to do: pass --json and/or --yaml")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := storage.Open(exportDB)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	runs, err := db.Runs(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("Database holds no runs")
		return nil
	}

	if exportJSON != "" {
		if err := db.ExportJSON(ctx, exportJSON); err != nil {
			return err
		}
		fmt.Printf("Exported %d runs to %s\n", len(runs), exportJSON)
	}
	if exportYAML != "" {
		if err := db.ExportYAML(ctx, exportYAML); err != nil {
			return err
		}
		fmt.Printf("Exported %d runs to %s\n", len(runs), exportYAML)
	}
	return nil
}
