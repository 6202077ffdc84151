package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/ppiankov/imradgraph/internal/model"
)

// WriteJSON renders the full report as indented JSON.
func WriteJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteCSV renders nodes and edges as <base>_nodes.csv and
// <base>_edges.csv, a layout graph tools import directly.
func WriteCSV(report *model.Report, base string) error {
	if err := writeNodesCSV(report.Nodes, base+"_nodes.csv"); err != nil {
		return err
	}
	return writeEdgesCSV(report.Edges, base+"_edges.csv")
}

func writeNodesCSV(nodes []model.Node, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create nodes csv: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close nodes csv: %w", closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "type", "text", "section", "confidence", "evidence"}); err != nil {
		return fmt.Errorf("write nodes csv: %w", err)
	}
	for _, n := range nodes {
		row := []string{
			n.ID,
			string(n.Type),
			n.Text,
			n.Section,
			strconv.FormatFloat(n.Confidence, 'f', -1, 64),
			n.Evidence,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write nodes csv: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeEdgesCSV(edges []model.Edge, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create edges csv: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close edges csv: %w", closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"start", "end", "type", "confidence", "evidence"}); err != nil {
		return fmt.Errorf("write edges csv: %w", err)
	}
	for _, e := range edges {
		row := []string{
			e.Start,
			e.End,
			e.Type,
			strconv.FormatFloat(e.Confidence, 'f', -1, 64),
			e.Evidence,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write edges csv: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
