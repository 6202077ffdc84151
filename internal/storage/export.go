package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/imradgraph/internal/model"
)

// Export is the serializable view of everything in the database.
type Export struct {
	Runs  []RunExport `json:"runs" yaml:"runs"`
	Nodes int         `json:"total_nodes" yaml:"total_nodes"`
	Edges int         `json:"total_edges" yaml:"total_edges"`
}

// RunExport is one run with its full node and edge lists.
type RunExport struct {
	RunSummary `yaml:",inline"`
	Nodes      []model.Node `json:"nodes" yaml:"nodes"`
	Edges      []model.Edge `json:"edges" yaml:"edges"`
}

// ExportJSON writes the whole database to path as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	ex, err := s.export(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(ex, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportYAML writes the whole database to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	ex, err := s.export(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(ex)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) export(ctx context.Context) (*Export, error) {
	runs, err := s.Runs(ctx)
	if err != nil {
		return nil, err
	}

	ex := &Export{}
	for _, run := range runs {
		nodes, err := s.runNodes(ctx, run.ID)
		if err != nil {
			return nil, err
		}
		edges, err := s.runEdges(ctx, run.ID)
		if err != nil {
			return nil, err
		}
		ex.Runs = append(ex.Runs, RunExport{RunSummary: run, Nodes: nodes, Edges: edges})
		ex.Nodes += len(nodes)
		ex.Edges += len(edges)
	}
	return ex, nil
}

func (s *Store) runNodes(ctx context.Context, runID string) ([]model.Node, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, text, section, confidence, evidence FROM nodes WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	var nodes []model.Node
	for rows.Next() {
		var n model.Node
		var typ string
		if err := rows.Scan(&n.ID, &typ, &n.Text, &n.Section, &n.Confidence, &n.Evidence); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		n.Type = model.NodeType(typ)
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

func (s *Store) runEdges(ctx context.Context, runID string) ([]model.Edge, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT start_id, end_id, type, confidence, evidence FROM edges WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	defer rows.Close()

	var edges []model.Edge
	for rows.Next() {
		var e model.Edge
		if err := rows.Scan(&e.Start, &e.End, &e.Type, &e.Confidence, &e.Evidence); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}
