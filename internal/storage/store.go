// Package storage persists extraction runs to a SQLite database so
// graphs accumulate across documents and can be exported later.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ppiankov/imradgraph/internal/model"
)

// Store manages the graph SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			document TEXT NOT NULL,
			mode TEXT NOT NULL,
			extracted_at TEXT NOT NULL,
			node_count INTEGER NOT NULL,
			edge_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL REFERENCES runs(id),
			type TEXT NOT NULL,
			text TEXT NOT NULL,
			section TEXT,
			confidence REAL,
			evidence TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS edges (
			run_id TEXT NOT NULL REFERENCES runs(id),
			start_id TEXT NOT NULL,
			end_id TEXT NOT NULL,
			type TEXT NOT NULL,
			confidence REAL,
			evidence TEXT,
			PRIMARY KEY (run_id, start_id, end_id, type)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_run_id ON nodes(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_type ON nodes(type)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_run_id ON edges(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveReport stores a full extraction run in one transaction and
// returns the run id.
func (s *Store) SaveReport(ctx context.Context, r *model.Report) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, document, mode, extracted_at, node_count, edge_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, r.Document, r.Mode, r.ExtractedAt.Format("2006-01-02T15:04:05Z"),
		len(r.Nodes), len(r.Edges))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, n := range r.Nodes {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO nodes (id, run_id, type, text, section, confidence, evidence)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			n.ID, runID, string(n.Type), n.Text, n.Section, n.Confidence, n.Evidence)
		if err != nil {
			return "", fmt.Errorf("insert node %s: %w", n.ID, err)
		}
	}

	for _, e := range r.Edges {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO edges (run_id, start_id, end_id, type, confidence, evidence)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, e.Start, e.End, e.Type, e.Confidence, e.Evidence)
		if err != nil {
			return "", fmt.Errorf("insert edge %s->%s: %w", e.Start, e.End, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// RunSummary describes one stored extraction run.
type RunSummary struct {
	ID          string `json:"id" yaml:"id"`
	Document    string `json:"document" yaml:"document"`
	Mode        string `json:"mode" yaml:"mode"`
	ExtractedAt string `json:"extracted_at" yaml:"extracted_at"`
	NodeCount   int    `json:"node_count" yaml:"node_count"`
	EdgeCount   int    `json:"edge_count" yaml:"edge_count"`
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, document, mode, extracted_at, node_count, edge_count
		 FROM runs ORDER BY extracted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Document, &r.Mode, &r.ExtractedAt, &r.NodeCount, &r.EdgeCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
