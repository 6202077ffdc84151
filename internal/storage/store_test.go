package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/imradgraph/internal/model"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "graphs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleReport() *model.Report {
	hyp := model.NewNode(model.NodeHypothesis, "We hypothesize that fasting slows the clock.", "introduction", 0.93, "pattern:x")
	exp := model.NewNode(model.NodeExperiment, "We performed fasting cycles.", "methods", 0.93, "pattern:y")

	r := &model.Report{
		Document:    "paper.txt",
		Mode:        "rule",
		ExtractedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Sections:    []string{"introduction", "methods"},
		Nodes:       []model.Node{hyp, exp},
		Edges: []model.Edge{{
			Start:      hyp.ID,
			End:        exp.ID,
			Type:       "POSES_TEST",
			Confidence: 0.93,
			Evidence:   "pattern:x -> pattern:y",
		}},
	}
	r.Stats.CountNodes(r.Nodes)
	return r
}

func TestSaveReport_AndRuns(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	runID, err := s.SaveReport(ctx, sampleReport())
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "paper.txt", runs[0].Document)
	assert.Equal(t, "rule", runs[0].Mode)
	assert.Equal(t, 2, runs[0].NodeCount)
	assert.Equal(t, 1, runs[0].EdgeCount)
}

func TestSaveReport_MultipleRunsAccumulate(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	id1, err := s.SaveReport(ctx, sampleReport())
	require.NoError(t, err)
	id2, err := s.SaveReport(ctx, sampleReport())
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2, "every run gets its own id")

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestExportJSON_Roundtrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	report := sampleReport()
	_, err := s.SaveReport(ctx, report)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, s.ExportJSON(ctx, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var ex Export
	require.NoError(t, json.Unmarshal(data, &ex))
	require.Len(t, ex.Runs, 1)
	assert.Equal(t, 2, ex.Nodes)
	assert.Equal(t, 1, ex.Edges)

	run := ex.Runs[0]
	require.Len(t, run.Nodes, 2)
	require.Len(t, run.Edges, 1)

	byID := make(map[string]model.Node)
	for _, n := range run.Nodes {
		byID[n.ID] = n
	}
	orig := report.Nodes[0]
	got, ok := byID[orig.ID]
	require.True(t, ok, "exported nodes must keep their ids")
	assert.Equal(t, orig.Type, got.Type)
	assert.Equal(t, orig.Text, got.Text)
	assert.Equal(t, orig.Section, got.Section)
	assert.Equal(t, orig.Confidence, got.Confidence)
	assert.Equal(t, orig.Evidence, got.Evidence)

	edge := run.Edges[0]
	assert.Equal(t, report.Edges[0].Start, edge.Start)
	assert.Equal(t, report.Edges[0].End, edge.End)
	assert.Equal(t, "POSES_TEST", edge.Type)
}

func TestExportYAML_Writes(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, err := s.SaveReport(ctx, sampleReport())
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "export.yaml")
	require.NoError(t, s.ExportYAML(ctx, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "paper.txt")
	assert.Contains(t, string(data), "POSES_TEST")
}

func TestOpen_ReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphs.db")

	s1, err := Open(path)
	require.NoError(t, err)
	_, err = s1.SaveReport(context.Background(), sampleReport())
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()

	runs, err := s2.Runs(context.Background())
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
