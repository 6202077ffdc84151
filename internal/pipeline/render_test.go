package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/imradgraph/internal/model"
)

func renderReport() *model.Report {
	hyp := model.NewNode(model.NodeHypothesis, "We hypothesize that fasting slows the clock.", "introduction", 0.93, "pattern:x")
	con := model.NewNode(model.NodeConclusion, "In conclusion, it does.", "conclusion", 0.93, "pattern:y")
	r := &model.Report{
		Document:    "paper.txt",
		Mode:        "rule",
		ExtractedAt: time.Now().UTC(),
		Sections:    []string{"introduction", "conclusion"},
		Nodes:       []model.Node{hyp, con},
		Edges: []model.Edge{{
			Start: hyp.ID, End: con.ID, Type: "POSES_TEST", Confidence: 0.93, Evidence: "pattern:x -> pattern:y",
		}},
	}
	r.Stats.CountNodes(r.Nodes)
	return r
}

func TestWriteJSON_Roundtrip(t *testing.T) {
	report := renderReport()
	path := filepath.Join(t.TempDir(), "report.json")

	if err := WriteJSON(report, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got model.Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Document != "paper.txt" || got.Mode != "rule" {
		t.Errorf("header fields lost: %+v", got)
	}
	if len(got.Nodes) != 2 || len(got.Edges) != 1 {
		t.Errorf("graph lost: %d nodes, %d edges", len(got.Nodes), len(got.Edges))
	}
	if got.Nodes[0].ID != report.Nodes[0].ID {
		t.Errorf("node id changed: %q vs %q", got.Nodes[0].ID, report.Nodes[0].ID)
	}
}

func TestWriteCSV(t *testing.T) {
	report := renderReport()
	base := filepath.Join(t.TempDir(), "paper")

	if err := WriteCSV(report, base); err != nil {
		t.Fatalf("write: %v", err)
	}

	readAll := func(path string) [][]string {
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("open %s: %v", path, err)
		}
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		return rows
	}

	nodes := readAll(base + "_nodes.csv")
	if len(nodes) != 3 {
		t.Fatalf("nodes csv rows = %d, want header plus 2", len(nodes))
	}
	if nodes[0][0] != "id" || nodes[0][1] != "type" {
		t.Errorf("nodes header = %v", nodes[0])
	}
	if nodes[1][1] != "Hypothesis" || nodes[1][4] != "0.93" {
		t.Errorf("node row = %v", nodes[1])
	}

	edges := readAll(base + "_edges.csv")
	if len(edges) != 2 {
		t.Fatalf("edges csv rows = %d, want header plus 1", len(edges))
	}
	if edges[1][2] != "POSES_TEST" {
		t.Errorf("edge row = %v", edges[1])
	}
}
