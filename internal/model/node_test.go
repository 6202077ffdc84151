package model

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewNode_IDFormat(t *testing.T) {
	tests := []struct {
		nodeType NodeType
		prefix   string
	}{
		{NodeHypothesis, "HYP_"},
		{NodeExperiment, "EXP_"},
		{NodeDataset, "DAT_"},
		{NodeAnalysis, "ANA_"},
		{NodeConclusion, "CON_"},
	}

	for _, tt := range tests {
		n := NewNode(tt.nodeType, "some sentence text here", "methods", 0.85, "pattern:x")
		if !strings.HasPrefix(n.ID, tt.prefix) {
			t.Errorf("%s: expected id prefix %q, got %q", tt.nodeType, tt.prefix, n.ID)
		}
		if len(n.ID) != len(tt.prefix)+8 {
			t.Errorf("%s: expected 8 hex chars after prefix, got id %q", tt.nodeType, n.ID)
		}
		for _, r := range n.ID[len(tt.prefix):] {
			if !strings.ContainsRune("0123456789abcdef", r) {
				t.Errorf("%s: non-hex char %q in id %q", tt.nodeType, r, n.ID)
			}
		}
	}
}

func TestNewNode_IDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := NewNode(NodeHypothesis, "text", "abstract", 0.9, "e")
		if seen[n.ID] {
			t.Fatalf("duplicate id after %d nodes: %s", i, n.ID)
		}
		seen[n.ID] = true
	}
}

func TestNewNode_TruncatesText(t *testing.T) {
	long := strings.Repeat("a", 500)
	n := NewNode(NodeAnalysis, long, "results", 0.85, "e")
	if len(n.Text) != 350 {
		t.Errorf("expected text truncated to 350 chars, got %d", len(n.Text))
	}

	short := "a short sentence"
	n = NewNode(NodeAnalysis, short, "results", 0.85, "e")
	if n.Text != short {
		t.Errorf("short text should be untouched, got %q", n.Text)
	}
}

func TestNewNode_TruncatesOnRuneBoundary(t *testing.T) {
	// A multi-byte rune straddling the cutoff must be dropped whole,
	// never split into a dangling lead byte.
	long := strings.Repeat("a", 349) + "µµµ"
	n := NewNode(NodeAnalysis, long, "results", 0.85, "e")
	if !utf8.ValidString(n.Text) {
		t.Errorf("truncated text is not valid UTF-8: %q", n.Text[len(n.Text)-4:])
	}
	if len(n.Text) > 350 {
		t.Errorf("expected at most 350 bytes, got %d", len(n.Text))
	}
	if len(n.Text) != 349 {
		t.Errorf("expected cut before the straddling rune at 349, got %d", len(n.Text))
	}
}

func TestParseNodeType(t *testing.T) {
	for _, nt := range NodeTypes {
		got, ok := ParseNodeType(string(nt))
		if !ok || got != nt {
			t.Errorf("ParseNodeType(%q) = %v, %v", nt, got, ok)
		}
	}

	for _, bad := range []string{"None", "hypothesis", "HYPOTHESIS", "", "Results"} {
		if _, ok := ParseNodeType(bad); ok {
			t.Errorf("ParseNodeType(%q) should fail", bad)
		}
	}
}

func TestStats_CountNodes(t *testing.T) {
	nodes := []Node{
		NewNode(NodeHypothesis, "h1", "introduction", 0.9, "e"),
		NewNode(NodeHypothesis, "h2", "discussion", 0.9, "e"),
		NewNode(NodeDataset, "d1", "methods", 0.9, "e"),
	}

	var s Stats
	s.CountNodes(nodes)

	if s.NodesByType["Hypothesis"] != 2 {
		t.Errorf("expected 2 hypothesis nodes, got %d", s.NodesByType["Hypothesis"])
	}
	if s.NodesByType["Dataset"] != 1 {
		t.Errorf("expected 1 dataset node, got %d", s.NodesByType["Dataset"])
	}
	if s.NodesBySection["introduction"] != 1 || s.NodesBySection["discussion"] != 1 || s.NodesBySection["methods"] != 1 {
		t.Errorf("unexpected per-section counts: %v", s.NodesBySection)
	}
}
