// Package graph links typed nodes into a directed graph under a fixed
// stage order.
package graph

import (
	"fmt"
	"math"
	"os"

	"github.com/ppiankov/imradgraph/internal/model"
)

// Mode selects the edge construction policy.
type Mode string

const (
	// ModeRule pairs stage groups exhaustively and scores edges with
	// the minimum endpoint confidence.
	ModeRule Mode = "rule"
	// ModeSemantic links Dataset to Analysis directly and scores edges
	// with entity-set Jaccard similarity, dropping weak pairs.
	ModeSemantic Mode = "semantic"
)

// similarityThreshold is the minimum Jaccard similarity for a
// semantic-mode edge to exist.
const similarityThreshold = 0.3

// transition is one stage link in the fixed construction order.
type transition struct {
	src   model.NodeType
	dst   model.NodeType
	label string
}

var ruleTransitions = []transition{
	{model.NodeHypothesis, model.NodeExperiment, "POSES_TEST"},
	{model.NodeExperiment, model.NodeDataset, "USES_DATASET"},
	{model.NodeExperiment, model.NodeAnalysis, "GENERATES_ANALYSIS"},
	{model.NodeAnalysis, model.NodeConclusion, "SUPPORTS_CONCLUSION"},
}

var semanticTransitions = []transition{
	{model.NodeHypothesis, model.NodeExperiment, "tests_hypothesis"},
	{model.NodeExperiment, model.NodeDataset, "uses_data"},
	{model.NodeDataset, model.NodeAnalysis, "analyzes_data"},
	{model.NodeAnalysis, model.NodeConclusion, "supports_conclusion"},
}

// Builder constructs edges from a final node set.
type Builder struct {
	mode    Mode
	verbose bool
}

// NewBuilder creates an edge builder for the given mode.
func NewBuilder(mode Mode, verbose bool) *Builder {
	if mode != ModeSemantic {
		mode = ModeRule
	}
	return &Builder{mode: mode, verbose: verbose}
}

// Build partitions nodes by type and connects each enabled transition
// as a full bipartite pairing. A missing type group skips its
// transition; that is a degenerate result, not an error.
// Hypothesis→Experiment pairs from the same section are excluded.
func (b *Builder) Build(nodes []model.Node) []model.Edge {
	byType := make(map[model.NodeType][]model.Node)
	for _, n := range nodes {
		byType[n.Type] = append(byType[n.Type], n)
	}

	transitions := ruleTransitions
	if b.mode == ModeSemantic {
		transitions = semanticTransitions
	}

	var edges []model.Edge
	for _, tr := range transitions {
		srcs, dsts := byType[tr.src], byType[tr.dst]
		if len(srcs) == 0 || len(dsts) == 0 {
			if b.verbose {
				fmt.Fprintf(os.Stderr, "Skipping %s: missing %s or %s nodes\n", tr.label, tr.src, tr.dst)
			}
			continue
		}
		for _, src := range srcs {
			for _, dst := range dsts {
				if tr.src == model.NodeHypothesis && tr.dst == model.NodeExperiment && src.Section == dst.Section {
					continue
				}
				if e, ok := b.edge(tr, src, dst); ok {
					edges = append(edges, e)
				}
			}
		}
	}
	return edges
}

func (b *Builder) edge(tr transition, src, dst model.Node) (model.Edge, bool) {
	if b.mode == ModeSemantic {
		sim := similarity(src, dst)
		if sim <= similarityThreshold {
			return model.Edge{}, false
		}
		return model.Edge{
			Start:      src.ID,
			End:        dst.ID,
			Type:       tr.label,
			Confidence: sim,
			Evidence:   fmt.Sprintf("similarity:%.2f", sim),
		}, true
	}

	return model.Edge{
		Start:      src.ID,
		End:        dst.ID,
		Type:       tr.label,
		Confidence: math.Round(math.Min(src.Confidence, dst.Confidence)*100) / 100,
		Evidence:   src.Evidence + " -> " + dst.Evidence,
	}, true
}

// similarity is the Jaccard similarity of the two nodes' entity sets.
// Nodes without semantic context have no entities and score zero.
func similarity(a, b model.Node) float64 {
	ents := func(n model.Node) map[string]bool {
		set := make(map[string]bool)
		if n.Semantic == nil {
			return set
		}
		for _, e := range n.Semantic.Entities {
			set[e] = true
		}
		return set
	}

	sa, sb := ents(a), ents(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}

	intersection := 0
	for e := range sa {
		if sb[e] {
			intersection++
		}
	}
	union := len(sa) + len(sb) - intersection
	return float64(intersection) / float64(union)
}
