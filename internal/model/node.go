package model

import (
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// NodeType identifies the IMRaD narrative stage a node represents
type NodeType string

const (
	NodeHypothesis NodeType = "Hypothesis"
	NodeExperiment NodeType = "Experiment"
	NodeDataset    NodeType = "Dataset"
	NodeAnalysis   NodeType = "Analysis"
	NodeConclusion NodeType = "Conclusion"
)

// NodeTypes lists the node types in canonical order. Every rule table
// and tie-break iterates this slice, never a map, so first-match-wins
// behavior is reproducible.
var NodeTypes = []NodeType{
	NodeHypothesis,
	NodeExperiment,
	NodeDataset,
	NodeAnalysis,
	NodeConclusion,
}

// ParseNodeType returns the node type matching s, or false if s is not
// one of the five valid type names.
func ParseNodeType(s string) (NodeType, bool) {
	for _, t := range NodeTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// maxNodeText bounds the sentence text stored on a node.
const maxNodeText = 350

// SemanticContext carries the optional semantic annotations attached
// to nodes produced by the semantic scorer.
type SemanticContext struct {
	Role                  string   `json:"role"`                   // Assigned semantic role tag
	Entities              []string `json:"entities,omitempty"`     // Extracted entities (first five)
	DisambiguationApplied bool     `json:"disambiguation_applied"` // Whether sense resolution ran
}

// Node is a typed, evidence-backed statement extracted from a paper
type Node struct {
	ID         string           `json:"id"`                         // Unique per run, never reused
	Type       NodeType         `json:"type"`                       // IMRaD stage
	Text       string           `json:"text"`                       // Source sentence, truncated
	Section    string           `json:"section"`                    // Section assigned by the segmenter
	Confidence float64          `json:"confidence"`                 // In [0,1]
	Evidence   string           `json:"evidence"`                   // Which pattern or oracle produced it
	Semantic   *SemanticContext `json:"semantic_context,omitempty"` // Optional semantic annotations
}

// Edge is a directed, typed relation between two nodes of the same run
type Edge struct {
	Start      string  `json:"start"`              // Source node id
	End        string  `json:"end"`                // Target node id
	Type       string  `json:"type"`               // Relation label
	Confidence float64 `json:"confidence"`         // Derived, in [0,1]
	Evidence   string  `json:"evidence,omitempty"` // Provenance trace
}

// NewNode creates a node with a fresh id and bounded text. IDs look
// like HYP_1a2b3c4d: a three-letter type prefix plus eight hex chars.
func NewNode(t NodeType, text, section string, confidence float64, evidence string) Node {
	if len(text) > maxNodeText {
		// Back up to a rune boundary so truncation never leaves invalid UTF-8.
		cut := maxNodeText
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return Node{
		ID:         genID(t),
		Type:       t,
		Text:       text,
		Section:    section,
		Confidence: confidence,
		Evidence:   evidence,
	}
}

func genID(t NodeType) string {
	u := uuid.New()
	return strings.ToUpper(string(t)[:3]) + "_" + hex.EncodeToString(u[:])[:8]
}
