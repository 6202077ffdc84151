package model

import "time"

// Section is a contiguous, non-overlapping slice of the input text as
// produced by the section segmenter.
type Section struct {
	Name  string `json:"name"`  // Lowercase heading name, or "body"
	Text  string `json:"text"`  // Section content, heading line excluded
	Start int    `json:"start"` // Byte offset in the input
	End   int    `json:"end"`   // Byte offset one past the section end
}

// Report is the complete extraction result for one document
type Report struct {
	Document    string    `json:"document"`     // Source file or label
	Mode        string    `json:"mode"`         // "rule" or "semantic"
	ExtractedAt time.Time `json:"extracted_at"` // When the run occurred
	Sections    []string  `json:"sections"`     // Section names in document order
	Nodes       []Node    `json:"nodes"`        // Extracted nodes
	Edges       []Edge    `json:"edges"`        // Derived relations
	Stats       Stats     `json:"stats"`        // Run statistics
}

// Stats summarizes what the pipeline did for a run
type Stats struct {
	Sentences       int            `json:"sentences"`         // Sentences seen across all sections
	FallbackQueued  int            `json:"fallback_queued"`   // Sentences deferred to the oracle
	OracleLabeled   int            `json:"oracle_labeled"`    // Fallback sentences the oracle typed
	PatternsLearned int            `json:"patterns_learned"`  // New cue patterns mined this run
	NodesByType     map[string]int `json:"nodes_by_type"`     // Node type distribution
	NodesBySection  map[string]int `json:"nodes_by_section"`  // Per-section node counts
}

// CountNodes fills the distribution maps from the node list.
func (s *Stats) CountNodes(nodes []Node) {
	s.NodesByType = make(map[string]int)
	s.NodesBySection = make(map[string]int)
	for _, n := range nodes {
		s.NodesByType[string(n.Type)]++
		s.NodesBySection[n.Section]++
	}
}
