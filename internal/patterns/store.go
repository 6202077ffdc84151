// Package patterns manages the persistent store of learned cue
// patterns. The store maps each node type to an ordered list of
// regular expressions mined from oracle fallback labels. It is
// append-only within a run and persists as a JSON side file, giving
// the extractor memory across runs on the same corpus.
package patterns

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/ppiankov/imradgraph/internal/model"
)

// Store holds learned cue patterns keyed by node type. It is not safe
// for concurrent mutation; batch processing gives each document its
// own Clone and merges the copies back under a single writer.
type Store struct {
	path     string
	learned  map[model.NodeType][]string
	compiled map[string]*regexp.Regexp
}

// Load reads the store from path. A missing or corrupt file yields an
// empty store, never an error: the side file is an optimization, not
// a dependency.
func Load(path string) *Store {
	s := &Store{
		path:     path,
		learned:  make(map[model.NodeType][]string, len(model.NodeTypes)),
		compiled: make(map[string]*regexp.Regexp),
	}
	for _, t := range model.NodeTypes {
		s.learned[t] = nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return s
	}
	for name, list := range raw {
		t, ok := model.ParseNodeType(name)
		if !ok {
			continue
		}
		s.learned[t] = append(s.learned[t], list...)
	}
	return s
}

// Save writes the store to its side file as indented JSON.
func (s *Store) Save() error {
	out := make(map[string][]string, len(model.NodeTypes))
	for _, t := range model.NodeTypes {
		list := s.learned[t]
		if list == nil {
			list = []string{}
		}
		out[string(t)] = list
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal pattern store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write pattern store: %w", err)
	}
	return nil
}

// Add appends pattern under t unless an identical string is already
// stored for that type. It reports whether the store grew.
func (s *Store) Add(t model.NodeType, pattern string) bool {
	for _, existing := range s.learned[t] {
		if existing == pattern {
			return false
		}
	}
	s.learned[t] = append(s.learned[t], pattern)
	return true
}

// Patterns returns the stored pattern strings for t in insertion order.
func (s *Store) Patterns(t model.NodeType) []string {
	return s.learned[t]
}

// Len returns the total number of stored patterns.
func (s *Store) Len() int {
	n := 0
	for _, t := range model.NodeTypes {
		n += len(s.learned[t])
	}
	return n
}

// Match scans the store in canonical type order, patterns in insertion
// order, and returns the first type whose pattern matches sentence.
// Patterns that fail to compile are skipped.
func (s *Store) Match(sentence string) (model.NodeType, string, bool) {
	for _, t := range model.NodeTypes {
		for _, p := range s.learned[t] {
			re := s.compile(p)
			if re == nil {
				continue
			}
			if re.MatchString(sentence) {
				return t, p, true
			}
		}
	}
	return "", "", false
}

func (s *Store) compile(pattern string) *regexp.Regexp {
	if re, ok := s.compiled[pattern]; ok {
		return re
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		re = nil
	}
	s.compiled[pattern] = re
	return re
}

// Clone returns an independent in-memory copy sharing no state with
// the receiver. The clone keeps the same side-file path but callers
// typically Merge clones back instead of saving them.
func (s *Store) Clone() *Store {
	c := &Store{
		path:     s.path,
		learned:  make(map[model.NodeType][]string, len(model.NodeTypes)),
		compiled: make(map[string]*regexp.Regexp),
	}
	for _, t := range model.NodeTypes {
		c.learned[t] = append([]string(nil), s.learned[t]...)
	}
	return c
}

// Merge appends every pattern of other not already present in the
// receiver and returns how many were added. Deduplication is by
// literal string match, so merge order only affects ordering.
func (s *Store) Merge(other *Store) int {
	added := 0
	for _, t := range model.NodeTypes {
		for _, p := range other.learned[t] {
			if s.Add(t, p) {
				added++
			}
		}
	}
	return added
}
