// Package fallback handles sentences no deterministic rule could
// type: it consults the external oracle and mines new cue patterns
// from successful labels back into the pattern store.
package fallback

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/imradgraph/internal/classify"
	"github.com/ppiankov/imradgraph/internal/model"
	"github.com/ppiankov/imradgraph/internal/oracle"
	"github.com/ppiankov/imradgraph/internal/patterns"
)

// Oracle-produced nodes rank below every deterministic source.
const oracleConfidence = 0.6

// Classifier runs the oracle fallback pass over a batch of deferred
// sentences.
type Classifier struct {
	provider oracle.Provider // nil disables the pass entirely
	store    *patterns.Store
	learn    bool
	persist  bool // save the store after the batch; off for isolated batch clones
	verbose  bool
}

// New creates a fallback classifier. A nil provider is valid: Process
// then returns no nodes, which callers treat as a degenerate success.
func New(provider oracle.Provider, store *patterns.Store, learn, persist, verbose bool) *Classifier {
	return &Classifier{
		provider: provider,
		store:    store,
		learn:    learn,
		persist:  persist,
		verbose:  verbose,
	}
}

// Outcome summarizes one fallback pass.
type Outcome struct {
	Nodes   []model.Node
	Labeled int // Sentences the oracle assigned a valid type
	Learned int // New patterns appended to the store
}

// Process classifies each deferred candidate via the oracle. Sentences
// whose trimmed text is already covered by a node are skipped, as are
// oracle errors and "None" labels. After the batch the store is saved
// once when learning is on.
func (c *Classifier) Process(ctx context.Context, pending []classify.Candidate, covered map[string]bool) Outcome {
	var out Outcome
	if c.provider == nil || len(pending) == 0 {
		return out
	}

	for _, cand := range pending {
		trimmed := strings.TrimSpace(cand.Sentence)
		if covered[trimmed] {
			continue
		}

		resp, err := c.provider.Classify(ctx, oracle.Request{
			Sentence: cand.Sentence,
			Section:  cand.Section,
		})
		if err != nil {
			if c.verbose {
				fmt.Fprintf(os.Stderr, "Warning: oracle call failed: %v\n", err)
			}
			continue
		}

		label := oracle.SanitizeLabel(resp.Text)
		if label == "None" {
			continue
		}
		t, _ := model.ParseNodeType(label)

		node := model.NewNode(t, cand.Sentence, cand.Section, oracleConfidence, "oracle_fallback")
		out.Nodes = append(out.Nodes, node)
		out.Labeled++
		covered[trimmed] = true

		if c.learn {
			cue := MineCue(cand.Sentence)
			if cue != "" && c.store.Add(t, cue) {
				out.Learned++
				if c.verbose {
					fmt.Fprintf(os.Stderr, "Learned %s pattern: %s\n", t, cue)
				}
			}
		}
	}

	if c.learn && c.persist {
		if err := c.store.Save(); err != nil && c.verbose {
			fmt.Fprintf(os.Stderr, "Warning: could not save pattern store: %v\n", err)
		}
	}
	return out
}
