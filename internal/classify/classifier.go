// Package classify assigns IMRaD node types to sentences under three
// tiers of evidence: learned cue patterns, built-in cue patterns
// weighted by section, and deferral to the oracle fallback.
package classify

import (
	"math"
	"strings"

	"github.com/ppiankov/imradgraph/internal/model"
	"github.com/ppiankov/imradgraph/internal/patterns"
	"github.com/ppiankov/imradgraph/internal/segment"
)

// Confidence constants. Learned patterns outrank built-in cues, which
// outrank anything the oracle later produces.
const (
	learnedConfidence  = 0.92
	baseConfidence     = 0.85
	priorBoost         = 0.08
	maxConfidence      = 0.99
	fallbackConfidence = 0.10
	semanticConfidence = 0.8
)

// Fallback eligibility bounds: sentences outside them are dropped
// silently rather than sent to the oracle.
const (
	fallbackMinTokens = 6
	fallbackMaxChars  = 400
)

// Candidate is the classification outcome for one sentence. Fallback
// candidates carry no type yet; they are deferred to the oracle.
type Candidate struct {
	Type       model.NodeType
	Sentence   string
	Section    string
	Confidence float64
	Evidence   string
	Fallback   bool
	Semantic   *model.SemanticContext
}

// Classifier types sentences using the learned store first, then
// either the built-in cue table (rule mode) or the semantic scorer.
type Classifier struct {
	store    *patterns.Store
	splitter segment.Splitter
	semantic *SemanticScorer // nil in rule mode
}

// New creates a rule-mode classifier.
func New(store *patterns.Store, splitter segment.Splitter) *Classifier {
	return &Classifier{store: store, splitter: splitter}
}

// NewSemantic creates a classifier that scores sentences with the
// semantic layer instead of the built-in cue table. Learned patterns
// still take precedence in both modes.
func NewSemantic(store *patterns.Store, splitter segment.Splitter, scorer *SemanticScorer) *Classifier {
	return &Classifier{store: store, splitter: splitter, semantic: scorer}
}

// ClassifySection segments the section into sentences and classifies
// each one. Sentences matching nothing and failing the fallback bounds
// produce no candidate. The returned sentence count covers everything
// the splitter produced, dropped or not.
func (c *Classifier) ClassifySection(sec model.Section) ([]Candidate, int) {
	sentences := c.splitter.Split(sec.Text)
	var out []Candidate
	for _, s := range sentences {
		if cand, ok := c.ClassifySentence(s, sec.Name); ok {
			out = append(out, cand)
		}
	}
	return out, len(sentences)
}

// ClassifySentence classifies a single sentence. The result is a pure
// function of (sentence, section) given a fixed pattern store.
func (c *Classifier) ClassifySentence(sentence, section string) (Candidate, bool) {
	if t, pat, ok := c.store.Match(sentence); ok {
		return Candidate{
			Type:       t,
			Sentence:   sentence,
			Section:    section,
			Confidence: learnedConfidence,
			Evidence:   "learned:" + pat,
		}, true
	}

	if c.semantic != nil {
		if t, sctx, ok := c.semantic.Score(sentence, section); ok {
			return Candidate{
				Type:       t,
				Sentence:   sentence,
				Section:    section,
				Confidence: semanticConfidence,
				Evidence:   "semantic:" + string(t),
				Semantic:   sctx,
			}, true
		}
	} else {
		for _, rule := range cueRules {
			for _, pat := range rule.Patterns {
				if !pat.re.MatchString(sentence) {
					continue
				}
				conf := baseConfidence
				if isPrior(rule.Type, section) {
					conf += priorBoost
				}
				return Candidate{
					Type:       rule.Type,
					Sentence:   sentence,
					Section:    section,
					Confidence: roundConfidence(math.Min(maxConfidence, conf)),
					Evidence:   "pattern:" + pat.expr,
				}, true
			}
		}
	}

	if len(strings.Fields(sentence)) >= fallbackMinTokens && len(sentence) <= fallbackMaxChars {
		return Candidate{
			Sentence:   sentence,
			Section:    section,
			Confidence: fallbackConfidence,
			Evidence:   "no_pattern",
			Fallback:   true,
		}, true
	}
	return Candidate{}, false
}

func roundConfidence(v float64) float64 {
	return math.Round(v*100) / 100
}
