package classify

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/imradgraph/internal/model"
	"github.com/ppiankov/imradgraph/internal/patterns"
	"github.com/ppiankov/imradgraph/internal/segment"
)

func emptyStore(t *testing.T) *patterns.Store {
	t.Helper()
	return patterns.Load(filepath.Join(t.TempDir(), "patterns.json"))
}

func TestClassifySentence_BuiltinCueWithPrior(t *testing.T) {
	c := New(emptyStore(t), segment.NewRegexSplitter())

	cand, ok := c.ClassifySentence("We hypothesize that intermittent fasting reduces epigenetic age.", "introduction")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if cand.Type != model.NodeHypothesis {
		t.Errorf("type = %s, want Hypothesis", cand.Type)
	}
	if cand.Confidence != 0.93 {
		t.Errorf("confidence = %v, want 0.93 (base plus section prior)", cand.Confidence)
	}
	if !strings.HasPrefix(cand.Evidence, "pattern:") {
		t.Errorf("evidence = %q, want pattern: prefix", cand.Evidence)
	}
	if strings.Contains(cand.Evidence, "(?i)") {
		t.Errorf("evidence must show the pattern as written, got %q", cand.Evidence)
	}
}

func TestClassifySentence_BuiltinCueWithoutPrior(t *testing.T) {
	c := New(emptyStore(t), segment.NewRegexSplitter())

	// Hypothesis cue in the methods section: no prior applies.
	cand, ok := c.ClassifySentence("We hypothesize that the assay is linear over this range.", "methods")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if cand.Type != model.NodeHypothesis {
		t.Errorf("type = %s, want Hypothesis", cand.Type)
	}
	if cand.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", cand.Confidence)
	}
}

func TestClassifySentence_DatasetCue(t *testing.T) {
	c := New(emptyStore(t), segment.NewRegexSplitter())

	cand, ok := c.ClassifySentence("We used a cohort of n=24 mice for the fasting arm.", "methods")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if cand.Type != model.NodeDataset {
		t.Errorf("type = %s, want Dataset", cand.Type)
	}
	if cand.Confidence != 0.93 {
		t.Errorf("confidence = %v, want 0.93", cand.Confidence)
	}
}

func TestClassifySentence_LearnedPatternWins(t *testing.T) {
	store := emptyStore(t)
	store.Add(model.NodeAnalysis, `\bwe hypothesi[sz]e\b`)
	c := New(store, segment.NewRegexSplitter())

	// The same sentence matches a built-in Hypothesis cue, but the
	// learned pattern outranks it.
	cand, ok := c.ClassifySentence("We hypothesize that fasting slows the clock.", "introduction")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if cand.Type != model.NodeAnalysis {
		t.Errorf("type = %s, want Analysis from the learned store", cand.Type)
	}
	if cand.Confidence != 0.92 {
		t.Errorf("confidence = %v, want 0.92", cand.Confidence)
	}
	if !strings.HasPrefix(cand.Evidence, "learned:") {
		t.Errorf("evidence = %q, want learned: prefix", cand.Evidence)
	}
}

func TestClassifySentence_FirstMatchingTypeWins(t *testing.T) {
	c := New(emptyStore(t), segment.NewRegexSplitter())

	// Matches both a Hypothesis cue ("we propose") and an Analysis cue
	// ("regression"); Hypothesis is earlier in the rule table.
	cand, ok := c.ClassifySentence("We propose a regression over methylation sites.", "results")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if cand.Type != model.NodeHypothesis {
		t.Errorf("type = %s, want Hypothesis (first in table order)", cand.Type)
	}
}

func TestClassifySentence_FallbackFlag(t *testing.T) {
	c := New(emptyStore(t), segment.NewRegexSplitter())

	cand, ok := c.ClassifySentence("The molecular clock was assessed across all collected timepoints.", "results")
	if !ok {
		t.Fatal("expected a fallback candidate")
	}
	if !cand.Fallback {
		t.Fatal("expected Fallback flag")
	}
	if cand.Confidence != 0.10 {
		t.Errorf("confidence = %v, want 0.10", cand.Confidence)
	}
	if cand.Evidence != "no_pattern" {
		t.Errorf("evidence = %q, want no_pattern", cand.Evidence)
	}
	if cand.Type != "" {
		t.Errorf("fallback candidate must carry no type, got %s", cand.Type)
	}
}

func TestClassifySentence_InflectedAnalysisVerbDefers(t *testing.T) {
	c := New(emptyStore(t), segment.NewRegexSplitter())

	// The analysis verb cue ends on a word boundary, so "fitted" does
	// not match the listed "fit". The sentence goes to the fallback
	// queue instead of being claimed by a built-in cue.
	cand, ok := c.ClassifySentence("We fitted a mixed model to the outcome counts.", "results")
	if !ok {
		t.Fatal("expected a fallback candidate")
	}
	if !cand.Fallback {
		t.Errorf("expected Fallback flag, got type %s via %s", cand.Type, cand.Evidence)
	}
}

func TestClassifySentence_FallbackBounds(t *testing.T) {
	c := New(emptyStore(t), segment.NewRegexSplitter())

	// Five tokens: below the fallback floor.
	if _, ok := c.ClassifySentence("Nothing matches this short line", "body"); ok {
		t.Error("short unmatched sentence must be dropped")
	}

	// Over the 400-char ceiling.
	long := "The quick brown fox " + strings.Repeat("wandered onward ", 30)
	if len(long) <= 400 {
		t.Fatalf("test sentence too short: %d", len(long))
	}
	if _, ok := c.ClassifySentence(long, "body"); ok {
		t.Error("overlong unmatched sentence must be dropped")
	}
}

func TestClassifySentence_Deterministic(t *testing.T) {
	c := New(emptyStore(t), segment.NewRegexSplitter())
	sentence := "We performed the fasting protocol in vivo."

	first, ok := c.ClassifySentence(sentence, "methods")
	if !ok {
		t.Fatal("expected a candidate")
	}
	for i := 0; i < 10; i++ {
		again, ok := c.ClassifySentence(sentence, "methods")
		if !ok || again.Type != first.Type || again.Confidence != first.Confidence || again.Evidence != first.Evidence {
			t.Fatalf("classification diverged on repeat %d: %+v vs %+v", i, again, first)
		}
	}
}

func TestClassifySection(t *testing.T) {
	c := New(emptyStore(t), segment.NewRegexSplitter())
	sec := model.Section{
		Name: "methods",
		Text: "We used a cohort of n=24 mice for the trial. We performed daily fasting cycles. Short one.",
	}

	cands, sentences := c.ClassifySection(sec)
	if sentences != 2 {
		t.Errorf("sentence count = %d, want 2 (fragment dropped)", sentences)
	}
	if len(cands) != 2 {
		t.Fatalf("candidates = %d, want 2", len(cands))
	}
	if cands[0].Type != model.NodeDataset {
		t.Errorf("first candidate = %s, want Dataset", cands[0].Type)
	}
	if cands[1].Type != model.NodeExperiment {
		t.Errorf("second candidate = %s, want Experiment", cands[1].Type)
	}
	for _, cand := range cands {
		if cand.Section != "methods" {
			t.Errorf("candidate section = %q", cand.Section)
		}
	}
}
