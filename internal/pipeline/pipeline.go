// Package pipeline orchestrates the complete extraction: section
// segmentation, rule-based classification, oracle fallback, and edge
// construction.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/imradgraph/internal/classify"
	"github.com/ppiankov/imradgraph/internal/fallback"
	"github.com/ppiankov/imradgraph/internal/graph"
	"github.com/ppiankov/imradgraph/internal/input"
	"github.com/ppiankov/imradgraph/internal/model"
	"github.com/ppiankov/imradgraph/internal/oracle"
	"github.com/ppiankov/imradgraph/internal/patterns"
	"github.com/ppiankov/imradgraph/internal/segment"
)

// Pipeline runs one document at a time through the extraction stages.
// It is synchronous; batch parallelism lives in the worker package,
// which gives each pipeline an isolated pattern store.
type Pipeline struct {
	cfg        *model.Config
	store      *patterns.Store
	classifier *classify.Classifier
	fallback   *fallback.Classifier
	builder    *graph.Builder
}

// Options tweak pipeline construction beyond the config.
type Options struct {
	Splitter segment.Splitter         // nil = default punctuation splitter
	Entities classify.EntityExtractor // nil = capitalized-word heuristic
	Persist  bool                     // save the pattern store after the fallback pass
}

// New assembles a pipeline. The provider may be nil (oracle disabled).
func New(cfg *model.Config, store *patterns.Store, provider oracle.Provider, opts Options) *Pipeline {
	splitter := opts.Splitter
	if splitter == nil {
		splitter = segment.NewRegexSplitter()
	}

	var classifier *classify.Classifier
	mode := graph.ModeRule
	if cfg.Mode == "semantic" {
		classifier = classify.NewSemantic(store, splitter, classify.NewSemanticScorer(opts.Entities))
		mode = graph.ModeSemantic
	} else {
		classifier = classify.New(store, splitter)
	}

	return &Pipeline{
		cfg:        cfg,
		store:      store,
		classifier: classifier,
		fallback:   fallback.New(provider, store, cfg.Store.Learn, opts.Persist, cfg.Output.Verbose),
		builder:    graph.NewBuilder(mode, cfg.Output.Verbose),
	}
}

// Store exposes the pattern store this pipeline mutates, so batch
// callers can merge isolated copies back.
func (p *Pipeline) Store() *patterns.Store {
	return p.store
}

// ExtractFile reads the document at path and extracts its graph.
func (p *Pipeline) ExtractFile(ctx context.Context, path string) (*model.Report, error) {
	text, err := input.ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return p.ExtractText(ctx, path, text)
}

// ExtractText extracts the knowledge graph from raw document text.
// Anomalies degrade to missing nodes or edges; the only error surface
// is a truly unusable input, and even empty text yields an empty,
// well-formed report.
func (p *Pipeline) ExtractText(ctx context.Context, name, text string) (*model.Report, error) {
	report := &model.Report{
		Document:    name,
		Mode:        p.modeName(),
		ExtractedAt: time.Now().UTC(),
	}

	sections := segment.Sections(text)
	for _, sec := range sections {
		report.Sections = append(report.Sections, sec.Name)
	}

	var nodes []model.Node
	var pending []classify.Candidate
	covered := make(map[string]bool)

	for _, sec := range sections {
		candidates, sentenceCount := p.classifier.ClassifySection(sec)
		report.Stats.Sentences += sentenceCount
		for _, cand := range candidates {
			if cand.Fallback {
				pending = append(pending, cand)
				continue
			}
			node := model.NewNode(cand.Type, cand.Sentence, cand.Section, cand.Confidence, cand.Evidence)
			node.Semantic = cand.Semantic
			nodes = append(nodes, node)
			covered[strings.TrimSpace(cand.Sentence)] = true
		}
	}
	report.Stats.FallbackQueued = len(pending)

	outcome := p.fallback.Process(ctx, pending, covered)
	nodes = append(nodes, outcome.Nodes...)
	report.Stats.OracleLabeled = outcome.Labeled
	report.Stats.PatternsLearned = outcome.Learned

	report.Nodes = nodes
	report.Edges = p.builder.Build(nodes)
	report.Stats.CountNodes(nodes)

	if p.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "%s: %d sections, %d sentences, %d nodes, %d edges\n",
			name, len(sections), report.Stats.Sentences, len(report.Nodes), len(report.Edges))
	}
	return report, nil
}

func (p *Pipeline) modeName() string {
	if p.cfg.Mode == "semantic" {
		return "semantic"
	}
	return "rule"
}
