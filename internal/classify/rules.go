package classify

import (
	"regexp"

	"github.com/ppiankov/imradgraph/internal/model"
)

// cueRule pairs a node type with its built-in cue patterns. The table
// is an explicit ordered slice so first-match-wins tie-breaks are
// stable: Hypothesis is always tried first, Conclusion last.
type cueRule struct {
	Type     model.NodeType
	Patterns []cuePattern
}

// cuePattern keeps the source expression next to its compiled form so
// evidence traces show the pattern as written, without regexp flags.
type cuePattern struct {
	expr string
	re   *regexp.Regexp
}

func compileAll(exprs ...string) []cuePattern {
	res := make([]cuePattern, len(exprs))
	for i, e := range exprs {
		res[i] = cuePattern{expr: e, re: regexp.MustCompile("(?i)" + e)}
	}
	return res
}

var cueRules = []cueRule{
	{
		Type: model.NodeHypothesis,
		Patterns: compileAll(
			`\bwe hypothesi[sz]e\b`,
			`\bwe hypothes[ie]d\b`,
			`\bwe propose\b`,
			`\bit is hypothesized\b`,
			`\bwe predict\b`,
			`\bthis suggests\b.*hypoth`,
			`\bthis study (?:aims|seeks|was designed) to\b`,
			`\bwe expect\b`,
			`\bhypothesi[sz]e\b`,
		),
	},
	{
		Type: model.NodeExperiment,
		Patterns: compileAll(
			`\bwe (?:performed|conducted|carried out|did)\b`,
			`\bwe treated\b`,
			`\bwe injected\b`,
			`\bwe administered\b`,
			`\bwe used (?:an )?(?:assay|model|mouse|cell|cohort|experiment)\b`,
			`\bmouse model\b`,
			`\bin vitro\b`,
			`\bin vivo\b`,
			`\busing (?:the )?(?:protocol|method|assay)\b`,
		),
	},
	{
		Type: model.NodeDataset,
		Patterns: compileAll(
			`\bcohort\b`,
			`\bTCGA\b`,
			`\bPCAWG\b`,
			`\b(?:n=|n =)\d+`,
			`\bdata (?:from|obtained from|available at)\b`,
			`\bGEO\b`,
			`\b(?:whole[- ]genome|exome|WGS|WES|RNA-Seq|RNA Sequencing)\b`,
		),
	},
	{
		Type: model.NodeAnalysis,
		Patterns: compileAll(
			`\bwe (?:analyz|computed|calculated|modeled|fit)\b`,
			`\bwe (?:used|applied) (?:regression|model|linear|xgboost|random forest|cox)\b`,
			`\bcorrelat`,
			`\bstatistical (?:analysis|test)\b`,
			`\bp-value\b|\bp < 0\.`,
			`\bwe trained\b`,
		),
	},
	{
		Type: model.NodeConclusion,
		Patterns: compileAll(
			`\bin conclusion\b`,
			`\bwe conclude\b`,
			`\bthese results (?:suggest|indicate|show)\b`,
			`\bthis study (?:shows|demonstrates)\b`,
			`\bsignificantly\b.*\b(?:implicat|associate|reduce|increase)`,
		),
	},
}

// sectionPriors lists the node types favored in each section. A
// built-in cue match whose type is a prior for the sentence's section
// gets the confidence boost.
var sectionPriors = map[string][]model.NodeType{
	"abstract":     {model.NodeHypothesis, model.NodeConclusion},
	"introduction": {model.NodeHypothesis},
	"methods":      {model.NodeExperiment, model.NodeDataset},
	"results":      {model.NodeExperiment, model.NodeAnalysis, model.NodeDataset},
	"discussion":   {model.NodeConclusion, model.NodeHypothesis},
	"conclusion":   {model.NodeConclusion},
}

func isPrior(t model.NodeType, section string) bool {
	for _, p := range sectionPriors[section] {
		if p == t {
			return true
		}
	}
	return false
}
