package classify

import (
	"strings"

	"github.com/ppiankov/imradgraph/internal/model"
)

// semanticPattern holds the per-type signals the semantic scorer sums:
// literal indicator words, multi-word context-clue phrases, and the
// semantic-role tags the type is compatible with.
type semanticPattern struct {
	Type         model.NodeType
	Indicators   []string
	ContextClues []string
	Roles        []string
}

var semanticPatterns = []semanticPattern{
	{
		Type: model.NodeHypothesis,
		Indicators: []string{
			"hypothesize", "propose", "predict", "expect", "anticipate",
			"suggest", "theorize", "postulate", "speculate",
		},
		ContextClues: []string{
			"we hypothesize that", "we propose that", "we predict that",
			"it is hypothesized", "our hypothesis", "we expect that",
		},
		Roles: []string{"subject_verb_object", "causal_relationship"},
	},
	{
		Type: model.NodeExperiment,
		Indicators: []string{
			"conducted", "performed", "carried out", "executed", "implemented",
			"administered", "treated", "injected", "measured", "assessed",
		},
		ContextClues: []string{
			"we conducted", "we performed", "we carried out", "we administered",
			"experimental", "in vitro", "in vivo", "mouse model", "cell culture",
		},
		Roles: []string{"action_verb", "methodology", "procedure"},
	},
	{
		Type: model.NodeDataset,
		Indicators: []string{
			"cohort", "patients", "samples", "subjects", "participants",
			"data", "dataset", "database", "repository",
		},
		ContextClues: []string{
			"n =", "n=", "cohort of", "patients with", "samples from",
			"data from", "dataset", "clinical data", "obtained from",
		},
		Roles: []string{"data_source", "population", "sample"},
	},
	{
		Type: model.NodeAnalysis,
		Indicators: []string{
			"analyzed", "computed", "calculated", "modeled", "fitted",
			"correlated", "regressed", "statistical", "significance",
		},
		ContextClues: []string{
			"we analyzed", "statistical analysis", "p <", "p-value",
			"correlation", "regression", "we calculated", "we modeled",
		},
		Roles: []string{"analytical_action", "statistical_method"},
	},
	{
		Type: model.NodeConclusion,
		Indicators: []string{
			"conclude", "demonstrate", "show", "indicate", "suggest",
			"reveal", "establish", "confirm", "support",
		},
		ContextClues: []string{
			"in conclusion", "we conclude", "these results", "our findings",
			"this study shows", "we demonstrate", "our data indicate",
		},
		Roles: []string{"conclusive_statement", "result_summary"},
	},
}

// sectionWeights is the fixed per-(section, type) score term. Missing
// entries count as zero.
var sectionWeights = map[string]map[model.NodeType]int{
	"introduction": {model.NodeHypothesis: 2},
	"methods":      {model.NodeExperiment: 2, model.NodeDataset: 2},
	"results":      {model.NodeExperiment: 1, model.NodeDataset: 1, model.NodeAnalysis: 2},
	"discussion":   {model.NodeHypothesis: 1, model.NodeAnalysis: 1, model.NodeConclusion: 2},
}

// Scoring weights and the acceptance threshold.
const (
	indicatorScore    = 2
	contextClueScore  = 3
	roleScore         = 1
	semanticThreshold = 3
)

// SemanticScorer re-ranks candidate types with lexical and structural
// signals and extracts a lightweight semantic context for the node.
type SemanticScorer struct {
	entities EntityExtractor
}

// NewSemanticScorer creates a scorer. A nil extractor falls back to
// the capitalized-word heuristic.
func NewSemanticScorer(entities EntityExtractor) *SemanticScorer {
	if entities == nil {
		entities = HeuristicEntities{}
	}
	return &SemanticScorer{entities: entities}
}

// Score assigns the best-scoring node type to the sentence, or reports
// false when no type reaches the threshold. Ties go to the earlier
// entry of the pattern table.
func (s *SemanticScorer) Score(sentence, section string) (model.NodeType, *model.SemanticContext, bool) {
	lower := strings.ToLower(sentence)
	role := AssignRole(sentence, section)

	best := -1
	var bestType model.NodeType
	for _, sp := range semanticPatterns {
		score := 0
		for _, ind := range sp.Indicators {
			if strings.Contains(lower, ind) {
				score += indicatorScore
			}
		}
		for _, clue := range sp.ContextClues {
			if strings.Contains(lower, clue) {
				score += contextClueScore
			}
		}
		for _, r := range sp.Roles {
			if strings.Contains(role, r) {
				score += roleScore
			}
		}
		score += sectionWeights[section][sp.Type]

		if score > best {
			best = score
			bestType = sp.Type
		}
	}

	if best < semanticThreshold {
		return "", nil, false
	}

	ents := s.entities.Entities(sentence)
	if len(ents) > 5 {
		ents = ents[:5]
	}
	return bestType, &model.SemanticContext{
		Role:                  role,
		Entities:              disambiguateEntities(ents, lower),
		DisambiguationApplied: true,
	}, true
}
