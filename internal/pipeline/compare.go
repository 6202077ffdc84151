package pipeline

import (
	"context"

	"github.com/ppiankov/imradgraph/internal/model"
	"github.com/ppiankov/imradgraph/internal/oracle"
	"github.com/ppiankov/imradgraph/internal/patterns"
)

// Comparison reports how the rule and semantic extraction methods
// behave on the same document.
type Comparison struct {
	Document      string         `json:"document"`
	Rule          *model.Report  `json:"rule"`
	Semantic      *model.Report  `json:"semantic"`
	NodeIncrease  int            `json:"node_increase"`   // semantic minus rule node count
	AgreedTexts   int            `json:"agreed_texts"`    // same sentence, same type
	DivergedTexts int            `json:"diverged_texts"`  // same sentence, different type
	RuleOnly      int            `json:"rule_only"`       // sentences only the rule method typed
	SemanticOnly  int            `json:"semantic_only"`   // sentences only the semantic method typed
	RolesSeen     map[string]int `json:"roles_seen"`      // semantic role distribution
	EntitiesTotal int            `json:"entities_total"`  // entities extracted by the semantic method
}

// Compare runs both extraction modes against the same text, each with
// its own pattern-store copy so neither run sees the other's learning.
func Compare(ctx context.Context, cfg *model.Config, store *patterns.Store, provider oracle.Provider, name, text string) (*Comparison, error) {
	ruleCfg := *cfg
	ruleCfg.Mode = "rule"
	ruleReport, err := New(&ruleCfg, store.Clone(), provider, Options{}).ExtractText(ctx, name, text)
	if err != nil {
		return nil, err
	}

	semCfg := *cfg
	semCfg.Mode = "semantic"
	semReport, err := New(&semCfg, store.Clone(), provider, Options{}).ExtractText(ctx, name, text)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{
		Document:     name,
		Rule:         ruleReport,
		Semantic:     semReport,
		NodeIncrease: len(semReport.Nodes) - len(ruleReport.Nodes),
		RolesSeen:    make(map[string]int),
	}

	ruleByText := make(map[string]model.NodeType)
	for _, n := range ruleReport.Nodes {
		ruleByText[n.Text] = n.Type
	}
	semByText := make(map[string]model.NodeType)
	for _, n := range semReport.Nodes {
		semByText[n.Text] = n.Type
		if n.Semantic != nil {
			cmp.RolesSeen[n.Semantic.Role]++
			cmp.EntitiesTotal += len(n.Semantic.Entities)
		}
	}

	for text, rt := range ruleByText {
		st, ok := semByText[text]
		switch {
		case !ok:
			cmp.RuleOnly++
		case st == rt:
			cmp.AgreedTexts++
		default:
			cmp.DivergedTexts++
		}
	}
	for text := range semByText {
		if _, ok := ruleByText[text]; !ok {
			cmp.SemanticOnly++
		}
	}
	return cmp, nil
}
