package classify

import "strings"

// senseRule names one candidate sense for an ambiguous term and the
// context-clue words that vote for it.
type senseRule struct {
	sense string
	clues []string
}

// disambiguationRules map ambiguous terms to their candidate senses.
// The sense with the most clue hits in the sentence wins; ties go to
// the earlier sense, so the slice order is part of the contract. No
// hits leaves the term untagged.
var disambiguationRules = map[string][]senseRule{
	"patients": {
		{"medical_context", []string{"disease", "treatment", "clinical", "therapy", "diagnosis"}},
		{"behavioral_context", []string{"patience", "waiting", "endurance", "tolerance"}},
	},
	"model": {
		{"scientific_context", []string{"mathematical", "statistical", "computational", "simulation"}},
		{"biological_context", []string{"mouse", "cell", "animal", "organism"}},
		{"fashion_context", []string{"fashion", "clothing", "runway", "design"}},
	},
	"analysis": {
		{"process_context", []string{"we analyzed", "analyzing", "analysis of"}},
		{"result_context", []string{"analysis shows", "analysis revealed", "analysis indicates"}},
	},
}

// resolveSense returns word tagged with its resolved sense, e.g.
// "model_biological_context", or the word unchanged when no rule
// applies or no clue is present.
func resolveSense(word, contextText string) string {
	rules, ok := disambiguationRules[word]
	if !ok {
		return word
	}

	bestSense := ""
	bestScore := 0
	for _, r := range rules {
		score := 0
		for _, clue := range r.clues {
			if strings.Contains(contextText, clue) {
				score++
			}
		}
		// Strictly greater keeps the first listed sense on a tie.
		if score > bestScore {
			bestScore = score
			bestSense = r.sense
		}
	}
	if bestSense == "" {
		return word
	}
	return word + "_" + bestSense
}

// disambiguateEntities applies sense resolution to each entity using
// the lowercased sentence as context.
func disambiguateEntities(entities []string, contextText string) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = resolveSense(strings.ToLower(e), contextText)
	}
	return out
}
