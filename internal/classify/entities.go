package classify

import "regexp"

// EntityExtractor returns the notable entity strings of a sentence.
// A real NLP service can be injected; the default is a capitalized-
// word heuristic that needs no external models.
type EntityExtractor interface {
	Entities(sentence string) []string
}

var capitalizedWord = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

// HeuristicEntities extracts capitalized words as entity candidates.
type HeuristicEntities struct{}

// Entities implements EntityExtractor.
func (HeuristicEntities) Entities(sentence string) []string {
	return capitalizedWord.FindAllString(sentence, -1)
}
