package segment

import (
	"strings"
	"unicode"
)

// Splitter produces an ordered list of trimmed, non-trivial sentences
// from section text. The pipeline is indifferent to the implementation
// as long as ordering and triviality filtering hold.
type Splitter interface {
	Split(text string) []string
}

// RegexSplitter is the default punctuation-based sentence splitter. It
// cuts after a terminator followed by whitespace and an uppercase
// letter or digit, and drops fragments shorter than MinLen.
type RegexSplitter struct {
	MinLen int
}

// NewRegexSplitter returns a splitter with the default minimum length.
func NewRegexSplitter() *RegexSplitter {
	return &RegexSplitter{MinLen: 20}
}

// Split implements Splitter.
func (sp *RegexSplitter) Split(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)

		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		// Only cut when the next sentence starts with a capital or a
		// digit, which avoids splitting on most abbreviations.
		if !startsSentence(runes[i+1:]) {
			continue
		}
		sp.flush(&current, &sentences)
	}
	sp.flush(&current, &sentences)

	return sentences
}

func (sp *RegexSplitter) flush(current *strings.Builder, sentences *[]string) {
	sentence := strings.TrimSpace(current.String())
	current.Reset()
	if len(sentence) >= sp.MinLen {
		*sentences = append(*sentences, sentence)
	}
}

func startsSentence(rest []rune) bool {
	for _, r := range rest {
		if unicode.IsSpace(r) {
			continue
		}
		return unicode.IsUpper(r) || unicode.IsDigit(r)
	}
	return false
}
