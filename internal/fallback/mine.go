package fallback

import (
	"regexp"
	"strings"
)

var (
	weVerb   = regexp.MustCompile(`(?i)\bwe\s+([a-zA-Z-]+)`)
	thisWord = regexp.MustCompile(`(?i)\b(?:this|these)\s+[a-z]+\b`)
)

// MineCue extracts a short cue phrase from a sentence for future
// deterministic matching. It prefers a "we <verb>" construction, then
// a "this/these <word>" one, and falls back to the sentence's first
// three tokens escaped for literal matching.
func MineCue(sentence string) string {
	if m := weVerb.FindStringSubmatch(sentence); m != nil {
		return `\bwe\s+` + regexp.QuoteMeta(m[1]) + `\b`
	}
	if m := thisWord.FindString(sentence); m != "" {
		return regexp.QuoteMeta(m)
	}
	fields := strings.Fields(sentence)
	if len(fields) > 3 {
		fields = fields[:3]
	}
	if len(fields) == 0 {
		return ""
	}
	return regexp.QuoteMeta(strings.Join(fields, " "))
}
