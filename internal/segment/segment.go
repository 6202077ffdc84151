// Package segment splits raw paper text into named IMRaD sections and
// sections into sentences.
package segment

import (
	"regexp"
	"sort"

	"github.com/ppiankov/imradgraph/internal/model"
)

// headingPatterns match section heading lines, whole-line and
// case-insensitive. Ordered so output is deterministic; only the first
// occurrence of each heading kind becomes an anchor.
var headingPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"abstract", regexp.MustCompile(`(?im)^[ \t]*abstract[ \t]*$`)},
	{"introduction", regexp.MustCompile(`(?im)^[ \t]*(?:\d+\.?[ \t]*)?(?:introduction|background)[ \t]*$`)},
	{"methods", regexp.MustCompile(`(?im)^[ \t]*(?:\d+\.?[ \t]*)?(?:materials and methods|methods|methodology|experimental procedures)[ \t]*$`)},
	{"results", regexp.MustCompile(`(?im)^[ \t]*(?:\d+\.?[ \t]*)?results?[ \t]*$`)},
	{"discussion", regexp.MustCompile(`(?im)^[ \t]*(?:\d+\.?[ \t]*)?discussion[ \t]*$`)},
	{"conclusion", regexp.MustCompile(`(?im)^[ \t]*(?:\d+\.?[ \t]*)?conclusions?[ \t]*$`)},
}

type anchor struct {
	offset    int // start of the heading line
	bodyStart int // first byte after the heading line
	name      string
}

// Sections splits text on detected IMRaD headings. The returned
// sections cover the input contiguously and non-overlappingly; text
// before the first heading becomes a leading "body" section, and when
// no heading is found the whole document is one "body" section.
// Start/End span the heading line, but Text excludes it so the heading
// word never leaks into the first sentence of the section.
func Sections(text string) []model.Section {
	var anchors []anchor
	for _, hp := range headingPatterns {
		if loc := hp.re.FindStringIndex(text); loc != nil {
			anchors = append(anchors, anchor{offset: loc[0], bodyStart: loc[1], name: hp.name})
		}
	}

	if len(anchors) == 0 {
		return []model.Section{{Name: "body", Text: text, Start: 0, End: len(text)}}
	}

	sort.Slice(anchors, func(i, j int) bool { return anchors[i].offset < anchors[j].offset })

	var sections []model.Section
	if anchors[0].offset > 0 {
		sections = append(sections, model.Section{
			Name:  "body",
			Text:  text[:anchors[0].offset],
			Start: 0,
			End:   anchors[0].offset,
		})
	}
	for i, a := range anchors {
		end := len(text)
		if i+1 < len(anchors) {
			end = anchors[i+1].offset
		}
		sections = append(sections, model.Section{
			Name:  a.name,
			Text:  text[a.bodyStart:end],
			Start: a.offset,
			End:   end,
		})
	}
	return sections
}
