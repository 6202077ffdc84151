package classify

import "strings"

// roleGroup is one priority tier of the role keyword ladder.
type roleGroup struct {
	role     string
	keywords []string
}

// roleGroups is ordered by priority: a hypothesis statement beats an
// experimental action, which beats an analytical action, and so on.
var roleGroups = []roleGroup{
	{"hypothesis_statement", []string{"we hypothesize", "we propose", "we predict"}},
	{"experimental_action", []string{"we conducted", "we performed", "we used"}},
	{"analytical_action", []string{"we analyzed", "we calculated", "statistical"}},
	{"conclusive_statement", []string{"in conclusion", "we conclude", "our findings"}},
}

// sectionRoles is the default role when no keyword group matches.
var sectionRoles = map[string]string{
	"introduction": "background_hypothesis",
	"methods":      "methodology_procedure",
	"results":      "data_presentation",
	"discussion":   "interpretation_conclusion",
}

// AssignRole tags the sentence with a semantic role: the first keyword
// group that matches wins, otherwise the section's default role, and
// "general" for unknown sections.
func AssignRole(sentence, section string) string {
	lower := strings.ToLower(sentence)
	for _, g := range roleGroups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g.role
			}
		}
	}
	if role, ok := sectionRoles[section]; ok {
		return role
	}
	return "general"
}
