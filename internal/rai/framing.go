package rai

import (
	"fmt"
	"regexp"
	"strings"
)

var forbiddenPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(ForbiddenActionVerbs, "|") + `)\b`)

// CheckFraming flags directive verbs in agent output. Agents recommend; they
// never order. Each distinct verb is reported once, in order of appearance.
func CheckFraming(text string) []Warning {
	var warnings []Warning
	seen := make(map[string]bool)
	for _, m := range forbiddenPattern.FindAllString(text, -1) {
		verb := strings.ToLower(m)
		if seen[verb] {
			continue
		}
		seen[verb] = true
		warnings = append(warnings, Warning(fmt.Sprintf(
			"output uses directive verb %q; frame as a recommendation (e.g. %q)", verb, RecommendationVerbs[0])))
	}
	return warnings
}
