package rai

import (
	"fmt"
	"strings"

	"github.com/ppiankov/oodakit/internal/registry"
)

// Warning describes one failed compliance check.
type Warning string

// ValidateDemo runs the compliance checks against one demo in fixed order:
// explainability agent presence, then HITL flag versus role naming in both
// directions. A compliant demo yields no warnings.
func ValidateDemo(demo registry.DemoConfig) []Warning {
	var warnings []Warning

	roles := make([]string, len(demo.AgentRoles))
	for i, r := range demo.AgentRoles {
		roles[i] = strings.ToLower(r)
	}

	if demo.RequiresExplainability && !anyContains(roles, "explain", "briefing") {
		warnings = append(warnings, Warning(fmt.Sprintf(
			"%s: Missing Explainability Agent (RAI §3 — every demo must include one).", demo.ID)))
	}

	hasHITLRole := anyContains(roles, "hitl")
	if demo.HasHITL && !hasHITLRole {
		warnings = append(warnings, Warning(fmt.Sprintf(
			"%s: has_hitl=True but no agent role name contains 'HITL'.", demo.ID)))
	}
	if hasHITLRole && !demo.HasHITL {
		warnings = append(warnings, Warning(fmt.Sprintf(
			"%s: Agent role contains 'HITL' but has_hitl flag is False.", demo.ID)))
	}

	return warnings
}

// ValidateAll checks every demo in registry order and concatenates the results.
func ValidateAll(reg *registry.Registry) []Warning {
	var warnings []Warning
	for _, demo := range reg.All() {
		warnings = append(warnings, ValidateDemo(demo)...)
	}
	return warnings
}

// anyContains reports whether any lower-cased role contains any needle.
func anyContains(roles []string, needles ...string) bool {
	for _, r := range roles {
		for _, n := range needles {
			if strings.Contains(r, n) {
				return true
			}
		}
	}
	return false
}
