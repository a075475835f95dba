package rai

import (
	"strings"
	"time"
)

type promptOptions struct {
	hitl     bool
	doctrine bool
}

// PromptOption adjusts BuildAgentSystemPrompt.
type PromptOption func(*promptOptions)

// WithoutHITL omits the HITL advisory.
func WithoutHITL() PromptOption {
	return func(o *promptOptions) { o.hitl = false }
}

// WithDoctrinalDisclaimer appends the doctrinal-authority disclaimer.
func WithDoctrinalDisclaimer() PromptOption {
	return func(o *promptOptions) { o.doctrine = true }
}

// BuildAgentSystemPrompt composes an agent system message from the role
// description and the RAI guardrail paragraphs, separated by blank lines.
// The HITL advisory is included unless WithoutHITL is passed.
func BuildAgentSystemPrompt(role string, opts ...PromptOption) string {
	o := promptOptions{hitl: true}
	for _, opt := range opts {
		opt(&o)
	}

	parts := []string{strings.TrimRight(role, " \t\r\n")}
	if o.hitl {
		parts = append(parts, HITLSystemPrompt)
	}
	if o.doctrine {
		parts = append(parts, DoctrinalDisclaimer)
	}
	return strings.Join(parts, "\n\n")
}

// DefaultScenarioName is used when NewWorldState receives an empty name.
const DefaultScenarioName = "Unnamed Scenario"

// now is replaced in tests.
var now = time.Now

// NewWorldState returns a world-state document pre-populated with the
// synthetic-data markers. Keys in extra override the defaults.
func NewWorldState(name string, extra map[string]any) map[string]any {
	if name == "" {
		name = DefaultScenarioName
	}
	state := map[string]any{
		"synthetic":     SyntheticDataMarker,
		"disclaimer":    SyntheticDataDisclaimer,
		"scenario_name": name,
		"generated_utc": now().UTC().Format(time.RFC3339Nano),
	}
	for k, v := range extra {
		state[k] = v
	}
	return state
}

// IsSynthetic reports whether a world-state document carries both markers.
func IsSynthetic(state map[string]any) bool {
	marker, _ := state["synthetic"].(bool)
	disclaimer, _ := state["disclaimer"].(string)
	return marker && disclaimer == SyntheticDataDisclaimer
}
