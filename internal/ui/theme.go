// Package ui renders exercise artefacts as self-contained HTML fragments
// in the dark notebook theme. Every function returns a string; text
// arguments are escaped and arguments documented as inner HTML are
// sanitized.
package ui

import (
	"html"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ppiankov/oodakit/internal/escalation"
	"github.com/ppiankov/oodakit/internal/model"
)

const font = "ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, " +
	"'Liberation Mono', 'Courier New', monospace"

// Theme colours.
const (
	BGDark = "#0d1117"
	BGCard = "#161b22"
	BGTurn = "#1a1a2e"

	FGPrimary   = "#c9d1d9"
	FGSecondary = "#8b949e"
	FGAccent    = "#58a6ff"

	ColorBlueSide = "#58a6ff"
	ColorRedSide  = "#da3633"
	ColorGreen    = "#2ea043"
)

// PhasePalette cycles through phase headers.
var PhasePalette = []string{"#58a6ff", "#d2a8ff", "#f0883e", "#2ea043", "#f778ba", "#db6d28"}

// AgentColors are the accents of the after-action agents.
var AgentColors = map[string]string{
	"Replay_Narrator":       "#58a6ff",
	"Doctrinal_Critic":      "#d2a8ff",
	"Counterfactual_Branch": "#f0883e",
	"Lessons_Compiler":      "#2ea043",
}

// ConfidenceColors colour bias findings by confidence.
var ConfidenceColors = map[string]string{
	"high":   "#d73a49",
	"medium": "#bf8700",
	"low":    "#6e7781",
}

// LevelColor returns the default ladder colour for a level, or fallback
// when the level is unknown.
func LevelColor(level model.EscalationLevel, fallback string) string {
	if s, ok := escalation.Default().ByName(level); ok {
		return s.Color
	}
	return fallback
}

// labelColor resolves a level by its wire label.
func labelColor(label, fallback string) string {
	level, err := model.ParseEscalationLevel(label)
	if err != nil {
		return fallback
	}
	return LevelColor(level, fallback)
}

var policy = bluemonday.UGCPolicy()

// Sanitize strips scripts, event handlers and other unsafe markup from
// caller-supplied inner HTML.
func Sanitize(inner string) string {
	return policy.Sanitize(inner)
}

func esc(s string) string { return html.EscapeString(s) }
