package ui

import "fmt"

// DefaultEscalationMessage is the banner text between escalating turns.
const DefaultEscalationMessage = "ESCALATION — PROCEEDING TO NEXT TURN"

// TurnHeader renders the bar opening a turn. extraHTML is sanitized and
// appended inside the bar.
func TurnHeader(turn int, dtg, subtitle, extraHTML string) string {
	sub := ""
	if subtitle != "" {
		sub = "<br>" + esc(subtitle)
	}
	return fmt.Sprintf("<div style='background:%s; color:#e0e0ff; padding:12px; border-radius:6px; "+
		"margin:8px 0; font-family:%s;'><b>=== TURN %d — %s ===</b>%s%s</div>",
		BGTurn, font, turn, esc(dtg), sub, Sanitize(extraHTML))
}

// EscalationBanner renders the red callout between turns. An empty message
// uses DefaultEscalationMessage.
func EscalationBanner(message string) string {
	if message == "" {
		message = DefaultEscalationMessage
	}
	return fmt.Sprintf("<div style='background:#2a1a1a; color:#ffb0b0; padding:12px; border-radius:6px; "+
		"margin:16px 0; font-family:%s; text-align:center;'><b>%s</b></div>", font, esc(message))
}

// PhaseHeader renders a numbered phase heading. Phases are 1-based; an
// empty color cycles PhasePalette.
func PhaseHeader(phase int, title, description, color string) string {
	if color == "" {
		n := len(PhasePalette)
		color = PhasePalette[((phase-1)%n+n)%n]
	}
	desc := ""
	if description != "" {
		desc = fmt.Sprintf("<p style='margin:0; color:%s;'>%s</p>", FGSecondary, esc(description))
	}
	return fmt.Sprintf("<div style='background:%s; color:%s; padding:16px; border-radius:8px; "+
		"margin:16px 0 8px 0; font-family:%s; border-left:4px solid %s;'>"+
		"<h2 style='color:%s; margin:0 0 8px 0;'>Phase %d: %s</h2>%s</div>",
		BGDark, FGPrimary, font, color, color, phase, esc(title), desc)
}

// AgentCard renders an agent's output with whitespace preserved. Content is
// plain text.
func AgentCard(agent, content string) string {
	col, ok := AgentColors[agent]
	if !ok {
		col = FGSecondary
	}
	return fmt.Sprintf("<div style='background:%s; color:%s; padding:16px; border-radius:8px; "+
		"margin:8px 0; font-family:%s; border:1px solid #30363d;'>"+
		"<div style='color:%s; font-weight:bold; font-size:14px; margin-bottom:8px; "+
		"border-bottom:1px solid #30363d; padding-bottom:6px;'>%s</div>"+
		"<div style='white-space:pre-wrap; font-size:12px; line-height:1.6;'>%s</div></div>",
		BGCard, FGPrimary, font, col, esc(agent), esc(content))
}

// DefaultCommanderLabel prefixes CommanderBox text.
const DefaultCommanderLabel = "COMMANDER"

// CommanderBox renders the human operator's query or guidance.
func CommanderBox(text, label string) string {
	if label == "" {
		label = DefaultCommanderLabel
	}
	return fmt.Sprintf("<div style='background:#1a2a1a; color:#b0ffb0; padding:12px; border-radius:6px; "+
		"margin:8px 0; font-family:%s;'><b>%s:</b> %s</div>", font, esc(label), esc(text))
}

// InfoBoxStyle overrides InfoBox defaults. Zero fields keep the default.
type InfoBoxStyle struct {
	BorderColor string
	Background  string
	FontSize    string
}

// InfoBox renders sanitized inner HTML in a neutral instruction box.
func InfoBox(innerHTML string, style InfoBoxStyle) string {
	if style.BorderColor == "" {
		style.BorderColor = FGAccent
	}
	if style.Background == "" {
		style.Background = BGTurn
	}
	if style.FontSize == "" {
		style.FontSize = "11px"
	}
	return fmt.Sprintf("<div style='background:%s; color:%s; padding:6px 12px; margin:12px 0; "+
		"border-left:3px solid %s; font-family:%s; font-size:%s;'>%s</div>",
		esc(style.Background), FGSecondary, esc(style.BorderColor), font, esc(style.FontSize), Sanitize(innerHTML))
}

// ThresholdAlert renders a ladder crossing. An empty color uses the new
// level's ladder colour.
func ThresholdAlert(prevLevel, newLevel, color string) string {
	if color == "" {
		color = labelColor(newLevel, ColorRedSide)
	}
	return fmt.Sprintf("<div style='background:%s33; border:2px solid %s; color:#fff; padding:12px; "+
		"border-radius:6px; margin:8px 0; font-family:%s; text-align:center; font-size:14px;'>"+
		"⚠ THRESHOLD CROSSING: %s → <b>%s</b></div>",
		color, color, font, esc(prevLevel), esc(newLevel))
}

// HR renders a section separator.
func HR() string {
	return "<hr style='border:2px solid #4a4a6a; margin:16px 0;'>"
}

// SummaryCard renders a titled card around sanitized body HTML.
func SummaryCard(title, bodyHTML, accent string) string {
	if accent == "" {
		accent = FGAccent
	}
	return fmt.Sprintf("<div style='background:%s; color:%s; padding:16px; border-radius:8px; "+
		"margin:16px 0; font-family:%s;'><h3 style='color:%s; margin-top:0;'>%s</h3>%s</div>",
		BGDark, FGPrimary, font, accent, esc(title), Sanitize(bodyHTML))
}
