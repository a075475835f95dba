package ui

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ppiankov/oodakit/internal/rai"
)

// ScopeStatement renders the scope banner every notebook opens with.
func ScopeStatement() string {
	return fmt.Sprintf("<div style='background:#0d1117; color:#c9d1d9; padding:16px; "+
		"border-radius:8px; margin:16px 0; font-family:%s; "+
		"border:1px solid #f0883e; border-left:4px solid #f0883e;'>"+
		"<h4 style='color:#f0883e; margin:0 0 8px 0;'>⚖ Responsible AI &amp; Scope Statement</h4>"+
		"<p style='margin:0; font-size:12px; line-height:1.6;'>%s</p></div>",
		font, esc(rai.ScopeStatement))
}

// SyntheticBanner renders the synthetic-data notice, optionally prefixed
// with a context label such as "World-State JSON". An empty borderColor
// uses the default purple.
func SyntheticBanner(context, borderColor string) string {
	if borderColor == "" {
		borderColor = "#d2a8ff"
	}
	prefix := ""
	if context != "" {
		prefix = esc(context) + " — "
	}
	return fmt.Sprintf("<div style='background:%s; color:%s; padding:8px 14px; margin:10px 0; "+
		"border-left:3px solid %s; font-family:%s; font-size:11px;'>🔬 %s<em>%s</em></div>",
		BGDark, FGSecondary, borderColor, font, prefix, esc(rai.SyntheticDataDisclaimer))
}

// HITLGate renders the pause banner shown before a human decision.
func HITLGate(action, agent string) string {
	agentLine := ""
	if agent != "" {
		agentLine = fmt.Sprintf("<div style='color:%s; font-size:11px; margin-top:6px;'>"+
			"Recommendation provided by: <b>%s</b> — all decisions remain with the human operator.</div>",
			FGSecondary, esc(agent))
	}
	return fmt.Sprintf("<div style='background:#1a2a1a; color:#b0ffb0; padding:14px; "+
		"border-radius:6px; margin:12px 0; font-family:%s; border:2px solid %s;'>"+
		"<b>⏸ HUMAN DECISION REQUIRED</b><br>%s%s</div>",
		font, ColorGreen, esc(action), agentLine)
}

// ReasoningTrace renders an agent's numbered reasoning steps and conclusion.
// An empty accent falls back to the agent's colour, then FGAccent.
func ReasoningTrace(agent string, steps []string, conclusion, accent string) string {
	col := accent
	if col == "" {
		col = AgentColors[agent]
	}
	if col == "" {
		col = FGAccent
	}

	var items strings.Builder
	for _, s := range steps {
		fmt.Fprintf(&items, "<li style='margin-bottom:4px;'>%s</li>", esc(s))
	}

	return fmt.Sprintf("<div style='background:%s; color:%s; padding:16px; border-radius:8px; "+
		"margin:8px 0; font-family:%s; border:1px solid #30363d; border-left:4px solid %s;'>"+
		"<div style='color:%s; font-weight:bold; font-size:13px; margin-bottom:8px;'>"+
		"🔍 Reasoning Trace — %s</div>"+
		"<ol style='margin:0 0 10px 18px; padding:0; font-size:12px; line-height:1.7;'>%s</ol>"+
		"<div style='border-top:1px solid #30363d; padding-top:8px; font-size:12px;'>"+
		"<b>Conclusion:</b> %s</div></div>",
		BGCard, FGPrimary, font, col, col, esc(agent), items.String(), esc(conclusion))
}

// BiasFinding is one structured result of the bias auditor.
type BiasFinding struct {
	Bias        string `json:"bias"`
	Confidence  string `json:"confidence"`
	Evidence    string `json:"evidence"`
	AppealBrief string `json:"appeal_brief"`
	Agent       string `json:"agent,omitempty"`
}

// DefaultBiasAgent labels findings with no agent.
const DefaultBiasAgent = "Bias_Auditor"

// BiasCard renders a bias finding coloured by confidence.
func BiasCard(f BiasFinding) string {
	col, ok := ConfidenceColors[strings.ToLower(f.Confidence)]
	if !ok {
		col = FGSecondary
	}
	agent := f.Agent
	if agent == "" {
		agent = DefaultBiasAgent
	}

	return fmt.Sprintf("<div style='background:%s; color:%s; padding:16px; border-radius:8px; "+
		"margin:8px 0; font-family:%s; border:1px solid #30363d; border-left:4px solid %s;'>"+
		"<div style='font-weight:bold; font-size:13px; margin-bottom:6px;'>"+
		"⚠ Bias Finding — <span style='color:%s;'>%s</span>"+
		" <span style='font-size:11px; color:%s;'>[%s confidence]</span></div>"+
		"<div style='font-size:12px; margin-bottom:8px;'><b>Agent:</b> %s</div>"+
		"<div style='font-size:12px; margin-bottom:8px;'><b>Evidence:</b> %s</div>"+
		"<div style='border-top:1px solid #30363d; padding-top:8px; font-size:12px;'>"+
		"<b>Appeal Brief:</b> %s</div></div>",
		BGCard, FGPrimary, font, col, col, esc(cases.Title(language.English).String(f.Bias)), col,
		esc(strings.ToUpper(f.Confidence)), esc(agent), esc(f.Evidence), esc(f.AppealBrief))
}
