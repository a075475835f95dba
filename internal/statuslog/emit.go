package statuslog

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const font = "ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, " +
	"'Liberation Mono', 'Courier New', monospace"

// HTMLEmitter writes each entry as a styled HTML fragment.
type HTMLEmitter struct {
	W io.Writer
}

func (h HTMLEmitter) Emit(e Entry, color string) {
	fmt.Fprintln(h.W, RenderHTML(e, color))
}

// RenderHTML returns the HTML fragment for one entry. Text is escaped.
func RenderHTML(e Entry, color string) string {
	switch e.Level {
	case Section:
		desc := ""
		if d, _ := e.Extra["description"].(string); d != "" {
			desc = fmt.Sprintf("<p style='margin:0; color:#8b949e;'>%s</p>", html.EscapeString(d))
		}
		return fmt.Sprintf("<div style='background:#0d1117; color:#c9d1d9; padding:16px; "+
			"border-radius:8px; margin:16px 0 8px 0; font-family:%s; border-left:4px solid %s;'>"+
			"<h3 style='color:%s; margin:0 0 8px 0;'>%s</h3>%s</div>",
			font, color, color, html.EscapeString(e.Message), desc)
	case Step:
		agent, _ := e.Extra["agent"].(string)
		action, _ := e.Extra["action"].(string)
		return fmt.Sprintf("<div style='font-family: %s; font-size: 12px; padding: 2px 0;'>"+
			"<span style='color: #58a6ff; font-weight: 600;'>%s</span>"+
			"<span style='color: #6e7781;'> → </span>"+
			"<span style='color: #c9d1d9;'>%s</span></div>",
			font, html.EscapeString(agent), html.EscapeString(action))
	case Metric:
		label, _ := e.Extra["label"].(string)
		unit := ""
		if u, _ := e.Extra["unit"].(string); u != "" {
			unit = fmt.Sprintf(" <span style='color:#8b949e;'>%s</span>", html.EscapeString(u))
		}
		return fmt.Sprintf("<div style='font-family: %s; font-size: 12px; padding: 2px 0;'>"+
			"<span style='color: %s; font-weight: 600;'>[METRIC]</span> "+
			"<span style='color: #c9d1d9;'>%s:</span> "+
			"<span style='color: #f0f6fc; font-weight: 600;'>%s</span>%s</div>",
			font, color, html.EscapeString(label), html.EscapeString(fmt.Sprint(e.Extra["value"])), unit)
	default:
		return fmt.Sprintf("<div style='font-family: %s; font-size: 12px;'>"+
			"<span style='color: %s; font-weight: 600;'>[%s]</span> "+
			"<span style='color: #24292f;'>[%s]</span> "+
			"<span style='color: #24292f;'>%s</span></div>",
			font, color, e.Level, e.Timestamp, html.EscapeString(e.Message))
	}
}

// TextEmitter writes entries as terminal lines, coloured when W is a
// colour-capable terminal.
type TextEmitter struct {
	w        io.Writer
	renderer *lipgloss.Renderer
}

// NewTextEmitter returns an emitter whose colour profile follows w.
func NewTextEmitter(w io.Writer) *TextEmitter {
	return &TextEmitter{w: w, renderer: lipgloss.NewRenderer(w)}
}

func (t *TextEmitter) Emit(e Entry, color string) {
	style := t.renderer.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)

	if e.Level == Section {
		sep := strings.Repeat("═", 60)
		fmt.Fprintf(t.w, "\n%s\n  %s\n", sep, style.Render(e.Message))
		if d, _ := e.Extra["description"].(string); d != "" {
			fmt.Fprintf(t.w, "  %s\n", d)
		}
		fmt.Fprintln(t.w, sep)
		return
	}

	fmt.Fprintf(t.w, "%s [%s] %s\n", style.Render("["+prefix(e.Level)+"]"), e.Timestamp, e.Message)
}

func prefix(l Level) string {
	if l == Success {
		return "OK"
	}
	return string(l)
}
