package format

import (
	"fmt"
	"strings"

	"github.com/ppiankov/oodakit/internal/escalation"
	"github.com/ppiankov/oodakit/internal/game"
	"github.com/ppiankov/oodakit/internal/registry"
	"github.com/ppiankov/oodakit/internal/scoring"
	"github.com/ppiankov/oodakit/internal/store"
)

// Ladder renders every step with the index range it covers.
func Ladder(l *escalation.Ladder, m Mode) string {
	steps := l.Steps()
	tb := NewTable(m)
	tb.Header("Level", "Name", "Threshold", "Range")
	for i, s := range steps {
		span := fmt.Sprintf("%d+", s.Threshold)
		if i+1 < len(steps) {
			span = fmt.Sprintf("%d-%d", s.Threshold, steps[i+1].Threshold-1)
		}
		tb.Row(s.Level, s.Name.String(), s.Threshold, span)
	}
	tb.Columns(ColumnConfig{Number: 1, Align: AlignRight}, ColumnConfig{Number: 3, Align: AlignRight})
	return tb.String()
}

// Postures renders the ROE table from most to least restrictive.
func Postures(m Mode) string {
	tb := NewTable(m)
	tb.Header("Posture", "Max Escalation", "Description")
	for _, p := range escalation.Postures() {
		ceiling := "unbounded"
		if p.Bounded() {
			ceiling = fmt.Sprint(p.MaxEscalation)
		}
		tb.Row(p.Name.String(), ceiling, p.Description)
	}
	return tb.String()
}

// Board renders both cumulative sheets with a total column.
func Board(b scoring.Board, m Mode) string {
	header := []string{"Side"}
	for _, d := range scoring.Dimensions() {
		header = append(header, string(d))
	}
	header = append(header, "total")

	tb := NewTable(m)
	tb.Header(header...)
	for _, side := range []struct {
		name  string
		sheet scoring.Sheet
	}{{"BLUE", b.Blue}, {"RED", b.Red}} {
		row := []any{side.name}
		for _, v := range side.sheet.Ordered() {
			row = append(row, Signed(v))
		}
		tb.Row(append(row, Signed(side.sheet.Total()))...)
	}
	return tb.String()
}

// GameLog renders one row per turn. Crossings are flagged with ⚠ and
// turns past the ROE ceiling with !.
func GameLog(log game.GameLog, m Mode) string {
	tb := NewTable(m)
	tb.Title(fmt.Sprintf("Game Log: %s", log.Scenario))
	tb.Header("Turn", "DTG", "Red Action", "Blue Action", "Esc Δ", "Index", "Level", "ROE")
	for _, t := range log.Turns {
		level := t.EscalationLevel.String()
		if t.ThresholdCrossing {
			level += " ⚠"
		}
		roe := t.ROEPosture.String()
		if t.ROEExceeded {
			roe += " !"
		}
		tb.Row(t.Turn, t.DTG, Truncate(t.RedLabel, 40), Truncate(t.BlueLabel, 40),
			Signed(t.EscalationDelta), t.EscalationIndex, level, roe)
	}
	if n := len(log.Turns); n > 0 {
		last := log.Turns[n-1]
		tb.Footer("", "", "", "", "", last.EscalationIndex, last.EscalationLevel.String(), "")
	}
	return tb.String()
}

// Demos renders the registry in order.
func Demos(reg *registry.Registry, m Mode) string {
	tb := NewTable(m)
	tb.Header("ID", "Title", "OODA Phases", "Agents", "HITL", "Explain")
	for _, d := range reg.All() {
		phases := make([]string, len(d.OODAPhases))
		for i, p := range d.OODAPhases {
			phases[i] = p.String()
		}
		tb.Row(string(d.ID), d.Title, strings.Join(phases, ", "), len(d.AgentRoles),
			BoolMark(d.HasHITL), BoolMark(d.RequiresExplainability))
	}
	tb.Columns(ColumnConfig{Number: 2, MaxWidth: 48})
	return tb.String()
}

// Archive renders archived game summaries.
func Archive(summaries []store.Summary, m Mode) string {
	tb := NewTable(m)
	tb.Header("ID", "Scenario", "Created", "Turns", "Final", "Alerts")
	for _, s := range summaries {
		tb.Row(s.ID, s.Scenario, s.CreatedUTC, s.Turns,
			fmt.Sprintf("%d %s", s.FinalIndex, s.FinalLevel), s.ThresholdAlerts)
	}
	return tb.String()
}
