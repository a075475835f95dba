package ui

import (
	"fmt"
	"strings"

	"github.com/ppiankov/oodakit/internal/game"
	"github.com/ppiankov/oodakit/internal/model"
	"github.com/ppiankov/oodakit/internal/scoring"
)

// Row backgrounds of the dashboard score table.
const (
	BlueRowBG = "#0d1b2a"
	RedRowBG  = "#1a0d0d"
)

// ScoresRow renders one table row of signed, colour-coded scores in rubric
// order. Dimensions missing from sheet show as zero.
func ScoresRow(label string, sheet scoring.Sheet, rowBG string) string {
	if rowBG == "" {
		rowBG = BlueRowBG
	}
	var cells strings.Builder
	for _, d := range scoring.Dimensions() {
		v := sheet[d]
		col := FGSecondary
		switch {
		case v > 0:
			col = ColorGreen
		case v < 0:
			col = ColorRedSide
		}
		fmt.Fprintf(&cells, "<td style='padding:4px 8px; text-align:center;'>"+
			"<span style='color:%s;'>%+d</span></td>", col, v)
	}
	return fmt.Sprintf("<tr style='background:%s;'><td style='padding:4px 8px; font-weight:bold;'>%s</td>%s</tr>",
		rowBG, esc(label), cells.String())
}

// Dashboard renders the cumulative score table and escalation status bar.
func Dashboard(turn int, board scoring.Board, index int, level model.EscalationLevel, posture model.ROEPostureName) string {
	col := LevelColor(level, FGSecondary)

	var header strings.Builder
	for _, d := range scoring.Dimensions() {
		fmt.Fprintf(&header, "<th style='padding:4px 8px;'>%s</th>", esc(strings.ToUpper(string(d[:1]))+string(d[1:])))
	}

	return fmt.Sprintf("<div style='background:%s; color:%s; padding:16px; border-radius:8px; "+
		"margin:8px 0; font-family:%s;'>"+
		"<h3 style='color:%s; margin-top:0;'>Dashboard — Turn %d</h3>"+
		"<table style='border-collapse:collapse; width:100%%; color:%s;'>"+
		"<tr style='border-bottom:1px solid #30363d;'><th style='padding:4px 8px; text-align:left;'>Side</th>%s</tr>"+
		"%s%s</table>"+
		"<div style='margin-top:12px; padding:8px; border-radius:4px; background:%s22; border:1px solid %s;'>"+
		"<b>ESCALATION:</b> %d — <b>%s</b> &nbsp;|&nbsp; <b>ROE:</b> %s</div></div>",
		BGDark, FGPrimary, font, FGAccent, turn, FGPrimary, header.String(),
		ScoresRow("BLUE (cumulative)", board.Blue, BlueRowBG),
		ScoresRow("RED (cumulative)", board.Red, RedRowBG),
		col, col, index, esc(level.String()), esc(posture.String()))
}

// TurnDashboard renders the dashboard for the state after rec.
func TurnDashboard(rec game.TurnRecord) string {
	return Dashboard(rec.Turn, scoring.Board{Blue: rec.Blue, Red: rec.Red},
		rec.EscalationIndex, rec.EscalationLevel, rec.ROEPosture)
}

// barWidth scales an escalation index to pixels, capped at 100.
func barWidth(index int) int {
	return max(min(index*12, 100), 0)
}

// GameLogTable renders every turn of a game log with escalation bars.
// Crossings are flagged with ⚠.
func GameLogTable(log game.GameLog) string {
	var rows strings.Builder
	for _, t := range log.Turns {
		col := LevelColor(t.EscalationLevel, FGSecondary)
		crossing := ""
		if t.ThresholdCrossing {
			crossing = " ⚠"
		}
		fmt.Fprintf(&rows, "<tr><td style='padding:6px;'>%d</td><td style='padding:6px;'>%s</td>"+
			"<td style='padding:6px; color:%s;'>%s</td>"+
			"<td style='padding:6px; color:%s;'>%s</td>"+
			"<td style='padding:6px;'>%+d</td>"+
			"<td style='padding:6px;'><div style='display:flex; align-items:center;'>"+
			"<div style='background:%s; width:%dpx; height:14px; border-radius:3px; margin-right:6px;'></div>"+
			"<span style='color:%s;'>%d %s%s</span></div></td>"+
			"<td style='padding:6px;'>%s</td></tr>",
			t.Turn, esc(t.DTG), ColorRedSide, esc(t.RedLabel), ColorBlueSide, esc(t.BlueLabel),
			t.EscalationDelta, col, barWidth(t.EscalationIndex), col, t.EscalationIndex,
			esc(t.EscalationLevel.String()), crossing, esc(t.ROEPosture.String()))
	}

	return fmt.Sprintf("<div style='background:%s; color:%s; padding:16px; border-radius:8px; "+
		"margin:8px 0; font-family:%s;'><h3 style='color:%s; margin-top:0;'>Game Log: %s</h3>"+
		"<table style='border-collapse:collapse; width:100%%; color:%s; font-size:12px;'>"+
		"<tr style='border-bottom:1px solid #30363d;'>"+
		"<th style='padding:6px;'>Turn</th><th style='padding:6px;'>DTG</th>"+
		"<th style='padding:6px;'>Red Action</th><th style='padding:6px;'>Blue Action</th>"+
		"<th style='padding:6px;'>Esc Δ</th><th style='padding:6px;'>Escalation</th>"+
		"<th style='padding:6px;'>ROE</th></tr>%s</table></div>",
		BGDark, FGPrimary, font, FGAccent, esc(log.Scenario), FGPrimary, rows.String())
}
