package ui

import (
	"fmt"
	"sort"
	"strings"
)

// Engines the multi-model selector chooses between.
const (
	EngineHeuristic = "HEURISTIC"
	EngineLLM       = "LLM"
)

// SelectorDecision is one engine choice made for a unit in a turn.
type SelectorDecision struct {
	Turn       int    `json:"turn"`
	Unit       string `json:"unit"`
	Complexity string `json:"complexity"`
	Engine     string `json:"engine"`
	Contacts   int    `json:"contacts"`
}

// Default accents of the two engines.
const (
	HeuristicColor = "#7ee787"
	LLMColor       = "#ffa657"
)

// SelectorSummary renders every decision followed by per-turn engine
// counts and percentages.
func SelectorSummary(decisions []SelectorDecision) string {
	var rows strings.Builder
	perTurn := map[int][2]int{}
	for _, d := range decisions {
		col := LLMColor
		if d.Engine == EngineHeuristic {
			col = HeuristicColor
		}
		fmt.Fprintf(&rows, "<tr style='border-bottom:1px solid #21262d;'>"+
			"<td style='padding:6px;'>%d</td><td style='padding:6px;'>%s</td>"+
			"<td style='padding:6px;'>%s</td>"+
			"<td style='padding:6px; color:%s; font-weight:bold;'>%s</td>"+
			"<td style='padding:6px;'>%d</td></tr>",
			d.Turn, esc(d.Unit), esc(d.Complexity), col, esc(d.Engine), d.Contacts)

		counts := perTurn[d.Turn]
		switch d.Engine {
		case EngineHeuristic:
			counts[0]++
		case EngineLLM:
			counts[1]++
		}
		perTurn[d.Turn] = counts
	}

	totals := map[int]int{}
	for _, d := range decisions {
		totals[d.Turn]++
	}
	turns := make([]int, 0, len(totals))
	for t := range totals {
		turns = append(turns, t)
	}
	sort.Ints(turns)

	var stats strings.Builder
	for _, t := range turns {
		h, l := perTurn[t][0], perTurn[t][1]
		fmt.Fprintf(&stats, "<div style='margin-top:8px;'><b>Turn %d:</b> "+
			"<span style='color:%s;'>HEURISTIC: %d (%s%%)</span> | "+
			"<span style='color:%s;'>LLM: %d (%s%%)</span></div>",
			t, HeuristicColor, h, percent(h, totals[t]), LLMColor, l, percent(l, totals[t]))
	}

	th := func(s string) string {
		return fmt.Sprintf("<th style='text-align:left; padding:6px; color:%s;'>%s</th>", FGSecondary, s)
	}
	return fmt.Sprintf("<div style='background:%s; color:%s; padding:16px; border-radius:8px; "+
		"margin:8px 0; font-family:%s;'><h3 style='color:%s; margin-top:0;'>"+
		"Multi-Model Selector — Decision Summary</h3>"+
		"<table style='width:100%%; border-collapse:collapse;'>"+
		"<tr style='border-bottom:1px solid #30363d;'>%s%s%s%s%s</tr>%s</table>%s"+
		"<div style='margin-top:12px; color:%s; font-size:11px;'>"+
		"Green = cheap scripted heuristic (fast, deterministic). "+
		"Orange = LLM reasoning (flexible, handles novelty). "+
		"The same architecture swaps engines based on context — demonstrating portability.</div></div>",
		BGDark, FGPrimary, font, FGAccent,
		th("Turn"), th("Unit"), th("Complexity"), th("Engine"), th("Contacts"),
		rows.String(), stats.String(), FGSecondary)
}

// percent formats n/total as a rounded whole percentage.
func percent(n, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.0f", float64(n)/float64(total)*100)
}
