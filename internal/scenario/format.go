package scenario

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/oodakit/internal/format"
)

// FormatText renders run results as a per-file verdict followed by the
// failing turns and a one-line tally.
func FormatText(results []*RunResult) string {
	var b strings.Builder

	noun := "files"
	if len(results) == 1 {
		noun = "file"
	}
	fmt.Fprintf(&b, "Checking %d scenario %s...\n\n", len(results), noun)

	var turns, passed, failedFiles int
	for _, r := range results {
		turns += r.Total
		passed += r.Passed

		verdict := "PASS"
		if r.Failed > 0 {
			verdict = "FAIL"
			failedFiles++
		}
		fmt.Fprintf(&b, "  %s  %s (%d/%d)%s\n", verdict, r.Name, r.Passed, r.Total, finalState(r))
		writeFailures(&b, r.Cases)
	}

	fmt.Fprintf(&b, "\n%d of %d turns passed.", passed, turns)
	if failedFiles > 0 {
		fmt.Fprintf(&b, " %d of %d scenarios failed.", failedFiles, len(results))
	}
	b.WriteString("\n")
	return b.String()
}

// finalState summarizes where the replayed game ended, or nothing when no
// turn was applied.
func finalState(r *RunResult) string {
	if len(r.Log.Turns) == 0 {
		return ""
	}
	last := r.Log.Turns[len(r.Log.Turns)-1]
	return fmt.Sprintf("  final %d %s", last.EscalationIndex, last.EscalationLevel)
}

func writeFailures(b *strings.Builder, cases []CaseResult) {
	for _, c := range cases {
		if c.Passed {
			continue
		}
		moves := format.Truncate("RED "+c.Red+" / BLUE "+c.Blue, 30)
		fmt.Fprintf(b, "    FAIL  turn %d: %-30s expected %s, got %s\n", c.Index, moves, c.Expected, c.Actual)
		if c.Reason != "" {
			fmt.Fprintf(b, "          %s\n", c.Reason)
		}
	}
}

// FormatJSON renders run results as JSON.
func FormatJSON(results []*RunResult) (string, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}
	return string(data), nil
}
