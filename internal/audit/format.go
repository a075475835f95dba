package audit

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const separator = "──────────────────────────────────────────────────────────────────"

// FormatTimeline renders a ReplayResult as a text timeline.
func FormatTimeline(result *ReplayResult) string {
	if len(result.Entries) == 0 {
		return fmt.Sprintf("Game: %s | No entries found.\n", gameLabel(result.GameID))
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Game: %s | %s–%s UTC\n", gameLabel(result.GameID),
		formatDateTime(result.Summary.FirstTimestamp), formatTimeOnly(result.Summary.LastTimestamp))
	b.WriteString(separator + "\n")

	for _, e := range result.Entries {
		turn := "  "
		if e.Turn > 0 {
			turn = fmt.Sprintf("T%d", e.Turn)
		}
		fmt.Fprintf(&b, "%-10s %-3s %-11s %-9s %-30s %s\n",
			formatTimeOnly(e.Timestamp), turn, string(e.Kind),
			strings.ToUpper(e.Decision), truncate(e.Subject, 30), e.EscalationLevel)
	}

	b.WriteString(separator + "\n")
	b.WriteString(formatSummary(result.Summary))

	return b.String()
}

// FormatJSON renders a ReplayResult as indented JSON.
func FormatJSON(result *ReplayResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal replay result: %w", err)
	}
	return string(data), nil
}

func gameLabel(id string) string {
	if id == "" {
		return "all"
	}
	return id
}

func formatDateTime(ts string) string {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatTimeOnly(ts string) string {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04:05")
}

func formatSummary(s ReplaySummary) string {
	parts := []string{}
	if s.Turns > 0 {
		parts = append(parts, fmt.Sprintf("%d turns", s.Turns))
	}
	if s.Decisions > 0 {
		parts = append(parts, fmt.Sprintf("%d decisions (%d accepted, %d rejected)", s.Decisions, s.Accepted, s.Rejected))
	}
	if s.Validations > 0 {
		parts = append(parts, fmt.Sprintf("%d validations", s.Validations))
	}
	return fmt.Sprintf("Summary: %s | Peak escalation: %d\n", strings.Join(parts, ", "), s.MaxEscalation)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
