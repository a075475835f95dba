package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/oodakit/internal/escalation"
	"github.com/ppiankov/oodakit/internal/format"
	"github.com/ppiankov/oodakit/internal/game"
	"github.com/ppiankov/oodakit/internal/model"
	"github.com/ppiankov/oodakit/internal/registry"
	"github.com/ppiankov/oodakit/internal/scoring"
	"github.com/ppiankov/oodakit/internal/store"
)

func TestASCIIUsesBoxDrawing(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("ID", "Name")
	tb.Row("L0", "ROUTINE")
	out := tb.String()

	if !strings.Contains(out, "───") {
		t.Errorf("expected box-drawing characters in ASCII output:\n%s", out)
	}
	if !strings.Contains(out, "ROUTINE") {
		t.Errorf("expected row value in output:\n%s", out)
	}
}

func TestMarkdownTable(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Step", "Total")
	tb.Row("F0", 100)
	tb.Footer("TOTAL", 300)
	out := tb.String()

	for _, want := range []string{"| Step", "---", "| F0", "300"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in markdown output:\n%s", want, out)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want format.Mode
	}{
		{"md", format.Markdown},
		{"markdown", format.Markdown},
		{"ascii", format.ASCII},
		{"", format.ASCII},
	}
	for _, tt := range tests {
		if got := format.ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "abc", format.Truncate("abc", 5))
	assert.Equal(t, "ab...", format.Truncate("abcdefgh", 5))
	assert.Equal(t, "ΔΔ", format.Truncate("ΔΔΔΔ", 2))
	assert.Equal(t, "✓", format.BoolMark(true))
	assert.Equal(t, "✗", format.BoolMark(false))
	assert.Equal(t, "+3", format.Signed(3))
	assert.Equal(t, "-2", format.Signed(-2))
	assert.Equal(t, "+0", format.Signed(0))
}

func TestLadderRanges(t *testing.T) {
	out := format.Ladder(escalation.Default(), format.Markdown)
	for _, want := range []string{"| 0-2 |", "| 10-14 |", "| 21+ |", "CONFLICT"} {
		assert.Contains(t, out, want)
	}
}

func TestPostures(t *testing.T) {
	out := format.Postures(format.Markdown)
	assert.Contains(t, out, "PEACETIME")
	assert.Contains(t, out, "| 15 |")
	assert.Contains(t, out, "unbounded")
}

func TestBoard(t *testing.T) {
	b := scoring.NewBoard()
	require.NoError(t, b.Apply(model.Blue, scoring.Delta{scoring.Impact: 2, scoring.Political: 1}))
	require.NoError(t, b.Apply(model.Red, scoring.Delta{scoring.Escalation: -3}))

	out := format.Board(b.Snapshot(), format.Markdown)
	assert.Contains(t, out, "| BLUE | +2 | +0 | +0 | +1 | +0 | +3 |")
	assert.Contains(t, out, "| RED | +0 | -3 | +0 | +0 | +0 | -3 |")
}

func TestGameLog(t *testing.T) {
	g, err := game.New(game.Options{Scenario: "Shoal", Posture: model.Peacetime})
	require.NoError(t, err)
	_, err = g.Advance(game.TurnInput{RedLabel: "swarm", BlueLabel: "shadow", EscalationDelta: 4})
	require.NoError(t, err)
	_, err = g.Advance(game.TurnInput{RedLabel: "ram", BlueLabel: "warn", EscalationDelta: 4})
	require.NoError(t, err)

	out := format.GameLog(g.Log(), format.Markdown)
	assert.Contains(t, out, "Game Log: Shoal")
	assert.Contains(t, out, "POSTURING ⚠")
	assert.Contains(t, out, "PROVOCATION ⚠")
	assert.Contains(t, out, "PEACETIME !")
	assert.Equal(t, 1, strings.Count(out, "PEACETIME !"))
}

func TestDemos(t *testing.T) {
	reg, err := registry.Builtin()
	require.NoError(t, err)

	out := format.Demos(reg, format.ASCII)
	for _, id := range reg.IDs() {
		assert.Contains(t, out, string(id))
	}
	assert.Contains(t, out, "✓")
}

func TestArchive(t *testing.T) {
	out := format.Archive([]store.Summary{{
		ID: "g1", Scenario: "Shoal", CreatedUTC: "2025-01-01T00:00:00Z",
		Turns: 4, FinalIndex: 13, FinalLevel: "CONFRONTATION", ThresholdAlerts: 3,
	}}, format.Markdown)
	assert.Contains(t, out, "| g1 | Shoal |")
	assert.Contains(t, out, "13 CONFRONTATION")
}
