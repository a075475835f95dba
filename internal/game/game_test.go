package game

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/oodakit/internal/audit"
	"github.com/ppiankov/oodakit/internal/model"
	"github.com/ppiankov/oodakit/internal/scoring"
)

var start = time.Date(2025, 1, 2, 14, 30, 0, 0, time.UTC)

func newGame(t *testing.T, opts Options) *Game {
	t.Helper()
	if opts.Start.IsZero() {
		opts.Start = start
	}
	g, err := New(opts)
	require.NoError(t, err)
	return g
}

func TestAdvanceAccumulates(t *testing.T) {
	g := newGame(t, Options{Scenario: "Shoal Standoff", Posture: model.Peacetime})

	rec, err := g.Advance(TurnInput{
		RedLabel:        "Militia swarm",
		BlueLabel:       "Shadow with FFG",
		Blue:            scoring.Delta{scoring.Impact: 2, scoring.Escalation: -1},
		Red:             scoring.Delta{scoring.Political: 3},
		EscalationDelta: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Turn)
	assert.Equal(t, "021430Z JAN 25", rec.DTG)
	assert.Equal(t, model.Routine, rec.EscalationLevel)
	assert.False(t, rec.ThresholdCrossing)
	assert.False(t, rec.ROEExceeded)

	rec, err = g.Advance(TurnInput{
		Blue:            scoring.Delta{scoring.Impact: 1},
		EscalationDelta: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Turn)
	assert.Equal(t, "021830Z JAN 25", rec.DTG)
	assert.Equal(t, 7, rec.EscalationIndex)
	assert.Equal(t, model.Provocation, rec.EscalationLevel)
	assert.Equal(t, model.Routine, rec.PreviousLevel)
	assert.True(t, rec.ThresholdCrossing)
	assert.True(t, rec.ROEExceeded)
	assert.Equal(t, 3, rec.Blue[scoring.Impact])
	assert.Equal(t, -1, rec.Blue[scoring.Escalation])
	assert.Equal(t, 3, rec.Red[scoring.Political])

	assert.Equal(t, 7, g.Index())
	assert.Equal(t, model.Provocation, g.Level().Name)
}

func TestAdvanceRejectsBadDeltaWithoutMutation(t *testing.T) {
	g := newGame(t, Options{})
	before := g.Board()

	_, err := g.Advance(TurnInput{
		Blue:            scoring.Delta{scoring.Impact: 1},
		Red:             scoring.Delta{scoring.Resource: 4},
		EscalationDelta: 3,
	})
	require.ErrorIs(t, err, scoring.ErrDeltaOutOfRange)
	assert.Equal(t, 0, g.Index())
	assert.Empty(t, g.Log().Turns)
	if diff := cmp.Diff(before, g.Board()); diff != "" {
		t.Errorf("board changed (-before +after):\n%s", diff)
	}
}

func TestMonotonicRejectsDeescalation(t *testing.T) {
	g := newGame(t, Options{Monotonic: true})
	_, err := g.Advance(TurnInput{EscalationDelta: -1})
	assert.True(t, errors.Is(err, ErrDeescalation))
}

func TestIndexFloorsAtZero(t *testing.T) {
	g := newGame(t, Options{})
	_, err := g.Advance(TurnInput{EscalationDelta: 4})
	require.NoError(t, err)
	rec, err := g.Advance(TurnInput{EscalationDelta: -9})
	require.NoError(t, err)
	assert.Equal(t, 0, rec.EscalationIndex)
	assert.Equal(t, model.Routine, rec.EscalationLevel)
	assert.True(t, rec.ThresholdCrossing)
}

func TestIndexOverflowRejected(t *testing.T) {
	g := newGame(t, Options{})
	rec, err := g.Advance(TurnInput{EscalationDelta: math.MaxInt})
	require.NoError(t, err)
	assert.Equal(t, model.Conflict, rec.EscalationLevel)

	_, err = g.Advance(TurnInput{EscalationDelta: 1})
	require.ErrorIs(t, err, ErrIndexOverflow)
	assert.Equal(t, math.MaxInt, g.Index())
	assert.Equal(t, model.Conflict, g.Level().Name)
	assert.Len(t, g.Log().Turns, 1)
}

func TestJournalFailureLeavesGameUnchanged(t *testing.T) {
	j, err := audit.Open(filepath.Join(t.TempDir(), "journal.jsonl"))
	require.NoError(t, err)
	require.NoError(t, j.Close())

	g := newGame(t, Options{Journal: j})
	_, err = g.Advance(TurnInput{
		EscalationDelta: 4,
		Blue:            scoring.Delta{scoring.Impact: 2},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal")

	assert.Equal(t, 0, g.Index())
	assert.Empty(t, g.Log().Turns)
	assert.Equal(t, 0, g.Board().Blue[scoring.Impact])
}

func TestSetPosture(t *testing.T) {
	g := newGame(t, Options{Posture: model.Peacetime})
	_, err := g.Advance(TurnInput{EscalationDelta: 8})
	require.NoError(t, err)

	require.NoError(t, g.SetPosture(model.Elevated))
	rec, err := g.Advance(TurnInput{EscalationDelta: 1})
	require.NoError(t, err)
	assert.Equal(t, model.Elevated, rec.ROEPosture)
	assert.False(t, rec.ROEExceeded)

	assert.Error(t, g.SetPosture(model.ROEPostureName(42)))
}

func TestNewRejectsUnknownPosture(t *testing.T) {
	_, err := New(Options{Posture: model.ROEPostureName(9)})
	assert.Error(t, err)
}

func TestLogIsCopy(t *testing.T) {
	g := newGame(t, Options{ID: "fixed"})
	_, err := g.Advance(TurnInput{Blue: scoring.Delta{scoring.Impact: 1}})
	require.NoError(t, err)

	log := g.Log()
	assert.Equal(t, "fixed", log.ID)
	assert.True(t, log.Synthetic)
	log.Turns[0].Blue[scoring.Impact] = 99
	assert.Equal(t, 1, g.Log().Turns[0].Blue[scoring.Impact])
}

func TestGeneratedIDIsUUID(t *testing.T) {
	g := newGame(t, Options{})
	assert.Len(t, g.ID(), 36)
}

func TestJournalRecordsTurns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	j, err := audit.Open(path)
	require.NoError(t, err)

	g := newGame(t, Options{ID: "g1", Journal: j})
	_, err = g.Advance(TurnInput{RedLabel: "Laser dazzle", BlueLabel: "Protest", EscalationDelta: 16})
	require.NoError(t, err)
	_, err = g.Advance(TurnInput{EscalationDelta: 1})
	require.NoError(t, err)
	require.NoError(t, j.Close())

	assert.True(t, audit.Verify(path).Valid)

	res, err := audit.Replay(path, audit.ReplayFilter{GameID: "g1"})
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)
	first := res.Entries[0]
	assert.Equal(t, audit.KindTurn, first.Kind)
	assert.Equal(t, "RED: Laser dazzle / BLUE: Protest", first.Subject)
	assert.Equal(t, "CRISIS", first.EscalationLevel)
	assert.Contains(t, first.Detail, "threshold crossed ROUTINE -> CRISIS")
	assert.Contains(t, first.Detail, "exceeds PEACETIME ROE")
	assert.Equal(t, "exceeds PEACETIME ROE", res.Entries[1].Detail)
}

func TestSaveAndLoadLog(t *testing.T) {
	g := newGame(t, Options{Scenario: "AAR"})
	_, err := g.Advance(TurnInput{RedLabel: "r", BlueLabel: "b", Red: scoring.Delta{scoring.Communication: -2}, EscalationDelta: 3})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "demo2_game_log.json")
	require.NoError(t, SaveLog(path, g.Log()))

	loaded, err := LoadLog(path)
	require.NoError(t, err)
	if diff := cmp.Diff(g.Log(), loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"escalation_level": "POSTURING"`)
	assert.Contains(t, string(data), `"roe_posture": "PEACETIME"`)
}

func TestParseLogRequiresSyntheticMarker(t *testing.T) {
	_, err := ParseLog([]byte(`{"id":"x","scenario":"s","turns":[]}`))
	assert.ErrorIs(t, err, ErrNotSynthetic)

	_, err = ParseLog([]byte(`not json`))
	assert.Error(t, err)
}

func TestFormatDTG(t *testing.T) {
	got := FormatDTG(time.Date(2024, 11, 5, 3, 7, 0, 0, time.FixedZone("X", -3600)))
	if got != "050407Z NOV 24" {
		t.Errorf("FormatDTG() = %q, want %q", got, "050407Z NOV 24")
	}
}
