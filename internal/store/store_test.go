package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/oodakit/internal/game"
	"github.com/ppiankov/oodakit/internal/model"
	"github.com/ppiankov/oodakit/internal/scoring"
)

func openArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func playedGame(t *testing.T, id string, deltas ...int) game.GameLog {
	t.Helper()
	g, err := game.New(game.Options{
		ID:       id,
		Scenario: "Shoal " + id,
		Posture:  model.Elevated,
		Start:    time.Date(2025, 2, 1, 6, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	for _, d := range deltas {
		_, err := g.Advance(game.TurnInput{
			RedLabel:        "red move",
			BlueLabel:       "blue move",
			Blue:            scoring.Delta{scoring.Impact: 1},
			Red:             scoring.Delta{scoring.Political: -1},
			EscalationDelta: d,
		})
		require.NoError(t, err)
	}
	return g.Log()
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	a := openArchive(t)
	log := playedGame(t, "g1", 2, 4, 5)

	require.NoError(t, a.SaveGame(log))

	got, err := a.LoadGame("g1")
	require.NoError(t, err)
	if diff := cmp.Diff(log, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadUnknown(t *testing.T) {
	a := openArchive(t)
	_, err := a.LoadGame("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListGamesInSaveOrder(t *testing.T) {
	a := openArchive(t)
	require.NoError(t, a.SaveGame(playedGame(t, "second-id", 3, 4)))
	require.NoError(t, a.SaveGame(playedGame(t, "first-id")))

	list, err := a.ListGames()
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, Summary{
		ID:              "second-id",
		Scenario:        "Shoal second-id",
		CreatedUTC:      "2025-02-01T06:00:00Z",
		Turns:           2,
		FinalIndex:      7,
		FinalLevel:      "PROVOCATION",
		ThresholdAlerts: 2,
	}, list[0])
	assert.Equal(t, "first-id", list[1].ID)
	assert.Equal(t, 0, list[1].Turns)
	assert.Equal(t, "", list[1].FinalLevel)
}

func TestSaveReplacesExisting(t *testing.T) {
	a := openArchive(t)
	require.NoError(t, a.SaveGame(playedGame(t, "g1", 1)))
	require.NoError(t, a.SaveGame(playedGame(t, "g1", 1, 1, 1)))

	list, err := a.ListGames()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].Turns)
	assert.Equal(t, 1, list[0].ThresholdAlerts)
}

func TestDeleteGame(t *testing.T) {
	a := openArchive(t)
	require.NoError(t, a.SaveGame(playedGame(t, "g1", 2)))

	require.NoError(t, a.DeleteGame("g1"))
	_, err := a.LoadGame("g1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, a.DeleteGame("g1"), ErrNotFound)
}

func TestInMemoryArchive(t *testing.T) {
	a, err := Open(":memory:")
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.SaveGame(playedGame(t, "mem", 1)))
	list, err := a.ListGames()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
