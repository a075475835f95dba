package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ppiankov/oodakit/internal/game"
)

// SaveGame stores log, replacing any earlier copy with the same ID.
func (a *Archive) SaveGame(log game.GameLog) error {
	payload, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("marshal game %s: %w", log.ID, err)
	}

	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := deleteGame(tx, log.ID); err != nil {
		return fmt.Errorf("replace game %s: %w", log.ID, err)
	}
	if _, err := tx.Exec(
		`INSERT INTO games (id, scenario, created_utc, payload) VALUES (?, ?, ?, ?)`,
		log.ID, log.Scenario, log.CreatedUTC, string(payload),
	); err != nil {
		return fmt.Errorf("insert game %s: %w", log.ID, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO turns (
    game_id, turn, dtg, red_label, blue_label, escalation_delta,
    escalation_index, escalation_level, threshold_crossing, roe_posture, roe_exceeded
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare turns: %w", err)
	}
	defer stmt.Close()

	for _, t := range log.Turns {
		if _, err := stmt.Exec(
			log.ID, t.Turn, t.DTG, t.RedLabel, t.BlueLabel, t.EscalationDelta,
			t.EscalationIndex, t.EscalationLevel.String(), boolInt(t.ThresholdCrossing),
			t.ROEPosture.String(), boolInt(t.ROEExceeded),
		); err != nil {
			return fmt.Errorf("insert turn %d of %s: %w", t.Turn, log.ID, err)
		}
	}

	return tx.Commit()
}

// LoadGame returns the stored log for id.
func (a *Archive) LoadGame(id string) (game.GameLog, error) {
	var payload string
	err := a.db.QueryRow(`SELECT payload FROM games WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return game.GameLog{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return game.GameLog{}, fmt.Errorf("load game %s: %w", id, err)
	}
	return game.ParseLog([]byte(payload))
}

// ListGames summarizes every archived game in the order they were saved.
func (a *Archive) ListGames() ([]Summary, error) {
	rows, err := a.db.Query(`
SELECT g.id, g.scenario, g.created_utc,
       COUNT(t.turn),
       COALESCE((SELECT escalation_index FROM turns WHERE game_id = g.id ORDER BY turn DESC LIMIT 1), 0),
       COALESCE((SELECT escalation_level FROM turns WHERE game_id = g.id ORDER BY turn DESC LIMIT 1), ''),
       COALESCE(SUM(t.threshold_crossing), 0)
FROM games g
LEFT JOIN turns t ON t.game_id = g.id
GROUP BY g.seq
ORDER BY g.seq`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Scenario, &s.CreatedUTC, &s.Turns,
			&s.FinalIndex, &s.FinalLevel, &s.ThresholdAlerts); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteGame removes a game and its turns.
func (a *Archive) DeleteGame(id string) error {
	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM games WHERE id = ?`, id).Scan(&n); err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := deleteGame(tx, id); err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	return tx.Commit()
}

func deleteGame(tx *sql.Tx, id string) error {
	if _, err := tx.Exec(`DELETE FROM turns WHERE game_id = ?`, id); err != nil {
		return err
	}
	_, err := tx.Exec(`DELETE FROM games WHERE id = ?`, id)
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
