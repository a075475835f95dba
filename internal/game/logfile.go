package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/oodakit/internal/rai"
)

// ErrNotSynthetic is returned when a loaded log lacks the synthetic-data
// markers.
var ErrNotSynthetic = errors.New("game log is not marked synthetic")

// SaveLog writes log as indented JSON, creating parent directories.
func SaveLog(path string, log GameLog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal game log: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write game log: %w", err)
	}
	return nil
}

// LoadLog reads a game log written by SaveLog.
func LoadLog(path string) (GameLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GameLog{}, fmt.Errorf("read game log: %w", err)
	}
	return ParseLog(data)
}

// ParseLog decodes a JSON game log and checks its synthetic markers.
func ParseLog(data []byte) (GameLog, error) {
	var log GameLog
	if err := json.Unmarshal(data, &log); err != nil {
		return GameLog{}, fmt.Errorf("parse game log: %w", err)
	}
	if !log.Synthetic || log.Disclaimer != rai.SyntheticDataDisclaimer {
		return GameLog{}, ErrNotSynthetic
	}
	return log, nil
}
