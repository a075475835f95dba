package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ReplayFilter selects entries for replay. Empty fields match everything.
type ReplayFilter struct {
	GameID string
	Kind   Kind
}

// ReplaySummary holds counts and extremes for a replayed game.
type ReplaySummary struct {
	Total          int    `json:"total"`
	Turns          int    `json:"turns"`
	Decisions      int    `json:"decisions"`
	Accepted       int    `json:"accepted"`
	Rejected       int    `json:"rejected"`
	Validations    int    `json:"validations"`
	MaxEscalation  int    `json:"max_escalation"`
	FirstTimestamp string `json:"first_timestamp"`
	LastTimestamp  string `json:"last_timestamp"`
}

// ReplayResult holds filtered entries and their summary.
type ReplayResult struct {
	GameID  string        `json:"game_id"`
	Entries []Entry       `json:"entries"`
	Summary ReplaySummary `json:"summary"`
}

// Replay reads the journal and returns the entries matching filter.
// Malformed lines are skipped.
func Replay(path string, filter ReplayFilter) (*ReplayResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	result := &ReplayResult{GameID: filter.GameID}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		if filter.GameID != "" && entry.GameID != filter.GameID {
			continue
		}
		if filter.Kind != "" && entry.Kind != filter.Kind {
			continue
		}
		result.Entries = append(result.Entries, entry)
		updateSummary(&result.Summary, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return result, nil
}

func updateSummary(s *ReplaySummary, entry Entry) {
	s.Total++

	switch entry.Kind {
	case KindTurn:
		s.Turns++
	case KindDecision:
		s.Decisions++
		switch strings.ToLower(entry.Decision) {
		case "accept":
			s.Accepted++
		case "reject":
			s.Rejected++
		}
	case KindValidation:
		s.Validations++
	}

	if entry.EscalationIndex > s.MaxEscalation {
		s.MaxEscalation = entry.EscalationIndex
	}
	if s.FirstTimestamp == "" {
		s.FirstTimestamp = entry.Timestamp
	}
	s.LastTimestamp = entry.Timestamp
}
