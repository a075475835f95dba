package audit

import "github.com/ppiankov/oodakit/internal/scoring"

// Kind classifies a journal entry.
type Kind string

const (
	KindTurn       Kind = "turn"
	KindDecision   Kind = "decision"
	KindValidation Kind = "validation"
)

// Entry is one line in the hash-chained JSONL decision journal.
// Score sheets are maps; json.Marshal sorts their keys, so lines hash
// reproducibly.
type Entry struct {
	Timestamp       string        `json:"ts"`
	GameID          string        `json:"game_id"`
	Kind            Kind          `json:"kind"`
	Turn            int           `json:"turn,omitempty"`
	Subject         string        `json:"subject"`
	Decision        string        `json:"decision"`
	Detail          string        `json:"detail,omitempty"`
	EscalationIndex int           `json:"escalation_index"`
	EscalationLevel string        `json:"escalation_level,omitempty"`
	Blue            scoring.Sheet `json:"blue,omitempty"`
	Red             scoring.Sheet `json:"red,omitempty"`
	PrevHash        string        `json:"prev_hash"`
}
