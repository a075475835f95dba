package scenario

import (
	"github.com/ppiankov/oodakit/internal/game"
	"github.com/ppiankov/oodakit/internal/model"
	"github.com/ppiankov/oodakit/internal/scoring"
)

// Turn is one scripted turn with optional expectations.
type Turn struct {
	DTG               string                 `yaml:"dtg,omitempty"`
	Red               string                 `yaml:"red"`
	Blue              string                 `yaml:"blue"`
	Escalation        int                    `yaml:"escalation"`
	BlueDelta         scoring.Delta          `yaml:"blue_delta,omitempty"`
	RedDelta          scoring.Delta          `yaml:"red_delta,omitempty"`
	Posture           *model.ROEPostureName  `yaml:"posture,omitempty"`
	ExpectLevel       *model.EscalationLevel `yaml:"expect_level,omitempty"`
	ExpectCrossing    *bool                  `yaml:"expect_crossing,omitempty"`
	ExpectROEExceeded *bool                  `yaml:"expect_roe_exceeded,omitempty"`
	ExpectError       bool                   `yaml:"expect_error,omitempty"`
}

// Scenario is a named, scripted game replayed against the escalation model.
type Scenario struct {
	Name      string               `yaml:"name"`
	Title     string               `yaml:"title,omitempty"`
	Posture   model.ROEPostureName `yaml:"posture"`
	Monotonic bool                 `yaml:"monotonic,omitempty"`
	Turns     []Turn               `yaml:"turns"`
}

// CaseResult is the outcome of one scripted turn.
type CaseResult struct {
	Index    int    `json:"index"`
	Passed   bool   `json:"passed"`
	Red      string `json:"red"`
	Blue     string `json:"blue"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Reason   string `json:"reason,omitempty"`
}

// RunResult is the outcome of replaying one scenario file.
type RunResult struct {
	File   string       `json:"file"`
	Name   string       `json:"name"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Cases  []CaseResult `json:"cases"`
	Log    game.GameLog `json:"-"`
}
