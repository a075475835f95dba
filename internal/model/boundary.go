package model

import "fmt"

// EscalationLevel is a named rung on the escalation ladder.
// Ordered: a higher value is a more severe level.
type EscalationLevel int

const (
	Routine EscalationLevel = iota
	Posturing
	Provocation
	Confrontation
	Crisis
	Conflict
)

var escalationLabels = labelSet[EscalationLevel]{
	Routine:       "ROUTINE",
	Posturing:     "POSTURING",
	Provocation:   "PROVOCATION",
	Confrontation: "CONFRONTATION",
	Crisis:        "CRISIS",
	Conflict:      "CONFLICT",
}

// EscalationLevels returns every level in ladder order.
func EscalationLevels() []EscalationLevel {
	return escalationLabels.ordered()
}

func (l EscalationLevel) String() string {
	if s, ok := escalationLabels[l]; ok {
		return s
	}
	return "UNKNOWN"
}

// Valid reports whether l is one of the six ladder levels.
func (l EscalationLevel) Valid() bool {
	_, ok := escalationLabels[l]
	return ok
}

// ParseEscalationLevel maps a wire label (e.g. "CRISIS") to its level.
func ParseEscalationLevel(s string) (EscalationLevel, error) {
	return escalationLabels.parse("escalation level", s)
}

func (l EscalationLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid escalation level %d", int(l))
	}
	return []byte(l.String()), nil
}

func (l *EscalationLevel) UnmarshalText(b []byte) error {
	v, err := ParseEscalationLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// ROEPostureName identifies a rules-of-engagement posture.
// Ordered from least to most permissive.
type ROEPostureName int

const (
	Peacetime ROEPostureName = iota
	Elevated
	WeaponsFree
)

var postureLabels = labelSet[ROEPostureName]{
	Peacetime:   "PEACETIME",
	Elevated:    "ELEVATED",
	WeaponsFree: "WEAPONS_FREE",
}

func (p ROEPostureName) String() string {
	if s, ok := postureLabels[p]; ok {
		return s
	}
	return "UNKNOWN"
}

// ParseROEPosture maps a wire label (e.g. "WEAPONS_FREE") to its posture.
func ParseROEPosture(s string) (ROEPostureName, error) {
	return postureLabels.parse("ROE posture", s)
}

func (p ROEPostureName) MarshalText() ([]byte, error) {
	if _, ok := postureLabels[p]; !ok {
		return nil, fmt.Errorf("invalid ROE posture %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *ROEPostureName) UnmarshalText(b []byte) error {
	v, err := ParseROEPosture(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
