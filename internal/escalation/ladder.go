// Package escalation maps a cumulative escalation index to a named level
// on the escalation ladder and bounds it by rules-of-engagement postures.
package escalation

import (
	"errors"
	"fmt"

	"github.com/ppiankov/oodakit/internal/model"
)

var (
	// ErrInvalidIndex is returned by CheckIndex for a negative index.
	ErrInvalidIndex = errors.New("escalation index must be non-negative")
	// ErrInvalidLadder is returned by NewLadder when a table breaks ordering.
	ErrInvalidLadder = errors.New("invalid escalation ladder")
)

// Step is one rung of the ladder. Color is display-only.
type Step struct {
	Level     int                   `json:"level" yaml:"level"`
	Name      model.EscalationLevel `json:"name" yaml:"name"`
	Threshold int                   `json:"threshold" yaml:"threshold"`
	Color     string                `json:"color" yaml:"color"`
}

// Ladder is an immutable, threshold-ordered escalation table. The zero
// value, and a nil *Ladder, behave as the default ladder.
type Ladder struct {
	steps []Step
}

func (l *Ladder) table() []Step {
	if l == nil || len(l.steps) == 0 {
		return defaultLadder.steps
	}
	return l.steps
}

var defaultLadder = &Ladder{steps: []Step{
	{Level: 0, Name: model.Routine, Threshold: 0, Color: "#2ea043"},
	{Level: 1, Name: model.Posturing, Threshold: 3, Color: "#7dc434"},
	{Level: 2, Name: model.Provocation, Threshold: 6, Color: "#d4a72c"},
	{Level: 3, Name: model.Confrontation, Threshold: 10, Color: "#db6d28"},
	{Level: 4, Name: model.Crisis, Threshold: 15, Color: "#da3633"},
	{Level: 5, Name: model.Conflict, Threshold: 21, Color: "#8b0000"},
}}

// Default returns the shared ladder used by the gray-zone and AAR demos.
func Default() *Ladder {
	return defaultLadder
}

// NewLadder validates steps and returns a ladder that owns a copy of them.
// The first threshold must be 0, thresholds must strictly increase, and each
// step's Level must equal its position.
func NewLadder(steps []Step) (*Ladder, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidLadder)
	}
	if steps[0].Threshold != 0 {
		return nil, fmt.Errorf("%w: first threshold is %d, want 0", ErrInvalidLadder, steps[0].Threshold)
	}
	for i, s := range steps {
		if s.Level != i {
			return nil, fmt.Errorf("%w: step %d has level %d", ErrInvalidLadder, i, s.Level)
		}
		if !s.Name.Valid() {
			return nil, fmt.Errorf("%w: step %d has unknown name %d", ErrInvalidLadder, i, int(s.Name))
		}
		if i > 0 && s.Threshold <= steps[i-1].Threshold {
			return nil, fmt.Errorf("%w: threshold %d at step %d does not exceed %d",
				ErrInvalidLadder, s.Threshold, i, steps[i-1].Threshold)
		}
	}

	owned := make([]Step, len(steps))
	copy(owned, steps)
	return &Ladder{steps: owned}, nil
}

// Steps returns a copy of the ladder in threshold order.
func (l *Ladder) Steps() []Step {
	steps := l.table()
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// Lookup returns the last step whose threshold does not exceed index.
// A negative index resolves to the first step, matching a pre-seeded scan.
func (l *Ladder) Lookup(index int) Step {
	steps := l.table()
	result := steps[0]
	for _, s := range steps {
		if index >= s.Threshold {
			result = s
		}
	}
	return result
}

// Next returns the step above the one index resolves to and how many
// index points remain until it is reached. ok is false at the top rung.
func (l *Ladder) Next(index int) (next Step, remaining int, ok bool) {
	steps := l.table()
	cur := l.Lookup(index)
	if cur.Level+1 >= len(steps) {
		return Step{}, 0, false
	}
	next = steps[cur.Level+1]
	if index < 0 {
		index = 0
	}
	return next, next.Threshold - index, true
}

// ByName returns the step carrying the given level name.
func (l *Ladder) ByName(name model.EscalationLevel) (Step, bool) {
	for _, s := range l.table() {
		if s.Name == name {
			return s, true
		}
	}
	return Step{}, false
}

// Lookup resolves index against the default ladder.
func Lookup(index int) Step {
	return defaultLadder.Lookup(index)
}

// CheckIndex rejects a negative cumulative index. Lookup never fails; use
// this when a caller wants negative totals surfaced instead of clamped.
func CheckIndex(index int) error {
	if index < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidIndex, index)
	}
	return nil
}

// Crossing reports whether moving from prev to next changes the ladder rung.
func (l *Ladder) Crossing(prev, next int) (from, to Step, crossed bool) {
	from = l.Lookup(prev)
	to = l.Lookup(next)
	return from, to, from.Level != to.Level
}

// Crossing evaluates a transition on the default ladder.
func Crossing(prev, next int) (from, to Step, crossed bool) {
	return defaultLadder.Crossing(prev, next)
}
