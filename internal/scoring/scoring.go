// Package scoring implements the five-axis action rubric and the per-side
// cumulative score sheets it feeds.
package scoring

import (
	"errors"
	"fmt"
)

var (
	// ErrDeltaOutOfRange is returned when a per-action delta leaves Range.
	ErrDeltaOutOfRange = errors.New("score delta out of range")
	// ErrUnknownDimension is returned for a dimension outside the rubric.
	ErrUnknownDimension = errors.New("unknown scoring dimension")
)

// Dimension is one axis of the scoring rubric.
type Dimension string

const (
	Impact        Dimension = "impact"
	Escalation    Dimension = "escalation"
	Communication Dimension = "communication"
	Political     Dimension = "political"
	Resource      Dimension = "resource"
)

var dimensions = []Dimension{Impact, Escalation, Communication, Political, Resource}

// Dimensions returns the rubric axes in their fixed display order.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensions))
	copy(out, dimensions)
	return out
}

// Valid reports whether d is one of the five rubric axes.
func (d Dimension) Valid() bool {
	for _, v := range dimensions {
		if v == d {
			return true
		}
	}
	return false
}

// ParseDimension accepts a rubric axis name.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
	}
	return d, nil
}

// ScoreRange is a closed integer interval.
type ScoreRange struct {
	Min int
	Max int
}

// Range bounds a single action's score on any one dimension.
var Range = ScoreRange{Min: -3, Max: 3}

// Contains reports whether v lies within the closed interval.
func (r ScoreRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Delta is a per-turn score change keyed by dimension.
// Dimensions absent from the map are unchanged when applied.
type Delta map[Dimension]int

// ValidateDelta checks every value against Range. Dimensions are checked in
// rubric order so the reported dimension is deterministic.
// Callers must validate before Apply; Apply never clamps.
func ValidateDelta(delta Delta) error {
	for d := range delta {
		if !d.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownDimension, string(d))
		}
	}
	for _, d := range dimensions {
		v, ok := delta[d]
		if !ok {
			continue
		}
		if !Range.Contains(v) {
			return fmt.Errorf("%w: %s=%d not in [%d, %d]", ErrDeltaOutOfRange, d, v, Range.Min, Range.Max)
		}
	}
	return nil
}
