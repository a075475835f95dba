package escalation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/ppiankov/oodakit/internal/model"
)

// ErrUnknownPosture is returned when a posture name is not in the table.
var ErrUnknownPosture = errors.New("unknown ROE posture")

// Unbounded is the MaxEscalation of a posture with no ceiling.
const Unbounded = math.MaxInt

// unboundedWire is how an unbounded ceiling is written in demo output.
const unboundedWire = 999

// ROEPosture is a rules-of-engagement regime bounding permissible escalation.
type ROEPosture struct {
	Name          model.ROEPostureName `json:"name"`
	Description   string               `json:"description"`
	MaxEscalation int                  `json:"-"`
}

var postures = []ROEPosture{
	{
		Name:          model.Peacetime,
		Description:   "Normal peacetime ROE. Defensive weapons release only.",
		MaxEscalation: 6,
	},
	{
		Name:          model.Elevated,
		Description:   "Elevated threat ROE. Active self-defense authorized.",
		MaxEscalation: 15,
	},
	{
		Name:          model.WeaponsFree,
		Description:   "Weapons free within designated zone. Hostile act/intent criteria met.",
		MaxEscalation: Unbounded,
	},
}

// Postures returns all postures from most to least restrictive.
func Postures() []ROEPosture {
	out := make([]ROEPosture, len(postures))
	copy(out, postures)
	return out
}

// Posture returns the posture with the given name.
func Posture(name model.ROEPostureName) (ROEPosture, error) {
	for _, p := range postures {
		if p.Name == name {
			return p, nil
		}
	}
	return ROEPosture{}, fmt.Errorf("%w: %d", ErrUnknownPosture, int(name))
}

// PostureByLabel resolves a wire label such as "ELEVATED".
func PostureByLabel(label string) (ROEPosture, error) {
	name, err := model.ParseROEPosture(label)
	if err != nil {
		return ROEPosture{}, fmt.Errorf("%w: %q", ErrUnknownPosture, label)
	}
	return Posture(name)
}

// Exceeded reports whether index is above the posture's ceiling.
func (p ROEPosture) Exceeded(index int) bool {
	return index > p.MaxEscalation
}

// Bounded reports whether the posture has a finite ceiling.
func (p ROEPosture) Bounded() bool {
	return p.MaxEscalation != Unbounded
}

// WireMax returns MaxEscalation as written in logs and dashboards.
func (p ROEPosture) WireMax() int {
	if !p.Bounded() {
		return unboundedWire
	}
	return p.MaxEscalation
}

// MinimumPosture returns the most restrictive posture whose ceiling admits index.
func MinimumPosture(index int) ROEPosture {
	for _, p := range postures {
		if !p.Exceeded(index) {
			return p
		}
	}
	return postures[len(postures)-1]
}

// MarshalJSON writes the ceiling in its wire form.
func (p ROEPosture) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name          model.ROEPostureName `json:"name"`
		Description   string               `json:"description"`
		MaxEscalation int                  `json:"max_escalation"`
	}{p.Name, p.Description, p.WireMax()})
}
