package scoring

import (
	"errors"
	"fmt"

	"github.com/ppiankov/oodakit/internal/model"
)

// ErrUnknownSide is returned by Board for sides that do not keep a sheet.
var ErrUnknownSide = errors.New("side has no score sheet")

// Sheet holds one side's cumulative score per dimension.
type Sheet map[Dimension]int

// NewSheet returns a sheet with every dimension at zero.
func NewSheet() Sheet {
	s := make(Sheet, len(dimensions))
	for _, d := range dimensions {
		s[d] = 0
	}
	return s
}

// Apply adds delta to the sheet in place. Totals are unbounded. A nil
// sheet cannot be written; use NewSheet.
func (s Sheet) Apply(delta Delta) {
	for d, v := range delta {
		s[d] += v
	}
}

// Snapshot returns an independent copy of the sheet.
func (s Sheet) Snapshot() Sheet {
	out := make(Sheet, len(s))
	for d, v := range s {
		out[d] = v
	}
	return out
}

// Total is the sum across all dimensions.
func (s Sheet) Total() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// Ordered returns the sheet's values in rubric order.
func (s Sheet) Ordered() []int {
	out := make([]int, len(dimensions))
	for i, d := range dimensions {
		out[i] = s[d]
	}
	return out
}

// Board keeps the BLUE and RED sheets for one scenario run. A zero Board
// starts both sheets empty on first use.
type Board struct {
	Blue Sheet `json:"blue"`
	Red  Sheet `json:"red"`
}

// NewBoard returns a board with both sheets at zero.
func NewBoard() *Board {
	return &Board{Blue: NewSheet(), Red: NewSheet()}
}

// Sheet returns the live sheet for side.
func (b *Board) Sheet(side model.Side) (Sheet, error) {
	switch side {
	case model.Blue:
		if b.Blue == nil {
			b.Blue = NewSheet()
		}
		return b.Blue, nil
	case model.Red:
		if b.Red == nil {
			b.Red = NewSheet()
		}
		return b.Red, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSide, side)
	}
}

// Apply validates delta and adds it to side's sheet. A rejected delta
// leaves the board untouched.
func (b *Board) Apply(side model.Side, delta Delta) error {
	sheet, err := b.Sheet(side)
	if err != nil {
		return err
	}
	if err := ValidateDelta(delta); err != nil {
		return fmt.Errorf("%s delta: %w", side, err)
	}
	sheet.Apply(delta)
	return nil
}

// Snapshot returns a deep copy of the board.
func (b *Board) Snapshot() Board {
	return Board{Blue: b.Blue.Snapshot(), Red: b.Red.Snapshot()}
}
