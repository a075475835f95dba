package scoring

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/oodakit/internal/model"
)

func TestDimensionsFixedOrder(t *testing.T) {
	want := []Dimension{Impact, Escalation, Communication, Political, Resource}
	if diff := cmp.Diff(want, Dimensions()); diff != "" {
		t.Errorf("Dimensions() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDimension(t *testing.T) {
	d, err := ParseDimension("political")
	require.NoError(t, err)
	assert.Equal(t, Political, d)

	_, err = ParseDimension("morale")
	assert.ErrorIs(t, err, ErrUnknownDimension)
}

func TestApplyAccumulates(t *testing.T) {
	s := NewSheet()
	s.Apply(Delta{Impact: 2, Escalation: 1})
	s.Apply(Delta{Impact: -1, Resource: 3})

	want := Sheet{Impact: 1, Escalation: 1, Communication: 0, Political: 0, Resource: 3}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("sheet mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEmptyDeltaIsNoop(t *testing.T) {
	s := NewSheet()
	s.Apply(Delta{Political: -2})
	before := s.Snapshot()

	s.Apply(Delta{})
	s.Apply(nil)

	assert.Equal(t, before, s)
}

func TestApplyDoesNotClamp(t *testing.T) {
	s := NewSheet()
	for i := 0; i < 10; i++ {
		s.Apply(Delta{Impact: 3})
	}
	assert.Equal(t, 30, s[Impact])
}

func TestSnapshotIndependent(t *testing.T) {
	s := NewSheet()
	snap := s.Snapshot()
	s.Apply(Delta{Impact: 1})
	assert.Equal(t, 0, snap[Impact])
}

func TestValidateDelta(t *testing.T) {
	tests := []struct {
		name  string
		delta Delta
		want  error
	}{
		{"empty", Delta{}, nil},
		{"bounds", Delta{Impact: -3, Resource: 3}, nil},
		{"above", Delta{Political: 4}, ErrDeltaOutOfRange},
		{"below", Delta{Communication: -4}, ErrDeltaOutOfRange},
		{"unknown", Delta{Dimension("morale"): 1}, ErrUnknownDimension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDelta(tt.delta)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateDeltaReportsFirstDimension(t *testing.T) {
	err := ValidateDelta(Delta{Resource: 9, Impact: 7})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "impact=7")
}

func TestTotalAndOrdered(t *testing.T) {
	s := Sheet{Impact: 1, Escalation: -2, Communication: 0, Political: 4, Resource: 3}
	assert.Equal(t, 6, s.Total())
	assert.Equal(t, []int{1, -2, 0, 4, 3}, s.Ordered())
}

func TestBoardApply(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.Apply(model.Blue, Delta{Impact: 2}))
	require.NoError(t, b.Apply(model.Red, Delta{Escalation: 3}))

	assert.Equal(t, 2, b.Blue[Impact])
	assert.Equal(t, 0, b.Red[Impact])
	assert.Equal(t, 3, b.Red[Escalation])
}

func TestBoardRejectsWithoutMutating(t *testing.T) {
	b := NewBoard()
	err := b.Apply(model.Blue, Delta{Impact: 2, Political: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDeltaOutOfRange))
	assert.Equal(t, NewSheet(), b.Blue)
}

func TestBoardUnknownSide(t *testing.T) {
	b := NewBoard()
	err := b.Apply(model.Gray, Delta{Impact: 1})
	assert.ErrorIs(t, err, ErrUnknownSide)
}

func TestZeroBoardApply(t *testing.T) {
	var b Board
	require.NoError(t, b.Apply(model.Red, Delta{Resource: -2}))
	assert.Equal(t, -2, b.Red[Resource])
	assert.Equal(t, -2, b.Red.Total())
	assert.Nil(t, b.Blue)
}
