package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNGDeterministic(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)
	for i := 0; i < 50; i++ {
		ra, rb := a.RollD6(2), b.RollD6(2)
		assert.Equal(t, ra, rb)
		assert.GreaterOrEqual(t, ra.Total, 2)
		assert.LessOrEqual(t, ra.Total, 12)
	}
}

func TestRollD6Faces(t *testing.T) {
	src := NewSource(7)
	r := src.RollD6(3)
	require.Len(t, r.Dice, 3)
	sum := 0
	for _, d := range r.Dice {
		assert.True(t, d >= 1 && d <= 6, "face out of range: %d", d)
		sum += d
	}
	assert.Equal(t, sum, r.Total)
}

func TestSetGenerator(t *testing.T) {
	t.Cleanup(func() { _ = SetGenerator(GeneratorPCG) })

	require.NoError(t, SetGenerator(GeneratorChaCha8))
	assert.Equal(t, GeneratorChaCha8, CurrentGenerator())
	r := NewSource(1).RollD6(2)
	assert.Len(t, r.Dice, 2)

	err := SetGenerator("mersenne")
	assert.ErrorIs(t, err, ErrUnknownGenerator)
	assert.Equal(t, GeneratorChaCha8, CurrentGenerator())
}

func TestScripted(t *testing.T) {
	s := NewScripted(6, 5)
	s.PushTotals(7)
	assert.Equal(t, 11, Roll2d6(s))
	r := s.RollD6(2)
	assert.Equal(t, []int{3, 4}, r.Dice)
	assert.Equal(t, 0, s.Remaining())
	assert.Equal(t, 1, Roll1d6(s))
}

func TestRollString(t *testing.T) {
	assert.Equal(t, "9 (4+5)", Roll{Dice: []int{4, 5}, Total: 9}.String())
	assert.Equal(t, "3", Roll{Dice: []int{3}, Total: 3}.String())
}
