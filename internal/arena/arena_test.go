package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_AppendGet(t *testing.T) {
	a := New()
	s := NewSlot[int](a, 4)

	assert.Equal(t, uint32(0), s.Append(10))
	assert.Equal(t, uint32(1), s.Append(11, 12))
	assert.Equal(t, 3, s.Len())

	require.NotNil(t, s.Get(2))
	assert.Equal(t, 12, *s.Get(2))
	assert.Nil(t, s.Get(3))
	assert.Equal(t, []int{10, 11, 12}, s.Items())
}

func TestSlot_ResetBumpsGeneration(t *testing.T) {
	a := New()
	s := NewSlot[float64](a, 0)
	s.Append(1, 2, 3)
	old := s.Get(1)

	gen := s.Generation()
	s.Reset(8)
	assert.Equal(t, gen+1, s.Generation())
	assert.Equal(t, 0, s.Len())
	assert.GreaterOrEqual(t, s.Cap(), 8)
	assert.Nil(t, s.Get(1))

	// pointers taken before the reset keep the old element
	require.NotNil(t, old)
	assert.InDelta(t, 2.0, *old, 0)
}

func TestArena_Stats(t *testing.T) {
	a := New()
	s1 := NewSlot[int](a, 10)
	s2 := NewSlot[byte](a, 0)
	s1.Append(1, 2)
	s2.Append(1)
	s2.Reset(0)

	st := a.Stats()
	assert.Equal(t, uint64(2), st.Slots)
	assert.Equal(t, uint64(2), st.Items)
	assert.Equal(t, uint64(1), st.Resets)
	assert.GreaterOrEqual(t, st.Reserved, uint64(10))
}
