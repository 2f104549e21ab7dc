package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplex_OrderIndependent(t *testing.T) {
	assert.Equal(t, Simplex2(4, 9), Simplex2(9, 4))

	want := Simplex3(1, 2, 3)
	for _, perm := range [][3]uint32{{1, 3, 2}, {2, 1, 3}, {2, 3, 1}, {3, 1, 2}, {3, 2, 1}} {
		assert.Equal(t, want, Simplex3(perm[0], perm[1], perm[2]), "perm %v", perm)
	}

	assert.Equal(t, Simplex4(1, 2, 3, 4), Simplex4(4, 3, 2, 1))
	assert.Equal(t, Simplex(7, 5), Simplex2(5, 7))
}

func TestSimplex_Distinguishes(t *testing.T) {
	assert.NotEqual(t, Simplex2(1, 2), Simplex2(1, 3))
	assert.NotEqual(t, Simplex3(0, 1, 2), Simplex3(0, 1, 3))
}

func TestCanonical(t *testing.T) {
	k := Canonical(9, 2, 5)
	assert.Equal(t, uint8(3), k.N)
	assert.Equal(t, [MaxArity]uint32{2, 5, 9, 0}, k.V)
	assert.Equal(t, Canonical(5, 9, 2), k)
	assert.Equal(t, Simplex3(2, 5, 9), k.Hash())

	// Same ids, different arity: never equal.
	assert.NotEqual(t, Canonical(0, 1), Canonical(0, 1, 0))

	require.Panics(t, func() { Canonical(1, 2, 3, 4, 5) })
}

func TestPair(t *testing.T) {
	assert.Equal(t, Pair(3, 11), Pair(11, 3))
	assert.NotEqual(t, Pair(1, 2), Pair(1, 3))
	assert.Equal(t, uint64(3)<<32|11, Pair(11, 3))
}

func TestCRC32C(t *testing.T) {
	data := []byte("meshgo snapshot payload")
	h := NewCRC32C()
	_, _ = h.Write(data[:5])
	_, _ = h.Write(data[5:])
	assert.Equal(t, CRC32C(data), h.Sum32())
}
