package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMesh(t *testing.T, dim, top int, points ...[]float64) *Mesh {
	t.Helper()
	m, err := New(dim, top)
	require.NoError(t, err)
	for _, p := range points {
		_, err := m.InsertPoint(p...)
		require.NoError(t, err)
	}
	return m
}

func TestContainer_InsertIsIdempotent(t *testing.T) {
	m := newTestMesh(t, 2, 2, []float64{0, 0}, []float64{1, 0}, []float64{0, 1})
	faces, err := m.Faces()
	require.NoError(t, err)

	first, err := faces.Insert(0, 1, 2)
	require.NoError(t, err)

	perms := [][]ID{{0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, p := range perms {
		got, err := faces.Insert(p...)
		require.NoError(t, err)
		assert.Equal(t, first.ID(), got.ID(), "permutation %v", p)
	}
	assert.Equal(t, 1, faces.Len())
	assert.Equal(t, []ID{0, 1, 2}, first.Vertices(), "first insertion order is kept")
}

func TestContainer_DenseIDs(t *testing.T) {
	m := newTestMesh(t, 1, 1)
	edges, err := m.Edges()
	require.NoError(t, err)

	for i := ID(0); i < 10; i++ {
		e, err := edges.Insert(i, i+1)
		require.NoError(t, err)
		assert.Equal(t, i, e.ID())
	}
	assert.Equal(t, 10, edges.Len())
	assert.Len(t, edges.IDs(), 10)
}

func TestContainer_Arity(t *testing.T) {
	for dim := 0; dim <= MaxDim; dim++ {
		t.Run(string(rune('0'+dim)), func(t *testing.T) {
			m := newTestMesh(t, 3, 3)
			c, err := m.Level(dim)
			require.NoError(t, err)

			for n := 0; n <= MaxDim+1; n++ {
				ids := make([]ID, n)
				for i := range ids {
					ids[i] = ID(i)
				}
				_, err := c.Insert(ids...)
				if n == dim+1 {
					assert.NoError(t, err)
					continue
				}
				var ae *ArityError
				require.ErrorAs(t, err, &ae)
				assert.ErrorIs(t, err, ErrArity)
				assert.Equal(t, dim+1, ae.Want)
				assert.Equal(t, n, ae.Got)
			}
		})
	}
}

func TestContainer_ReferenceOutOfRange(t *testing.T) {
	m := newTestMesh(t, 2, 1)
	_, err := m.Vertices().Reference(3)
	var re *RangeError
	require.ErrorAs(t, err, &re)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, 3, re.Index)

	_, err = m.Vertices().At(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestContainer_ViewReferences(t *testing.T) {
	m := newTestMesh(t, 2, 1, []float64{0, 0}, []float64{1, 0}, []float64{2, 0}, []float64{3, 0})
	for i := ID(0); i < 4; i++ {
		_, err := m.Vertex(i)
		require.NoError(t, err)
	}

	v, err := m.View(1)
	require.NoError(t, err)
	verts := v.Vertices()
	assert.False(t, verts.Owns())
	assert.Equal(t, 0, verts.Len())

	for _, id := range []ID{3, 1, 3, 1, 1} {
		s, err := verts.Reference(id)
		require.NoError(t, err)
		assert.Equal(t, id, s.ID())
	}
	assert.Equal(t, 2, verts.Len())
	assert.Equal(t, []ID{1, 3}, verts.IDs())
	assert.True(t, verts.Contains(3))
	assert.False(t, verts.Contains(0))

	s, err := verts.At(1)
	require.NoError(t, err)
	assert.Equal(t, ID(3), s.ID())
	_, err = verts.At(2)
	assert.ErrorIs(t, err, ErrOutOfRange)

	var seen []ID
	for i, s := range verts.All() {
		assert.Equal(t, len(seen), i)
		seen = append(seen, s.ID())
	}
	assert.Equal(t, []ID{1, 3}, seen)

	// the parent is untouched
	assert.Equal(t, 4, m.Vertices().Len())
}

func TestContainer_ViewInsertSharesTable(t *testing.T) {
	m := newTestMesh(t, 2, 1, []float64{0, 0}, []float64{1, 0}, []float64{2, 0})
	v, err := m.View(1)
	require.NoError(t, err)

	e, err := v.InsertEdge(2, 1)
	require.NoError(t, err)

	rootEdges, err := m.Edges()
	require.NoError(t, err)
	got, ok := rootEdges.Lookup(1, 2)
	require.True(t, ok)
	assert.Equal(t, e.ID(), got.ID())
	assert.Equal(t, 1, rootEdges.Len())

	viewEdges, err := v.Edges()
	require.NoError(t, err)
	assert.Equal(t, 1, viewEdges.Len())
	assert.Equal(t, 2, v.Vertices().Len())
	assert.Equal(t, 2, m.Vertices().Len())

	_, ok = rootEdges.Lookup(0, 1)
	assert.False(t, ok)
}

func TestContainer_ClearAndReserve(t *testing.T) {
	m := newTestMesh(t, 2, 1, []float64{0, 0}, []float64{1, 0})
	_, err := m.InsertEdge(0, 1)
	require.NoError(t, err)

	v, err := m.View(1)
	require.NoError(t, err)
	edges, err := v.Edges()
	require.NoError(t, err)
	_, err = edges.Reference(0)
	require.NoError(t, err)
	require.Equal(t, 1, edges.Len())

	rootEdges, err := m.Edges()
	require.NoError(t, err)
	gen := rootEdges.Generation()
	require.NoError(t, rootEdges.ClearAndReserve(16))

	assert.Equal(t, gen+1, rootEdges.Generation())
	assert.Equal(t, gen+1, edges.Generation(), "views share the table")
	assert.Equal(t, 0, rootEdges.Len())
	assert.Equal(t, 0, edges.Len(), "stale view membership is dropped")
	_, ok := rootEdges.Lookup(0, 1)
	assert.False(t, ok)

	e, err := rootEdges.Insert(1, 0)
	require.NoError(t, err)
	assert.Equal(t, ID(0), e.ID())

	_, err = edges.Reference(0)
	require.NoError(t, err)
	assert.Equal(t, 1, edges.Len())
	require.NoError(t, edges.ClearAndReserve(0))
	assert.Equal(t, 0, edges.Len())
	assert.Equal(t, 1, rootEdges.Len())

	assert.ErrorIs(t, rootEdges.ClearAndReserve(-1), ErrOutOfRange)
}
