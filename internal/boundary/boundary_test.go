package boundary

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func corners(ids ...uint32) *roaring.Bitmap { return roaring.BitmapOf(ids...) }

func TestOrderChain(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []uint32
		corners *roaring.Bitmap
		want    []uint32
	}{
		{"single segment", []uint32{7, 3}, corners(3, 7), []uint32{3, 7}},
		{"in order", []uint32{1, 5, 5, 9, 9, 4}, corners(1, 4), []uint32{1, 5, 9, 4}},
		{"shuffled and flipped", []uint32{9, 5, 4, 9, 1, 5}, corners(1, 4), []uint32{1, 5, 9, 4}},
		{"corner in second slot", []uint32{2, 6, 8, 2, 6, 0}, corners(0, 8), []uint32{0, 6, 2, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OrderChain(tt.pairs, tt.corners)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderChain_Closure(t *testing.T) {
	// a longer split boundary: 10 - 11 - ... - 20
	var pairs []uint32
	for v := uint32(10); v < 20; v++ {
		if v%2 == 0 {
			pairs = append(pairs, v+1, v)
		} else {
			pairs = append([]uint32{v, v + 1}, pairs...)
		}
	}
	got, err := OrderChain(pairs, corners(10, 20))
	require.NoError(t, err)
	require.Len(t, got, 11)
	assert.Equal(t, uint32(10), got[0])
	assert.Equal(t, uint32(20), got[len(got)-1])
	for i := 1; i < len(got); i++ {
		assert.Equal(t, got[i-1]+1, got[i])
	}
}

func TestOrderChain_Broken(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []uint32
		corners *roaring.Bitmap
	}{
		{"gap", []uint32{1, 2, 3, 4}, corners(1, 2, 3, 4)},
		{"wrong corners", []uint32{1, 2, 2, 3}, corners(1, 2)},
		{"disconnected loop", []uint32{1, 2, 5, 6, 6, 7, 7, 5}, corners(1, 2)},
		{"odd", []uint32{1, 2, 3}, corners(1, 3)},
		{"closed", []uint32{1, 2, 2, 1}, corners()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OrderChain(tt.pairs, tt.corners)
			assert.ErrorIs(t, err, ErrBrokenChain)
		})
	}
}

func TestThreadChain(t *testing.T) {
	ring, err := ThreadChain([][2]uint32{{1, 4}, {4, 5}, {5, 2}, {1, 2}})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 4, 5, 2}, ring)

	_, err = ThreadChain([][2]uint32{{1, 4}, {4, 5}})
	assert.ErrorIs(t, err, ErrBrokenChain)

	_, err = ThreadChain([][2]uint32{{0, 1}, {1, 2}, {2, 0}, {5, 6}})
	assert.ErrorIs(t, err, ErrBrokenChain)

	_, err = ThreadChain(nil)
	assert.ErrorIs(t, err, ErrBrokenChain)
}

func TestOverlap(t *testing.T) {
	verts, edges := Overlap([]uint32{1, 2, 3, 4}, []uint32{9, 4, 3, 2, 8})
	assert.Equal(t, []uint32{2, 3, 4}, verts)
	assert.Equal(t, [][2]uint32{{2, 3}, {3, 4}}, edges)

	// a single shared corner is no overlap
	verts, edges = Overlap([]uint32{0, 1}, []uint32{1, 4})
	assert.Empty(t, verts)
	assert.Empty(t, edges)

	verts, edges = Overlap([]uint32{1, 2}, []uint32{1, 2})
	assert.Equal(t, []uint32{1, 2}, verts)
	assert.Equal(t, [][2]uint32{{1, 2}}, edges)
}

func TestSpan(t *testing.T) {
	span, ok := Span([]uint32{4, 7, 1, 9}, 9, 7)
	require.True(t, ok)
	assert.Equal(t, []uint32{7, 1, 9}, span)

	_, ok = Span([]uint32{4, 7}, 4, 8)
	assert.False(t, ok)
}

type squares struct{}

// input edges of two unit squares; boundary 7 is the right square's copy of
// the shared edge
var inputEdges = [8][2]r2.Vec{
	{{X: 0, Y: 0}, {X: 1, Y: 0}},
	{{X: 1, Y: 0}, {X: 1, Y: 1}},
	{{X: 1, Y: 1}, {X: 0, Y: 1}},
	{{X: 0, Y: 1}, {X: 0, Y: 0}},
	{{X: 1, Y: 0}, {X: 2, Y: 0}},
	{{X: 2, Y: 0}, {X: 2, Y: 1}},
	{{X: 2, Y: 1}, {X: 1, Y: 1}},
	{{X: 1, Y: 1}, {X: 1, Y: 0}},
}

var outputPoints = []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 2, Y: 0}, {X: 2, Y: 1}}

func (squares) Endpoints(b int) (r2.Vec, r2.Vec) { return inputEdges[b][0], inputEdges[b][1] }
func (squares) Point(v uint32) r2.Vec            { return outputPoints[v] }

func TestIndex_TwoSquares(t *testing.T) {
	segments := []int{0, 1, 1, 2, 2, 3, 3, 0, 1, 4, 4, 5, 5, 2, 0, 2}
	markers := []int{2, 3, 4, 5, 6, 7, 8, 0}

	ix := Scan(8, segments, markers, 2)
	assert.Equal(t, 8, ix.Len())
	assert.Equal(t, []uint32{1, 2}, ix.Vertices[1].ToArray())
	assert.Empty(t, ix.Chains[7])
	assert.Equal(t, Unrecovered, ix.Source[7])

	require.NoError(t, ix.Order())
	assert.Equal(t, []uint32{2, 5}, ix.Chains[6])

	nodes := ix.Nodes()
	assert.Equal(t, []uint32{0, 1}, nodes[0])
	assert.Equal(t, []uint32{1, 2}, nodes[1])
	assert.Empty(t, nodes[7])

	failed := ix.Recover(nodes, squares{}, 1e-9)
	assert.Empty(t, failed)
	assert.Equal(t, 1, ix.Source[7])
	assert.Equal(t, []uint32{1, 2}, ix.Chains[7])
	assert.Equal(t, []uint32{1, 2}, ix.Corners[7].ToArray())

	verts, edges := Overlap(ix.Chains[1], ix.Chains[7])
	assert.Equal(t, []uint32{1, 2}, verts)
	assert.Equal(t, [][2]uint32{{1, 2}}, edges)
}

func TestIndex_RecoverFails(t *testing.T) {
	ix := Scan(8, []int{0, 1, 1, 2, 2, 3, 3, 0}, []int{2, 3, 4, 5}, 2)
	require.NoError(t, ix.Order())
	failed := ix.Recover(ix.Nodes(), squares{}, 1e-9)
	// boundaries 4..7 have no surviving chain; only 7 finds two matching
	// nodes (on boundary 1)
	assert.Equal(t, []int{4, 5, 6}, failed)
	assert.Equal(t, 1, ix.Source[7])
}

type fixture struct {
	edges  [][2]r2.Vec
	points []r2.Vec
}

func (f fixture) Endpoints(b int) (r2.Vec, r2.Vec) { return f.edges[b][0], f.edges[b][1] }
func (f fixture) Point(v uint32) r2.Vec            { return f.points[v] }

func TestIndex_RecoverSpansSeveralEdges(t *testing.T) {
	// boundary 0 runs (0,1)-(2,1) and is split at (1,1), where boundary 2
	// starts; boundary 1 is the same side given again and lost its segments
	g := fixture{
		edges: [][2]r2.Vec{
			{{X: 0, Y: 1}, {X: 2, Y: 1}},
			{{X: 2, Y: 1}, {X: 0, Y: 1}},
			{{X: 1, Y: 1}, {X: 1, Y: 2}},
			{{X: 0, Y: 1}, {X: 0, Y: 0}},
			{{X: 2, Y: 1}, {X: 2, Y: 0}},
		},
		points: []r2.Vec{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 0}, {X: 2, Y: 0}},
	}
	ix := Scan(5, []int{1, 2, 0, 1, 1, 3, 0, 4, 2, 5}, []int{2, 2, 4, 5, 6}, 2)
	require.NoError(t, ix.Order())
	assert.Equal(t, []uint32{0, 1, 2}, ix.Chains[0])

	nodes := ix.Nodes()
	assert.Equal(t, []uint32{0, 1, 2}, nodes[0])

	failed := ix.Recover(nodes, g, 1e-9)
	assert.Empty(t, failed)
	assert.Equal(t, 0, ix.Source[1])
	assert.Equal(t, []uint32{0, 1, 2}, ix.Chains[1])
	assert.Equal(t, []uint32{0, 1, 2}, ix.Vertices[1].ToArray())

	verts, edges := Overlap(ix.Chains[0], ix.Chains[1])
	assert.Equal(t, []uint32{0, 1, 2}, verts)
	assert.Equal(t, [][2]uint32{{0, 1}, {1, 2}}, edges)
}
