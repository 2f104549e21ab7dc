package testutil

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshgo"
	"github.com/hupe1980/meshgo/mesh"
	"github.com/hupe1980/meshgo/triangle"
)

// TwoSquaresPoints are the corners of two unit squares side by side.
var TwoSquaresPoints = [][2]float64{
	{0, 0}, {1, 0}, {1, 1}, {0, 1}, {2, 0}, {2, 1},
}

// TwoSquaresFactory returns a factory with segments "left" and "right". The
// shared edge is inserted by both, so it is stored once and "right" lists it
// first among its boundaries.
func TwoSquaresFactory(t testing.TB, opts ...meshgo.Option) *meshgo.Factory {
	t.Helper()

	f, err := meshgo.NewFactory(2, 2, opts...)
	require.NoError(t, err)

	left := f.Segment("left")
	for _, p := range TwoSquaresPoints {
		_, err := left.InsertPoint(p[0], p[1])
		require.NoError(t, err)
	}
	for _, e := range [][2]mesh.ID{{0, 1}, {1, 2}, {2, 3}, {3, 0}} {
		_, err := left.InsertEdge(e[0], e[1])
		require.NoError(t, err)
	}
	right := f.Segment("right")
	for _, e := range [][2]mesh.ID{{1, 4}, {4, 5}, {5, 2}, {2, 1}} {
		_, err := right.InsertEdge(e[0], e[1])
		require.NoError(t, err)
	}
	return f
}

// TwoSquaresOutput returns the triangulation of the two squares as produced
// for TwoSquaresFactory's input, with the duplicated shared edge (boundary 4)
// merged into boundary 1.
func TwoSquaresOutput() *triangle.Output {
	return &triangle.Output{
		Points:    []float64{0, 0, 1, 0, 1, 1, 0, 1, 2, 0, 2, 1},
		Triangles: []int{0, 1, 2, 0, 2, 3, 1, 4, 5, 1, 5, 2},
		Edges: []int{
			0, 1, 1, 2, 2, 0, 2, 3, 3, 0,
			1, 4, 4, 5, 5, 1, 5, 2,
		},
		Segments: []int{0, 1, 1, 2, 2, 3, 3, 0, 1, 4, 4, 5, 5, 2},
		SegmentMarkers: []int{
			triangle.MarkerBase + 0, triangle.MarkerBase + 1, triangle.MarkerBase + 2, triangle.MarkerBase + 3,
			triangle.MarkerBase + 5, triangle.MarkerBase + 6, triangle.MarkerBase + 7,
		},
		Voronoi: triangle.Voronoi{
			Points: []float64{0.5, 0.5, 0.5, 0.5, 1.5, 0.5, 1.5, 0.5},
			Edges: []int{
				0, triangle.Ray, 0, 3, 0, 1, 1, triangle.Ray, 1, triangle.Ray,
				2, triangle.Ray, 2, triangle.Ray, 2, 3, 3, triangle.Ray,
			},
		},
	}
}

// TwoSquaresTriangulator returns a triangulator that ignores its input and
// yields TwoSquaresOutput.
func TwoSquaresTriangulator() triangle.Triangulator {
	return StubTriangulator(TwoSquaresOutput())
}

// StubTriangulator returns a triangulator yielding a copy of out.
func StubTriangulator(out *triangle.Output) triangle.Triangulator {
	return triangle.TriangulatorFunc(func(*triangle.Input, triangle.Switches) (*triangle.Output, error) {
		cp := *out
		cp.Points = append([]float64(nil), out.Points...)
		return &cp, nil
	})
}

// TJunctionPoints are the corners of a 2x1 rectangle ("bottom") and of two
// unit squares ("tl", "tr") on top of it. Point 3 at (1,1) is a corner of
// both squares but lies inside the rectangle's top side.
var TJunctionPoints = [][2]float64{
	{0, 0}, {2, 0}, {2, 1}, {1, 1}, {0, 1}, {0, 2}, {1, 2}, {2, 2},
}

// TJunctionFactory returns a factory with segments "bottom", "tl" and "tr".
// "tr" inserts the edge it shares with "tl" third, yet its view lists it
// first because that edge has the lowest id.
func TJunctionFactory(t testing.TB, opts ...meshgo.Option) *meshgo.Factory {
	t.Helper()

	f, err := meshgo.NewFactory(2, 2, opts...)
	require.NoError(t, err)

	bottom := f.Segment("bottom")
	for _, p := range TJunctionPoints {
		_, err := bottom.InsertPoint(p[0], p[1])
		require.NoError(t, err)
	}
	layout := []struct {
		name  string
		edges [][2]mesh.ID
	}{
		{"bottom", [][2]mesh.ID{{0, 1}, {1, 2}, {2, 4}, {4, 0}}},
		{"tl", [][2]mesh.ID{{4, 3}, {3, 6}, {6, 5}, {5, 4}}},
		{"tr", [][2]mesh.ID{{2, 7}, {7, 6}, {6, 3}, {3, 2}}},
	}
	for _, seg := range layout {
		m := f.Segment(seg.name)
		for _, e := range seg.edges {
			_, err := m.InsertEdge(e[0], e[1])
			require.NoError(t, err)
		}
	}
	return f
}

// TJunctionOutput returns a triangulation of TJunctionFactory's input in
// which the rectangle's top side is split at (1,1). Both pieces carry the
// rectangle's marker, so the squares' copies of them (boundaries 4 and 11)
// and the second copy of the squares' shared edge (boundary 8) are empty.
// Triangles 0-2 cover "bottom", 3-4 "tl" and 5-6 "tr". There is no dual.
func TJunctionOutput() *triangle.Output {
	const base = triangle.MarkerBase
	return &triangle.Output{
		Points:    []float64{0, 0, 2, 0, 2, 1, 1, 1, 0, 1, 0, 2, 1, 2, 2, 2},
		Triangles: []int{0, 1, 3, 1, 2, 3, 0, 3, 4, 4, 3, 6, 4, 6, 5, 3, 2, 7, 3, 7, 6},
		Edges: []int{
			0, 1, 1, 3, 3, 0, 1, 2, 2, 3, 3, 4, 4, 0,
			3, 6, 6, 4, 6, 5, 5, 4, 2, 7, 7, 3, 7, 6,
		},
		Segments: []int{0, 1, 1, 2, 2, 3, 3, 4, 4, 0, 3, 6, 6, 5, 5, 4, 2, 7, 7, 6},
		SegmentMarkers: []int{
			base + 0, base + 1, base + 2, base + 2, base + 3,
			base + 5, base + 6, base + 7, base + 9, base + 10,
		},
	}
}

// RecordingTriangulator wraps inner and keeps the last input and switches.
type RecordingTriangulator struct {
	Inner    triangle.Triangulator
	Input    *triangle.Input
	Switches triangle.Switches
	Calls    int
}

// Triangulate implements triangle.Triangulator.
func (r *RecordingTriangulator) Triangulate(in *triangle.Input, sw triangle.Switches) (*triangle.Output, error) {
	r.Input, r.Switches = in, sw
	r.Calls++
	return r.Inner.Triangulate(in, sw)
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic fixtures
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Float64 returns a pseudo-random number in [lo, hi).
func (r *RNG) Float64(lo, hi float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + (hi-lo)*r.rand.Float64()
}

// Points returns n row-major 2D points uniformly drawn from [lo, hi)^2.
func (r *RNG) Points(n int, lo, hi float64) []float64 {
	pts := make([]float64, 2*n)
	for i := range pts {
		pts[i] = r.Float64(lo, hi)
	}
	return pts
}
