package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshgo/triangle"
)

func TestTwoSquaresOutputIsValid(t *testing.T) {
	out := TwoSquaresOutput()
	require.NoError(t, out.Validate())
	assert.Equal(t, 6, out.NumPoints())
	assert.Equal(t, 9, out.NumEdges())
	assert.Equal(t, 4, out.NumTriangles())
	assert.Equal(t, 7, out.NumSegments())
}

func TestStubTriangulatorCopiesPoints(t *testing.T) {
	tri := TwoSquaresTriangulator()
	a, err := tri.Triangulate(&triangle.Input{}, triangle.DefaultSwitches())
	require.NoError(t, err)
	a.Points[0] = 42

	b, err := tri.Triangulate(&triangle.Input{}, triangle.DefaultSwitches())
	require.NoError(t, err)
	assert.Equal(t, 0.0, b.Points[0])
}

func TestRecordingTriangulator(t *testing.T) {
	rec := &RecordingTriangulator{Inner: TwoSquaresTriangulator()}
	in := &triangle.Input{Points: []float64{0, 0}}
	_, err := rec.Triangulate(in, triangle.DefaultSwitches())
	require.NoError(t, err)
	assert.Same(t, in, rec.Input)
	assert.Equal(t, "pcezvQ", rec.Switches.String())
	assert.Equal(t, 1, rec.Calls)
}

func TestPoints(t *testing.T) {
	rng := NewRNG(4711)

	pts := rng.Points(50, -1, 1)
	assert.Len(t, pts, 100)
	for _, v := range pts {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 1.0)
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	a := rng.Points(3, 0, 1)
	rng.Reset()
	b := rng.Points(3, 0, 1)

	assert.Equal(t, a, b)
	assert.Equal(t, int64(4711), rng.Seed())
}
