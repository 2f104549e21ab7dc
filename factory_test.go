package meshgo_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshgo"
	"github.com/hupe1980/meshgo/mesh"
	"github.com/hupe1980/meshgo/testutil"
	"github.com/hupe1980/meshgo/triangle"
)

func segmentCounts(t *testing.T, seg *meshgo.Segment) (verts, edges, faces int) {
	t.Helper()
	m := seg.Mesh()
	e, err := m.Edges()
	require.NoError(t, err)
	f, err := m.Faces()
	require.NoError(t, err)
	return m.Vertices().Len(), e.Len(), f.Len()
}

func TestFactory_TwoSquaresWithStub(t *testing.T) {
	rec := &testutil.RecordingTriangulator{Inner: testutil.TwoSquaresTriangulator()}
	f := testutil.TwoSquaresFactory(t, meshgo.WithTriangulator(rec))

	sys, err := f.Create(context.Background())
	require.NoError(t, err)

	// the shared edge is stored once, both segments reference it
	require.NotNil(t, rec.Input)
	assert.Equal(t, []int{0, 1, 1, 2, 2, 3, 3, 0, 1, 2, 1, 4, 4, 5, 5, 2}, rec.Input.Segments)
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9}, rec.Input.Markers)
	assert.Equal(t, "pcezvQ", rec.Switches.String())

	root := sys.Mesh()
	edges, _ := root.Edges()
	faces, _ := root.Faces()
	assert.Equal(t, 6, root.Vertices().Len())
	assert.Equal(t, 9, edges.Len())
	assert.Equal(t, 4, faces.Len())

	left, err := sys.Segment("left")
	require.NoError(t, err)
	right, err := sys.Segment("right")
	require.NoError(t, err)

	v, e, fc := segmentCounts(t, left)
	assert.Equal(t, [3]int{4, 5, 2}, [3]int{v, e, fc})
	v, e, fc = segmentCounts(t, right)
	assert.Equal(t, [3]int{4, 5, 2}, [3]int{v, e, fc})

	assert.Equal(t, []mesh.ID{0, 1, 2, 3}, left.Mesh().Vertices().IDs())
	assert.Equal(t, []mesh.ID{1, 2, 4, 5}, right.Mesh().Vertices().IDs())

	lf, _ := left.Mesh().Faces()
	rf, _ := right.Mesh().Faces()
	assert.Equal(t, []mesh.ID{0, 1}, lf.IDs())
	assert.Equal(t, []mesh.ID{2, 3}, rf.IDs())

	ifaces := sys.Interfaces()
	require.Len(t, ifaces, 1)
	iface := ifaces[0]
	assert.Equal(t, "left_right", iface.Name())
	assert.Equal(t, []mesh.ID{1, 2}, iface.Mesh().Vertices().IDs())
	ie, _ := iface.Mesh().Edges()
	require.Equal(t, 1, ie.Len())
	shared, err := ie.At(0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []mesh.ID{1, 2}, shared.Vertices())

	vor := sys.Voronoi()
	ve, _ := vor.Edges()
	assert.Equal(t, 4, vor.Vertices().Len())
	assert.Equal(t, 3, ve.Len())
}

func TestFactory_EveryTriangleInExactlyOneSegment(t *testing.T) {
	f := testutil.TwoSquaresFactory(t, meshgo.WithTriangulator(testutil.TwoSquaresTriangulator()))
	sys, err := f.Create(context.Background())
	require.NoError(t, err)

	faces, _ := sys.Mesh().Faces()
	for _, face := range faces.All() {
		owners := 0
		for _, seg := range sys.Segments() {
			sf, _ := seg.Mesh().Faces()
			if sf.Contains(face.ID()) {
				owners++
			}
		}
		assert.Equal(t, 1, owners, "face %v", face)
	}

	// the shared edge belongs to both
	edges, _ := sys.Mesh().Edges()
	sharedEdge, ok := edges.Lookup(2, 1)
	require.True(t, ok)
	for _, seg := range sys.Segments() {
		se, _ := seg.Mesh().Edges()
		assert.True(t, se.Contains(sharedEdge.ID()), seg.Name())
	}
}

func TestFactory_TwoSquaresWithBuiltinEngine(t *testing.T) {
	mc := &meshgo.BasicMetricsCollector{}
	f := testutil.TwoSquaresFactory(t, meshgo.WithMetricsCollector(mc))

	sys, err := f.Create(context.Background())
	require.NoError(t, err)

	for _, name := range []string{"left", "right"} {
		seg, err := sys.Segment(name)
		require.NoError(t, err)
		v, e, fc := segmentCounts(t, seg)
		assert.Equal(t, [3]int{4, 5, 2}, [3]int{v, e, fc}, name)
	}

	iface, err := sys.InterfaceByName("left", "right")
	require.NoError(t, err)
	assert.Equal(t, 2, iface.Mesh().Vertices().Len())

	stats := mc.GetStats()
	assert.Equal(t, int64(1), stats.ReconstructCount)
	assert.Equal(t, int64(0), stats.ReconstructErrors)
	assert.Equal(t, int64(0), stats.UnrecoveredBoundaries)
	assert.Equal(t, int64(6), stats.VoronoiRays)
	assert.Equal(t, 4, sys.Voronoi().Vertices().Len())
}

func TestFactory_CreateBuildsFreshSystems(t *testing.T) {
	f := testutil.TwoSquaresFactory(t, meshgo.WithTriangulator(testutil.TwoSquaresTriangulator()))

	a, err := f.Create(context.Background())
	require.NoError(t, err)
	b, err := f.Create(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.NotSame(t, a.Mesh(), b.Mesh())
	assert.Len(t, b.Interfaces(), 1)
}

func TestFactory_UnrecoveredBoundariesAreNotFatal(t *testing.T) {
	out := testutil.TwoSquaresOutput()
	// drop the shared edge entirely: boundaries 1 and 4 have no chain
	out.Segments = []int{0, 1, 2, 3, 3, 0, 1, 4, 4, 5, 5, 2}
	out.SegmentMarkers = []int{2, 4, 5, 7, 8, 9}

	var buf bytes.Buffer
	logger := meshgo.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	mc := &meshgo.BasicMetricsCollector{}
	f := testutil.TwoSquaresFactory(t,
		meshgo.WithTriangulator(testutil.StubTriangulator(out)),
		meshgo.WithLogger(logger),
		meshgo.WithMetricsCollector(mc),
	)

	sys, err := f.Create(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), mc.GetStats().UnrecoveredBoundaries)
	assert.Contains(t, buf.String(), "boundary not recovered")
	assert.Contains(t, buf.String(), "segment polygon unavailable")
	assert.Empty(t, sys.Interfaces())

	left, err := sys.Segment("left")
	require.NoError(t, err)
	lf, _ := left.Mesh().Faces()
	assert.Equal(t, 0, lf.Len())
	assert.Equal(t, []mesh.ID{0, 1, 2, 3}, left.Mesh().Vertices().IDs())
}

func TestFactory_LogsRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := meshgo.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f := testutil.TwoSquaresFactory(t,
		meshgo.WithTriangulator(testutil.TwoSquaresTriangulator()),
		meshgo.WithLogger(logger),
	)

	_, err := f.Create(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"boundary recovered"`)
	assert.Contains(t, out, `"boundary":4`)
	assert.Contains(t, out, `"source":1`)
	assert.Contains(t, out, `"msg":"reconstruction completed"`)
	assert.Contains(t, out, `"recovered":1`)
}

func TestFactory_NotImplemented(t *testing.T) {
	for _, shape := range [][2]int{{2, 1}, {3, 3}, {3, 2}, {1, 1}} {
		f, err := meshgo.NewFactory(shape[0], shape[1])
		require.NoError(t, err)

		_, err = f.Create(context.Background())
		assert.ErrorIs(t, err, meshgo.ErrNotImplemented, "%v", shape)

		var de *meshgo.ErrDimension
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shape, [2]int{de.Dim, de.Top})
	}
}

func TestNewFactory_InvalidShape(t *testing.T) {
	for _, shape := range [][2]int{{2, 0}, {0, 1}, {4, 2}, {2, 3}} {
		_, err := meshgo.NewFactory(shape[0], shape[1])
		assert.ErrorIs(t, err, mesh.ErrOutOfRange, "%v", shape)
	}
}

func TestFactory_SegmentIsGetOrCreate(t *testing.T) {
	f, err := meshgo.NewFactory(2, 2)
	require.NoError(t, err)

	a := f.Segment("a")
	assert.Same(t, a, f.Segment("a"))
	f.Segment("b")
	assert.Equal(t, []string{"a", "b"}, f.SegmentNames())
	assert.Same(t, f.Mesh(), a.Parent())
	assert.Equal(t, 1, f.Mesh().Top())
}

func TestFactory_MaxAreaRejectedByBuiltinEngine(t *testing.T) {
	f := testutil.TwoSquaresFactory(t, meshgo.WithMaxArea(0.1))

	_, err := f.Create(context.Background())
	assert.ErrorIs(t, err, triangle.ErrUnsupportedSwitch)
}

func TestFactory_MaxAreaReachesTriangulator(t *testing.T) {
	rec := &testutil.RecordingTriangulator{Inner: testutil.TwoSquaresTriangulator()}
	f := testutil.TwoSquaresFactory(t, meshgo.WithTriangulator(rec), meshgo.WithMaxArea(0.25))

	_, err := f.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pcezvQa0.25", rec.Switches.String())
}

func TestFactory_ContextCanceled(t *testing.T) {
	mc := &meshgo.BasicMetricsCollector{}
	f := testutil.TwoSquaresFactory(t,
		meshgo.WithTriangulator(testutil.TwoSquaresTriangulator()),
		meshgo.WithMetricsCollector(mc),
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Create(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(1), mc.GetStats().ReconstructErrors)
}

func TestFactory_InvalidTriangulatorOutput(t *testing.T) {
	out := testutil.TwoSquaresOutput()
	out.Triangles = append(out.Triangles, 0, 1, 99)
	f := testutil.TwoSquaresFactory(t, meshgo.WithTriangulator(testutil.StubTriangulator(out)))

	_, err := f.Create(context.Background())
	assert.ErrorIs(t, err, triangle.ErrInvalidInput)
}

func TestFactory_ConstraintMissing(t *testing.T) {
	f, err := meshgo.NewFactory(2, 2)
	require.NoError(t, err)
	seg := f.Segment("s")
	for _, p := range [][2]float64{{0, 0}, {2, 0}, {1, 1}, {1, -1}, {1, 0.1}} {
		_, err := seg.InsertPoint(p[0], p[1])
		require.NoError(t, err)
	}
	_, err = seg.InsertEdge(0, 1)
	require.NoError(t, err)

	_, err = f.Create(context.Background())
	assert.ErrorIs(t, err, triangle.ErrConstraintMissing)
}
