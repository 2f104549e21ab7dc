package export_test

import (
	"context"
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshgo"
	"github.com/hupe1980/meshgo/blobstore"
	"github.com/hupe1980/meshgo/export"
	"github.com/hupe1980/meshgo/mesh"
	"github.com/hupe1980/meshgo/testutil"
)

func twoSquares(t *testing.T) *meshgo.System {
	t.Helper()
	f := testutil.TwoSquaresFactory(t, meshgo.WithTriangulator(testutil.TwoSquaresTriangulator()))
	sys, err := f.Create(context.Background())
	require.NoError(t, err)
	return sys
}

func TestSegment_Polygons(t *testing.T) {
	sys := twoSquares(t)
	left, err := sys.Segment("left")
	require.NoError(t, err)

	fc, err := export.Segment(left)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	for _, f := range fc.Features {
		poly, ok := f.Geometry.(orb.Polygon)
		require.True(t, ok)
		require.Len(t, poly, 1)
		assert.Len(t, poly[0], 4, "closed triangle ring")
		assert.True(t, poly[0].Closed())
		assert.Equal(t, orb.CCW, poly[0].Orientation())
		assert.Equal(t, "left", f.Properties["part"])
		assert.Equal(t, "segment", f.Properties["kind"])
	}
	assert.InDelta(t, 1.0, fc.Features[0].Geometry.(orb.Polygon).Bound().Max[0], 1e-12)
}

func TestInterface_LineStrings(t *testing.T) {
	sys := twoSquares(t)
	iface, err := sys.InterfaceByName("left", "right")
	require.NoError(t, err)

	fc, err := export.Interface(iface)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	ls, ok := fc.Features[0].Geometry.(orb.LineString)
	require.True(t, ok)
	assert.ElementsMatch(t, []orb.Point{{1, 0}, {1, 1}}, []orb.Point(ls))
	assert.Equal(t, "interface", fc.Features[0].Properties["kind"])
	assert.Equal(t, "left_right", fc.Features[0].Properties["part"])
}

func TestSystem_AllParts(t *testing.T) {
	fc, err := export.System(twoSquares(t))
	require.NoError(t, err)
	assert.Len(t, fc.Features, 5)

	data, err := fc.MarshalJSON()
	require.NoError(t, err)
	back, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	assert.Len(t, back.Features, 5)
}

func TestSegment_Requires2D(t *testing.T) {
	sys, err := meshgo.NewSystem(3, 2)
	require.NoError(t, err)
	seg, err := sys.AddSegment("s")
	require.NoError(t, err)

	_, err = export.Segment(seg)
	assert.ErrorIs(t, err, mesh.ErrUnsupported)
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	names, err := export.Publish(ctx, store, twoSquares(t), "geojson/", export.WithConcurrency(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"geojson/left.geojson", "geojson/right.geojson", "geojson/left_right.geojson"}, names)

	listed, err := store.List(ctx, "geojson/")
	require.NoError(t, err)
	assert.Len(t, listed, 3)

	data, err := blobstore.ReadAll(ctx, store, "geojson/right.geojson")
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 2)
}

type failingStore struct {
	*blobstore.MemoryStore
}

var errUnavailable = errors.New("store unavailable")

func (failingStore) Put(context.Context, string, []byte) error { return errUnavailable }

func TestPublish_PropagatesErrors(t *testing.T) {
	store := failingStore{blobstore.NewMemoryStore()}

	_, err := export.Publish(context.Background(), store, twoSquares(t), "")
	assert.ErrorIs(t, err, errUnavailable)
}
