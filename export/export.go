package export

import (
	"context"
	"fmt"
	"path"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/meshgo"
	"github.com/hupe1980/meshgo/blobstore"
	"github.com/hupe1980/meshgo/mesh"
)

// Segment returns the top-dimensional elements of a segment as features.
func Segment(seg *meshgo.Segment) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	if err := appendPart(fc, seg, "segment"); err != nil {
		return nil, err
	}
	return fc, nil
}

// Interface returns the elements of an interface as features.
func Interface(iface *meshgo.Interface) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	if err := appendPart(fc, &iface.Segment, "interface"); err != nil {
		return nil, err
	}
	return fc, nil
}

// System returns every segment followed by every interface.
func System(sys *meshgo.System) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for _, seg := range sys.Segments() {
		if err := appendPart(fc, seg, "segment"); err != nil {
			return nil, err
		}
	}
	for _, iface := range sys.Interfaces() {
		if err := appendPart(fc, &iface.Segment, "interface"); err != nil {
			return nil, err
		}
	}
	return fc, nil
}

func appendPart(fc *geojson.FeatureCollection, seg *meshgo.Segment, kind string) error {
	m := seg.Mesh()
	if m.Dim() != 2 {
		return fmt.Errorf("export %s: %w: GeoJSON needs 2D coordinates, mesh has %d", seg.Name(), mesh.ErrUnsupported, m.Dim())
	}
	c, err := m.Bodies()
	if err != nil {
		return fmt.Errorf("export %s: %w", seg.Name(), err)
	}
	for _, s := range c.All() {
		g, err := geometry(s)
		if err != nil {
			return fmt.Errorf("export %s: %w", seg.Name(), err)
		}
		f := geojson.NewFeature(g)
		f.Properties["part"] = seg.Name()
		f.Properties["kind"] = kind
		f.Properties["id"] = uint32(s.ID())
		fc.Append(f)
	}
	return nil
}

func geometry(s *mesh.Simplex) (orb.Geometry, error) {
	pts := make([]orb.Point, s.Len())
	for i := range pts {
		p, err := s.Point(i)
		if err != nil {
			return nil, err
		}
		pts[i] = orb.Point{p[0], p[1]}
	}
	switch len(pts) {
	case 1:
		return pts[0], nil
	case 2:
		return orb.LineString(pts), nil
	default:
		ring := append(orb.Ring(pts), pts[0])
		if ring.Orientation() == orb.CW {
			ring.Reverse()
		}
		return orb.Polygon{ring}, nil
	}
}

type options struct {
	concurrency int
}

// Option configures Publish.
type Option func(*options)

// WithConcurrency bounds the number of parallel uploads (default 8).
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// Publish uploads one GeoJSON blob per segment and interface, named
// prefix + part name + ".geojson", and returns the blob names in segment
// then interface order. Uploads run concurrently; the first error cancels
// the rest.
func Publish(ctx context.Context, store blobstore.BlobStore, sys *meshgo.System, prefix string, opts ...Option) ([]string, error) {
	o := options{concurrency: 8}
	for _, opt := range opts {
		opt(&o)
	}

	type job struct {
		name string
		fc   func() (*geojson.FeatureCollection, error)
	}
	var jobs []job
	for _, seg := range sys.Segments() {
		jobs = append(jobs, job{seg.Name(), func() (*geojson.FeatureCollection, error) { return Segment(seg) }})
	}
	for _, iface := range sys.Interfaces() {
		jobs = append(jobs, job{iface.Name(), func() (*geojson.FeatureCollection, error) { return Interface(iface) }})
	}

	// views are only read on this goroutine
	payloads := make([][]byte, len(jobs))
	names := make([]string, len(jobs))
	for i, j := range jobs {
		fc, err := j.fc()
		if err != nil {
			return nil, err
		}
		data, err := fc.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", j.name, err)
		}
		payloads[i] = data
		names[i] = path.Clean(prefix + j.name + ".geojson")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i := range names {
		g.Go(func() error {
			if err := store.Put(gctx, names[i], payloads[i]); err != nil {
				return fmt.Errorf("publish %s: %w", names[i], err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return names, nil
}
