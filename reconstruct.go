package meshgo

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/hupe1980/meshgo/geom"
	"github.com/hupe1980/meshgo/internal/boundary"
	"github.com/hupe1980/meshgo/mesh"
	"github.com/hupe1980/meshgo/triangle"
)

// ReconstructStats counts the results of one Factory.Create.
type ReconstructStats struct {
	Segments    int
	Boundaries  int
	Points      int
	Edges       int
	Triangles   int
	Recovered   int
	Unrecovered int
	Interfaces  int

	VoronoiPoints int
	VoronoiEdges  int
	VoronoiRays   int
}

type reconstruction struct {
	f     *Factory
	log   *Logger
	stats ReconstructStats

	// edges[b] are the input point ids of boundary b; owner[b] its segment.
	edges [][2]int
	owner []int
	in    *triangle.Input
	out   *triangle.Output
	ix    *boundary.Index
	tol   float64
}

func (r *reconstruction) run(ctx context.Context) (*System, error) {
	if err := r.collect(); err != nil {
		return nil, err
	}
	if err := r.triangulate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.chains(ctx); err != nil {
		return nil, err
	}

	sys, err := newSystem(r.f.dim, r.f.top, r.f.opts)
	if err != nil {
		return nil, err
	}
	if err := r.fillRoot(sys.root); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	segs, err := r.classify(ctx, sys)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.interfaces(sys, segs); err != nil {
		return nil, err
	}
	if err := r.fillVoronoi(sys.voronoi); err != nil {
		return nil, err
	}
	return sys, nil
}

// collect numbers the input edges of all segments; boundary id b is the
// position of an edge in segment order.
func (r *reconstruction) collect() error {
	r.stats.Segments = len(r.f.segments)
	for si, seg := range r.f.segments {
		edges, err := seg.mesh.Edges()
		if err != nil {
			return err
		}
		for _, e := range edges.All() {
			r.edges = append(r.edges, [2]int{int(e.Vertices()[0]), int(e.Vertices()[1])})
			r.owner = append(r.owner, si)
		}
	}
	r.stats.Boundaries = len(r.edges)

	r.in = &triangle.Input{
		Points:   append([]float64(nil), r.f.input.Coordinates().Data()...),
		Segments: make([]int, 0, 2*len(r.edges)),
		Markers:  make([]int, 0, len(r.edges)),
	}
	for b, e := range r.edges {
		r.in.Segments = append(r.in.Segments, e[0], e[1])
		r.in.Markers = append(r.in.Markers, triangle.MarkerBase+b)
	}
	return nil
}

func (r *reconstruction) triangulate() error {
	if err := r.in.Validate(); err != nil {
		return err
	}
	out, err := r.f.opts.triangulator.Triangulate(r.in, r.f.opts.switches)
	if err != nil {
		return fmt.Errorf("triangulate (%s): %w", r.f.opts.switches, err)
	}
	if err := out.Validate(); err != nil {
		return fmt.Errorf("triangulator output: %w", err)
	}
	r.out = out
	r.stats.Points = out.NumPoints()
	r.stats.Edges = out.NumEdges()
	r.stats.Triangles = out.NumTriangles()
	return nil
}

// chains scans, orders and recovers the boundary chains.
func (r *reconstruction) chains(ctx context.Context) error {
	r.ix = boundary.Scan(len(r.edges), r.out.Segments, r.out.SegmentMarkers, triangle.MarkerBase)
	if err := r.ix.Order(); err != nil {
		return err
	}
	r.tol = geom.Tolerance(r.out.Points, r.f.opts.mergeTolerance)
	failed := r.ix.Recover(r.ix.Nodes(), r, r.tol)

	for b, src := range r.ix.Source {
		if src != b && src != boundary.Unrecovered {
			r.stats.Recovered++
			r.log.LogBoundaryRecovery(ctx, b, src)
		}
	}
	for _, b := range failed {
		r.log.LogBoundaryRecovery(ctx, b, boundary.Unrecovered)
	}
	r.stats.Unrecovered = len(failed)
	return nil
}

// Endpoints implements boundary.Geometry.
func (r *reconstruction) Endpoints(b int) (r2.Vec, r2.Vec) {
	e := r.edges[b]
	return geom.Point(r.in.Points, e[0]), geom.Point(r.in.Points, e[1])
}

// Point implements boundary.Geometry.
func (r *reconstruction) Point(v uint32) r2.Vec {
	return geom.Point(r.out.Points, int(v))
}

func (r *reconstruction) fillRoot(root *mesh.Mesh) error {
	if err := root.Coordinates().Reset(r.out.Points); err != nil {
		return err
	}
	verts := root.Vertices()
	if err := verts.ClearAndReserve(r.out.NumPoints()); err != nil {
		return err
	}
	for i := 0; i < r.out.NumPoints(); i++ {
		if _, err := root.Vertex(mesh.ID(i)); err != nil { //nolint:gosec // bounded by output size
			return err
		}
	}
	edges, err := root.Edges()
	if err != nil {
		return err
	}
	if err := edges.ClearAndReserve(r.out.NumEdges()); err != nil {
		return err
	}
	for i := 0; i < r.out.NumEdges(); i++ {
		if _, err := edges.Insert(ids(r.out.Edges[2*i : 2*i+2])...); err != nil {
			return err
		}
	}
	faces, err := root.Faces()
	if err != nil {
		return err
	}
	if err := faces.ClearAndReserve(r.out.NumTriangles()); err != nil {
		return err
	}
	for i := 0; i < r.out.NumTriangles(); i++ {
		t := ids(r.out.Triangles[3*i : 3*i+3])
		if _, err := root.InsertFace(t[0], t[1], t[2]); err != nil {
			return err
		}
	}
	return nil
}

// polygon threads the chain ends of a segment's boundaries into a ring.
func (r *reconstruction) polygon(bids []int) (*geom.Polygon, error) {
	var pairs [][2]uint32
	for _, b := range bids {
		c := r.ix.Chains[b]
		if len(c) == 0 {
			continue
		}
		pairs = append(pairs, [2]uint32{c[0], c[len(c)-1]})
	}
	ring, err := boundary.ThreadChain(pairs)
	if err != nil {
		return nil, err
	}
	corners := make([]r2.Vec, len(ring))
	for i, v := range ring {
		corners[i] = r.Point(v)
	}
	return geom.NewPolygon(corners, r.tol), nil
}

func (r *reconstruction) classify(ctx context.Context, sys *System) ([]*Segment, error) {
	bids := make([][]int, len(r.f.segments))
	for b, si := range r.owner {
		bids[si] = append(bids[si], b)
	}

	root := sys.root
	rootEdges, err := root.Edges()
	if err != nil {
		return nil, err
	}
	rootFaces, err := root.Faces()
	if err != nil {
		return nil, err
	}

	segs := make([]*Segment, len(r.f.segments))
	for si, fs := range r.f.segments {
		seg, err := sys.AddSegment(fs.name)
		if err != nil {
			return nil, err
		}
		segs[si] = seg

		poly, err := r.polygon(bids[si])
		if err != nil {
			r.log.WithSegment(fs.name).WarnContext(ctx, "segment polygon unavailable, classifying by boundary only",
				"error", err,
			)
		}
		inside := func(p r2.Vec) bool { return poly != nil && poly.Contains(p) }
		onBoundary := func(v mesh.ID) bool {
			for _, b := range bids[si] {
				if r.ix.Vertices[b].Contains(uint32(v)) {
					return true
				}
			}
			return false
		}
		sameBoundary := func(a, c mesh.ID) bool {
			for _, b := range bids[si] {
				vs := r.ix.Vertices[b]
				if vs.Contains(uint32(a)) && vs.Contains(uint32(c)) {
					return true
				}
			}
			return false
		}

		m := seg.Mesh()
		for i := 0; i < r.out.NumPoints(); i++ {
			v := mesh.ID(i) //nolint:gosec // bounded by output size
			if onBoundary(v) || inside(r.Point(uint32(v))) {
				if _, err := m.Vertices().Reference(v); err != nil {
					return nil, err
				}
			}
		}
		edges, err := m.Edges()
		if err != nil {
			return nil, err
		}
		for _, e := range rootEdges.All() {
			a, c := e.Vertices()[0], e.Vertices()[1]
			if sameBoundary(a, c) || inside(geom.Vec(e.Center())) {
				if _, err := edges.Reference(e.ID()); err != nil {
					return nil, err
				}
			}
		}
		faces, err := m.Faces()
		if err != nil {
			return nil, err
		}
		for _, f := range rootFaces.All() {
			if inside(geom.Vec(f.Center())) {
				if _, err := faces.Reference(f.ID()); err != nil {
					return nil, err
				}
			}
		}
	}
	return segs, nil
}

// interfaces creates an interface for every segment pair whose boundary
// chains share at least one edge.
func (r *reconstruction) interfaces(sys *System, segs []*Segment) error {
	bids := make([][]int, len(segs))
	for b, si := range r.owner {
		bids[si] = append(bids[si], b)
	}
	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			for _, b1 := range bids[i] {
				for _, b2 := range bids[j] {
					verts, edges := boundary.Overlap(r.ix.Chains[b1], r.ix.Chains[b2])
					if len(edges) == 0 {
						continue
					}
					iface, err := sys.Interface(segs[i].ID(), segs[j].ID())
					if err != nil {
						return err
					}
					m := iface.Mesh()
					for _, v := range verts {
						if _, err := m.Vertex(mesh.ID(v)); err != nil {
							return err
						}
					}
					for _, e := range edges {
						if _, err := m.InsertEdge(mesh.ID(e[0]), mesh.ID(e[1])); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	r.stats.Interfaces = len(sys.ifaceOrder)
	return nil
}

// fillVoronoi copies the dual points and every finite dual edge.
func (r *reconstruction) fillVoronoi(vm *mesh.Mesh) error {
	vor := r.out.Voronoi
	if err := vm.Coordinates().Reset(vor.Points); err != nil {
		return err
	}
	n := len(vor.Points) / 2
	for i := 0; i < n; i++ {
		if _, err := vm.Vertex(mesh.ID(i)); err != nil { //nolint:gosec // bounded by output size
			return err
		}
	}
	for i := 0; i+1 < len(vor.Edges); i += 2 {
		a, b := vor.Edges[i], vor.Edges[i+1]
		if a == triangle.Ray || b == triangle.Ray {
			r.stats.VoronoiRays++
			continue
		}
		if _, err := vm.InsertEdge(mesh.ID(a), mesh.ID(b)); err != nil { //nolint:gosec // validated
			return err
		}
		r.stats.VoronoiEdges++
	}
	r.stats.VoronoiPoints = n
	return nil
}

func ids(vs []int) []mesh.ID {
	out := make([]mesh.ID, len(vs))
	for i, v := range vs {
		out[i] = mesh.ID(v) //nolint:gosec // validated output ids
	}
	return out
}
