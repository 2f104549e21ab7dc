package triangle

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/hupe1980/meshgo/geom"
	"github.com/hupe1980/meshgo/internal/hash"
)

// superScale controls the size of the enclosing super triangle relative to
// the input extent.
const superScale = 20

// Delaunay is the built-in Bowyer–Watson engine.
type Delaunay struct{}

// NewDelaunay returns the built-in engine.
func NewDelaunay() *Delaunay {
	return &Delaunay{}
}

// Triangulate implements Triangulator.
func (d *Delaunay) Triangulate(in *Input, sw Switches) (*Output, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if sw.Quality {
		return nil, fmt.Errorf("%w: quality refinement (q)", ErrUnsupportedSwitch)
	}
	if sw.MaxArea > 0 {
		return nil, fmt.Errorf("%w: area constraint (a%g)", ErrUnsupportedSwitch, sw.MaxArea)
	}
	if !sw.ZeroBased {
		return nil, fmt.Errorf("%w: one-based numbering (missing z)", ErrUnsupportedSwitch)
	}

	pts, remap := mergeCoincident(in.Points)
	if len(pts) < 3 {
		return nil, fmt.Errorf("%w: need at least 3 distinct points, got %d", ErrInvalidInput, len(pts))
	}
	var segs []segment
	if sw.PSLG {
		segs = remapSegments(in, remap, pts, geom.Tolerance(in.Points, geom.DefaultRelTolerance))
	}

	tris := bowyerWatson(pts)
	if len(tris) == 0 {
		return nil, fmt.Errorf("%w: input points are collinear", ErrInvalidInput)
	}

	edges := indexEdges(tris)
	for _, s := range segs {
		if _, ok := edges.index[hash.Pair(uint32(s.a), uint32(s.b))]; !ok { //nolint:gosec // point ids are small
			return nil, fmt.Errorf("%w: (%d, %d) with marker %d", ErrConstraintMissing, s.a, s.b, s.marker)
		}
	}

	constrained := make(map[uint64]struct{}, len(segs))
	for _, s := range segs {
		constrained[hash.Pair(uint32(s.a), uint32(s.b))] = struct{}{} //nolint:gosec // point ids are small
	}
	if sw.PSLG && !sw.ConvexHull {
		tris = carve(tris, edges, constrained)
		edges = indexEdges(tris)
	}

	out := &Output{
		Points:    make([]float64, 0, 2*len(pts)),
		Triangles: make([]int, 0, 3*len(tris)),
		Edges:     make([]int, 0, 2*len(edges.list)),
	}
	for _, p := range pts {
		out.Points = append(out.Points, p.X, p.Y)
	}
	for _, t := range tris {
		out.Triangles = append(out.Triangles, t[0], t[1], t[2])
	}
	for _, e := range edges.list {
		out.Edges = append(out.Edges, e.a, e.b)
	}
	for _, s := range segs {
		out.Segments = append(out.Segments, s.a, s.b)
		out.SegmentMarkers = append(out.SegmentMarkers, s.marker)
	}
	if sw.ConvexHull {
		for _, e := range edges.list {
			if e.t[1] >= 0 {
				continue
			}
			if _, ok := constrained[hash.Pair(uint32(e.a), uint32(e.b))]; ok { //nolint:gosec // point ids are small
				continue
			}
			out.Segments = append(out.Segments, e.a, e.b)
			out.SegmentMarkers = append(out.SegmentMarkers, MarkerHull)
		}
	}
	if sw.Voronoi {
		out.Voronoi = dual(pts, tris, edges)
	}
	return out, nil
}

type segment struct {
	a, b   int
	marker int
}

type edge struct {
	a, b int
	// t holds the incident triangles; t[1] is -1 on the hull.
	t [2]int
}

type edgeIndex struct {
	list  []edge
	index map[uint64]int
}

// mergeCoincident drops exactly coincident points. remap maps every input
// point to its surviving id.
func mergeCoincident(coords []float64) (pts []r2.Vec, remap []int) {
	n := len(coords) / 2
	seen := make(map[r2.Vec]int, n)
	remap = make([]int, n)
	for i := 0; i < n; i++ {
		p := r2.Vec{X: coords[2*i], Y: coords[2*i+1]}
		if j, ok := seen[p]; ok {
			remap[i] = j
			continue
		}
		seen[p] = len(pts)
		remap[i] = len(pts)
		pts = append(pts, p)
	}
	return pts, remap
}

// remapSegments rewrites segments onto merged point ids and splits every
// segment at the points lying on it within tol, in order from its first
// endpoint. Pieces keep the marker of their segment. Degenerate pieces are
// dropped; duplicated pieces keep their first marker.
func remapSegments(in *Input, remap []int, pts []r2.Vec, tol float64) []segment {
	seen := make(map[uint64]struct{}, in.NumSegments())
	out := make([]segment, 0, in.NumSegments())
	for i := 0; i < in.NumSegments(); i++ {
		a, b := remap[in.Segments[2*i]], remap[in.Segments[2*i+1]]
		if a == b {
			continue
		}
		path := append([]int{a}, splitPoints(pts, a, b, tol)...)
		path = append(path, b)
		for k := 0; k+1 < len(path); k++ {
			p, q := path[k], path[k+1]
			key := hash.Pair(uint32(p), uint32(q)) //nolint:gosec // point ids are small
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, segment{a: p, b: q, marker: in.Markers[i]})
		}
	}
	return out
}

// splitPoints returns the points strictly inside segment (a, b), ordered by
// their distance from a.
func splitPoints(pts []r2.Vec, a, b int, tol float64) []int {
	pa, pb := pts[a], pts[b]
	ab := r2.Sub(pb, pa)
	l2 := r2.Norm2(ab)
	type hit struct {
		id int
		t  float64
	}
	var hits []hit
	for k, p := range pts {
		if k == a || k == b || geom.Near(p, pa, tol) || geom.Near(p, pb, tol) {
			continue
		}
		if geom.SegmentDistance(p, pa, pb) > tol {
			continue
		}
		hits = append(hits, hit{id: k, t: r2.Dot(r2.Sub(p, pa), ab) / l2})
	}
	slices.SortFunc(hits, func(x, y hit) int {
		switch {
		case x.t < y.t:
			return -1
		case x.t > y.t:
			return 1
		default:
			return x.id - y.id
		}
	})
	ids := make([]int, len(hits))
	for i, h := range hits {
		ids[i] = h.id
	}
	return ids
}

// bowyerWatson returns the counter-clockwise Delaunay triangles of pts.
func bowyerWatson(pts []r2.Vec) [][3]int {
	n := len(pts)
	work := make([]r2.Vec, n, n+3)
	copy(work, pts)

	var box r2.Box
	for i, p := range pts {
		if i == 0 {
			box = r2.Box{Min: p, Max: p}
			continue
		}
		box.Min.X = math.Min(box.Min.X, p.X)
		box.Min.Y = math.Min(box.Min.Y, p.Y)
		box.Max.X = math.Max(box.Max.X, p.X)
		box.Max.Y = math.Max(box.Max.Y, p.Y)
	}
	size := math.Max(math.Max(box.Max.X-box.Min.X, box.Max.Y-box.Min.Y), 1)
	mid := r2.Scale(0.5, r2.Add(box.Min, box.Max))
	work = append(work,
		r2.Vec{X: mid.X - superScale*size, Y: mid.Y - size},
		r2.Vec{X: mid.X + superScale*size, Y: mid.Y - size},
		r2.Vec{X: mid.X, Y: mid.Y + superScale*size},
	)

	tris := [][3]int{{n, n + 1, n + 2}}
	for i := 0; i < n; i++ {
		p := work[i]
		var cavity [][2]int
		count := make(map[uint64]int)
		kept := tris[:0:0]
		for _, t := range tris {
			if inCircle(work[t[0]], work[t[1]], work[t[2]], p) <= 0 {
				kept = append(kept, t)
				continue
			}
			for k := 0; k < 3; k++ {
				a, b := t[k], t[(k+1)%3]
				cavity = append(cavity, [2]int{a, b})
				count[hash.Pair(uint32(a), uint32(b))]++ //nolint:gosec // point ids are small
			}
		}
		for _, e := range cavity {
			if count[hash.Pair(uint32(e[0]), uint32(e[1]))] == 1 { //nolint:gosec // point ids are small
				kept = append(kept, [3]int{e[0], e[1], i})
			}
		}
		tris = kept
	}

	out := tris[:0]
	for _, t := range tris {
		if t[0] >= n || t[1] >= n || t[2] >= n {
			continue
		}
		if geom.Orient(pts[t[0]], pts[t[1]], pts[t[2]]) == 0 {
			continue
		}
		out = append(out, t)
	}
	return out
}

// inCircle is positive when d lies strictly inside the circumcircle of the
// counter-clockwise triangle (a, b, c).
func inCircle(a, b, c, d r2.Vec) float64 {
	ad, bd, cd := r2.Sub(a, d), r2.Sub(b, d), r2.Sub(c, d)
	return r2.Norm2(ad)*r2.Cross(bd, cd) +
		r2.Norm2(bd)*r2.Cross(cd, ad) +
		r2.Norm2(cd)*r2.Cross(ad, bd)
}

func indexEdges(tris [][3]int) *edgeIndex {
	idx := &edgeIndex{index: make(map[uint64]int, 3*len(tris)/2+2)}
	for ti, t := range tris {
		for k := 0; k < 3; k++ {
			a, b := t[k], t[(k+1)%3]
			key := hash.Pair(uint32(a), uint32(b)) //nolint:gosec // point ids are small
			if ei, ok := idx.index[key]; ok {
				idx.list[ei].t[1] = ti
				continue
			}
			idx.index[key] = len(idx.list)
			idx.list = append(idx.list, edge{a: a, b: b, t: [2]int{ti, -1}})
		}
	}
	return idx
}

// carve removes the triangles reachable from the hull without crossing a
// constraint segment.
func carve(tris [][3]int, edges *edgeIndex, constrained map[uint64]struct{}) [][3]int {
	dead := make([]bool, len(tris))
	var queue []int
	infect := func(ti int) {
		if ti >= 0 && !dead[ti] {
			dead[ti] = true
			queue = append(queue, ti)
		}
	}
	for _, e := range edges.list {
		if e.t[1] >= 0 {
			continue
		}
		if _, ok := constrained[hash.Pair(uint32(e.a), uint32(e.b))]; !ok { //nolint:gosec // point ids are small
			infect(e.t[0])
		}
	}
	for len(queue) > 0 {
		ti := queue[0]
		queue = queue[1:]
		t := tris[ti]
		for k := 0; k < 3; k++ {
			key := hash.Pair(uint32(t[k]), uint32(t[(k+1)%3])) //nolint:gosec // point ids are small
			if _, ok := constrained[key]; ok {
				continue
			}
			e := edges.list[edges.index[key]]
			if e.t[0] == ti {
				infect(e.t[1])
			} else {
				infect(e.t[0])
			}
		}
	}
	out := make([][3]int, 0, len(tris))
	for ti, t := range tris {
		if !dead[ti] {
			out = append(out, t)
		}
	}
	return out
}
