package triangle

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/hupe1980/meshgo/geom"
)

// dual builds the Voronoi diagram from the circumcenters of tris.
func dual(pts []r2.Vec, tris [][3]int, edges *edgeIndex) Voronoi {
	v := Voronoi{
		Points:  make([]float64, 0, 2*len(tris)),
		Edges:   make([]int, 0, 2*len(edges.list)),
		Normals: make([]float64, 0, 2*len(edges.list)),
	}
	for _, t := range tris {
		a, b, c := pts[t[0]], pts[t[1]], pts[t[2]]
		cc, ok := geom.Circumcenter(a, b, c)
		if !ok {
			cc = geom.Centroid(a, b, c)
		}
		v.Points = append(v.Points, cc.X, cc.Y)
	}
	for _, e := range edges.list {
		if e.t[1] >= 0 {
			v.Edges = append(v.Edges, e.t[0], e.t[1])
			v.Normals = append(v.Normals, 0, 0)
			continue
		}
		a, b := pts[e.a], pts[e.b]
		n := r2.Vec{X: b.Y - a.Y, Y: a.X - b.X}
		t := tris[e.t[0]]
		third := t[0] + t[1] + t[2] - e.a - e.b
		if r2.Dot(n, r2.Sub(pts[third], a)) > 0 {
			n = r2.Scale(-1, n)
		}
		v.Edges = append(v.Edges, e.t[0], Ray)
		v.Normals = append(v.Normals, n.X, n.Y)
	}
	return v
}
