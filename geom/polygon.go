package geom

import "gonum.org/v1/gonum/spatial/r2"

// Polygon is a closed ring of corners with precomputed per-edge crossing
// coefficients for even-odd containment tests.
type Polygon struct {
	corners  []r2.Vec
	constant []float64
	multiple []float64
	tol      float64
}

// NewPolygon builds a polygon over corners. The ring is closed implicitly.
// Points within tol of an edge are reported as inside.
func NewPolygon(corners []r2.Vec, tol float64) *Polygon {
	n := len(corners)
	p := &Polygon{
		corners:  append([]r2.Vec(nil), corners...),
		constant: make([]float64, n),
		multiple: make([]float64, n),
		tol:      tol,
	}
	j := n - 1
	for i := 0; i < n; i++ {
		ci, cj := corners[i], corners[j]
		if cj.Y == ci.Y {
			p.constant[i] = ci.X
			p.multiple[i] = 0
		} else {
			dy := cj.Y - ci.Y
			p.constant[i] = ci.X - (ci.Y*cj.X)/dy + (ci.Y*ci.X)/dy
			p.multiple[i] = (cj.X - ci.X) / dy
		}
		j = i
	}
	return p
}

// Corners returns the ring corners.
func (p *Polygon) Corners() []r2.Vec { return p.corners }

// Len returns the number of corners.
func (p *Polygon) Len() int { return len(p.corners) }

// Contains reports whether pt lies inside the polygon or on its boundary.
func (p *Polygon) Contains(pt r2.Vec) bool {
	if len(p.corners) < 3 {
		return false
	}
	return p.OnBoundary(pt) || p.inside(pt)
}

// OnBoundary reports whether pt lies within the tolerance of an edge.
func (p *Polygon) OnBoundary(pt r2.Vec) bool {
	n := len(p.corners)
	if n == 0 {
		return false
	}
	j := n - 1
	for i := 0; i < n; i++ {
		if SegmentDistance(pt, p.corners[j], p.corners[i]) <= p.tol {
			return true
		}
		j = i
	}
	return false
}

func (p *Polygon) inside(pt r2.Vec) bool {
	odd := false
	current := p.corners[len(p.corners)-1].Y > pt.Y
	for i, c := range p.corners {
		previous := current
		current = c.Y > pt.Y
		if current != previous {
			odd = odd != (pt.Y*p.multiple[i]+p.constant[i] < pt.X)
		}
	}
	return odd
}
