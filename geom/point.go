package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultRelTolerance is the relative tolerance used for coordinate matching
// when none is configured.
const DefaultRelTolerance = 1e-9

// Vec converts the first two coordinates of p. Missing coordinates are zero.
func Vec(p []float64) r2.Vec {
	var v r2.Vec
	if len(p) > 0 {
		v.X = p[0]
	}
	if len(p) > 1 {
		v.Y = p[1]
	}
	return v
}

// Point returns point i of a row-major 2D point list.
func Point(points []float64, i int) r2.Vec {
	return r2.Vec{X: points[2*i], Y: points[2*i+1]}
}

// Bounds returns the bounding box of a row-major 2D point list. An empty
// list yields the zero box.
func Bounds(points []float64) r2.Box {
	if len(points) < 2 {
		return r2.Box{}
	}
	b := r2.Box{
		Min: r2.Vec{X: math.Inf(1), Y: math.Inf(1)},
		Max: r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	for i := 0; i+1 < len(points); i += 2 {
		b.Min.X = math.Min(b.Min.X, points[i])
		b.Min.Y = math.Min(b.Min.Y, points[i+1])
		b.Max.X = math.Max(b.Max.X, points[i])
		b.Max.Y = math.Max(b.Max.Y, points[i+1])
	}
	return b
}

// Tolerance scales rel by the bounding box diagonal of points, never below
// rel itself.
func Tolerance(points []float64, rel float64) float64 {
	b := Bounds(points)
	return rel * math.Max(1, r2.Norm(r2.Sub(b.Max, b.Min)))
}

// Near reports whether a and b are within tol of each other.
func Near(a, b r2.Vec, tol float64) bool {
	return r2.Norm(r2.Sub(a, b)) <= tol
}

// Centroid returns the arithmetic mean of pts.
func Centroid(pts ...r2.Vec) r2.Vec {
	var c r2.Vec
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c = r2.Add(c, p)
	}
	return r2.Scale(1/float64(len(pts)), c)
}

// SegmentDistance returns the distance from p to the segment [a, b].
func SegmentDistance(p, a, b r2.Vec) float64 {
	ab := r2.Sub(b, a)
	l2 := r2.Norm2(ab)
	if l2 == 0 {
		return r2.Norm(r2.Sub(p, a))
	}
	t := r2.Dot(r2.Sub(p, a), ab) / l2
	t = math.Max(0, math.Min(1, t))
	return r2.Norm(r2.Sub(p, r2.Add(a, r2.Scale(t, ab))))
}

// Circumcenter returns the center of the circle through a, b and c. ok is
// false for collinear points.
func Circumcenter(a, b, c r2.Vec) (center r2.Vec, ok bool) {
	ab := r2.Sub(b, a)
	ac := r2.Sub(c, a)
	d := 2 * r2.Cross(ab, ac)
	if d == 0 {
		return r2.Vec{}, false
	}
	b2 := r2.Norm2(ab)
	c2 := r2.Norm2(ac)
	return r2.Vec{
		X: a.X + (ac.Y*b2-ab.Y*c2)/d,
		Y: a.Y + (ab.X*c2-ac.X*b2)/d,
	}, true
}

// Orient returns twice the signed area of the triangle (a, b, c): positive
// for counter-clockwise order.
func Orient(a, b, c r2.Vec) float64 {
	return r2.Cross(r2.Sub(b, a), r2.Sub(c, a))
}
