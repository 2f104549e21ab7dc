package triangle

import (
	"fmt"
	"math"
)

// Reserved segment markers.
const (
	MarkerInterior = 0
	MarkerHull     = 1
	// MarkerBase is the first marker available to input segments.
	MarkerBase = 2
)

// Ray is the vertex id used for the open end of an unbounded Voronoi edge.
const Ray = -1

// Triangulator computes a constrained triangulation of a planar straight
// line graph.
type Triangulator interface {
	Triangulate(in *Input, sw Switches) (*Output, error)
}

// TriangulatorFunc adapts a function to the Triangulator interface.
type TriangulatorFunc func(in *Input, sw Switches) (*Output, error)

// Triangulate calls f(in, sw).
func (f TriangulatorFunc) Triangulate(in *Input, sw Switches) (*Output, error) {
	return f(in, sw)
}

// Input is a planar straight line graph.
type Input struct {
	// Points holds x, y pairs.
	Points []float64
	// Segments holds pairs of point indices.
	Segments []int
	// Markers holds one marker per segment.
	Markers []int
}

// NumPoints returns the number of input points.
func (in *Input) NumPoints() int { return len(in.Points) / 2 }

// NumSegments returns the number of input segments.
func (in *Input) NumSegments() int { return len(in.Segments) / 2 }

// Validate checks array shapes, indices and coordinates.
func (in *Input) Validate() error {
	if len(in.Points)%2 != 0 {
		return fmt.Errorf("%w: %d coordinates is not a list of 2D points", ErrInvalidInput, len(in.Points))
	}
	for i, v := range in.Points {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: coordinate %d is not finite", ErrInvalidInput, i)
		}
	}
	if len(in.Segments)%2 != 0 {
		return fmt.Errorf("%w: odd segment list length %d", ErrInvalidInput, len(in.Segments))
	}
	if len(in.Markers) != in.NumSegments() {
		return fmt.Errorf("%w: %d markers for %d segments", ErrInvalidInput, len(in.Markers), in.NumSegments())
	}
	n := in.NumPoints()
	for i, v := range in.Segments {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: segment %d references point %d of %d", ErrInvalidInput, i/2, v, n)
		}
	}
	return nil
}

// Output is the result of a triangulation. All ids are zero-based.
type Output struct {
	Points    []float64
	Edges     []int
	Triangles []int
	// Segments and SegmentMarkers list the constraint segments that survived
	// triangulation, plus hull segments when the convex hull is enclosed.
	Segments       []int
	SegmentMarkers []int
	Voronoi        Voronoi
}

// Voronoi is the dual of a triangulation. Point i is the circumcenter of
// triangle i; edge i is the dual of Delaunay edge i. Unbounded edges end in
// Ray and carry their outward direction in Normals.
type Voronoi struct {
	Points  []float64
	Edges   []int
	Normals []float64
}

// NumPoints returns the number of output points.
func (o *Output) NumPoints() int { return len(o.Points) / 2 }

// NumEdges returns the number of output edges.
func (o *Output) NumEdges() int { return len(o.Edges) / 2 }

// NumTriangles returns the number of output triangles.
func (o *Output) NumTriangles() int { return len(o.Triangles) / 3 }

// NumSegments returns the number of output segments.
func (o *Output) NumSegments() int { return len(o.Segments) / 2 }

// Validate checks that every id in the output references an output point.
func (o *Output) Validate() error {
	n := o.NumPoints()
	if len(o.Points)%2 != 0 || len(o.Edges)%2 != 0 || len(o.Triangles)%3 != 0 || len(o.Segments)%2 != 0 {
		return fmt.Errorf("%w: malformed output arrays", ErrInvalidInput)
	}
	if len(o.SegmentMarkers) != o.NumSegments() {
		return fmt.Errorf("%w: %d markers for %d output segments", ErrInvalidInput, len(o.SegmentMarkers), o.NumSegments())
	}
	for _, list := range [][]int{o.Edges, o.Triangles, o.Segments} {
		for _, v := range list {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: output references point %d of %d", ErrInvalidInput, v, n)
			}
		}
	}
	nv := len(o.Voronoi.Points) / 2
	for _, v := range o.Voronoi.Edges {
		if v != Ray && (v < 0 || v >= nv) {
			return fmt.Errorf("%w: voronoi edge references point %d of %d", ErrInvalidInput, v, nv)
		}
	}
	return nil
}
