package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/meshgo/internal/hash"
)

// ID identifies a point or a simplex within one container.
type ID uint32

// Simplex is a mesh element of dimension Dim defined by Dim+1 vertex ids.
type Simplex struct {
	id     ID
	n      uint8
	v      [hash.MaxArity]ID
	coords *Coordinates
}

// ID returns the element id within its container.
func (s *Simplex) ID() ID { return s.id }

// Dim returns the topological dimension (0 vertex, 1 edge, 2 face, 3 cell).
func (s *Simplex) Dim() int { return int(s.n) - 1 }

// Len returns the number of vertices.
func (s *Simplex) Len() int { return int(s.n) }

// Vertex returns the i-th vertex id in insertion order.
func (s *Simplex) Vertex(i int) (ID, error) {
	if i < 0 || i >= int(s.n) {
		return 0, &RangeError{What: "vertex index", Index: i, Len: int(s.n)}
	}
	return s.v[i], nil
}

// Vertices returns the vertex ids in insertion order.
func (s *Simplex) Vertices() []ID {
	return append([]ID(nil), s.v[:s.n]...)
}

// Point returns the coordinates of the i-th vertex.
func (s *Simplex) Point(i int) ([]float64, error) {
	vid, err := s.Vertex(i)
	if err != nil {
		return nil, err
	}
	return s.coords.Point(vid)
}

// Points returns the coordinates of every vertex. Vertices without a point in
// the coordinate store yield +Inf coordinates.
func (s *Simplex) Points() [][]float64 {
	out := make([][]float64, s.n)
	for i := range out {
		out[i] = s.pointOrInf(s.v[i])
	}
	return out
}

// Center returns the barycenter: the point for a vertex, the midpoint for an
// edge, the centroid for a triangle or tetrahedron.
func (s *Simplex) Center() []float64 {
	c := make([]float64, s.coords.Dim())
	for i := 0; i < int(s.n); i++ {
		floats.Add(c, s.pointOrInf(s.v[i]))
	}
	floats.Scale(1/float64(s.n), c)
	return c
}

func (s *Simplex) String() string {
	return fmt.Sprintf("Simplex%d(%d: %v)", s.Dim(), s.id, s.v[:s.n])
}

func (s *Simplex) key() hash.Key {
	var buf [hash.MaxArity]uint32
	for i := 0; i < int(s.n); i++ {
		buf[i] = uint32(s.v[i])
	}
	return hash.Canonical(buf[:s.n]...)
}

func (s *Simplex) pointOrInf(id ID) []float64 {
	if p := s.coords.point(id); p != nil {
		return p
	}
	inf := make([]float64, s.coords.Dim())
	for i := range inf {
		inf[i] = math.Inf(1)
	}
	return inf
}
