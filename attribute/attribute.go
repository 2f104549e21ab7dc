// Package attribute stores named numeric fields attached to mesh elements.
package attribute

import (
	"fmt"

	"github.com/hupe1980/meshgo/mesh"
)

// Location is the kind of entity an attribute is stored on.
type Location uint8

const (
	Vertex Location = iota
	Edge
	Face
	Cell
	Segment
)

func (l Location) String() string {
	switch l {
	case Vertex:
		return "vertex"
	case Edge:
		return "edge"
	case Face:
		return "face"
	case Cell:
		return "cell"
	case Segment:
		return "segment"
	default:
		return fmt.Sprintf("location(%d)", uint8(l))
	}
}

// Attribute is a dense, row-major float64 array with declared extents.
type Attribute struct {
	name     string
	location Location
	extents  []int
	data     []float64
}

// New creates a zero-filled attribute. Without extents the attribute holds a
// single value.
func New(name string, loc Location, extents ...int) (*Attribute, error) {
	a := &Attribute{name: name, location: loc}
	if err := a.Resize(extents...); err != nil {
		return nil, err
	}
	return a, nil
}

// Name returns the attribute name.
func (a *Attribute) Name() string { return a.name }

// Location returns the storage location.
func (a *Attribute) Location() Location { return a.location }

// Dimension returns the number of extents.
func (a *Attribute) Dimension() int { return len(a.extents) }

// Extents returns a copy of the extents.
func (a *Attribute) Extents() []int { return append([]int(nil), a.extents...) }

// Extent returns the size of dimension dim.
func (a *Attribute) Extent(dim int) (int, error) {
	if dim < 0 || dim >= len(a.extents) {
		return 0, &mesh.RangeError{What: "attribute dimension", Index: dim, Len: len(a.extents)}
	}
	return a.extents[dim], nil
}

// Len returns the number of stored values.
func (a *Attribute) Len() int { return len(a.data) }

// Data returns the raw values. The slice aliases the attribute.
func (a *Attribute) Data() []float64 { return a.data }

// Resize replaces the extents and zero-fills the values.
func (a *Attribute) Resize(extents ...int) error {
	if len(extents) == 0 {
		extents = []int{1}
	}
	n := 1
	for i, e := range extents {
		if e < 0 {
			return &mesh.RangeError{What: fmt.Sprintf("extent %d", i), Index: e, Len: 0}
		}
		n *= e
	}
	a.extents = append(a.extents[:0:0], extents...)
	a.data = make([]float64, n)
	return nil
}

// At returns the value at the given multi-index.
func (a *Attribute) At(idx ...int) (float64, error) {
	off, err := a.offset(idx)
	if err != nil {
		return 0, err
	}
	return a.data[off], nil
}

// Set stores v at the given multi-index.
func (a *Attribute) Set(v float64, idx ...int) error {
	off, err := a.offset(idx)
	if err != nil {
		return err
	}
	a.data[off] = v
	return nil
}

// Fill sets every value to v.
func (a *Attribute) Fill(v float64) {
	for i := range a.data {
		a.data[i] = v
	}
}

// Load replaces extents and values. len(data) must match the extents.
func (a *Attribute) Load(extents []int, data []float64) error {
	if err := a.Resize(extents...); err != nil {
		return err
	}
	if len(data) != len(a.data) {
		return fmt.Errorf("%w: attribute %q needs %d values, got %d", mesh.ErrOutOfRange, a.name, len(a.data), len(data))
	}
	copy(a.data, data)
	return nil
}

func (a *Attribute) offset(idx []int) (int, error) {
	if len(idx) != len(a.extents) {
		return 0, fmt.Errorf("%w: attribute %q has %d dimensions, got %d indices",
			mesh.ErrOutOfRange, a.name, len(a.extents), len(idx))
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= a.extents[d] {
			return 0, &mesh.RangeError{What: fmt.Sprintf("attribute %q index %d", a.name, d), Index: i, Len: a.extents[d]}
		}
		off = off*a.extents[d] + i
	}
	return off, nil
}
