package mesh

import (
	"fmt"

	"github.com/hupe1980/meshgo/internal/arena"
)

// Coordinates is a flat, dimension-strided point store shared by a root mesh
// and all of its views. Point id = offset / Dim.
type Coordinates struct {
	dim  int
	slot *arena.Slot[float64]
}

func newCoordinates(a *arena.Arena, dim int) *Coordinates {
	return &Coordinates{dim: dim, slot: arena.NewSlot[float64](a, 0)}
}

// Dim returns the stride.
func (c *Coordinates) Dim() int { return c.dim }

// Len returns the number of points.
func (c *Coordinates) Len() int { return c.slot.Len() / c.dim }

// Generation returns the generation of the backing vector.
func (c *Coordinates) Generation() uint32 { return c.slot.Generation() }

// Append adds one point and returns its id.
func (c *Coordinates) Append(coords ...float64) (ID, error) {
	if len(coords) != c.dim {
		return 0, fmt.Errorf("%w: point needs %d coordinates, got %d", ErrArity, c.dim, len(coords))
	}
	off := c.slot.Append(coords...)
	return ID(off / uint32(c.dim)), nil //nolint:gosec // dim is 1..3
}

// Point returns a copy of the coordinates of point id.
func (c *Coordinates) Point(id ID) ([]float64, error) {
	p := c.point(id)
	if p == nil {
		return nil, &RangeError{What: "point", Index: int(id), Len: c.Len()}
	}
	return append([]float64(nil), p...), nil
}

// Data returns the raw coordinate list. The slice must not be modified.
func (c *Coordinates) Data() []float64 { return c.slot.Items() }

// Reset replaces every point with the given row-major list.
//
// The backing vector is swapped in place, so every mesh sharing this store
// observes the new points.
func (c *Coordinates) Reset(points []float64) error {
	if len(points)%c.dim != 0 {
		return fmt.Errorf("%w: %d values is not a multiple of dimension %d", ErrArity, len(points), c.dim)
	}
	c.slot.Reset(len(points))
	c.slot.Append(points...)
	return nil
}

// point returns a read-only view of point id, or nil.
func (c *Coordinates) point(id ID) []float64 {
	items := c.slot.Items()
	off := int(id) * c.dim
	if off+c.dim > len(items) {
		return nil
	}
	return items[off : off+c.dim : off+c.dim]
}
