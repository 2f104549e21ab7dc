package meshgo

import (
	"github.com/hupe1980/meshgo/mesh"
)

// ID identifies a segment or an interface. Segments and interfaces share
// one id space per system.
type ID uint32

// Segment is a named partition of a system's root mesh. Its mesh is a view:
// elements are stored once in the root and referenced here.
type Segment struct {
	id         ID
	name       string
	mesh       *mesh.Mesh
	interfaces []*Interface
}

// ID returns the segment id.
func (s *Segment) ID() ID { return s.id }

// Name returns the segment name.
func (s *Segment) Name() string { return s.name }

// Mesh returns the segment's view of the root mesh.
func (s *Segment) Mesh() *mesh.Mesh { return s.mesh }

// Interfaces returns the interfaces attached to the segment in creation order.
func (s *Segment) Interfaces() []*Interface {
	return append([]*Interface(nil), s.interfaces...)
}

// Interface is the shared boundary of two segments. Its mesh is one
// topological dimension below the segments'.
type Interface struct {
	Segment
	a, b *Segment
}

// Segments returns the two segments joined by the interface, lower id first.
func (i *Interface) Segments() (*Segment, *Segment) { return i.a, i.b }

// Other returns the segment on the other side of s, or nil if s is not
// attached to the interface.
func (i *Interface) Other(s *Segment) *Segment {
	switch s {
	case i.a:
		return i.b
	case i.b:
		return i.a
	default:
		return nil
	}
}

func interfaceName(a, b *Segment) string {
	return a.name + "_" + b.name
}
