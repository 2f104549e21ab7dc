package meshgo

import (
	"fmt"
	"sort"

	"github.com/hupe1980/meshgo/attribute"
	"github.com/hupe1980/meshgo/internal/hash"
	"github.com/hupe1980/meshgo/mesh"
)

// System is a partitioned mesh: a root mesh, its named segments, the
// interfaces between adjacent segments, a Voronoi dual and named attributes.
//
// A System is not safe for concurrent mutation.
type System struct {
	root    *mesh.Mesh
	voronoi *mesh.Mesh

	segments   []*Segment
	byName     map[string]*Segment
	byID       map[ID]*Segment
	interfaces map[uint64]*Interface
	ifaceOrder []*Interface

	attributes map[string]*attribute.Attribute
	attrOrder  []string

	opts options
}

// NewSystem creates an empty system whose root mesh has the given shape.
// Only the logging and metrics options apply to a system.
func NewSystem(dim, top int, opts ...Option) (*System, error) {
	return newSystem(dim, top, applyOptions(opts))
}

func newSystem(dim, top int, o options) (*System, error) {
	root, err := mesh.New(dim, top)
	if err != nil {
		return nil, err
	}
	voronoi, err := mesh.New(dim, 1)
	if err != nil {
		return nil, err
	}
	return &System{
		root:       root,
		voronoi:    voronoi,
		byName:     make(map[string]*Segment),
		byID:       make(map[ID]*Segment),
		interfaces: make(map[uint64]*Interface),
		attributes: make(map[string]*attribute.Attribute),
		opts:       o,
	}, nil
}

// Mesh returns the root mesh.
func (s *System) Mesh() *mesh.Mesh { return s.root }

// Voronoi returns the Voronoi dual mesh (points and finite edges).
func (s *System) Voronoi() *mesh.Mesh { return s.voronoi }

// AddSegment returns the segment with the given name, creating it on first use.
func (s *System) AddSegment(name string) (*Segment, error) {
	if seg, ok := s.byName[name]; ok {
		return seg, nil
	}
	view, err := s.root.View(s.root.Top())
	if err != nil {
		return nil, err
	}
	seg := &Segment{id: s.nextID(), name: name, mesh: view}
	s.segments = append(s.segments, seg)
	s.byName[name] = seg
	s.byID[seg.id] = seg
	return seg, nil
}

// Segment returns the segment with the given name.
func (s *System) Segment(name string) (*Segment, error) {
	seg, ok := s.byName[name]
	if !ok {
		return nil, &ErrSegment{Name: name}
	}
	return seg, nil
}

// SegmentByID returns the segment with the given id.
func (s *System) SegmentByID(id ID) (*Segment, error) {
	seg, ok := s.byID[id]
	if !ok {
		return nil, &ErrSegment{ID: id}
	}
	return seg, nil
}

// Segments returns the segments in creation order.
func (s *System) Segments() []*Segment {
	return append([]*Segment(nil), s.segments...)
}

// Interface returns the interface between segments a and b, creating it on
// first use. The lookup is symmetric.
func (s *System) Interface(a, b ID) (*Interface, error) {
	if a == b {
		return nil, fmt.Errorf("%w: %d", ErrSameSegment, a)
	}
	sa, err := s.SegmentByID(a)
	if err != nil {
		return nil, err
	}
	sb, err := s.SegmentByID(b)
	if err != nil {
		return nil, err
	}
	key := hash.Pair(uint32(a), uint32(b))
	if iface, ok := s.interfaces[key]; ok {
		return iface, nil
	}
	if sa.id > sb.id {
		sa, sb = sb, sa
	}
	view, err := s.root.View(s.root.Top() - 1)
	if err != nil {
		return nil, err
	}
	iface := &Interface{
		Segment: Segment{id: s.nextID(), name: interfaceName(sa, sb), mesh: view},
		a:       sa,
		b:       sb,
	}
	s.interfaces[key] = iface
	s.ifaceOrder = append(s.ifaceOrder, iface)
	sa.interfaces = append(sa.interfaces, iface)
	sb.interfaces = append(sb.interfaces, iface)
	return iface, nil
}

// InterfaceByName returns the interface between the named segments.
func (s *System) InterfaceByName(a, b string) (*Interface, error) {
	sa, err := s.Segment(a)
	if err != nil {
		return nil, err
	}
	sb, err := s.Segment(b)
	if err != nil {
		return nil, err
	}
	return s.Interface(sa.id, sb.id)
}

// Interfaces returns the interfaces in creation order.
func (s *System) Interfaces() []*Interface {
	return append([]*Interface(nil), s.ifaceOrder...)
}

// AddAttribute creates a named attribute.
func (s *System) AddAttribute(name string, loc attribute.Location, extents ...int) (*attribute.Attribute, error) {
	if _, ok := s.attributes[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrAttributeExists, name)
	}
	a, err := attribute.New(name, loc, extents...)
	if err != nil {
		return nil, err
	}
	s.attributes[name] = a
	s.attrOrder = append(s.attrOrder, name)
	return a, nil
}

// Attribute returns the named attribute.
func (s *System) Attribute(name string) (*attribute.Attribute, bool) {
	a, ok := s.attributes[name]
	return a, ok
}

// Attributes returns the attribute names in sorted order.
func (s *System) Attributes() []string {
	names := append([]string(nil), s.attrOrder...)
	sort.Strings(names)
	return names
}

func (s *System) nextID() ID {
	return ID(len(s.segments) + len(s.interfaces)) //nolint:gosec // small
}
