package meshgo

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/hupe1980/meshgo/attribute"
	"github.com/hupe1980/meshgo/blobstore"
	"github.com/hupe1980/meshgo/mesh"
	"github.com/hupe1980/meshgo/snapshot"
)

// systemDoc is the snapshot payload of a System.
type systemDoc struct {
	Root       meshDoc        `json:"root"`
	Voronoi    meshDoc        `json:"voronoi"`
	Parts      []partDoc      `json:"parts"`
	Attributes []attributeDoc `json:"attributes,omitempty"`
}

// meshDoc stores the points and, per level, the flattened vertex tuples of
// every element in id order.
type meshDoc struct {
	Dim    int        `json:"dim"`
	Top    int        `json:"top"`
	Points []float64  `json:"points"`
	Levels [][]uint32 `json:"levels"`
}

// partDoc is a segment, or an interface when Parents is set.
type partDoc struct {
	ID      uint32     `json:"id"`
	Name    string     `json:"name"`
	Parents []uint32   `json:"parents,omitempty"`
	Members [][]uint32 `json:"members"`
}

type attributeDoc struct {
	Name     string    `json:"name"`
	Location uint8     `json:"location"`
	Extents  []int     `json:"extents"`
	Data     []float64 `json:"data"`
}

// Save writes a snapshot of the system to store under name.
func (s *System) Save(ctx context.Context, store blobstore.BlobStore, name string, opts ...snapshot.Option) error {
	start := time.Now()
	size, err := s.save(ctx, store, name, opts)
	s.opts.metricsCollector.RecordSnapshot("save", size, time.Since(start), err)
	s.opts.logger.LogSnapshot(ctx, "save", name, size, err)
	return err
}

func (s *System) save(ctx context.Context, store blobstore.BlobStore, name string, opts []snapshot.Option) (int, error) {
	data, err := snapshot.Marshal(s.document(), opts...)
	if err != nil {
		return 0, err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return 0, fmt.Errorf("put snapshot %s: %w", name, err)
	}
	return len(data), nil
}

// WriteTo writes a snapshot frame with the default codec and compression.
func (s *System) WriteTo(w io.Writer) (int64, error) {
	h, err := snapshot.Encode(w, s.document())
	if err != nil {
		return 0, err
	}
	return h.Size(), nil
}

// Load reads the snapshot name from store.
func Load(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (*System, error) {
	o := applyOptions(opts)
	start := time.Now()
	sys, size, err := load(ctx, store, name, o)
	o.metricsCollector.RecordSnapshot("load", size, time.Since(start), err)
	o.logger.LogSnapshot(ctx, "load", name, size, err)
	return sys, err
}

func load(ctx context.Context, store blobstore.BlobStore, name string, o options) (*System, int, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, 0, fmt.Errorf("read snapshot %s: %w", name, err)
	}
	var doc systemDoc
	if _, err := snapshot.Unmarshal(data, &doc); err != nil {
		return nil, len(data), err
	}
	sys, err := fromDocument(&doc, o)
	return sys, len(data), err
}

// ReadSystem decodes a system from a snapshot frame written by WriteTo.
func ReadSystem(r io.Reader, opts ...Option) (*System, error) {
	var doc systemDoc
	if _, err := snapshot.Decode(r, &doc); err != nil {
		return nil, err
	}
	return fromDocument(&doc, applyOptions(opts))
}

func (s *System) document() *systemDoc {
	doc := &systemDoc{
		Root:    meshDocument(s.root),
		Voronoi: meshDocument(s.voronoi),
	}
	for _, seg := range s.segments {
		doc.Parts = append(doc.Parts, partDoc{ID: uint32(seg.id), Name: seg.name, Members: members(seg.mesh)})
	}
	for _, iface := range s.ifaceOrder {
		doc.Parts = append(doc.Parts, partDoc{
			ID:      uint32(iface.id),
			Name:    iface.name,
			Parents: []uint32{uint32(iface.a.id), uint32(iface.b.id)},
			Members: members(iface.mesh),
		})
	}
	for _, name := range s.attrOrder {
		a := s.attributes[name]
		doc.Attributes = append(doc.Attributes, attributeDoc{
			Name:     name,
			Location: uint8(a.Location()),
			Extents:  a.Extents(),
			Data:     a.Data(),
		})
	}
	return doc
}

func meshDocument(m *mesh.Mesh) meshDoc {
	d := meshDoc{
		Dim:    m.Dim(),
		Top:    m.Top(),
		Points: m.Coordinates().Data(),
		Levels: make([][]uint32, m.Top()+1),
	}
	for k := 0; k <= m.Top(); k++ {
		c, _ := m.Level(k)
		flat := make([]uint32, 0, c.Len()*(k+1))
		for _, s := range c.All() {
			for _, v := range s.Vertices() {
				flat = append(flat, uint32(v))
			}
		}
		d.Levels[k] = flat
	}
	return d
}

func members(m *mesh.Mesh) [][]uint32 {
	out := make([][]uint32, m.Top()+1)
	for k := range out {
		c, _ := m.Level(k)
		ids := c.IDs()
		out[k] = make([]uint32, len(ids))
		for i, id := range ids {
			out[k][i] = uint32(id)
		}
	}
	return out
}

func fromDocument(doc *systemDoc, o options) (*System, error) {
	sys, err := newSystem(doc.Root.Dim, doc.Root.Top, o)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", snapshot.ErrCorrupt, err)
	}
	if err := restoreMesh(sys.root, doc.Root); err != nil {
		return nil, err
	}
	if doc.Voronoi.Top > sys.voronoi.Top() {
		return nil, fmt.Errorf("%w: voronoi mesh of dimension %d", snapshot.ErrCorrupt, doc.Voronoi.Top)
	}
	if err := restoreMesh(sys.voronoi, doc.Voronoi); err != nil {
		return nil, err
	}

	parts := slices.SortedFunc(slices.Values(doc.Parts), func(a, b partDoc) int { return cmp.Compare(a.ID, b.ID) })
	for _, p := range parts {
		var seg *Segment
		switch len(p.Parents) {
		case 0:
			seg, err = sys.AddSegment(p.Name)
		case 2:
			var iface *Interface
			iface, err = sys.Interface(ID(p.Parents[0]), ID(p.Parents[1]))
			if iface != nil {
				seg = &iface.Segment
			}
		default:
			err = fmt.Errorf("part %q has %d parents", p.Name, len(p.Parents))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", snapshot.ErrCorrupt, err)
		}
		if uint32(seg.id) != p.ID || seg.name != p.Name {
			return nil, fmt.Errorf("%w: part %q restored as %q with id %d, want %d", snapshot.ErrCorrupt, p.Name, seg.name, seg.id, p.ID)
		}
		if err := restoreMembers(seg.mesh, p.Members); err != nil {
			return nil, err
		}
	}

	for _, a := range doc.Attributes {
		attr, err := sys.AddAttribute(a.Name, attribute.Location(a.Location))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", snapshot.ErrCorrupt, err)
		}
		if err := attr.Load(a.Extents, a.Data); err != nil {
			return nil, fmt.Errorf("%w: %w", snapshot.ErrCorrupt, err)
		}
	}
	return sys, nil
}

func restoreMesh(m *mesh.Mesh, d meshDoc) error {
	if d.Dim != m.Dim() || len(d.Levels) > m.Top()+1 {
		return fmt.Errorf("%w: mesh shape dim=%d levels=%d", snapshot.ErrCorrupt, d.Dim, len(d.Levels))
	}
	if err := m.Coordinates().Reset(d.Points); err != nil {
		return fmt.Errorf("%w: %w", snapshot.ErrCorrupt, err)
	}
	points := m.Coordinates().Len()
	for k, flat := range d.Levels {
		c, _ := m.Level(k)
		arity := k + 1
		if len(flat)%arity != 0 {
			return fmt.Errorf("%w: level %d has %d ids", snapshot.ErrCorrupt, k, len(flat))
		}
		for _, v := range flat {
			if int(v) >= points {
				return fmt.Errorf("%w: level %d references point %d of %d", snapshot.ErrCorrupt, k, v, points)
			}
		}
		if err := c.ClearAndReserve(len(flat) / arity); err != nil {
			return err
		}
		tuple := make([]mesh.ID, arity)
		for i := 0; i < len(flat)/arity; i++ {
			for j := range tuple {
				tuple[j] = mesh.ID(flat[i*arity+j])
			}
			s, err := c.Insert(tuple...)
			if err != nil {
				return fmt.Errorf("%w: %w", snapshot.ErrCorrupt, err)
			}
			if int(s.ID()) != i {
				return fmt.Errorf("%w: duplicate element %v at level %d", snapshot.ErrCorrupt, tuple, k)
			}
		}
	}
	return nil
}

func restoreMembers(m *mesh.Mesh, levels [][]uint32) error {
	if len(levels) > m.Top()+1 {
		return fmt.Errorf("%w: %d member levels for dimension %d", snapshot.ErrCorrupt, len(levels), m.Top())
	}
	for k, ids := range levels {
		c, _ := m.Level(k)
		for _, id := range ids {
			if _, err := c.Reference(mesh.ID(id)); err != nil {
				return fmt.Errorf("%w: %w", snapshot.ErrCorrupt, err)
			}
		}
	}
	return nil
}
