package mesh

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/meshgo/internal/arena"
	"github.com/hupe1980/meshgo/internal/hash"
)

// table is the backing store of one topological level, shared by an owning
// container and all of its views.
type table struct {
	dim    int
	slot   *arena.Slot[Simplex]
	index  map[uint64][]ID
	coords *Coordinates
}

func (t *table) find(key hash.Key) (ID, bool) {
	for _, id := range t.index[key.Hash()] {
		if t.slot.Get(uint32(id)).key() == key {
			return id, true
		}
	}
	return 0, false
}

func (t *table) add(key hash.Key, ids []ID) ID {
	s := Simplex{
		id:     ID(t.slot.Len()), //nolint:gosec // ids fit in uint32
		n:      key.N,
		coords: t.coords,
	}
	copy(s.v[:], ids)
	t.slot.Append(s)
	h := key.Hash()
	t.index[h] = append(t.index[h], s.id)
	return s.id
}

// Container is a content-addressed store of simplices of one dimension.
//
// An owning container holds the backing table. A referencing container (a
// view) shares the table of its parent and keeps its own sorted membership
// set, so every element is referenced at most once.
type Container struct {
	t    *table
	view *roaring.Bitmap
	gen  uint32
}

func newContainer(a *arena.Arena, dim int, coords *Coordinates) *Container {
	return &Container{
		t: &table{
			dim:    dim,
			slot:   arena.NewSlot[Simplex](a, 0),
			index:  make(map[uint64][]ID),
			coords: coords,
		},
	}
}

// newView returns a referencing container over the same table.
func (c *Container) newView() *Container {
	return &Container{t: c.t, view: roaring.New(), gen: c.t.slot.Generation()}
}

// Dim returns the simplex dimension stored in the container.
func (c *Container) Dim() int { return c.t.dim }

// Owns reports whether the container owns its backing table.
func (c *Container) Owns() bool { return c.view == nil }

// Generation returns the generation of the backing table.
func (c *Container) Generation() uint32 { return c.t.slot.Generation() }

// Insert returns the simplex with the given vertex set, creating it on first
// use. The vertex order is irrelevant for identity; the first insertion's
// order is kept as the element's vertex order.
func (c *Container) Insert(ids ...ID) (*Simplex, error) {
	key, err := c.key(ids)
	if err != nil {
		return nil, err
	}
	id, ok := c.t.find(key)
	if !ok {
		id = c.t.add(key, ids)
	}
	return c.Reference(id)
}

// Lookup returns the simplex with the given vertex set without creating it
// and without touching a view's membership.
func (c *Container) Lookup(ids ...ID) (*Simplex, bool) {
	key, err := c.key(ids)
	if err != nil {
		return nil, false
	}
	id, ok := c.t.find(key)
	if !ok {
		return nil, false
	}
	return c.t.slot.Get(uint32(id)), true
}

// Reference returns the element with the given id. A view additionally
// records the id in its membership set; repeated calls are no-ops.
func (c *Container) Reference(id ID) (*Simplex, error) {
	s := c.t.slot.Get(uint32(id))
	if s == nil {
		return nil, &RangeError{What: "simplex id", Index: int(id), Len: c.t.slot.Len()}
	}
	if c.view != nil {
		c.sync()
		c.view.Add(uint32(id))
	}
	return s, nil
}

// At returns the i-th element: by id for an owning container, by ascending
// id among the members for a view.
func (c *Container) At(i int) (*Simplex, error) {
	n := c.Len()
	if i < 0 || i >= n {
		return nil, &RangeError{What: "element index", Index: i, Len: n}
	}
	if c.view == nil {
		return c.t.slot.Get(uint32(i)), nil //nolint:gosec // bounds checked
	}
	id, err := c.view.Select(uint32(i)) //nolint:gosec // bounds checked
	if err != nil {
		return nil, &RangeError{What: "element index", Index: i, Len: n}
	}
	return c.t.slot.Get(id), nil
}

// Len returns the number of owned elements, or of members for a view.
func (c *Container) Len() int {
	if c.view == nil {
		return c.t.slot.Len()
	}
	c.sync()
	return int(c.view.GetCardinality()) //nolint:gosec // bounded by uint32 ids
}

// Contains reports whether id is an element (owning) or a member (view).
func (c *Container) Contains(id ID) bool {
	if c.view == nil {
		return int(id) < c.t.slot.Len()
	}
	c.sync()
	return c.view.Contains(uint32(id))
}

// IDs returns the element ids in ascending order.
func (c *Container) IDs() []ID {
	if c.view == nil {
		ids := make([]ID, c.t.slot.Len())
		for i := range ids {
			ids[i] = ID(i) //nolint:gosec // ids fit in uint32
		}
		return ids
	}
	c.sync()
	raw := c.view.ToArray()
	ids := make([]ID, len(raw))
	for i, v := range raw {
		ids[i] = ID(v)
	}
	return ids
}

// All iterates over the elements in At order.
func (c *Container) All() iter.Seq2[int, *Simplex] {
	return func(yield func(int, *Simplex) bool) {
		if c.view == nil {
			for i, n := 0, c.t.slot.Len(); i < n; i++ {
				if !yield(i, c.t.slot.Get(uint32(i))) { //nolint:gosec // bounded
					return
				}
			}
			return
		}
		c.sync()
		it := c.view.Iterator()
		for i := 0; it.HasNext(); i++ {
			if !yield(i, c.t.slot.Get(it.Next())) {
				return
			}
		}
	}
}

// ClearAndReserve resets the container.
//
// On an owning container the backing table is replaced in place: every view
// sharing it observes the new (empty) content and drops its stale membership
// on next access. On a view only the membership is cleared.
func (c *Container) ClearAndReserve(n int) error {
	if n < 0 {
		return &RangeError{What: "reserve", Index: n, Len: 0}
	}
	if c.view != nil {
		c.view.Clear()
		c.gen = c.t.slot.Generation()
		return nil
	}
	c.t.slot.Reset(n)
	clear(c.t.index)
	return nil
}

// sync drops view membership recorded against an earlier table generation.
func (c *Container) sync() {
	if gen := c.t.slot.Generation(); gen != c.gen {
		c.view.Clear()
		c.gen = gen
	}
}

func (c *Container) key(ids []ID) (hash.Key, error) {
	if len(ids) != c.t.dim+1 {
		return hash.Key{}, &ArityError{Dim: c.t.dim, Want: c.t.dim + 1, Got: len(ids)}
	}
	var buf [hash.MaxArity]uint32
	for i, id := range ids {
		buf[i] = uint32(id)
	}
	return hash.Canonical(buf[:len(ids)]...), nil
}
