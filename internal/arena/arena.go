package arena

// Stats tracks arena usage.
//
//   - Slots: number of slots allocated from the arena
//   - Items: elements currently stored across all slots
//   - Reserved: capacity currently reserved across all slots
//   - Resets: cumulative number of slot resets
type Stats struct {
	Slots    uint64
	Items    uint64
	Reserved uint64
	Resets   uint64
}

type slotHeader interface {
	Len() int
	Cap() int
}

// Arena groups the slots of one root mesh.
type Arena struct {
	slots  []slotHeader
	resets uint64
}

// New creates an empty arena.
func New() *Arena {
	return &Arena{}
}

// Stats returns a snapshot of the arena usage.
func (a *Arena) Stats() Stats {
	st := Stats{Slots: uint64(len(a.slots)), Resets: a.resets}
	for _, s := range a.slots {
		st.Items += uint64(s.Len()) //nolint:gosec // lengths are non-negative
		st.Reserved += uint64(s.Cap())
	}
	return st
}

// Slot is a generational vector owned by an arena.
type Slot[T any] struct {
	arena *Arena
	id    uint32
	gen   uint32
	items []T
}

// NewSlot allocates a new slot with the given initial capacity.
func NewSlot[T any](a *Arena, capacity int) *Slot[T] {
	if capacity < 0 {
		capacity = 0
	}
	s := &Slot[T]{
		arena: a,
		id:    uint32(len(a.slots)), //nolint:gosec // slot count is small
		gen:   1,
		items: make([]T, 0, capacity),
	}
	a.slots = append(a.slots, s)
	return s
}

// ID returns the slot index within its arena.
func (s *Slot[T]) ID() uint32 { return s.id }

// Generation returns the current generation. It starts at 1 and increases on
// every Reset.
func (s *Slot[T]) Generation() uint32 { return s.gen }

// Len returns the number of stored elements.
func (s *Slot[T]) Len() int { return len(s.items) }

// Cap returns the reserved capacity.
func (s *Slot[T]) Cap() int { return cap(s.items) }

// Append stores values and returns the index of the first one.
func (s *Slot[T]) Append(values ...T) uint32 {
	first := uint32(len(s.items)) //nolint:gosec // ids fit in uint32
	s.items = append(s.items, values...)
	return first
}

// Get returns a pointer to the element at i, or nil if i is out of bounds.
//
// The pointer stays valid after later appends but then refers to the element
// as it was when Get was called; elements are never mutated in place.
func (s *Slot[T]) Get(i uint32) *T {
	if int(i) >= len(s.items) {
		return nil
	}
	return &s.items[i]
}

// Items returns the stored elements. The slice must not be modified.
func (s *Slot[T]) Items() []T { return s.items }

// Reset replaces the backing vector with an empty one of the given capacity
// and advances the generation.
func (s *Slot[T]) Reset(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	s.items = make([]T, 0, capacity)
	s.gen++
	s.arena.resets++
}
