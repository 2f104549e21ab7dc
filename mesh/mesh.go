package mesh

import (
	"fmt"

	"github.com/hupe1980/meshgo/internal/arena"
)

// MaxDim is the largest supported embedding and topological dimension.
const MaxDim = 3

// Mesh is a simplicial complex of topological dimension Top embedded in Dim
// dimensions. It holds one container per level 0..Top.
//
// A root mesh owns its containers and coordinates. A view (see View) shares
// them with its parent and records its own membership per level.
type Mesh struct {
	dim    int
	top    int
	arena  *arena.Arena
	coords *Coordinates
	levels [MaxDim + 1]*Container
	parent *Mesh
}

// New creates a root mesh with empty owning containers.
func New(dim, top int) (*Mesh, error) {
	if dim < 1 || dim > MaxDim {
		return nil, &RangeError{What: "dimension", Index: dim, Len: MaxDim + 1}
	}
	if top < 0 || top > dim {
		return nil, &RangeError{What: "topological dimension", Index: top, Len: dim + 1}
	}
	a := arena.New()
	m := &Mesh{
		dim:    dim,
		top:    top,
		arena:  a,
		coords: newCoordinates(a, dim),
	}
	for k := 0; k <= top; k++ {
		m.levels[k] = newContainer(a, k, m.coords)
	}
	return m, nil
}

// View creates a mesh referencing this mesh's storage up to level top.
func (m *Mesh) View(top int) (*Mesh, error) {
	if top < 0 || top > m.top {
		return nil, &RangeError{What: "view dimension", Index: top, Len: m.top + 1}
	}
	v := &Mesh{
		dim:    m.dim,
		top:    top,
		arena:  m.arena,
		coords: m.coords,
		parent: m,
	}
	for k := 0; k <= top; k++ {
		v.levels[k] = m.levels[k].newView()
	}
	return v, nil
}

// Dim returns the embedding dimension.
func (m *Mesh) Dim() int { return m.dim }

// Top returns the topological dimension.
func (m *Mesh) Top() int { return m.top }

// IsView reports whether the mesh references another mesh's storage.
func (m *Mesh) IsView() bool { return m.parent != nil }

// Parent returns the mesh this view was created from, or nil for a root.
func (m *Mesh) Parent() *Mesh { return m.parent }

// Coordinates returns the shared point store.
func (m *Mesh) Coordinates() *Coordinates { return m.coords }

// Point returns a copy of the coordinates of point id.
func (m *Mesh) Point(id ID) ([]float64, error) { return m.coords.Point(id) }

// Level returns the container of k-simplices.
func (m *Mesh) Level(k int) (*Container, error) {
	if k < 0 || k > m.top {
		return nil, unsupported("no level %d in a mesh of topological dimension %d", k, m.top)
	}
	return m.levels[k], nil
}

// Vertices returns the vertex container. Every mesh has one.
func (m *Mesh) Vertices() *Container { return m.levels[0] }

// Edges returns the container of 1-simplices.
func (m *Mesh) Edges() (*Container, error) { return m.Level(1) }

// Faces returns the container of 2-simplices.
func (m *Mesh) Faces() (*Container, error) { return m.Level(2) }

// Cells returns the container of 3-simplices.
func (m *Mesh) Cells() (*Container, error) { return m.Level(3) }

// Bodies returns the container of the highest level (codimension 0).
func (m *Mesh) Bodies() (*Container, error) { return m.Level(m.top) }

// Facets returns the container of codimension 1.
func (m *Mesh) Facets() (*Container, error) { return m.Level(m.top - 1) }

// Ridges returns the container of codimension 2.
func (m *Mesh) Ridges() (*Container, error) { return m.Level(m.top - 2) }

// Peaks returns the container of codimension 3.
func (m *Mesh) Peaks() (*Container, error) { return m.Level(m.top - 3) }

// InsertPoint appends a point to the coordinate store without creating a
// vertex.
func (m *Mesh) InsertPoint(coords ...float64) (ID, error) {
	return m.coords.Append(coords...)
}

// InsertVertex appends a point and creates its vertex.
func (m *Mesh) InsertVertex(coords ...float64) (*Simplex, error) {
	id, err := m.coords.Append(coords...)
	if err != nil {
		return nil, err
	}
	return m.Vertex(id)
}

// Vertex returns the vertex of point id, creating it on first use.
func (m *Mesh) Vertex(id ID) (*Simplex, error) {
	if m.coords.point(id) == nil {
		return nil, &RangeError{What: "point", Index: int(id), Len: m.coords.Len()}
	}
	return m.levels[0].Insert(id)
}

// InsertEdge inserts the edge {a, b} and its vertices.
func (m *Mesh) InsertEdge(a, b ID) (*Simplex, error) {
	edges, err := m.Edges()
	if err != nil {
		return nil, err
	}
	for _, id := range [...]ID{a, b} {
		if _, err := m.Vertex(id); err != nil {
			return nil, err
		}
	}
	return edges.Insert(a, b)
}

// InsertFace inserts the triangle {a, b, c} with its edges and vertices.
func (m *Mesh) InsertFace(a, b, c ID) (*Simplex, error) {
	faces, err := m.Faces()
	if err != nil {
		return nil, err
	}
	for _, e := range [...][2]ID{{a, b}, {b, c}, {c, a}} {
		if _, err := m.InsertEdge(e[0], e[1]); err != nil {
			return nil, err
		}
	}
	return faces.Insert(a, b, c)
}

// InsertCell inserts the tetrahedron {a, b, c, d} with all of its faces,
// edges and vertices.
func (m *Mesh) InsertCell(a, b, c, d ID) (*Simplex, error) {
	cells, err := m.Cells()
	if err != nil {
		return nil, err
	}
	for _, f := range [...][3]ID{{a, b, c}, {a, b, d}, {a, c, d}, {b, c, d}} {
		if _, err := m.InsertFace(f[0], f[1], f[2]); err != nil {
			return nil, err
		}
	}
	return cells.Insert(a, b, c, d)
}

// InsertSimplex dispatches on the number of ids.
func (m *Mesh) InsertSimplex(ids ...ID) (*Simplex, error) {
	switch len(ids) {
	case 1:
		return m.Vertex(ids[0])
	case 2:
		return m.InsertEdge(ids[0], ids[1])
	case 3:
		return m.InsertFace(ids[0], ids[1], ids[2])
	case 4:
		return m.InsertCell(ids[0], ids[1], ids[2], ids[3])
	default:
		return nil, &ArityError{Dim: len(ids) - 1, Want: m.top + 1, Got: len(ids)}
	}
}

// Stats returns the storage usage of the root mesh's arena.
func (m *Mesh) Stats() Stats {
	st := m.arena.Stats()
	return Stats{
		Points:   m.coords.Len(),
		Slots:    int(st.Slots),    //nolint:gosec // small
		Items:    int(st.Items),    //nolint:gosec // bounded by memory
		Reserved: int(st.Reserved), //nolint:gosec // bounded by memory
		Resets:   int(st.Resets),   //nolint:gosec // small
	}
}

// Stats describes the storage held by a root mesh and its views.
type Stats struct {
	Points   int
	Slots    int
	Items    int
	Reserved int
	Resets   int
}

func (s Stats) String() string {
	return fmt.Sprintf("points=%d slots=%d items=%d reserved=%d resets=%d",
		s.Points, s.Slots, s.Items, s.Reserved, s.Resets)
}
