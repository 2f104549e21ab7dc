// Package mesh implements content-addressed simplicial meshes.
//
// # Containers
//
// A Container stores the simplices of one topological dimension. Simplices
// are content-addressed: inserting the same unordered vertex set twice
// returns the same element, and ids are dense, 0-based and never reused.
//
//	m, _ := mesh.New(2, 2)
//	a, _ := m.InsertVertex(0, 0)
//	b, _ := m.InsertVertex(1, 0)
//	c, _ := m.InsertVertex(0, 1)
//	f, _ := m.InsertFace(a.ID(), b.ID(), c.ID()) // also creates 3 edges
//
// # Views
//
// A mesh created with New owns its containers. Mesh.View creates a mesh that
// shares the coordinate store and every simplex table of its parent but keeps
// an independent, sorted membership set per dimension. Segments of a
// meshgo.System are views over the system's root mesh.
//
//	left, _ := m.View(2)
//	faces, _ := left.Faces()
//	faces.Reference(f.ID())
//
// Inserting through a view inserts into the shared table (deduplicated) and
// registers the element in the view.
//
// # Errors
//
// Wrong vertex counts return *ArityError (ErrArity), bad indices return
// *RangeError (ErrOutOfRange) and missing topological levels return
// ErrUnsupported.
package mesh
