// Package arena owns the backing vectors of a root mesh.
//
// A root mesh allocates one Slot per backing vector (the coordinate store and
// one simplex table per topological level). Views over the root never copy a
// slot; they hold the slot itself plus their own index set.
//
// # Generations
//
// Resetting a slot replaces its backing vector and bumps the slot generation.
// Every holder of the slot observes the new content immediately; holders that
// cached indices compare the generation they recorded against
// Slot.Generation to detect that those indices are stale.
//
// # Concurrency Model
//
// Slots are not safe for concurrent mutation. Meshes are built by a single
// writer and read afterwards; see the meshgo package documentation.
package arena
