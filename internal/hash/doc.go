// Package hash provides the hashing primitives used across meshgo.
//
// # Simplex hashes
//
// Mesh elements are content-addressed by their vertex sets. Each arity has
// one pure, order-independent hash function taking the vertex ids in any
// order:
//
//	h := hash.Simplex(3, 1, 2) // == hash.Simplex(1, 2, 3)
//
// Hashes may collide; callers keep buckets and compare canonical tuples
// (see Canonical) on lookup.
//
// # Pair keys
//
// Pair packs an unordered pair of 32-bit ids into a collision-free, symmetric
// 64-bit key. It is used to key interfaces between two segments.
//
// # CRC32-Castagnoli (CRC32C)
//
// Snapshot payloads are checksummed with CRC32C, which is hardware
// accelerated on x86 (SSE4.2) and ARM (CRC extension):
//
//	checksum := hash.CRC32C(data)
package hash
