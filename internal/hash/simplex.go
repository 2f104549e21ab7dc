package hash

import "slices"

// MaxArity is the largest vertex tuple a simplex can carry (a tetrahedron).
const MaxArity = 4

// Multipliers used to spread the sorted vertex ids over the 64-bit space.
const (
	p1 uint64 = 73856093
	p2 uint64 = 19349663
	p3 uint64 = 83492791
	p4 uint64 = 50331653
)

// Key is a canonical (ascending) vertex tuple. Unused trailing slots are zero
// and N records the arity, so keys of different arity never compare equal.
type Key struct {
	N uint8
	V [MaxArity]uint32
}

// Canonical returns the ascending tuple for ids. It panics if more than
// MaxArity ids are given; arity is validated by the containers before hashing.
func Canonical(ids ...uint32) Key {
	if len(ids) > MaxArity {
		panic("hash: simplex arity exceeds MaxArity")
	}
	k := Key{N: uint8(len(ids))} //nolint:gosec // len <= MaxArity
	copy(k.V[:], ids)
	slices.Sort(k.V[:len(ids)])
	return k
}

// Simplex1 hashes a vertex.
func Simplex1(a uint32) uint64 {
	return mix(uint64(a))
}

// Simplex2 hashes an unordered edge.
func Simplex2(a, b uint32) uint64 {
	if a > b {
		a, b = b, a
	}
	return mix(uint64(a)*p1 ^ uint64(b)*p2)
}

// Simplex3 hashes an unordered triangle.
func Simplex3(a, b, c uint32) uint64 {
	a, b, c = sort3(a, b, c)
	return mix(uint64(a)*p1 ^ uint64(b)*p2 ^ uint64(c)*p3)
}

// Simplex4 hashes an unordered tetrahedron.
func Simplex4(a, b, c, d uint32) uint64 {
	k := Canonical(a, b, c, d)
	return mix(uint64(k.V[0])*p1 ^ uint64(k.V[1])*p2 ^ uint64(k.V[2])*p3 ^ uint64(k.V[3])*p4)
}

// Simplex dispatches to the hash of the matching arity.
func Simplex(ids ...uint32) uint64 {
	switch len(ids) {
	case 1:
		return Simplex1(ids[0])
	case 2:
		return Simplex2(ids[0], ids[1])
	case 3:
		return Simplex3(ids[0], ids[1], ids[2])
	case 4:
		return Simplex4(ids[0], ids[1], ids[2], ids[3])
	default:
		panic("hash: unsupported simplex arity")
	}
}

// Hash returns the hash of a canonical key.
func (k Key) Hash() uint64 {
	return Simplex(k.V[:k.N]...)
}

// Pair returns a symmetric key for the unordered pair {a, b}.
func Pair(a, b uint32) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(b)
}

// mix is the splitmix64 finalizer.
func mix(v uint64) uint64 {
	v ^= v >> 30
	v *= 0xbf58476d1ce4e5b9
	v ^= v >> 27
	v *= 0x94d049bb133111eb
	v ^= v >> 31
	return v
}

func sort3(a, b, c uint32) (uint32, uint32, uint32) {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return a, b, c
}
