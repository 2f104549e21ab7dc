package boundary

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/hupe1980/meshgo/geom"
)

// ErrBrokenChain is returned when a boundary's segments do not form a single
// open path between two corners.
var ErrBrokenChain = errors.New("boundary: broken chain")

// Unrecovered marks a boundary with no surviving or borrowed chain.
const Unrecovered = -1

// Index holds the per-boundary bookkeeping of one reconstruction.
type Index struct {
	// Vertices is the vertex set of each boundary chain.
	Vertices []*roaring.Bitmap
	// Chains holds the raw endpoint pairs after Scan and the ordered vertex
	// path after Order.
	Chains [][]uint32
	// Corners holds the two chain endpoints of each boundary.
	Corners []*roaring.Bitmap
	// Source is the boundary whose chain a boundary uses: itself, the
	// boundary it was recovered from, or Unrecovered.
	Source []int

	ordered bool
}

// Len returns the number of boundaries.
func (ix *Index) Len() int { return len(ix.Chains) }

// Scan builds the index for n boundaries from output segments and their
// markers. Boundary b collects the segments marked base+b; segments with
// other markers are ignored.
func Scan(n int, segments, markers []int, base int) *Index {
	ix := &Index{
		Vertices: make([]*roaring.Bitmap, n),
		Chains:   make([][]uint32, n),
		Corners:  make([]*roaring.Bitmap, n),
		Source:   make([]int, n),
	}
	for b := 0; b < n; b++ {
		ix.Vertices[b] = roaring.New()
		ix.Corners[b] = roaring.New()
		ix.Source[b] = Unrecovered
	}
	for i, m := range markers {
		b := m - base
		if b < 0 || b >= n {
			continue
		}
		for _, v := range segments[2*i : 2*i+2] {
			id := uint32(v) //nolint:gosec // output ids are non-negative
			ix.Vertices[b].Add(id)
			ix.Chains[b] = append(ix.Chains[b], id)
			if ix.Corners[b].Contains(id) {
				ix.Corners[b].Remove(id)
			} else {
				ix.Corners[b].Add(id)
			}
		}
		ix.Source[b] = b
	}
	return ix
}

// Order replaces every raw chain with its ordered vertex path.
func (ix *Index) Order() error {
	if ix.ordered {
		return nil
	}
	for b, pairs := range ix.Chains {
		if len(pairs) == 0 {
			continue
		}
		chain, err := OrderChain(pairs, ix.Corners[b])
		if err != nil {
			return fmt.Errorf("boundary %d: %w", b, err)
		}
		ix.Chains[b] = chain
	}
	ix.ordered = true
	return nil
}

// OrderChain threads endpoint pairs [a0 b0 a1 b1 ...] into the ordered path
// of distinct vertices from the lower corner to the upper one.
func OrderChain(pairs []uint32, corners *roaring.Bitmap) ([]uint32, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("%w: odd pair list", ErrBrokenChain)
	}
	if corners.GetCardinality() != 2 {
		return nil, fmt.Errorf("%w: %d corners", ErrBrokenChain, corners.GetCardinality())
	}
	n := len(pairs) / 2
	incident := make(map[uint32][]int, n+1)
	for i := 0; i < n; i++ {
		incident[pairs[2*i]] = append(incident[pairs[2*i]], i)
		incident[pairs[2*i+1]] = append(incident[pairs[2*i+1]], i)
	}

	start, end := corners.Minimum(), corners.Maximum()
	used := make([]bool, n)
	visited := roaring.New()
	chain := make([]uint32, 0, n+1)
	cur := start
	chain = append(chain, cur)
	visited.Add(cur)
	for {
		next := -1
		for _, p := range incident[cur] {
			if !used[p] {
				next = p
				break
			}
		}
		if next < 0 {
			break
		}
		used[next] = true
		a, b := pairs[2*next], pairs[2*next+1]
		if a == cur {
			cur = b
		} else {
			cur = a
		}
		if !visited.CheckedAdd(cur) {
			return nil, fmt.Errorf("%w: vertex %d visited twice", ErrBrokenChain, cur)
		}
		chain = append(chain, cur)
	}
	if len(chain) != n+1 || cur != end {
		return nil, fmt.Errorf("%w: path from %d stops at %d after %d of %d segments", ErrBrokenChain, start, cur, len(chain)-1, n)
	}
	return chain, nil
}

// Nodes returns, per boundary, the vertices of its chain shared with at
// least one other boundary, in ascending order.
func (ix *Index) Nodes() [][]uint32 {
	seen := roaring.New()
	shared := roaring.New()
	for _, vs := range ix.Vertices {
		shared.Or(roaring.And(seen, vs))
		seen.Or(vs)
	}
	nodes := make([][]uint32, len(ix.Vertices))
	for b, vs := range ix.Vertices {
		nodes[b] = roaring.And(vs, shared).ToArray()
	}
	return nodes
}

// Geometry resolves coordinates during recovery.
type Geometry interface {
	// Endpoints returns the input coordinates of boundary b's edge.
	Endpoints(b int) (r2.Vec, r2.Vec)
	// Point returns the coordinates of an output vertex.
	Point(v uint32) r2.Vec
}

// Recover fills every boundary without a chain from the first other
// boundary holding exactly two nodes that match the boundary's input
// endpoints within tol. The inclusive span between those nodes is copied.
// It returns the boundaries that could not be recovered.
func (ix *Index) Recover(nodes [][]uint32, g Geometry, tol float64) []int {
	var failed []int
	for b := range ix.Chains {
		if len(ix.Chains[b]) > 0 {
			continue
		}
		p0, p1 := g.Endpoints(b)
		recovered := false
		for j, cand := range nodes {
			if j == b || len(cand) == 0 || ix.Source[j] != j {
				continue
			}
			var matches []uint32
			for _, v := range cand {
				p := g.Point(v)
				if geom.Near(p, p0, tol) || geom.Near(p, p1, tol) {
					matches = append(matches, v)
				}
			}
			if len(matches) != 2 {
				continue
			}
			span, ok := Span(ix.Chains[j], matches[0], matches[1])
			if !ok {
				continue
			}
			ix.Chains[b] = span
			ix.Vertices[b].AddMany(span)
			ix.Corners[b].Clear()
			ix.Corners[b].AddMany(matches)
			ix.Source[b] = j
			recovered = true
			break
		}
		if !recovered {
			failed = append(failed, b)
		}
	}
	return failed
}

// Span returns a copy of the inclusive sub-path of chain between a and b,
// in chain order.
func Span(chain []uint32, a, b uint32) ([]uint32, bool) {
	i, k := -1, -1
	for pos, v := range chain {
		switch v {
		case a:
			i = pos
		case b:
			k = pos
		}
	}
	if i < 0 || k < 0 {
		return nil, false
	}
	if i > k {
		i, k = k, i
	}
	return append([]uint32(nil), chain[i:k+1]...), true
}

// ThreadChain orders undirected pairs into a closed ring and returns the
// ring's vertices, starting at the first vertex of the first pair.
func ThreadChain(pairs [][2]uint32) ([]uint32, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no segments", ErrBrokenChain)
	}
	incident := make(map[uint32][]int, len(pairs))
	for i, p := range pairs {
		incident[p[0]] = append(incident[p[0]], i)
		incident[p[1]] = append(incident[p[1]], i)
	}
	used := make([]bool, len(pairs))
	used[0] = true
	first, cur := pairs[0][0], pairs[0][1]
	ring := []uint32{first}
	for cur != first {
		ring = append(ring, cur)
		next := -1
		for _, i := range incident[cur] {
			if !used[i] {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, fmt.Errorf("%w: ring open at vertex %d", ErrBrokenChain, cur)
		}
		used[next] = true
		if pairs[next][0] == cur {
			cur = pairs[next][1]
		} else {
			cur = pairs[next][0]
		}
	}
	for i, u := range used {
		if !u {
			return nil, fmt.Errorf("%w: segment %d not on the ring", ErrBrokenChain, i)
		}
	}
	return ring, nil
}

// Overlap returns the edges shared by two chains (consecutive in both,
// either orientation) in chain1 order, and their distinct vertices.
// Chains touching in a single vertex do not overlap.
func Overlap(chain1, chain2 []uint32) (vertices []uint32, edges [][2]uint32) {
	if len(chain1) < 2 || len(chain2) < 2 {
		return nil, nil
	}
	pos := make(map[uint32]int, len(chain2))
	for i, v := range chain2 {
		pos[v] = i
	}
	seen := roaring.New()
	for i := 0; i+1 < len(chain1); i++ {
		a, b := chain1[i], chain1[i+1]
		pa, ok1 := pos[a]
		pb, ok2 := pos[b]
		if !ok1 || !ok2 || (pa-pb != 1 && pb-pa != 1) {
			continue
		}
		edges = append(edges, [2]uint32{a, b})
		if seen.CheckedAdd(a) {
			vertices = append(vertices, a)
		}
		if seen.CheckedAdd(b) {
			vertices = append(vertices, b)
		}
	}
	return vertices, edges
}
