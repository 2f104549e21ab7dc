// Package boundary implements the combinatorial steps of boundary
// reconstruction over triangulator output.
//
// Every input boundary edge carries its own boundary id. After
// triangulation the edge may have been split into several output segments
// (a chain) or, when the triangulator merged coincident input points, have
// vanished entirely. The steps are:
//
//  1. Scan collects, per boundary id, the chain's vertex set, its raw
//     endpoint pairs and its two corners (vertices of odd incidence).
//  2. Index.Order threads every raw chain into an ordered vertex path from
//     one corner to the other.
//  3. Index.Nodes finds the vertices where two or more boundaries meet.
//  4. Index.Recover lets vanished boundaries borrow the span of a surviving
//     boundary whose nodes match the original edge endpoints.
//  5. ThreadChain closes the corner pairs of one region into a polygon ring.
//  6. Overlap finds the shared vertices and edges of two chains.
//
// All ids are uint32 vertex ids of the triangulator output.
package boundary
