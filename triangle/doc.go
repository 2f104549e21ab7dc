// Package triangle defines the triangulation engine contract consumed by
// boundary reconstruction and ships a built-in engine.
//
// # Contract
//
// A Triangulator receives a planar straight line graph (row-major 2D points,
// constraint segments and one integer marker per segment) and a set of
// Switches, and returns the triangulation: points, edges, triangles, the
// surviving segments with their markers and, when requested, the Voronoi
// dual.
//
// Segment markers below MarkerBase are reserved: 0 marks an interior
// segment, 1 a segment on the convex hull that carried no input marker.
// Inputs tag their constraint segments MarkerBase, MarkerBase+1, ...
//
// # Built-in engine
//
// Delaunay is an incremental Bowyer–Watson triangulator. It does not insert
// Steiner points, so every constraint segment must already be a Delaunay
// edge of the input points; otherwise Triangulate fails with
// ErrConstraintMissing. Exactly coincident input points are merged (the
// first occurrence wins) and segments are remapped accordingly. A segment
// passing through another input point, such as the long side of a
// T-junction, is split there and every piece keeps the segment's marker.
// A piece given twice keeps only its first marker. Quality refinement and
// area constraints are not supported.
//
//	out, err := triangle.NewDelaunay().Triangulate(in, triangle.DefaultSwitches())
package triangle
