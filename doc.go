// Package meshgo provides mesh topology for PDE and lattice solvers.
//
// It combines a content-addressed simplex store, a mesh hierarchy that
// shares storage between a root mesh and its named segments, and boundary
// reconstruction over the output of a 2D Delaunay triangulator.
//
// # Quick Start
//
//	f, _ := meshgo.NewFactory(2, 2)
//
//	left := f.Segment("left")
//	for _, p := range [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}} {
//	    left.InsertPoint(p[0], p[1])
//	}
//	left.InsertEdge(0, 1)
//	left.InsertEdge(1, 2)
//	left.InsertEdge(2, 3)
//	left.InsertEdge(3, 0)
//
//	sys, _ := f.Create(ctx)
//	seg, _ := sys.Segment("left")
//	faces, _ := seg.Mesh().Faces()
//	fmt.Println(faces.Len())
//
// # Reconstruction
//
// Factory.Create numbers every input edge as a boundary, triangulates the
// planar straight line graph and then:
//
//   - orders each boundary's output segments into a chain between two corners
//   - recovers boundaries the triangulator merged away from the boundary
//     covering the same span
//   - threads every segment's chains into a polygon and classifies vertices,
//     edges and triangles by boundary membership or containment
//   - creates an Interface for every pair of segments sharing a chain edge
//   - copies the finite edges of the Voronoi dual
//
// # Persistence
//
// A System is saved as a single framed, checksummed snapshot:
//
//	err := sys.Save(ctx, blobstore.NewLocalStore("./data"), "run-1.msh")
//	sys, err := meshgo.Load(ctx, store, "run-1.msh")
//
// Any blobstore.BlobStore works, including the S3 and MinIO backends.
//
// # Observability
//
// Pass WithLogger and WithMetricsCollector to the factory or to Load.
package meshgo
