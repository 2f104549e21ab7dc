// Package export renders segments and interfaces of a meshgo.System as
// GeoJSON and publishes them to a blob store.
//
// Faces become Polygon features, edges LineString features and vertices
// Point features. Every feature carries the properties "part" (segment or
// interface name), "kind" ("segment" or "interface") and "id" (element id).
//
//	fc, err := export.System(sys)
//	data, err := fc.MarshalJSON()
//
//	names, err := export.Publish(ctx, store, sys, "geojson/", export.WithConcurrency(4))
package export
