// Package geom provides the planar geometry used by boundary
// reconstruction: point conversion, tolerance scaling, centroids and polygon
// containment. Vectors are gonum's r2.Vec.
package geom
