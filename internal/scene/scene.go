// Drawable primitive abstraction decoupling the simulations from the
// rendering backend
package scene

import "aeroviz-sim/internal/flow"

// Point3 is a world-space position: X lateral, Y vertical, Z longitudinal
// (positive downstream), all in meters.
type Point3 struct {
	X, Y, Z float64
}

// Primitive is the common surface of everything a backend can draw.
type Primitive interface {
	SetOpacity(o float64)
	SetVisible(v bool)
	Dispose()
}

// LineSet is a batch of polylines sharing one opacity.
type LineSet interface {
	Primitive
	// SetLine replaces polyline idx with the given vertices and per-vertex
	// colors. len(colors) must equal len(pts).
	SetLine(idx int, pts []Point3, colors []flow.Color)
}

// PointCloud is a fixed-capacity set of colored, sized points.
type PointCloud interface {
	Primitive
	SetPoint(idx int, p Point3, c flow.Color, size float64)
}

// Patch is a rectangular surface with a small vertex grid and per-vertex
// colors.
type Patch interface {
	Primitive
	SetVertex(row, col int, p Point3, c flow.Color)
}

// Backend constructs primitives. The host render loop supplies one;
// construction may fail when the backend is out of resources.
type Backend interface {
	NewLineSet(id string, lines, maxPointsPerLine int) (LineSet, error)
	NewPointCloud(id string, capacity int) (PointCloud, error)
	NewPatch(id string, rows, cols int) (Patch, error)
}
