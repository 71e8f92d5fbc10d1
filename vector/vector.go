// Package vector provides the D-dimensional float vector algebra the rest
// of the simulation is built on. Dimension is fixed at build time by the
// concrete type used to instantiate a generic package (Vector2 or Vector3),
// never by a runtime field, so a tree, a body store, or a force evaluator
// instantiated over Vector2 can never be handed a Vector3 by mistake.
//
// Vec is the constraint every generic package in this module (body, bounds,
// tree, force, integrate, snapshot) parameterizes over. A concrete vector
// type must be elementwise-comparable (so bitwise equality works for the
// self-interaction exclusion in force evaluation) and must know how to split
// itself into the 2ᴰ octants/quadrants a spatial tree partitions space into.
package vector

// Vec is the algebra and spatial-partitioning contract a D-dimensional
// vector type must satisfy to be used as the coordinate type of a tree.
//
// ChildIndex and OctantOffset encode the tree's fan-out geometry: ChildIndex
// bit-packs, per axis, whether a point lies above a cell's center, and
// OctantOffset returns the inverse — the offset from a parent's center to
// the center of the child at a given octant index. OctantOffset ignores its
// receiver's own value; it is a method only so each concrete vector type can
// supply its own axis count.
type Vec[P any] interface {
	comparable

	Add(P) P
	Sub(P) P
	Scale(factor float64) P
	Neg() P
	Dot(P) float64
	InfNorm() float64

	// Min and Max return the componentwise minimum/maximum of the receiver
	// and other, used by the bounding-cube reduction.
	Min(other P) P
	Max(other P) P

	// ChildIndex returns which of NumChildren() octants the receiver falls
	// into relative to center. Ties (component equal to center's) resolve to
	// the "lower" side: strict '>' selects the upper half.
	ChildIndex(center P) int

	// OctantOffset returns the vector from a cell's center to the center of
	// its child at octant index dir, given the child's half-width.
	OctantOffset(dir int, childHalfWidth float64) P

	// NumChildren returns 2ᴰ: 4 for a 2D vector type, 8 for a 3D one.
	NumChildren() int

	// FromAxes builds a vector from exactly D per-axis values, in X, Y, (Z)
	// order. It ignores its receiver's own value, same as OctantOffset;
	// callers that don't know D at compile time get it from NumChildren.
	FromAxes(axes ...float64) P
}
