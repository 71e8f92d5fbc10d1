// Package tree builds and aggregates the Barnes–Hut spatial tree: a 2ᴰ-ary
// hierarchy over an axis-aligned cube, where every node is tagged empty, a
// leaf carrying one (point, mass) sample, or internal with 2ᴰ children and
// cached (center_of_mass, total_mass) aggregates.
//
// A tree is built fresh each simulation step from a snapshot of body
// positions and masses, consumed by that step's force traversal, and
// discarded; it owns its node storage exclusively and retains no pointer
// back into the body store.
package tree

import (
	"github.com/katalvlaran/nbody/bounds"
	"github.com/katalvlaran/nbody/scheduler"
	"github.com/katalvlaran/nbody/vector"
)

// DefaultMaxDepth bounds recursive subdivision. Hitting it is non-fatal:
// any bodies still co-located at this depth are merged into one synthetic
// leaf with summed mass and mass-weighted position.
const DefaultMaxDepth = 64

// Sample is the (point, mass) pair copied into the tree at build time. The
// tree never retains a reference back to whatever produced the sample.
type Sample[P vector.Vec[P]] struct {
	Point P
	Mass  float64
}

type kind uint8

const (
	kindEmpty kind = iota
	kindLeaf
	kindInternal
)

// Node is a tagged variant: Empty, Leaf(point, mass), or Internal(aggregates,
// children). The tag is the discriminator; there is no dynamic dispatch.
type Node[P vector.Vec[P]] struct {
	kind kind

	// populated when kind == kindLeaf
	point P
	mass  float64

	// populated when kind == kindInternal
	center       P
	halfWidth    float64
	centerOfMass P
	totalMass    float64
	children     []*Node[P]
}

// IsEmpty reports whether n carries no mass below it.
func (n *Node[P]) IsEmpty() bool { return n == nil || n.kind == kindEmpty }

// IsLeaf reports whether n is a single-sample leaf.
func (n *Node[P]) IsLeaf() bool { return n != nil && n.kind == kindLeaf }

// IsInternal reports whether n has 2ᴰ children and cached aggregates.
func (n *Node[P]) IsInternal() bool { return n != nil && n.kind == kindInternal }

// Point returns a leaf's sample position. Only valid when IsLeaf is true.
func (n *Node[P]) Point() P { return n.point }

// Mass returns a leaf's sample mass, or an internal node's total mass.
func (n *Node[P]) Mass() float64 {
	if n.kind == kindInternal {
		return n.totalMass
	}
	return n.mass
}

// CenterOfMass returns an internal node's cached center of mass. Only valid
// when IsInternal is true.
func (n *Node[P]) CenterOfMass() P { return n.centerOfMass }

// TotalMass returns an internal node's cached total mass. Only valid when
// IsInternal is true.
func (n *Node[P]) TotalMass() float64 { return n.totalMass }

// HalfWidth returns an internal node's half cell width. Only valid when
// IsInternal is true.
func (n *Node[P]) HalfWidth() float64 { return n.halfWidth }

// Center returns an internal node's geometric center. Only valid when
// IsInternal is true.
func (n *Node[P]) Center() P { return n.center }

// Children returns an internal node's 2ᴰ child slots; unoccupied slots are
// nil. Only valid when IsInternal is true.
func (n *Node[P]) Children() []*Node[P] { return n.children }

func newEmptyInternal[P vector.Vec[P]](center P, halfWidth float64) *Node[P] {
	var zero P
	return &Node[P]{
		kind:      kindInternal,
		center:    center,
		halfWidth: halfWidth,
		children:  make([]*Node[P], zero.NumChildren()),
	}
}

// BuildConfig controls the tree builder's safety bound and parallelism.
type BuildConfig struct {
	MaxDepth       int
	SchedulerConfig scheduler.Config
}

// DefaultBuildConfig returns MaxDepth=DefaultMaxDepth and a scheduler
// configuration sized to the host.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{MaxDepth: DefaultMaxDepth, SchedulerConfig: scheduler.DefaultConfig()}
}

func (c BuildConfig) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

// Build partitions samples into a 2ᴰ-ary tree over root and aggregates mass
// and center of mass bottom-up, in parallel: one task per root octant scans
// the full sample slice, keeps only the samples falling in its octant,
// inserts them sequentially into a new internal node for that octant,
// aggregates that subtree, and stores it in its own root child slot, so
// each slot is written by exactly one task. The root's children are not
// pre-allocated: an octant that receives no samples keeps a nil slot. Once
// all tasks have joined, the root combines the 2ᴰ partial aggregates.
//
// Build has no failure mode of its own; an empty samples slice yields an
// empty-of-mass root whose children are all nil.
func Build[P vector.Vec[P]](root bounds.Cube[P], samples []Sample[P], cfg BuildConfig) (*Node[P], error) {
	maxDepth := cfg.maxDepth()
	r := newEmptyInternal(root.Center, root.HalfWidth)
	if len(samples) == 0 {
		return r, nil
	}

	var zero P
	numChildren := zero.NumChildren()
	childHalfWidth := root.HalfWidth / 2

	tasks := make([]func() error, numChildren)
	for dir := 0; dir < numChildren; dir++ {
		dir := dir
		tasks[dir] = func() error {
			childCenter := root.Center.Add(zero.OctantOffset(dir, childHalfWidth))
			var subset []Sample[P]
			for _, s := range samples {
				if s.Point.ChildIndex(root.Center) == dir {
					subset = append(subset, s)
				}
			}
			if len(subset) == 0 {
				return nil
			}
			child := newEmptyInternal(childCenter, childHalfWidth)
			for _, s := range subset {
				child.insert(s, 1, maxDepth)
			}
			child.aggregate()
			r.children[dir] = child
			return nil
		}
	}
	if err := scheduler.ForkJoin(tasks...); err != nil {
		return nil, err
	}

	r.aggregateFromChildren()
	return r, nil
}

// BuildSequential is the single-threaded correctness reference for Build:
// it inserts samples into root one at a time, then performs a single
// post-order aggregation pass. The tests use it as the reference for the
// θ=0 direct-sum equivalence property and for Build's aggregates; the
// simulation loop always calls Build, whatever the worker count.
func BuildSequential[P vector.Vec[P]](root bounds.Cube[P], samples []Sample[P], cfg BuildConfig) *Node[P] {
	maxDepth := cfg.maxDepth()
	r := newEmptyInternal(root.Center, root.HalfWidth)
	for _, s := range samples {
		r.insert(s, 0, maxDepth)
	}
	r.aggregate()
	return r
}

// insert places sample s into the subtree rooted at n, which must be
// internal: an empty slot
// becomes a leaf, a populated leaf is promoted to an internal node and
// both points re-inserted (merging into a single synthetic leaf if
// maxDepth is reached), and an internal slot is descended into.
func (n *Node[P]) insert(s Sample[P], depth int, maxDepth int) {
	dir := s.Point.ChildIndex(n.center)
	slot := n.children[dir]

	switch {
	case slot == nil:
		n.children[dir] = &Node[P]{kind: kindLeaf, point: s.Point, mass: s.Mass}

	case slot.kind == kindLeaf:
		if depth+1 >= maxDepth {
			total := slot.mass + s.Mass
			merged := slot.point.Scale(slot.mass).Add(s.Point.Scale(s.Mass)).Scale(1 / total)
			slot.point, slot.mass = merged, total
			return
		}
		childHalfWidth := n.halfWidth / 2
		var zero P
		promoted := newEmptyInternal(n.center.Add(zero.OctantOffset(dir, childHalfWidth)), childHalfWidth)
		promoted.insert(Sample[P]{Point: slot.point, Mass: slot.mass}, depth+1, maxDepth)
		promoted.insert(s, depth+1, maxDepth)
		n.children[dir] = promoted

	case slot.kind == kindInternal:
		slot.insert(s, depth+1, maxDepth)
	}
}

// aggregate performs a post-order pass computing total_mass and
// center_of_mass for n and every internal descendant, from scratch.
func (n *Node[P]) aggregate() {
	if n.kind != kindInternal {
		return
	}
	for _, c := range n.children {
		if c != nil && c.kind == kindInternal {
			c.aggregate()
		}
	}
	n.aggregateFromChildren()
}

// aggregateFromChildren combines n's already-aggregated children into n's
// own total_mass and center_of_mass, without recursing further.
func (n *Node[P]) aggregateFromChildren() {
	var totalMass float64
	var weighted P
	for _, c := range n.children {
		if c == nil || c.kind == kindEmpty {
			continue
		}
		m := c.Mass()
		var point P
		if c.kind == kindLeaf {
			point = c.point
		} else {
			point = c.centerOfMass
		}
		weighted = weighted.Add(point.Scale(m))
		totalMass += m
	}
	n.totalMass = totalMass
	if totalMass > 0 {
		n.centerOfMass = weighted.Scale(1 / totalMass)
	}
}
