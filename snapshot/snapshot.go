// Package snapshot provides a read-only projection of a built tree into
// rectangles, in the tree's own coordinates, that a rendering collaborator
// can draw without touching the tree itself. Values are copied out; the snapshot retains no
// references into tree storage, so it remains valid after the tree it was
// taken from is discarded at the end of the step.
package snapshot

import (
	"math"

	"github.com/katalvlaran/nbody/tree"
	"github.com/katalvlaran/nbody/vector"
)

// Rect is one cell's projection: UpperLeft is its minimum corner, Size is
// its full (not half) width, and Intensity is a log-scaled density measure.
type Rect[P vector.Vec[P]] struct {
	UpperLeft P
	Size      float64
	Intensity float64
}

// Config controls which cells are emitted.
type Config struct {
	// MassFraction is the minimum total_mass(cell)/total_mass(root) a cell
	// must carry to be emitted on its own, even if it has non-leaf
	// children. Default 1e-4.
	MassFraction float64

	// Reference normalizes Intensity; typically the root's density.
	// Defaults to the root's own density when zero.
	Reference float64
}

func (c Config) massFraction() float64 {
	if c.MassFraction <= 0 {
		return 1e-4
	}
	return c.MassFraction
}

// Project walks root and returns a rectangle for every cell whose relative
// mass exceeds cfg.MassFraction, or whose children are all leaves (so the
// finest detail is always shown even below the mass-fraction threshold).
func Project[P vector.Vec[P]](root *tree.Node[P], cfg Config) []Rect[P] {
	if root.TotalMass() <= 0 {
		return nil
	}
	reference := cfg.Reference
	if reference == 0 {
		reference = density[P](root)
	}
	var out []Rect[P]
	walk(root, root.TotalMass(), cfg.massFraction(), reference, &out)
	return out
}

func walk[P vector.Vec[P]](n *tree.Node[P], rootMass, threshold, reference float64, out *[]Rect[P]) {
	if !n.IsInternal() || n.TotalMass() <= 0 {
		return
	}

	if n.TotalMass()/rootMass >= threshold || allChildrenLeaves(n) {
		var zero P
		*out = append(*out, Rect[P]{
			UpperLeft: n.Center().Add(zero.OctantOffset(0, n.HalfWidth())),
			Size:      2 * n.HalfWidth(),
			Intensity: math.Log(density(n)/reference) / 5,
		})
	}

	for _, c := range n.Children() {
		if c.IsInternal() {
			walk(c, rootMass, threshold, reference, out)
		}
	}
}

func allChildrenLeaves[P vector.Vec[P]](n *tree.Node[P]) bool {
	sawAny := false
	for _, c := range n.Children() {
		if c.IsEmpty() {
			continue
		}
		if !c.IsLeaf() {
			return false
		}
		sawAny = true
	}
	return sawAny
}

// density returns total_mass / (2·half_width)^D for n, using the vector
// type's fan-out (4 → D=2, 8 → D=3) to pick the exponent.
func density[P vector.Vec[P]](n *tree.Node[P]) float64 {
	var zero P
	side := 2 * n.HalfWidth()
	vol := math.Pow(side, float64(dimOf(zero)))
	if vol == 0 {
		return 0
	}
	return n.TotalMass() / vol
}

func dimOf[P vector.Vec[P]](zero P) int {
	switch zero.NumChildren() {
	case 4:
		return 2
	case 8:
		return 3
	default:
		return 0
	}
}
