package sim

import (
	"sync"

	"github.com/katalvlaran/nbody/bounds"
	"github.com/katalvlaran/nbody/snapshot"
	"github.com/katalvlaran/nbody/tree"
	"github.com/katalvlaran/nbody/vector"
)

// Mailbox is a single-element, non-blocking snapshot swap: the simulator
// publishes a new frame only once the previous one has been consumed, so a
// slow or absent renderer never adds back-pressure to the simulation loop,
// and a renderer that polls faster than the simulation produces frames
// just re-reads the same one.
type Mailbox[P vector.Vec[P]] struct {
	mu       sync.Mutex
	frame    []snapshot.Rect[P]
	hasFrame bool
	consumed bool
}

// NewMailbox returns an empty Mailbox, ready to accept its first frame.
func NewMailbox[P vector.Vec[P]]() *Mailbox[P] {
	return &Mailbox[P]{consumed: true}
}

// Publish projects root into normalized [0,1]^D rectangles for an external
// rendering collaborator and stores them as the mailbox's current frame,
// but only if the previously published frame has already been taken;
// otherwise it is a no-op, so an un-polled mailbox never pays repeated
// projection cost. cfg controls which cells Project emits; the zero value
// uses Project's documented defaults.
func (m *Mailbox[P]) Publish(cube bounds.Cube[P], root *tree.Node[P], cfg snapshot.Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.consumed {
		return
	}
	m.frame = normalize(cube, snapshot.Project(root, cfg))
	m.hasFrame = true
	m.consumed = false
}

// Take copies out the most recently published frame and marks it consumed,
// making room for the next Publish. ok is false if no frame has ever been
// published. The returned slice does not alias the mailbox's internal
// storage.
func (m *Mailbox[P]) Take() (frame []snapshot.Rect[P], ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasFrame {
		return nil, false
	}
	out := make([]snapshot.Rect[P], len(m.frame))
	copy(out, m.frame)
	m.consumed = true
	return out, true
}

// normalize maps rects, given in root cube's own coordinate space, into
// [0, 1]^D: (p - cube.Center + cube.HalfWidth) / (2 * cube.HalfWidth). It
// reuses Vec's OctantOffset to build an all-components-equal-to-0.5 vector
// generically, the same way the tree package derives per-axis child
// offsets, rather than adding a dedicated "constant vector" method to Vec.
func normalize[P vector.Vec[P]](cube bounds.Cube[P], rects []snapshot.Rect[P]) []snapshot.Rect[P] {
	span := 2 * cube.HalfWidth
	if span == 0 {
		span = 1
	}
	var zero P
	allOctants := zero.NumChildren() - 1
	half := zero.OctantOffset(allOctants, 0.5)

	out := make([]snapshot.Rect[P], len(rects))
	for i, r := range rects {
		out[i] = snapshot.Rect[P]{
			UpperLeft: r.UpperLeft.Sub(cube.Center).Scale(1 / span).Add(half),
			Size:      r.Size / span,
			Intensity: r.Intensity,
		}
	}
	return out
}
