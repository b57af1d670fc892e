// Package surface implements the retained tree of rectangular surfaces that
// containers place child content into. A surface has a frame in its parent's
// coordinate space, an opacity, a back-to-front list of children, and flags
// controlling visibility, hit testing, and autoresizing.
//
// The tree is single-threaded: all mutation happens on the frame loop that
// owns it. Surfaces carry no pixels of their own; rendering is the concern
// of whoever walks the tree.
package surface

import (
	"github.com/go-drift/gantry/pkg/geometry"
)

// Surface is one node of the tree. The zero value is not usable; construct
// with New or NewNamed.
type Surface struct {
	name        string
	frame       geometry.Rect
	alpha       float64
	hidden      bool
	interactive bool
	stretch     bool
	parent      *Surface
	children    []*Surface
}

// New creates a visible, interactive surface with the given frame and full
// opacity.
func New(frame geometry.Rect) *Surface {
	return &Surface{
		frame:       frame,
		alpha:       1,
		interactive: true,
	}
}

// NewNamed creates a surface with a debug name. Names are not required to be
// unique; they exist for diagnostics and snapshots.
func NewNamed(name string, frame geometry.Rect) *Surface {
	s := New(frame)
	s.name = name
	return s
}

// Name returns the surface's debug name, possibly empty.
func (s *Surface) Name() string { return s.name }

// SetName sets the surface's debug name.
func (s *Surface) SetName(name string) { s.name = name }

// Frame returns the surface's frame in its parent's coordinate space.
func (s *Surface) Frame() geometry.Rect { return s.frame }

// SetFrame moves and resizes the surface. Children with the stretch flag are
// resized to the new bounds.
func (s *Surface) SetFrame(frame geometry.Rect) {
	s.frame = frame
	for _, c := range s.children {
		if c.stretch {
			c.frame = s.Bounds()
		}
	}
}

// Bounds returns the surface's own coordinate space: a rect at the origin
// with the frame's size.
func (s *Surface) Bounds() geometry.Rect {
	return geometry.RectFromSize(s.frame.Size())
}

// Alpha returns the surface's opacity in [0, 1].
func (s *Surface) Alpha() float64 { return s.alpha }

// SetAlpha sets the surface's opacity, clamped to [0, 1]. Alpha affects
// compositing only; it never affects hit testing.
func (s *Surface) SetAlpha(alpha float64) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	s.alpha = alpha
}

// Hidden reports whether the surface is hidden. Hidden surfaces and their
// subtrees are neither rendered nor hit tested.
func (s *Surface) Hidden() bool { return s.hidden }

// SetHidden shows or hides the surface.
func (s *Surface) SetHidden(hidden bool) { s.hidden = hidden }

// Interactive reports whether the surface participates in hit testing.
// A non-interactive surface excludes its whole subtree.
func (s *Surface) Interactive() bool { return s.interactive }

// SetInteractive enables or disables hit testing for the surface and its
// subtree.
func (s *Surface) SetInteractive(interactive bool) { s.interactive = interactive }

// Stretch reports whether the surface resizes to its parent's bounds when
// the parent's frame changes.
func (s *Surface) Stretch() bool { return s.stretch }

// SetStretch sets the autoresize flag.
func (s *Surface) SetStretch(stretch bool) { s.stretch = stretch }

// Parent returns the surface's parent, or nil for a root or detached
// surface.
func (s *Surface) Parent() *Surface { return s.parent }

// Children returns a copy of the child list in back-to-front order.
func (s *Surface) Children() []*Surface {
	out := make([]*Surface, len(s.children))
	copy(out, s.children)
	return out
}

// Root returns the topmost ancestor, or s itself if it has no parent.
func (s *Surface) Root() *Surface {
	r := s
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// AddChild appends child at the top of the z-order. A child that already has
// a parent is re-parented. Panics if child is nil or if the insertion would
// create a cycle.
func (s *Surface) AddChild(child *Surface) {
	s.insertAt(child, len(s.children))
}

// InsertBelow inserts child immediately below sibling in the z-order.
// Panics if sibling is not a child of s.
func (s *Surface) InsertBelow(child, sibling *Surface) {
	s.insertAt(child, s.indexOf(sibling))
}

// InsertAbove inserts child immediately above sibling in the z-order.
// Panics if sibling is not a child of s.
func (s *Surface) InsertAbove(child, sibling *Surface) {
	s.insertAt(child, s.indexOf(sibling)+1)
}

func (s *Surface) indexOf(sibling *Surface) int {
	for i, c := range s.children {
		if c == sibling {
			return i
		}
	}
	panic("surface: sibling is not a child")
}

func (s *Surface) insertAt(child *Surface, index int) {
	if child == nil {
		panic("surface: nil child")
	}
	for a := s; a != nil; a = a.parent {
		if a == child {
			panic("surface: insertion would create a cycle")
		}
	}
	if child.parent == s {
		// Re-inserting under the same parent is a reorder: account for the
		// slot freed by removal.
		if old := s.indexOf(child); old < index {
			index--
		}
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	s.children = append(s.children[:index], append([]*Surface{child}, s.children[index:]...)...)
	child.parent = s
}

// RemoveFromParent detaches the surface from its parent. No-op if the
// surface has no parent. The surface keeps its frame, alpha, and children.
func (s *Surface) RemoveFromParent() {
	if s.parent == nil {
		return
	}
	s.parent.removeChild(s)
}

func (s *Surface) removeChild(child *Surface) {
	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// HitTest returns the deepest interactive surface containing p, or nil.
// p is in s's own coordinate space. Children are tested topmost first;
// hidden and non-interactive subtrees are skipped.
func (s *Surface) HitTest(p geometry.Point) *Surface {
	if s.hidden || !s.interactive {
		return nil
	}
	if !s.Bounds().Contains(p) {
		return nil
	}
	for i := len(s.children) - 1; i >= 0; i-- {
		child := s.children[i]
		local := p.Sub(child.frame.Origin())
		if hit := child.HitTest(local); hit != nil {
			return hit
		}
	}
	return s
}
