package containers

import (
	"time"

	"github.com/go-drift/gantry/pkg/animation"
	"github.com/go-drift/gantry/pkg/contain"
	"github.com/go-drift/gantry/pkg/geometry"
	"github.com/go-drift/gantry/pkg/surface"
	"github.com/go-drift/gantry/pkg/transition"
)

// Stack hosts controllers in a last-in-first-out pile. Pushing attaches a
// controller over the current top with an interaction blocker and plays its
// enter transition; popping plays the cached reverse and releases the handle
// when it completes. The root controller is permanent and cannot be popped.
type Stack struct {
	host     *surface.Surface
	registry *contain.Registry
	driver   *animation.Driver
	entries  []stackEntry
}

// stackEntry pairs a handle with the opacity its view shows when revealed,
// recorded at push time so relayout can undo concealment.
type stackEntry struct {
	handle        *contain.Handle
	revealedAlpha float64
}

// NewStack creates a stack rendering into host with root as its permanent
// bottom controller. The root attaches immediately, without a transition.
func NewStack(host *surface.Surface, registry *contain.Registry, driver *animation.Driver, root contain.Controller) *Stack {
	if host == nil {
		panic("containers: nil host surface")
	}
	if driver == nil {
		panic("containers: nil driver")
	}
	s := &Stack{host: host, registry: registry, driver: driver}
	handle := contain.New(root, s, registry, transition.None, transition.DefaultDuration)
	handle.AttachView(host, false)
	view := handle.View()
	view.SetFrame(host.Bounds())
	view.SetStretch(true)
	s.entries = []stackEntry{{handle: handle, revealedAlpha: view.Alpha()}}
	return s
}

// Depth returns the number of stacked controllers, including the root.
func (s *Stack) Depth() int { return len(s.entries) }

// Top returns the handle of the topmost controller.
func (s *Stack) Top() *contain.Handle { return s.entries[len(s.entries)-1].handle }

// Push attaches controller over the current top, sized to the host, and
// plays its enter transition concealing the previous top. The handle is
// returned so callers can correlate events or query state.
func (s *Stack) Push(controller contain.Controller, kind transition.Kind, duration time.Duration) *contain.Handle {
	handle := contain.New(controller, s, s.registry, kind, duration)
	handle.AttachView(s.host, true)
	view := handle.View()
	view.SetFrame(s.host.Bounds())
	view.SetStretch(true)

	hiding := []*contain.Handle{s.Top()}
	anim := handle.BuildAnimation(hiding, s.host.Bounds())
	s.entries = append(s.entries, stackEntry{handle: handle, revealedAlpha: view.Alpha()})
	s.driver.Play(anim)
	return handle
}

// Pop removes the topmost controller by playing the reverse of its enter
// transition and releasing the handle when playback stops. If the enter
// animation is no longer cached the handle is released immediately and the
// revealed state of the new top restored by hand. Returns the popped handle,
// or nil when only the root remains.
func (s *Stack) Pop() *contain.Handle {
	if len(s.entries) <= 1 {
		return nil
	}
	top := s.Top()
	reverse := top.ReverseAnimation()
	s.entries = s.entries[:len(s.entries)-1]
	if reverse == nil {
		top.Release()
		s.revealTop()
		return top
	}
	reverse.OnStop = func(bool) {
		top.Release()
	}
	s.driver.Play(reverse)
	return top
}

// revealTop resets the new top's view to its revealed state.
func (s *Stack) revealTop() {
	e := s.entries[len(s.entries)-1]
	if view := e.handle.View(); view != nil {
		view.SetFrame(s.host.Bounds())
		view.SetAlpha(e.revealedAlpha)
	}
}

// Relayout resizes the host and rebuilds every cached enter animation
// against the new geometry. A cached animation does not track the host;
// after a resize its endpoints are stale, so the stack restores every view
// to its revealed state, rebuilds each animation bottom-up, and re-applies
// the enter state non-animated, leaving only the top revealed.
func (s *Stack) Relayout(frame geometry.Rect) {
	s.host.SetFrame(frame)
	bounds := s.host.Bounds()
	for _, e := range s.entries {
		if view := e.handle.View(); view != nil {
			view.SetFrame(bounds)
			view.SetAlpha(e.revealedAlpha)
		}
	}
	for i := 1; i < len(s.entries); i++ {
		below := s.entries[i-1].handle
		anim := s.entries[i].handle.BuildAnimation([]*contain.Handle{below}, bounds)
		anim.Apply()
	}
}
