package contain

import (
	"time"

	"github.com/google/uuid"

	"github.com/go-drift/gantry/pkg/animation"
	"github.com/go-drift/gantry/pkg/geometry"
	"github.com/go-drift/gantry/pkg/surface"
	"github.com/go-drift/gantry/pkg/transition"
)

// Handle owns one controller inserted into a container. It mediates every
// transition between the controller's dormant and on-screen states:
// materializing the surface lazily, blocking interaction with content
// underneath, building the enter animation, and tearing the surface down
// with its original frame and opacity restored.
//
// A handle passes through a small state machine. It starts detached; after
// AttachView it is attached; after BuildAnimation it additionally carries a
// cached forward animation, which DetachView preserves; Release is terminal.
// All methods must be called from the frame loop that owns the surfaces.
type Handle struct {
	id         uuid.UUID
	controller Controller
	container  any
	registry   *Registry
	kind       transition.Kind
	duration   time.Duration

	attached      bool
	view          *surface.Surface
	blocker       *surface.Surface
	originalFrame geometry.Rect
	originalAlpha float64
	cached        *animation.Animation
	released      bool
}

// New creates a handle owning controller on behalf of container and records
// the ownership in registry. The transition parameters are fixed for the
// handle's lifetime; duration may be transition.DefaultDuration to select
// kind's default, and is resolved here so Duration always reports a concrete
// value.
//
// Panics if controller, container, or registry is nil, if duration is
// invalid for kind, or if controller is already registered — a controller
// belongs to at most one container at a time and silent re-parenting would
// break every component relying on that.
//
// The controller's surface is not touched. Materialization happens in
// AttachView and nowhere earlier.
func New(controller Controller, container any, registry *Registry, kind transition.Kind, duration time.Duration) *Handle {
	if controller == nil {
		panic("contain: nil controller")
	}
	if container == nil {
		panic("contain: nil container")
	}
	if registry == nil {
		panic("contain: nil registry")
	}
	h := &Handle{
		id:         uuid.New(),
		controller: controller,
		container:  container,
		registry:   registry,
		kind:       kind,
		duration:   transition.ResolveDuration(kind, duration),
	}
	registry.register(h.event(EventRegistered))
	return h
}

// ID returns the handle's stable identity, used to correlate events.
func (h *Handle) ID() uuid.UUID { return h.id }

// Controller returns the owned controller, or nil after Release.
func (h *Handle) Controller() Controller { return h.controller }

// Container returns the owning container identity.
func (h *Handle) Container() any { return h.container }

// Kind returns the transition kind fixed at construction.
func (h *Handle) Kind() transition.Kind { return h.kind }

// Duration returns the resolved transition duration.
func (h *Handle) Duration() time.Duration { return h.duration }

// Attached reports whether the controller's view is currently materialized
// inside a host surface.
func (h *Handle) Attached() bool { return h.attached }

// AttachView materializes the controller's surface and adds it to host at
// the top of the z-order. The surface's frame and opacity are snapshotted
// first; DetachView restores them exactly, whatever animations did in
// between.
//
// With blockInteraction, a transparent stretchable blocker sized to host is
// inserted immediately below the view. It absorbs hit testing over the whole
// host, so content underneath cannot be interacted with while this view is
// up.
//
// Calling AttachView on an attached handle is a no-op, so containers may
// call it defensively. Panics on a nil host or a released handle.
func (h *Handle) AttachView(host *surface.Surface, blockInteraction bool) {
	if h.released {
		panic("contain: handle released")
	}
	if host == nil {
		panic("contain: nil host surface")
	}
	if h.attached {
		return
	}
	view := h.controller.Surface()
	if view == nil {
		panic("contain: controller returned nil surface")
	}
	h.originalFrame = view.Frame()
	h.originalAlpha = view.Alpha()
	host.AddChild(view)
	if blockInteraction {
		blocker := surface.NewNamed("blocker", host.Bounds())
		blocker.SetAlpha(0)
		blocker.SetStretch(true)
		host.InsertBelow(blocker, view)
		h.blocker = blocker
	}
	h.view = view
	h.attached = true
	h.registry.notify(h.event(EventAttached))
}

// View returns the attached surface, or nil when the handle is detached.
// It never materializes the surface; that is AttachView's job alone.
func (h *Handle) View() *surface.Surface {
	if !h.attached {
		return nil
	}
	return h.view
}

// DetachView removes the view and the blocker from the host and restores
// the frame and opacity captured by AttachView, so the controller can be
// re-attached later with no residual state. The cached animation survives;
// only ReleaseView and Release discard it.
//
// No-op when the handle is not attached.
func (h *Handle) DetachView() {
	if !h.attached {
		return
	}
	if h.blocker != nil {
		h.blocker.RemoveFromParent()
		h.blocker = nil
	}
	h.view.RemoveFromParent()
	h.view.SetFrame(h.originalFrame)
	h.view.SetAlpha(h.originalAlpha)
	h.view = nil
	h.attached = false
	h.registry.notify(h.event(EventDetached))
}

// BuildAnimation builds the forward animation that brings this handle's view
// in with the handle's transition kind and duration, concealing the views of
// the hiding handles. commonFrame is the coordinate space shared by all
// involved surfaces, normally the host's bounds. Peers that are not attached
// have no surface to conceal and are skipped; a nil peer panics.
//
// The result is cached for ReverseAnimation, replacing any previous cache,
// and returned exactly once. There is no accessor for the cached animation:
// a forward animation is only valid against the surface geometry it was
// built with, so callers rebuild at the point of use after any host resize.
//
// Panics unless the handle is attached; an animation against surfaces that
// do not exist is meaningless.
func (h *Handle) BuildAnimation(hiding []*Handle, commonFrame geometry.Rect) *animation.Animation {
	if h.released {
		panic("contain: handle released")
	}
	if !h.attached {
		panic("contain: view not attached")
	}
	var concealing []*surface.Surface
	for _, peer := range hiding {
		if peer == nil {
			panic("contain: nil peer handle")
		}
		if view := peer.View(); view != nil {
			concealing = append(concealing, view)
		}
	}
	anim := transition.Build(h.kind, h.duration, h.view, concealing, commonFrame)
	h.cached = anim
	h.registry.notify(h.event(EventAnimationBuilt))
	return anim
}

// ReverseAnimation returns the structural reverse of the most recently built
// forward animation, or nil when none has been built since the last
// ReleaseView or Release. Each call derives a fresh reverse, so callers may
// set their own hook points on it.
func (h *Handle) ReverseAnimation() *animation.Animation {
	if h.cached == nil {
		return nil
	}
	return h.cached.Reverse()
}

// ReleaseView detaches the view and discards both the controller's surface
// and the cached animation. The next AttachView builds a fresh surface; an
// animation built against the destroyed one would be meaningless, so the
// cache goes with it.
//
// No-op on a released handle.
func (h *Handle) ReleaseView() {
	if h.released {
		return
	}
	h.DetachView()
	h.controller.ReleaseSurface()
	h.cached = nil
	h.registry.notify(h.event(EventViewReleased))
}

// Release ends the handle's ownership of the controller: the view is
// detached if still attached, the controller is unregistered so another
// container may claim it, and the handle becomes inert. AttachView and
// BuildAnimation panic afterwards; the query methods return zero values.
//
// Release is idempotent.
func (h *Handle) Release() {
	if h.released {
		return
	}
	h.DetachView()
	released := h.event(EventReleased)
	h.registry.unregister(h.event(EventUnregistered))
	h.registry.notify(released)
	h.released = true
	h.controller = nil
	h.cached = nil
}

func (h *Handle) event(t EventType) Event {
	return Event{
		Type:       t,
		At:         animation.Now(),
		Handle:     h.id,
		Controller: h.controller,
		Container:  h.container,
	}
}
