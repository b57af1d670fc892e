// Package containers provides reference containers built on the contain
// handle: a single-slot [Placeholder] and a push/pop [Stack]. They are the
// canonical consumers of the lifecycle contract: lazy attach with
// interaction blocking, forward animations played through a driver, reverse
// playback on the way out, and exact restoration on teardown.
package containers

import (
	"time"

	"github.com/go-drift/gantry/pkg/animation"
	"github.com/go-drift/gantry/pkg/contain"
	"github.com/go-drift/gantry/pkg/surface"
	"github.com/go-drift/gantry/pkg/transition"
)

// Placeholder displays one controller at a time inside a host surface,
// swapping contents with a transition. The outgoing content is released when
// the transition completes.
type Placeholder struct {
	host     *surface.Surface
	registry *contain.Registry
	driver   *animation.Driver
	current  *contain.Handle
}

// NewPlaceholder creates a placeholder rendering into host.
func NewPlaceholder(host *surface.Surface, registry *contain.Registry, driver *animation.Driver) *Placeholder {
	if host == nil {
		panic("containers: nil host surface")
	}
	if registry == nil {
		panic("containers: nil registry")
	}
	if driver == nil {
		panic("containers: nil driver")
	}
	return &Placeholder{host: host, registry: registry, driver: driver}
}

// Current returns the handle for the content on display, or nil when the
// slot is empty.
func (p *Placeholder) Current() *contain.Handle { return p.current }

// SetContent swaps the displayed controller. The new content attaches with
// an interaction blocker, is sized to the host, and transitions in with kind
// and duration while the previous content is concealed; the previous handle
// is released when the transition stops. Setting the controller already on
// display is a no-op. A nil controller clears the slot immediately, without
// a transition.
func (p *Placeholder) SetContent(controller contain.Controller, kind transition.Kind, duration time.Duration) *contain.Handle {
	if controller == nil {
		if p.current != nil {
			p.current.Release()
			p.current = nil
		}
		return nil
	}
	if p.current != nil && p.current.Controller() == controller {
		return p.current
	}

	handle := contain.New(controller, p, p.registry, kind, duration)
	handle.AttachView(p.host, true)
	view := handle.View()
	view.SetFrame(p.host.Bounds())
	view.SetStretch(true)

	previous := p.current
	var hiding []*contain.Handle
	if previous != nil {
		hiding = append(hiding, previous)
	}
	anim := handle.BuildAnimation(hiding, p.host.Bounds())
	anim.OnStop = func(bool) {
		if previous != nil {
			previous.Release()
		}
	}
	p.current = handle
	p.driver.Play(anim)
	return handle
}
