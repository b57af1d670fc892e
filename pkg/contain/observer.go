package contain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType identifies a lifecycle event.
type EventType int

const (
	// EventRegistered fires when a handle claims a controller for a
	// container.
	EventRegistered EventType = iota
	// EventUnregistered fires when a released handle gives the controller
	// back.
	EventUnregistered
	// EventAttached fires after a handle materializes its view into a host
	// surface.
	EventAttached
	// EventDetached fires after a handle removes its view and restores the
	// original frame and opacity.
	EventDetached
	// EventAnimationBuilt fires after a handle builds and caches a forward
	// transition animation.
	EventAnimationBuilt
	// EventViewReleased fires after a handle discards the controller's
	// surface and the cached animation.
	EventViewReleased
	// EventReleased fires when a handle is released and becomes inert.
	EventReleased
)

var eventTypeNames = [...]string{
	EventRegistered:     "registered",
	EventUnregistered:   "unregistered",
	EventAttached:       "attached",
	EventDetached:       "detached",
	EventAnimationBuilt: "animation-built",
	EventViewReleased:   "view-released",
	EventReleased:       "released",
}

// String returns the event type's wire name.
func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventTypeNames) {
		return fmt.Sprintf("EventType(%d)", int(t))
	}
	return eventTypeNames[t]
}

// Event is one lifecycle occurrence, delivered to registry observers.
// Timestamps come from the animation clock, so tests that install a fake
// clock get deterministic events.
type Event struct {
	Type       EventType
	At         time.Time
	Handle     uuid.UUID
	Controller Controller
	Container  any
}

// Observer receives lifecycle events from a registry.
type Observer interface {
	ContainerEvent(Event)
}

// ObserverFunc adapts a func to the Observer interface.
type ObserverFunc func(Event)

// ContainerEvent calls f(ev).
func (f ObserverFunc) ContainerEvent(ev Event) { f(ev) }
