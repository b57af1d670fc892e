package inspect

import (
	"fmt"
	"time"

	"github.com/go-drift/gantry/pkg/contain"
)

// Frame is one JSON message on the inspector stream.
type Frame struct {
	Type       string `json:"type"`
	At         string `json:"at"`
	Handle     string `json:"handle,omitempty"`
	Controller string `json:"controller,omitempty"`
	Container  string `json:"container,omitempty"`
}

// frameFromEvent converts a lifecycle event to its wire form. Controllers
// and containers are identified by their Go type; the handle id is the
// stable correlation key.
func frameFromEvent(ev contain.Event) Frame {
	f := Frame{
		Type:   ev.Type.String(),
		At:     ev.At.UTC().Format(time.RFC3339Nano),
		Handle: ev.Handle.String(),
	}
	if ev.Controller != nil {
		f.Controller = fmt.Sprintf("%T", ev.Controller)
	}
	if ev.Container != nil {
		f.Container = fmt.Sprintf("%T", ev.Container)
	}
	return f
}

// Attach streams registry's lifecycle events to hub. The returned function
// removes the subscription.
func Attach(registry *contain.Registry, hub *Hub) func() {
	return registry.AddObserver(contain.ObserverFunc(func(ev contain.Event) {
		hub.Broadcast(frameFromEvent(ev))
	}))
}
