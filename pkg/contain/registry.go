package contain

import (
	"sync"
)

// Registry maps controllers to the container that owns them. It enforces the
// single-ownership invariant: registering a controller that is already owned
// panics, loudly, instead of silently re-parenting.
//
// A registry is created explicitly with NewRegistry and passed to the handles
// that should share it. Reads and writes are mutex-guarded so observers
// running on other goroutines can query ownership safely.
type Registry struct {
	mu        sync.Mutex
	owners    map[Controller]any
	observers map[int]Observer
	nextID    int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{owners: make(map[Controller]any)}
}

// ContainerFor returns the container owning controller, or (nil, false) when
// the controller is not registered.
func (r *Registry) ContainerFor(controller Controller) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	container, ok := r.owners[controller]
	return container, ok
}

// Len returns the number of registered controllers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.owners)
}

// AddObserver registers an observer for every lifecycle event flowing
// through the registry. The returned func removes it. A nil observer is a
// no-op registration.
func (r *Registry) AddObserver(o Observer) func() {
	if o == nil {
		return func() {}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.observers == nil {
		r.observers = make(map[int]Observer)
	}
	id := r.nextID
	r.nextID++
	r.observers[id] = o
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.observers, id)
	}
}

// register claims ev.Controller for ev.Container and notifies observers.
// Panics when the controller is already owned.
func (r *Registry) register(ev Event) {
	r.mu.Lock()
	if _, ok := r.owners[ev.Controller]; ok {
		r.mu.Unlock()
		panic("contain: controller is already registered to a container")
	}
	r.owners[ev.Controller] = ev.Container
	obs := r.snapshotObserversLocked()
	r.mu.Unlock()
	deliver(obs, ev)
}

// unregister releases ev.Controller and notifies observers. No-op when the
// controller is not registered.
func (r *Registry) unregister(ev Event) {
	r.mu.Lock()
	if _, ok := r.owners[ev.Controller]; !ok {
		r.mu.Unlock()
		return
	}
	delete(r.owners, ev.Controller)
	obs := r.snapshotObserversLocked()
	r.mu.Unlock()
	deliver(obs, ev)
}

// notify delivers ev to all observers.
func (r *Registry) notify(ev Event) {
	r.mu.Lock()
	obs := r.snapshotObserversLocked()
	r.mu.Unlock()
	deliver(obs, ev)
}

// snapshotObserversLocked copies the observer set so delivery happens
// outside the lock and observers may call back into the registry.
func (r *Registry) snapshotObserversLocked() []Observer {
	if len(r.observers) == 0 {
		return nil
	}
	obs := make([]Observer, 0, len(r.observers))
	for _, o := range r.observers {
		obs = append(obs, o)
	}
	return obs
}

func deliver(obs []Observer, ev Event) {
	for _, o := range obs {
		o.ContainerEvent(ev)
	}
}
