package contain

import (
	"github.com/go-drift/gantry/pkg/surface"
)

// Controller is a child presentation unit hosted by a container. It creates
// its surface lazily and may discard and rebuild it any number of times over
// its life.
//
// Implementations must be comparable (pointer implementations are), because
// the registry keys its ownership map by controller identity.
type Controller interface {
	// Surface returns the controller's surface, creating it on first call.
	// Callers that must not trigger creation check SurfaceLoaded first.
	Surface() *surface.Surface

	// SurfaceLoaded reports whether the surface currently exists.
	SurfaceLoaded() bool

	// ReleaseSurface discards the surface. The next Surface call builds a
	// fresh one. No-op when no surface exists.
	ReleaseSurface()
}

// ContentController is the standard Controller: it materializes its surface
// from a Build func on first access and caches it until released.
//
//	ctrl := &contain.ContentController{
//	    Build: func() *surface.Surface {
//	        return surface.NewNamed("settings", geometry.RectFromLTWH(0, 0, 320, 480))
//	    },
//	}
type ContentController struct {
	// Build creates the surface. Called at most once per materialization.
	Build func() *surface.Surface

	view *surface.Surface
}

// Surface returns the cached surface, calling Build to create it if needed.
// Panics if Build is nil or returns nil.
func (c *ContentController) Surface() *surface.Surface {
	if c.view == nil {
		if c.Build == nil {
			panic("contain: ContentController has no Build func")
		}
		c.view = c.Build()
		if c.view == nil {
			panic("contain: Build returned nil surface")
		}
	}
	return c.view
}

// SurfaceLoaded reports whether Build has run and the surface has not been
// released since.
func (c *ContentController) SurfaceLoaded() bool { return c.view != nil }

// ReleaseSurface drops the cached surface.
func (c *ContentController) ReleaseSurface() { c.view = nil }
