// Package contain manages the lifecycle of child content hosted inside a
// composite container: ownership, lazy surface materialization, interaction
// blocking, transition caching, and exact state restoration on teardown.
//
// # Roles
//
// A [Controller] is a child presentation unit. It builds its surface lazily
// and can discard it to be rebuilt later. [ContentController] is the standard
// implementation, configured with a Build func.
//
// A [Handle] is created by a container for each child it inserts, and owns
// that child for the handle's lifetime. The handle materializes the child's
// surface into a host surface on demand, snapshots the surface's frame and
// opacity before any mutation, optionally shields the content underneath with
// an input-absorbing blocker, builds the transition animation that brings the
// child in, and restores the snapshot exactly when the view is detached so
// the child can be re-attached later without residual state.
//
// A [Registry] records which container owns which controller. It is the
// single source of truth for the ownership invariant: a controller belongs to
// at most one container at a time, and creating a second handle for a
// registered controller panics. The registry is explicit and injectable;
// there is no ambient process-wide instance. Observers added with
// [Registry.AddObserver] receive every lifecycle [Event] flowing through the
// registry, which is how the inspector and the journal watch a live tree.
//
// # Threading
//
// Handles and surfaces are confined to the frame loop that owns them. The
// registry itself is safe for concurrent use because observers (inspector,
// journal) read from other goroutines.
//
// # Transitions
//
// [Handle.BuildAnimation] delegates to the transition builder and caches the
// forward animation. The cache has no accessor: callers get the animation
// exactly once, at build time, when the surface dimensions it was built
// against are authoritative. [Handle.ReverseAnimation] derives the structural
// reverse from the cache, so a container can play back the way it came.
package contain
