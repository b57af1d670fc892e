package containers

import (
	"testing"
	"time"

	"github.com/go-drift/gantry/pkg/geometry"
	"github.com/go-drift/gantry/pkg/transition"
)

// TestNewStack_Root verifies that the root attaches immediately, fills the
// host, and cannot be popped.
func TestNewStack_Root(t *testing.T) {
	host, registry, driver, _ := scaffold(t)
	root := namedController("root", 1)
	s := NewStack(host, registry, driver, root)

	if s.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", s.Depth())
	}
	view := s.Top().View()
	if view == nil || view.Parent() != host {
		t.Fatal("root view not attached to host")
	}
	if view.Frame() != host.Bounds() {
		t.Fatalf("root frame = %v, want %v", view.Frame(), host.Bounds())
	}
	container, ok := registry.ContainerFor(root)
	if !ok || container != s {
		t.Fatalf("ContainerFor = %v, %v, want the stack", container, ok)
	}
	if driver.Active() != 0 {
		t.Fatalf("Active() = %d, the root must attach without a transition", driver.Active())
	}

	if got := s.Pop(); got != nil {
		t.Fatal("Pop() removed the root")
	}
	if s.Depth() != 1 {
		t.Fatalf("Depth() = %d after refused pop, want 1", s.Depth())
	}
}

// TestStack_Push_ConcealsPreviousTop verifies z-order, blocking, and the
// previous top's concealed end state after the transition settles.
func TestStack_Push_ConcealsPreviousTop(t *testing.T) {
	host, registry, driver, clock := scaffold(t)
	s := NewStack(host, registry, driver, namedController("root", 1))
	rootView := s.Top().View()

	h := s.Push(namedController("detail", 1), transition.PushFromRight, transition.DefaultDuration)
	if s.Depth() != 2 || s.Top() != h {
		t.Fatal("pushed handle is not the top")
	}
	children := host.Children()
	if len(children) != 3 {
		t.Fatalf("host has %d children, want root, blocker, detail", len(children))
	}
	if children[0] != rootView || children[2] != h.View() {
		t.Fatal("z-order is not root, blocker, detail")
	}

	pump(driver, clock, 400*time.Millisecond)
	if h.View().Frame() != host.Bounds() {
		t.Fatalf("detail frame = %v after push, want %v", h.View().Frame(), host.Bounds())
	}
	wantRoot := host.Bounds().Translate(-host.Bounds().Width(), 0)
	if rootView.Frame() != wantRoot {
		t.Fatalf("root frame = %v after push, want pushed out to %v", rootView.Frame(), wantRoot)
	}
}

// TestStack_Pop_RoundTrip verifies that popping plays the reverse, releases
// the popped handle, and restores the view below exactly.
func TestStack_Pop_RoundTrip(t *testing.T) {
	host, registry, driver, clock := scaffold(t)
	s := NewStack(host, registry, driver, namedController("root", 1))
	rootView := s.Top().View()

	detail := namedController("detail", 1)
	h := s.Push(detail, transition.PushFromRight, transition.DefaultDuration)
	pump(driver, clock, 400*time.Millisecond)
	detailView := h.View()

	popped := s.Pop()
	if popped != h {
		t.Fatal("Pop() did not return the top handle")
	}
	if s.Depth() != 1 {
		t.Fatalf("Depth() = %d after pop, want 1", s.Depth())
	}
	if !h.Attached() {
		t.Fatal("popped view must stay attached while the reverse plays")
	}

	pump(driver, clock, 400*time.Millisecond)
	if _, ok := registry.ContainerFor(detail); ok {
		t.Fatal("popped controller still registered")
	}
	if rootView.Frame() != host.Bounds() {
		t.Fatalf("root frame = %v after pop, want %v", rootView.Frame(), host.Bounds())
	}
	if rootView.Alpha() != 1 {
		t.Fatalf("root alpha = %v after pop, want 1", rootView.Alpha())
	}
	if got := len(host.Children()); got != 1 {
		t.Fatalf("host has %d children after pop, want 1", got)
	}
	if detailView.Frame() != geometry.RectFromLTWH(0, 0, 50, 50) {
		t.Fatalf("detail frame = %v after release, want its pre-attach frame", detailView.Frame())
	}
}

// TestStack_Relayout_RebuildsCachedAnimations verifies the cache
// invalidation contract: after a host resize the stack rebuilds every enter
// animation, so a later pop restores the view below at the new geometry, not
// the old one.
func TestStack_Relayout_RebuildsCachedAnimations(t *testing.T) {
	host, registry, driver, clock := scaffold(t)
	s := NewStack(host, registry, driver, namedController("root", 1))
	rootView := s.Top().View()

	detail := namedController("detail", 1)
	h := s.Push(detail, transition.CrossFade, transition.DefaultDuration)
	pump(driver, clock, 400*time.Millisecond)
	if rootView.Alpha() != 0 {
		t.Fatalf("root alpha = %v after cross-fade push, want 0", rootView.Alpha())
	}

	larger := geometry.RectFromLTWH(0, 0, 480, 640)
	s.Relayout(larger)
	bounds := host.Bounds()
	if h.View().Frame() != bounds {
		t.Fatalf("top frame = %v after relayout, want %v", h.View().Frame(), bounds)
	}
	if rootView.Frame() != bounds {
		t.Fatalf("root frame = %v after relayout, want %v", rootView.Frame(), bounds)
	}
	if rootView.Alpha() != 0 {
		t.Fatalf("root alpha = %v after relayout, want still concealed", rootView.Alpha())
	}

	s.Pop()
	pump(driver, clock, 400*time.Millisecond)
	if rootView.Frame() != bounds {
		t.Fatalf("root frame = %v after pop, want the post-resize %v", rootView.Frame(), bounds)
	}
	if rootView.Alpha() != 1 {
		t.Fatalf("root alpha = %v after pop, want 1", rootView.Alpha())
	}
	if _, ok := registry.ContainerFor(detail); ok {
		t.Fatal("popped controller still registered")
	}
}

// TestStack_Pop_WithoutCacheReleasesImmediately verifies the degenerate path
// when the enter animation's cache was cleared externally: the handle is
// released synchronously and the new top restored by hand.
func TestStack_Pop_WithoutCacheReleasesImmediately(t *testing.T) {
	host, registry, driver, clock := scaffold(t)
	s := NewStack(host, registry, driver, namedController("root", 1))
	rootView := s.Top().View()

	detail := namedController("detail", 1)
	h := s.Push(detail, transition.CrossFade, transition.DefaultDuration)
	pump(driver, clock, 400*time.Millisecond)

	h.ReleaseView() // detaches and clears the cached animation

	popped := s.Pop()
	if popped != h {
		t.Fatal("Pop() did not return the top handle")
	}
	if _, ok := registry.ContainerFor(detail); ok {
		t.Fatal("popped controller still registered")
	}
	if driver.Active() != 0 {
		t.Fatalf("Active() = %d, want no playback for a cache-less pop", driver.Active())
	}
	if rootView.Alpha() != 1 {
		t.Fatalf("root alpha = %v, want revealed by hand", rootView.Alpha())
	}
	if rootView.Frame() != host.Bounds() {
		t.Fatalf("root frame = %v, want %v", rootView.Frame(), host.Bounds())
	}
	if s.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", s.Depth())
	}
}
