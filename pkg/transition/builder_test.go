package transition

import (
	"testing"
	"time"

	"github.com/go-drift/gantry/pkg/animation"
	"github.com/go-drift/gantry/pkg/geometry"
	"github.com/go-drift/gantry/pkg/surface"
)

// hostFrame is the common frame used by builder tests.
var hostFrame = geometry.RectFromLTWH(0, 0, 320, 480)

// placedSurface returns a surface positioned at its final on-screen frame.
func placedSurface() *surface.Surface {
	return surface.New(geometry.RectFromLTWH(0, 0, 320, 480))
}

// trackFor returns the track animating s, failing the test if absent.
func trackFor(t *testing.T, a *animation.Animation, s *surface.Surface) animation.Track {
	t.Helper()
	steps := a.Steps()
	if len(steps) != 1 {
		t.Fatalf("len(steps) = %d, want 1", len(steps))
	}
	for _, tr := range steps[0].Tracks {
		if tr.Surface == s {
			return tr
		}
	}
	t.Fatalf("no track for surface %q", s.Name())
	return animation.Track{}
}

// hasTrackFor reports whether the animation moves s at all.
func hasTrackFor(a *animation.Animation, s *surface.Surface) bool {
	for _, step := range a.Steps() {
		for _, tr := range step.Tracks {
			if tr.Surface == s {
				return true
			}
		}
	}
	return false
}

// TestBuild_CoverFromBottom verifies the appearing surface starts one host
// height below its final frame and peers stay untouched.
func TestBuild_CoverFromBottom(t *testing.T) {
	in := placedSurface()
	peer := placedSurface()

	a := Build(CoverFromBottom, DefaultDuration, in, []*surface.Surface{peer}, hostFrame)

	tr := trackFor(t, a, in)
	if want := in.Frame().Translate(0, 480); tr.FromFrame != want {
		t.Errorf("FromFrame = %+v, want %+v", tr.FromFrame, want)
	}
	if tr.ToFrame != in.Frame() {
		t.Errorf("ToFrame = %+v, want final frame %+v", tr.ToFrame, in.Frame())
	}
	if tr.FromAlpha != 1 || tr.ToAlpha != 1 {
		t.Errorf("cover should not touch alpha, got (%v, %v)", tr.FromAlpha, tr.ToAlpha)
	}
	if hasTrackFor(a, peer) {
		t.Error("cover should leave disappearing surfaces untouched")
	}
	if got := a.Duration(); got != 400*time.Millisecond {
		t.Errorf("Duration() = %v, want standard 400ms", got)
	}
	if a.Tag != "cover-from-bottom" {
		t.Errorf("Tag = %q, want kind name", a.Tag)
	}
}

// TestBuild_CornerCovers verifies corner entry offsets.
func TestBuild_CornerCovers(t *testing.T) {
	tests := []struct {
		kind   Kind
		dx, dy float64
	}{
		{CoverFromTopLeft, -320, -480},
		{CoverFromTopRight, 320, -480},
		{CoverFromBottomLeft, -320, 480},
		{CoverFromBottomRight, 320, 480},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			in := placedSurface()
			a := Build(tt.kind, DefaultDuration, in, nil, hostFrame)
			tr := trackFor(t, a, in)
			if want := in.Frame().Translate(tt.dx, tt.dy); tr.FromFrame != want {
				t.Errorf("FromFrame = %+v, want %+v", tr.FromFrame, want)
			}
		})
	}
}

// TestBuild_CrossFade verifies opposing alpha ramps with frames pinned.
func TestBuild_CrossFade(t *testing.T) {
	in := placedSurface()
	in.SetAlpha(0.9)
	peer := placedSurface()
	peer.SetAlpha(0.8)

	a := Build(CrossFade, DefaultDuration, in, []*surface.Surface{peer}, hostFrame)

	inTr := trackFor(t, a, in)
	if inTr.FromAlpha != 0 || inTr.ToAlpha != 0.9 {
		t.Errorf("appearing alphas = (%v, %v), want (0, 0.9)", inTr.FromAlpha, inTr.ToAlpha)
	}
	if inTr.FromFrame != in.Frame() || inTr.ToFrame != in.Frame() {
		t.Error("cross-fade should not move the appearing surface")
	}

	peerTr := trackFor(t, a, peer)
	if peerTr.FromAlpha != 0.8 || peerTr.ToAlpha != 0 {
		t.Errorf("peer alphas = (%v, %v), want (0.8, 0)", peerTr.FromAlpha, peerTr.ToAlpha)
	}
}

// TestBuild_PushFromRight verifies the peer is pushed out the opposite edge.
func TestBuild_PushFromRight(t *testing.T) {
	in := placedSurface()
	peer := placedSurface()

	a := Build(PushFromRight, DefaultDuration, in, []*surface.Surface{peer}, hostFrame)

	inTr := trackFor(t, a, in)
	if want := in.Frame().Translate(320, 0); inTr.FromFrame != want {
		t.Errorf("appearing FromFrame = %+v, want %+v", inTr.FromFrame, want)
	}

	peerTr := trackFor(t, a, peer)
	if want := peer.Frame().Translate(-320, 0); peerTr.ToFrame != want {
		t.Errorf("peer ToFrame = %+v, want %+v", peerTr.ToFrame, want)
	}
}

// TestBuild_EmergeFromCenter verifies the appearing surface grows from the
// common frame's center.
func TestBuild_EmergeFromCenter(t *testing.T) {
	in := placedSurface()
	a := Build(EmergeFromCenter, DefaultDuration, in, nil, hostFrame)

	tr := trackFor(t, a, in)
	center := hostFrame.Center()
	if tr.FromFrame.Left != center.X || tr.FromFrame.Top != center.Y || !tr.FromFrame.IsEmpty() {
		t.Errorf("FromFrame = %+v, want zero-size rect at %+v", tr.FromFrame, center)
	}
	if tr.ToFrame != in.Frame() {
		t.Errorf("ToFrame = %+v, want final frame", tr.ToFrame)
	}
}

// TestBuild_None verifies a zero-duration pin of the appearing surface.
func TestBuild_None(t *testing.T) {
	in := placedSurface()
	peer := placedSurface()
	a := Build(None, DefaultDuration, in, []*surface.Surface{peer}, hostFrame)

	if got := a.Duration(); got != 0 {
		t.Errorf("Duration() = %v, want 0", got)
	}
	tr := trackFor(t, a, in)
	if tr.FromFrame != in.Frame() || tr.ToFrame != in.Frame() {
		t.Error("None should pin the appearing surface in place")
	}
	if hasTrackFor(a, peer) {
		t.Error("None should leave peers untouched")
	}
}

// TestBuild_ReverseRestoresPeers verifies the round trip across a push:
// applying forward then reverse restores both surfaces exactly.
func TestBuild_ReverseRestoresPeers(t *testing.T) {
	in := placedSurface()
	peer := placedSurface()
	peerFrame, peerAlpha := peer.Frame(), peer.Alpha()

	a := Build(PushFromLeft, DefaultDuration, in, []*surface.Surface{peer}, hostFrame)
	a.Apply()
	a.Reverse().Apply()

	if peer.Frame() != peerFrame || peer.Alpha() != peerAlpha {
		t.Errorf("peer state = (%+v, %v), want exactly (%+v, %v)",
			peer.Frame(), peer.Alpha(), peerFrame, peerAlpha)
	}
}

// TestBuild_ExplicitDuration verifies an explicit duration overrides the
// standard one.
func TestBuild_ExplicitDuration(t *testing.T) {
	in := placedSurface()
	a := Build(CrossFade, 150*time.Millisecond, in, nil, hostFrame)
	if got := a.Duration(); got != 150*time.Millisecond {
		t.Errorf("Duration() = %v, want 150ms", got)
	}
}

// TestBuild_PanicsOnNilSurfaces verifies the nil contracts.
func TestBuild_PanicsOnNilSurfaces(t *testing.T) {
	panicCaught := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicCaught = true
			}
		}()
		Build(CrossFade, DefaultDuration, nil, nil, hostFrame)
	}()
	if !panicCaught {
		t.Error("expected panic for nil appearing surface")
	}

	panicCaught = false
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicCaught = true
			}
		}()
		Build(CrossFade, DefaultDuration, placedSurface(), []*surface.Surface{nil}, hostFrame)
	}()
	if !panicCaught {
		t.Error("expected panic for nil disappearing surface")
	}
}
