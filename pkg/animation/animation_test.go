package animation

import (
	"testing"
	"time"

	"github.com/go-drift/gantry/pkg/geometry"
	"github.com/go-drift/gantry/pkg/surface"
)

// TestAnimation_Duration_SumsSteps verifies total duration across steps.
func TestAnimation_Duration_SumsSteps(t *testing.T) {
	a := New(
		Step{Duration: 100 * time.Millisecond},
		Step{Duration: 250 * time.Millisecond},
	)
	if got, want := a.Duration(), 350*time.Millisecond; got != want {
		t.Errorf("Duration() = %v, want %v", got, want)
	}
}

// TestAnimation_Apply_SetsEndState verifies that Apply jumps surfaces to the
// final frame and alpha of every step.
func TestAnimation_Apply_SetsEndState(t *testing.T) {
	s := surface.New(geometry.RectFromLTWH(0, 0, 100, 100))
	a := New(Step{
		Duration: 400 * time.Millisecond,
		Tracks: []Track{{
			Surface:   s,
			FromFrame: geometry.RectFromLTWH(0, 480, 100, 100),
			ToFrame:   geometry.RectFromLTWH(0, 0, 100, 100),
			FromAlpha: 0,
			ToAlpha:   1,
		}},
	})

	a.Apply()

	if got, want := s.Frame(), geometry.RectFromLTWH(0, 0, 100, 100); got != want {
		t.Errorf("frame = %+v, want %+v", got, want)
	}
	if s.Alpha() != 1 {
		t.Errorf("alpha = %v, want 1", s.Alpha())
	}
}

// TestAnimation_Rewind_SetsStartState verifies that Rewind jumps surfaces to
// the first step's start state.
func TestAnimation_Rewind_SetsStartState(t *testing.T) {
	s := surface.New(geometry.RectFromLTWH(0, 0, 100, 100))
	a := New(Step{
		Duration: 400 * time.Millisecond,
		Tracks: []Track{{
			Surface:   s,
			FromFrame: geometry.RectFromLTWH(0, 480, 100, 100),
			ToFrame:   geometry.RectFromLTWH(0, 0, 100, 100),
			FromAlpha: 0.25,
			ToAlpha:   1,
		}},
	})

	a.Apply()
	a.Rewind()

	if got, want := s.Frame(), geometry.RectFromLTWH(0, 480, 100, 100); got != want {
		t.Errorf("frame = %+v, want %+v", got, want)
	}
	if s.Alpha() != 0.25 {
		t.Errorf("alpha = %v, want 0.25", s.Alpha())
	}
}

// TestAnimation_Reverse_SwapsEndpointsAndOrder verifies the structural
// reverse: reversed step order with swapped endpoints per track.
func TestAnimation_Reverse_SwapsEndpointsAndOrder(t *testing.T) {
	s := surface.New(geometry.RectFromLTWH(0, 0, 10, 10))
	first := Step{
		Duration: 100 * time.Millisecond,
		Tracks: []Track{{
			Surface:   s,
			FromFrame: geometry.RectFromLTWH(0, 0, 10, 10),
			ToFrame:   geometry.RectFromLTWH(50, 0, 10, 10),
			FromAlpha: 1,
			ToAlpha:   1,
		}},
	}
	second := Step{
		Duration: 200 * time.Millisecond,
		Tracks: []Track{{
			Surface:   s,
			FromFrame: geometry.RectFromLTWH(50, 0, 10, 10),
			ToFrame:   geometry.RectFromLTWH(50, 80, 10, 10),
			FromAlpha: 1,
			ToAlpha:   0.5,
		}},
	}

	rev := New(first, second).Reverse()
	steps := rev.Steps()

	if len(steps) != 2 {
		t.Fatalf("len(steps) = %d, want 2", len(steps))
	}
	if steps[0].Duration != 200*time.Millisecond {
		t.Errorf("reversed first step duration = %v, want 200ms", steps[0].Duration)
	}
	tr := steps[0].Tracks[0]
	if tr.FromFrame != second.Tracks[0].ToFrame || tr.ToFrame != second.Tracks[0].FromFrame {
		t.Error("reversed track should swap frame endpoints")
	}
	if tr.FromAlpha != 0.5 || tr.ToAlpha != 1 {
		t.Errorf("reversed track alphas = (%v, %v), want (0.5, 1)", tr.FromAlpha, tr.ToAlpha)
	}
}

// TestAnimation_Reverse_RoundTripRestoresState verifies that applying the
// forward animation and then its reverse restores the exact original state.
func TestAnimation_Reverse_RoundTripRestoresState(t *testing.T) {
	s := surface.New(geometry.RectFromLTWH(7, 13, 100, 100))
	s.SetAlpha(0.8)
	origFrame, origAlpha := s.Frame(), s.Alpha()

	a := New(Step{
		Duration: 400 * time.Millisecond,
		Curve:    EaseInOut,
		Tracks: []Track{{
			Surface:   s,
			FromFrame: origFrame,
			ToFrame:   geometry.RectFromLTWH(307, 413, 100, 100),
			FromAlpha: origAlpha,
			ToAlpha:   0.1,
		}},
	})

	a.Apply()
	a.Reverse().Apply()

	if s.Frame() != origFrame {
		t.Errorf("frame = %+v, want exactly %+v", s.Frame(), origFrame)
	}
	if s.Alpha() != origAlpha {
		t.Errorf("alpha = %v, want exactly %v", s.Alpha(), origAlpha)
	}
}

// TestAnimation_Reverse_TagPrefix verifies tag handling on reversal.
func TestAnimation_Reverse_TagPrefix(t *testing.T) {
	a := New()
	if got := a.Reverse().Tag; got != "" {
		t.Errorf("reverse of untagged animation has tag %q, want empty", got)
	}
	a.Tag = "cover"
	if got := a.Reverse().Tag; got != "reverse_cover" {
		t.Errorf("reverse tag = %q, want %q", got, "reverse_cover")
	}
}

// TestAnimation_Reverse_DropsHooks verifies that hook points are not carried
// into the reversed animation.
func TestAnimation_Reverse_DropsHooks(t *testing.T) {
	a := New()
	a.OnStart = func() { t.Error("forward OnStart should not fire") }
	a.OnStop = func(bool) { t.Error("forward OnStop should not fire") }

	rev := a.Reverse()
	if rev.OnStart != nil || rev.OnStop != nil {
		t.Error("reversed animation should start with nil hooks")
	}
}

// TestMirrorCurve verifies the identity m(t) = 1 - c(1-t) and endpoint
// exactness.
func TestMirrorCurve(t *testing.T) {
	m := MirrorCurve(EaseIn)
	if m(0) != 0 || m(1) != 1 {
		t.Errorf("mirrored curve endpoints = (%v, %v), want (0, 1)", m(0), m(1))
	}
	for _, tt := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		want := 1 - EaseIn(1-tt)
		if got := m(tt); !geometry.FloatEqual(got, want) {
			t.Errorf("m(%v) = %v, want %v", tt, got, want)
		}
	}
	if MirrorCurve(nil) != nil {
		t.Error("MirrorCurve(nil) should be nil")
	}
}
