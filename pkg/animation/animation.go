// Package animation provides reversible, step-based animations over surface
// trees, and the playback driver that advances them from a frame loop.
//
// An [Animation] is an ordered list of [Step]s. Each step moves a set of
// surfaces from exact start frames and opacities to exact end frames and
// opacities over a duration, shaped by an easing curve. Because every track
// stores absolute endpoints, an animation can be reversed structurally with
// [Animation.Reverse] and a forward/reverse round trip restores the original
// state bit for bit.
//
// Construction is synchronous and free of side effects; nothing moves until
// the animation is applied with [Animation.Apply] or played through a
// [Driver].
package animation

import (
	"time"

	"github.com/go-drift/gantry/pkg/geometry"
	"github.com/go-drift/gantry/pkg/surface"
)

// Track describes how one surface changes over a step. Endpoints are
// absolute: playing a track at progress 0 sets the From state, at progress 1
// the To state.
type Track struct {
	Surface   *surface.Surface
	FromFrame geometry.Rect
	ToFrame   geometry.Rect
	FromAlpha float64
	ToAlpha   float64
}

// reversed returns the track with swapped endpoints.
func (tr Track) reversed() Track {
	return Track{
		Surface:   tr.Surface,
		FromFrame: tr.ToFrame,
		ToFrame:   tr.FromFrame,
		FromAlpha: tr.ToAlpha,
		ToAlpha:   tr.FromAlpha,
	}
}

// apply sets every track surface to the eased interpolation at progress t.
// t outside [0, 1] is clamped; the endpoints are applied exactly, bypassing
// the curve.
func applyTracks(tracks []Track, curve func(float64) float64, t float64) {
	for _, tr := range tracks {
		switch {
		case t <= 0:
			tr.Surface.SetFrame(tr.FromFrame)
			tr.Surface.SetAlpha(tr.FromAlpha)
		case t >= 1:
			tr.Surface.SetFrame(tr.ToFrame)
			tr.Surface.SetAlpha(tr.ToAlpha)
		default:
			eased := t
			if curve != nil {
				eased = curve(t)
			}
			tr.Surface.SetFrame(geometry.LerpRect(tr.FromFrame, tr.ToFrame, eased))
			tr.Surface.SetAlpha(geometry.Lerp(tr.FromAlpha, tr.ToAlpha, eased))
		}
	}
}

// Step is one phase of an animation: a set of tracks advanced together over
// a duration. A nil Curve means linear. A zero Duration step applies its end
// state immediately when reached.
type Step struct {
	Duration time.Duration
	Curve    func(float64) float64
	Tracks   []Track
}

// reversed returns the step with reversed tracks and a mirrored curve.
func (s Step) reversed() Step {
	tracks := make([]Track, len(s.Tracks))
	for i, tr := range s.Tracks {
		tracks[i] = tr.reversed()
	}
	return Step{
		Duration: s.Duration,
		Curve:    MirrorCurve(s.Curve),
		Tracks:   tracks,
	}
}

// Animation is an immutable sequence of steps plus caller hook points.
// Create one with New; the step slice is copied and never mutated.
type Animation struct {
	// Tag is an optional caller-provided label, carried into diagnostics.
	// Reverse prefixes it with "reverse_".
	Tag string

	// OnStart fires when playback of the animation begins.
	OnStart func()

	// OnStop fires when playback ends. finished is true when the animation
	// ran to completion and false when it was cancelled.
	OnStop func(finished bool)

	steps []Step
}

// New creates an animation from the given steps.
func New(steps ...Step) *Animation {
	copied := make([]Step, len(steps))
	copy(copied, steps)
	return &Animation{steps: copied}
}

// Steps returns a copy of the animation's steps.
func (a *Animation) Steps() []Step {
	out := make([]Step, len(a.steps))
	copy(out, a.steps)
	return out
}

// Duration returns the total duration of all steps.
func (a *Animation) Duration() time.Duration {
	var total time.Duration
	for _, s := range a.steps {
		total += s.Duration
	}
	return total
}

// Reverse returns a new animation that plays this one backwards: steps in
// reverse order, each with swapped endpoints and a mirrored curve. Hook
// points are not carried over; the Tag is prefixed with "reverse_" when set.
func (a *Animation) Reverse() *Animation {
	steps := make([]Step, len(a.steps))
	for i, s := range a.steps {
		steps[len(steps)-1-i] = s.reversed()
	}
	rev := &Animation{steps: steps}
	if a.Tag != "" {
		rev.Tag = "reverse_" + a.Tag
	}
	return rev
}

// Apply jumps every surface to the animation's end state without playback.
// Hook points do not fire.
func (a *Animation) Apply() {
	for _, s := range a.steps {
		applyTracks(s.Tracks, s.Curve, 1)
	}
}

// Rewind jumps every surface to the animation's start state without
// playback. Hook points do not fire.
func (a *Animation) Rewind() {
	for i := len(a.steps) - 1; i >= 0; i-- {
		s := a.steps[i]
		applyTracks(s.Tracks, s.Curve, 0)
	}
}
