package transition

import (
	"time"

	"github.com/go-drift/gantry/pkg/animation"
	"github.com/go-drift/gantry/pkg/geometry"
	"github.com/go-drift/gantry/pkg/surface"
)

// Build constructs the forward animation bringing the appearing surface into
// view and concealing each disappearing surface according to the kind.
//
// The appearing surface's current frame and alpha are the authoritative end
// state, so Build must run when geometry is final; commonFrame is the shared
// frame the surfaces are displayed in and supplies the travel distances for
// covers and pushes. Construction only reads surface state; nothing moves
// until the animation is applied or played.
//
// duration may be the DefaultDuration sentinel. The returned animation is
// tagged with the kind's name; callers may overwrite the tag.
//
// Panics on a nil surface or a negative non-sentinel duration.
func Build(kind Kind, duration time.Duration, appearing *surface.Surface, disappearing []*surface.Surface, commonFrame geometry.Rect) *animation.Animation {
	if appearing == nil {
		panic("transition: nil appearing surface")
	}
	for _, s := range disappearing {
		if s == nil {
			panic("transition: nil disappearing surface")
		}
	}
	resolved := ResolveDuration(kind, duration)

	final := appearing.Frame()
	alpha := appearing.Alpha()
	dx, dy := entryOffset(kind, commonFrame.Width(), commonFrame.Height())

	step := animation.Step{
		Duration: resolved,
		Curve:    animation.EaseInOut,
	}

	in := animation.Track{
		Surface:   appearing,
		FromFrame: final,
		ToFrame:   final,
		FromAlpha: alpha,
		ToAlpha:   alpha,
	}
	switch kind {
	case None:
		// Pinned in place; the zero duration applies it instantly.
	case CrossFade:
		in.FromAlpha = 0
	case EmergeFromCenter:
		in.FromFrame = final.ScaleAbout(commonFrame.Center(), 0, 0)
	default:
		in.FromFrame = final.Translate(dx, dy)
	}
	step.Tracks = append(step.Tracks, in)

	for _, s := range disappearing {
		switch kind {
		case CrossFade:
			step.Tracks = append(step.Tracks, animation.Track{
				Surface:   s,
				FromFrame: s.Frame(),
				ToFrame:   s.Frame(),
				FromAlpha: s.Alpha(),
				ToAlpha:   0,
			})
		case PushFromBottom, PushFromTop, PushFromLeft, PushFromRight:
			// Pushed out the edge opposite the appearing surface's entry.
			step.Tracks = append(step.Tracks, animation.Track{
				Surface:   s,
				FromFrame: s.Frame(),
				ToFrame:   s.Frame().Translate(-dx, -dy),
				FromAlpha: s.Alpha(),
				ToAlpha:   s.Alpha(),
			})
		default:
			// Covers and emerges leave the previous content in place,
			// concealed beneath the appearing surface.
		}
	}

	a := animation.New(step)
	a.Tag = kind.String()
	return a
}

// entryOffset returns the translation from the appearing surface's final
// frame to its off-screen start position.
func entryOffset(kind Kind, w, h float64) (dx, dy float64) {
	switch kind {
	case CoverFromBottom, PushFromBottom:
		return 0, h
	case CoverFromTop, PushFromTop:
		return 0, -h
	case CoverFromLeft, PushFromLeft:
		return -w, 0
	case CoverFromRight, PushFromRight:
		return w, 0
	case CoverFromTopLeft:
		return -w, -h
	case CoverFromTopRight:
		return w, -h
	case CoverFromBottomLeft:
		return -w, h
	case CoverFromBottomRight:
		return w, h
	}
	return 0, 0
}
