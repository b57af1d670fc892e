// Package raster composites surface trees into images for debugging and
// inspection. Surfaces carry no pixels of their own, so each one is filled
// with a deterministic color derived from its name; opacity multiplies down
// the tree the way a compositor would apply it.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/zeebo/blake3"
	"golang.org/x/image/draw"

	"github.com/go-drift/gantry/pkg/geometry"
	"github.com/go-drift/gantry/pkg/surface"
)

// Palette returns the debug color for a surface name. The same name always
// maps to the same color, so renders are comparable across runs.
func Palette(name string) color.NRGBA {
	sum := blake3.Sum256([]byte(name))
	return color.NRGBA{R: sum[0], G: sum[1], B: sum[2], A: 0xff}
}

// Render composites the tree rooted at root into an RGBA image the size of
// the root's frame. Children paint back to front over their parent; hidden
// subtrees are skipped. Panics if root is nil.
func Render(root *surface.Surface) *image.RGBA {
	if root == nil {
		panic("raster: nil root surface")
	}
	size := root.Frame().Size()
	w := int(math.Ceil(size.Width))
	h := int(math.Ceil(size.Height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	paint(dst, root, root.Bounds(), 1)
	return dst
}

func paint(dst *image.RGBA, s *surface.Surface, abs geometry.Rect, alpha float64) {
	if s.Hidden() {
		return
	}
	alpha *= s.Alpha()
	fill(dst, abs, s.Name(), alpha)
	for _, child := range s.Children() {
		paint(dst, child, child.Frame().Translate(abs.Left, abs.Top), alpha)
	}
}

func fill(dst *image.RGBA, r geometry.Rect, name string, alpha float64) {
	if alpha <= 0 || r.IsEmpty() {
		return
	}
	c := Palette(name)
	c.A = uint8(math.Round(alpha * 255))
	rect := image.Rect(
		int(math.Round(r.Left)), int(math.Round(r.Top)),
		int(math.Round(r.Right)), int(math.Round(r.Bottom)),
	)
	draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

// Thumbnail renders the tree and scales the result to fit within maxW x maxH,
// preserving aspect ratio. Trees already within the bounds are returned at
// full size. Panics if the bounds are not positive.
func Thumbnail(root *surface.Surface, maxW, maxH int) *image.RGBA {
	if maxW < 1 || maxH < 1 {
		panic("raster: thumbnail bounds must be positive")
	}
	full := Render(root)
	b := full.Bounds()
	scale := math.Min(float64(maxW)/float64(b.Dx()), float64(maxH)/float64(b.Dy()))
	if scale >= 1 {
		return full
	}
	w := int(math.Round(float64(b.Dx()) * scale))
	h := int(math.Round(float64(b.Dy()) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), full, b, draw.Src, nil)
	return dst
}
