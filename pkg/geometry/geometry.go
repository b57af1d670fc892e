// Package geometry provides the 2D primitives used by surface trees and
// transition animations: points, sizes, rectangles, and the interpolation
// helpers playback needs.
package geometry

import "math"

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Point represents a 2D point or vector in pixel coordinates.
type Point struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the component-wise difference of two points.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  float64
	Height float64
}

// IsEmpty returns true if either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// RectFromSize constructs a Rect anchored at the origin with the given size.
func RectFromSize(size Size) Rect {
	return Rect{Right: size.Width, Bottom: size.Height}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Origin returns the top-left corner of the rectangle.
func (r Rect) Origin() Point {
	return Point{X: r.Left, Y: r.Top}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{
		X: (r.Left + r.Right) * 0.5,
		Y: (r.Top + r.Bottom) * 0.5,
	}
}

// Contains reports whether the point lies inside the rectangle. Points on
// the left/top edges are inside, points on the right/bottom edges are not.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Translate returns a new rect offset by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// ScaleAbout returns the rect scaled by (sx, sy) around an anchor point.
// A scale of zero collapses the rect onto the anchor.
func (r Rect) ScaleAbout(anchor Point, sx, sy float64) Rect {
	return Rect{
		Left:   anchor.X + (r.Left-anchor.X)*sx,
		Top:    anchor.Y + (r.Top-anchor.Y)*sy,
		Right:  anchor.X + (r.Right-anchor.X)*sx,
		Bottom: anchor.Y + (r.Bottom-anchor.Y)*sy,
	}
}

// Intersect returns the intersection of two rectangles.
// Returns empty rect if they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := math.Max(r.Left, other.Left)
	top := math.Max(r.Top, other.Top)
	right := math.Min(r.Right, other.Right)
	bottom := math.Min(r.Bottom, other.Bottom)
	if left >= right || top >= bottom {
		return Rect{} // Empty
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Union returns the smallest rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, other.Left),
		Top:    math.Min(r.Top, other.Top),
		Right:  math.Max(r.Right, other.Right),
		Bottom: math.Max(r.Bottom, other.Bottom),
	}
}

// Lerp linearly interpolates between two float64 values.
// t is clamped by callers; 0 yields a, 1 yields b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpPoint linearly interpolates between two points.
func LerpPoint(a, b Point, t float64) Point {
	return Point{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
	}
}

// LerpRect linearly interpolates each edge of two rectangles.
func LerpRect(a, b Rect, t float64) Rect {
	return Rect{
		Left:   Lerp(a.Left, b.Left, t),
		Top:    Lerp(a.Top, b.Top, t),
		Right:  Lerp(a.Right, b.Right, t),
		Bottom: Lerp(a.Bottom, b.Bottom, t),
	}
}

// FloatEqual returns true if two float64 values are approximately equal.
func FloatEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

// RectEqual returns true if all four edges are approximately equal.
func RectEqual(a, b Rect) bool {
	return FloatEqual(a.Left, b.Left) &&
		FloatEqual(a.Top, b.Top) &&
		FloatEqual(a.Right, b.Right) &&
		FloatEqual(a.Bottom, b.Bottom)
}
