// Package geometry provides the 2D shapes and the containment/collision
// predicates shared by the spatial index and the simulation.
//
// All shapes are closed: a point lying exactly on an edge is contained by the
// shape and collides with it.
package geometry

import "math"

// Point is a location in world space.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. Y grows downwards, so Top <= Bottom.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Circle is a disc centred on (X, Y).
type Circle struct {
	X, Y, R float64
}

// Line is the segment between A and B.
type Line struct {
	A, B Point
}

// Shape is the closed set of shapes understood by Collides.
type Shape interface {
	// Bounds returns the smallest Rect enclosing the shape.
	Bounds() Rect
	shape()
}

func (Point) shape()  {}
func (Rect) shape()   {}
func (Circle) shape() {}
func (Line) shape()   {}

// Bounds returns a zero-area rect at p.
func (p Point) Bounds() Rect { return Rect{Left: p.X, Top: p.Y, Right: p.X, Bottom: p.Y} }

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Bounds returns r.
func (r Rect) Bounds() Rect { return r }

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// MinSide returns the shorter of Width and Height.
func (r Rect) MinSide() float64 { return math.Min(r.Width(), r.Height()) }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Clamp returns the point of r closest to p.
func (r Rect) Clamp(p Point) Point {
	return Point{
		X: math.Max(r.Left, math.Min(p.X, r.Right)),
		Y: math.Max(r.Top, math.Min(p.Y, r.Bottom)),
	}
}

// Expand returns r grown by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Right: r.Right + d, Bottom: r.Bottom + d}
}

// Split returns the quarter of r selected by index when r is divided at split.
//
//	 ___
//	|0|1|
//	|2|3|
//	 ---
func (r Rect) Split(split Point, index int) Rect {
	q := r
	if index&1 == 0 {
		q.Right = split.X
	} else {
		q.Left = split.X
	}
	if index&2 == 0 {
		q.Bottom = split.Y
	} else {
		q.Top = split.Y
	}
	return q
}

// Quadrant returns the quarter of r selected by index, split at its centre.
func (r Rect) Quadrant(index int) Rect {
	return r.Split(r.Center(), index)
}

// Center returns the centre of c.
func (c Circle) Center() Point { return Point{X: c.X, Y: c.Y} }

// Bounds returns the square enclosing c.
func (c Circle) Bounds() Rect {
	return Rect{Left: c.X - c.R, Top: c.Y - c.R, Right: c.X + c.R, Bottom: c.Y + c.R}
}

// Bounds returns the rect spanned by the segment end points.
func (l Line) Bounds() Rect {
	return Rect{
		Left:   math.Min(l.A.X, l.B.X),
		Top:    math.Min(l.A.Y, l.B.Y),
		Right:  math.Max(l.A.X, l.B.X),
		Bottom: math.Max(l.A.Y, l.B.Y),
	}
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 { return math.Sqrt(DistanceSq(a, b)) }

// DistanceSq returns the squared euclidean distance between a and b.
func DistanceSq(a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	return dx*dx + dy*dy
}
