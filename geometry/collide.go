package geometry

import "math"

// lineTolerance is how far a point may sit from a segment and still touch it.
const lineTolerance = 1e-9

// Contains reports whether p lies inside r or on its edge.
func Contains(r Rect, p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// ContainsRect reports whether inner lies entirely within outer.
func ContainsRect(outer, inner Rect) bool {
	return inner.Left >= outer.Left && inner.Right <= outer.Right &&
		inner.Top >= outer.Top && inner.Bottom <= outer.Bottom
}

// ContainsCircle reports whether c lies entirely within r.
func ContainsCircle(r Rect, c Circle) bool {
	return ContainsRect(r, c.Bounds())
}

// Collides reports whether two shapes touch or overlap. It is symmetric, and
// any shape contained by another also collides with it.
func Collides(a, b Shape) bool {
	switch a := a.(type) {
	case Point:
		return pointCollides(a, b)
	case Rect:
		return rectCollides(a, b)
	case Circle:
		return circleCollides(a, b)
	case Line:
		return lineCollides(a, b)
	}
	return false
}

func pointCollides(p Point, s Shape) bool {
	switch s := s.(type) {
	case Point:
		return p == s
	case Rect:
		return Contains(s, p)
	case Circle:
		return DistanceSq(p, s.Center()) <= s.R*s.R
	case Line:
		if s.degenerate() {
			return p == s.A
		}
		return segmentDistanceSq(p, s) <= lineTolerance*lineTolerance
	}
	return false
}

func rectCollides(r Rect, s Shape) bool {
	switch s := s.(type) {
	case Point:
		return Contains(r, s)
	case Rect:
		return r.Left <= s.Right && s.Left <= r.Right && r.Top <= s.Bottom && s.Top <= r.Bottom
	case Circle:
		c := s.Center()
		return DistanceSq(c, r.Clamp(c)) <= s.R*s.R
	case Line:
		return rectLine(r, s)
	}
	return false
}

func circleCollides(c Circle, s Shape) bool {
	switch s := s.(type) {
	case Point:
		return pointCollides(s, c)
	case Rect:
		return rectCollides(s, c)
	case Circle:
		reach := c.R + s.R
		return DistanceSq(c.Center(), s.Center()) <= reach*reach
	case Line:
		return segmentDistanceSq(c.Center(), s) <= c.R*c.R
	}
	return false
}

func lineCollides(l Line, s Shape) bool {
	if l.degenerate() {
		return pointCollides(l.A, s)
	}
	switch s := s.(type) {
	case Point:
		return pointCollides(s, l)
	case Rect:
		return rectLine(s, l)
	case Circle:
		return circleCollides(s, l)
	case Line:
		if s.degenerate() {
			return pointCollides(s.A, l)
		}
		return segmentsIntersect(l, s)
	}
	return false
}

// degenerate reports whether the segment has zero length and so acts as a point.
func (l Line) degenerate() bool { return l.A == l.B }

// segmentDistanceSq returns the squared distance from p to the closest point of l.
func segmentDistanceSq(p Point, l Line) float64 {
	dx, dy := l.B.X-l.A.X, l.B.Y-l.A.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return DistanceSq(p, l.A)
	}
	t := ((p.X-l.A.X)*dx + (p.Y-l.A.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return DistanceSq(p, Point{X: l.A.X + t*dx, Y: l.A.Y + t*dy})
}

func rectLine(r Rect, l Line) bool {
	if Contains(r, l.A) || Contains(r, l.B) {
		return true
	}
	if !rectCollides(r, l.Bounds()) {
		return false
	}
	tl := Point{X: r.Left, Y: r.Top}
	tr := Point{X: r.Right, Y: r.Top}
	bl := Point{X: r.Left, Y: r.Bottom}
	br := Point{X: r.Right, Y: r.Bottom}
	return segmentsIntersect(l, Line{A: tl, B: tr}) ||
		segmentsIntersect(l, Line{A: tr, B: br}) ||
		segmentsIntersect(l, Line{A: br, B: bl}) ||
		segmentsIntersect(l, Line{A: bl, B: tl})
}

// orientation is positive when c lies left of a->b, negative when right and
// zero when the three points are collinear.
func orientation(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// onSegment reports whether p, already known to be collinear with l, lies within it.
func onSegment(l Line, p Point) bool {
	return Contains(l.Bounds(), p)
}

func segmentsIntersect(l, m Line) bool {
	d1 := orientation(m.A, m.B, l.A)
	d2 := orientation(m.A, m.B, l.B)
	d3 := orientation(l.A, l.B, m.A)
	d4 := orientation(l.A, l.B, m.B)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	return (d1 == 0 && onSegment(m, l.A)) ||
		(d2 == 0 && onSegment(m, l.B)) ||
		(d3 == 0 && onSegment(l, m.A)) ||
		(d4 == 0 && onSegment(l, m.B))
}
