// Package plane provides 2D line and segment algebra, circles through three
// points, and sketch planes for reducing 3D corners to 2D.
//
// All operations are total, except intersections, circle construction and
// sketch planes, which report absence with a boolean flag instead of failing.
package plane

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/trackedit"
)

// tracer writes to trace with key 'trackedit.plane'
func tracer() tracing.Trace {
	return tracing.Select("trackedit.plane")
}

// Line is an infinite line A·x + B·y + C = 0. (A,B) is a normal of the line,
// (-B,A) its direction.
type Line struct {
	A, B, C float64
}

// LineThrough returns the line through p and q, directed from p to q.
// For p = q the line is degenerate (A = B = 0) and intersects nothing.
func LineThrough(p, q trackedit.Pair) Line {
	a := q.Y() - p.Y()
	b := p.X() - q.X()
	return Line{A: a, B: b, C: -(a*p.X() + b*p.Y())}
}

// Direction returns the direction vector (-B,A) of l.
func (l Line) Direction() trackedit.Pair {
	return trackedit.P(-l.B, l.A)
}

// IsDegenerate is true for a line without a direction.
func (l Line) IsDegenerate() bool {
	return trackedit.Is0(l.A) && trackedit.Is0(l.B)
}

// Side is the signed value of l at p. It is 0 on the line and has opposite
// signs on opposite sides.
func (l Line) Side(p trackedit.Pair) float64 {
	return l.A*p.X() + l.B*p.Y() + l.C
}

// Perpendicular returns the line through p perpendicular to l.
func Perpendicular(l Line, p trackedit.Pair) Line {
	// the normal of the perpendicular is the direction of l
	a, b := -l.B, l.A
	return Line{A: a, B: b, C: -(a*p.X() + b*p.Y())}
}

// Intersect returns the intersection point of two lines. It returns false for
// parallel or coincident lines.
func Intersect(l1, l2 Line) (trackedit.Pair, bool) {
	det := l1.A*l2.B - l2.A*l1.B
	n1 := math.Hypot(l1.A, l1.B)
	n2 := math.Hypot(l2.A, l2.B)
	if l1.IsDegenerate() || l2.IsDegenerate() || trackedit.Is0(det/(n1*n2)) {
		return trackedit.Origin, false
	}
	x := (l1.B*l2.C - l2.B*l1.C) / det
	y := (l2.A*l1.C - l1.A*l2.C) / det
	return trackedit.P(x, y), true
}

// Foot returns the foot of the perpendicular dropped from p onto l.
func Foot(l Line, p trackedit.Pair) trackedit.Pair {
	if l.IsDegenerate() {
		return p
	}
	n2 := l.A*l.A + l.B*l.B
	s := l.Side(p) / n2
	return trackedit.P(p.X()-s*l.A, p.Y()-s*l.B)
}

// === Segments ==============================================================

// Segment is a directed straight piece of road from Start to End.
type Segment struct {
	Start, End trackedit.Pair
}

// Seg is a quick notation for constructing a segment.
func Seg(start, end trackedit.Pair) Segment {
	return Segment{Start: start, End: end}
}

// Line returns the underlying line, directed like s.
func (s Segment) Line() Line {
	return LineThrough(s.Start, s.End)
}

// Vector is End - Start.
func (s Segment) Vector() trackedit.Pair {
	return s.End - s.Start
}

// Length is the distance between the end points.
func (s Segment) Length() float64 {
	return s.Start.Dist(s.End)
}

// Midpoint is the point halfway between the end points.
func (s Segment) Midpoint() trackedit.Pair {
	return s.Start.Mid(s.End)
}

// PointAlong returns the point at distance d from Start in the direction of
// End. d may be negative or exceed the length of s.
func (s Segment) PointAlong(d float64) trackedit.Pair {
	return s.Start + s.Vector().Unit().Scaled(d)
}

// Param returns the position of p's projection onto s, where 0 is Start and
// 1 is End. Degenerate segments return 0.
func (s Segment) Param(p trackedit.Pair) float64 {
	v := s.Vector()
	l2 := v.Dot(v)
	if trackedit.Is0(l2) {
		return 0
	}
	return (p - s.Start).Dot(v) / l2
}

// IsBefore is true if p lies at or before the start of s, along its direction.
func (s Segment) IsBefore(p trackedit.Pair) bool {
	return s.Param(p) <= trackedit.Epsilon
}

// IsAfter is true if p lies at or beyond the end of s, along its direction.
func (s Segment) IsAfter(p trackedit.Pair) bool {
	return s.Param(p) >= 1-trackedit.Epsilon
}

// Box is the bounding box of s.
func (s Segment) Box() r2.Rect {
	return trackedit.Box(s.Start, s.End)
}

// Intersection returns the point where s and other cross, including touches
// at end points. Parallel segments, even overlapping ones, do not intersect.
func (s Segment) Intersection(other Segment) (trackedit.Pair, bool) {
	r, q := s.Vector(), other.Vector()
	denom := r.Cross(q)
	if trackedit.Is0(denom) {
		return trackedit.Origin, false
	}
	w := other.Start - s.Start
	t := w.Cross(q) / denom
	u := w.Cross(r) / denom
	const slack = 1e-9
	if t < -slack || t > 1+slack || u < -slack || u > 1+slack {
		return trackedit.Origin, false
	}
	return s.Start + r.Scaled(t), true
}

// === Circles ===============================================================

// Circle is given by center and radius.
type Circle struct {
	Center trackedit.Pair
	Radius float64
}

// CircleThrough returns the circle through a, b and c. For collinear or
// coincident points no circle exists.
func CircleThrough(a, b, c trackedit.Pair) (Circle, bool) {
	x1, y1 := a.X(), a.Y()
	x2, y2 := b.X(), b.Y()
	x3, y3 := c.X(), c.Y()
	d := 2 * (x1*(y2-y3) + x2*(y3-y1) + x3*(y1-y2))
	// compare twice the triangle area against the spread of the points
	scale := math.Max(b.Dist(a), math.Max(c.Dist(a), c.Dist(b)))
	if trackedit.Is0(scale) || math.Abs(d) <= 2*trackedit.Epsilon*scale*scale {
		tracer().Debugf("no circle through collinear points %v, %v, %v", a, b, c)
		return Circle{}, false
	}
	s1 := x1*x1 + y1*y1
	s2 := x2*x2 + y2*y2
	s3 := x3*x3 + y3*y3
	cx := (s1*(y2-y3) + s2*(y3-y1) + s3*(y1-y2)) / d
	cy := (s1*(x3-x2) + s2*(x1-x3) + s3*(x2-x1)) / d
	center := trackedit.P(cx, cy)
	return Circle{Center: center, Radius: center.Dist(a)}, true
}
