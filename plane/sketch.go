package plane

import (
	"github.com/golang/geo/r3"
	"github.com/npillmayer/trackedit"
)

// Sketch is the plane through three non-collinear track points, with an
// orthonormal frame. It maps 3D points into plane coordinates and back.
type Sketch struct {
	Origin trackedit.Point
	U, V   r3.Vector // orthonormal axes within the plane
	Normal r3.Vector // unit normal, U × V
}

// minSine is the smallest sine of the angle at the first point for which
// three points are not considered collinear.
const minSine = 1e-6

// SketchThrough returns the sketch plane through a, b and c, with its origin
// at b and its U-axis pointing from b towards a. It returns false if the points
// are (nearly) collinear or coincide.
func SketchThrough(a, b, c trackedit.Point) (Sketch, bool) {
	ba := a.V().Sub(b.V())
	bc := c.V().Sub(b.V())
	la, lc := ba.Norm(), bc.Norm()
	if trackedit.Is0(la) || trackedit.Is0(lc) {
		tracer().Debugf("sketch plane: coincident points %v, %v, %v", a, b, c)
		return Sketch{}, false
	}
	n := ba.Cross(bc)
	if n.Norm()/(la*lc) < minSine {
		tracer().Debugf("sketch plane: collinear points %v, %v, %v", a, b, c)
		return Sketch{}, false
	}
	normal := n.Normalize()
	u := ba.Normalize()
	return Sketch{
		Origin: b,
		U:      u,
		V:      normal.Cross(u),
		Normal: normal,
	}, true
}

// Project maps p into plane coordinates. Points off the plane are projected
// orthogonally.
func (s Sketch) Project(p trackedit.Point) trackedit.Pair {
	d := p.V().Sub(s.Origin.V())
	return trackedit.P(d.Dot(s.U), d.Dot(s.V))
}

// Lift maps plane coordinates back to a track point.
func (s Sketch) Lift(q trackedit.Pair) trackedit.Point {
	v := s.Origin.V().Add(s.U.Mul(q.X())).Add(s.V.Mul(q.Y()))
	return trackedit.Point(v)
}
