package bend

import (
	"math"

	"github.com/npillmayer/trackedit"
	"github.com/npillmayer/trackedit/plane"
)

// Corner is a rounded single vertex. The arc lives in the coordinates of the
// sketch plane through the vertex and its neighbours.
type Corner struct {
	Arc    Arc
	Sketch plane.Sketch
	Steal  float64 // distance of the tangent points from the vertex
}

// FitCorner rounds the corner at vertex. The tangent points are placed
// symmetrically at the same distance from the vertex: half the shorter
// adjacent road, but no more than maxSteal. The corner is solved in the plane
// through all three points, so elevation is handled as part of the geometry.
// Collinear points cannot be rounded.
func FitCorner(before, vertex, after trackedit.Point, maxSteal float64) (Corner, bool) {
	steal := math.Min(maxSteal, math.Min(before.Distance(vertex), after.Distance(vertex))/2)
	if steal <= trackedit.Epsilon {
		tracer().Debugf("no corner: nothing to steal at %v", vertex)
		return Corner{}, false
	}
	sk, ok := plane.SketchThrough(before, vertex, after)
	if !ok {
		return Corner{}, false
	}
	b, v, a := sk.Project(before), sk.Project(vertex), sk.Project(after)
	entry := plane.Seg(v+(b-v).Unit().Scaled(2*steal), v)
	exit := plane.Seg(v, v+(a-v).Unit().Scaled(2*steal))
	arc, ok := FitBend(entry, exit)
	if !ok {
		return Corner{}, false
	}
	return Corner{Arc: arc, Sketch: sk, Steal: steal}, true
}

// Center returns the arc's center in 3D.
func (c Corner) Center() trackedit.Point {
	return c.Sketch.Lift(c.Arc.Center)
}

// Points discretizes the corner arc into the given number of equal-angle
// segments, returning segments+1 points from tangent point to tangent point.
func (c Corner) Points(segments int) []trackedit.Point {
	if segments < 1 {
		segments = 1
	}
	points := make([]trackedit.Point, segments+1)
	for i := range points {
		points[i] = c.Sketch.Lift(c.Arc.PointAt(float64(i) / float64(segments)))
	}
	return points
}
