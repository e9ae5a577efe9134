package bend

import (
	"math"

	"github.com/npillmayer/trackedit"
	"github.com/npillmayer/trackedit/plane"
	"gonum.org/v1/gonum/floats/scalar"
)

// Road is a directed 3D piece of road.
type Road struct {
	Start, End trackedit.Point
}

// Segment projects r onto the plane.
func (r Road) Segment() plane.Segment {
	return plane.Seg(r.Start.XY(), r.End.XY())
}

// Replacement is the sequence of points replacing a stretch of route.
// Points[LeadIn] and Points[LeadOut] are the tangent points; points before
// LeadIn and after LeadOut are the unchanged road end points.
type Replacement struct {
	Points  []trackedit.Point
	LeadIn  int
	LeadOut int
}

// Arc returns the synthesized arc points, including both tangent points.
func (repl Replacement) Arc() []trackedit.Point {
	return repl.Points[repl.LeadIn : repl.LeadOut+1]
}

// MaxArcSegments is the finest subdivision Materialize produces.
const MaxArcSegments = 10000

// Materialize discretizes a bend arc into track points, roughly spacing apart.
// The arc is divided into equal angles, at most MaxArcSegments of them.
// Elevation changes evenly along the whole way from entry.Start over the arc
// to exit.End.
func Materialize(spacing float64, entry, exit Road, arc Arc) Replacement {
	arcLength := arc.Length()
	n := 1
	if segments := math.Ceil(arcLength / spacing); !(spacing > 0) {
		tracer().Errorf("bend: invalid point spacing %g, using a single arc segment", spacing)
	} else if !(segments <= MaxArcSegments) {
		tracer().Errorf("bend: point spacing %g too small for arc of length %g, using %d segments",
			spacing, arcLength, MaxArcSegments)
		n = MaxArcSegments
	} else if segments > 1 {
		n = int(segments)
	}
	leadIn := entry.Start.XY().Dist(arc.Start)
	leadOut := arc.End.Dist(exit.End.XY())
	total := leadIn + arcLength + leadOut
	z0, z1 := entry.Start.Z, exit.End.Z
	zIn, zOut := z0, z0
	if !scalar.EqualWithinAbs(total, 0, trackedit.Epsilon) {
		zIn = z0 + (z1-z0)*leadIn/total
		zOut = z0 + (z1-z0)*(leadIn+arcLength)/total
	}
	points := make([]trackedit.Point, 0, n+3)
	points = append(points, entry.Start, trackedit.Lift(arc.Start, zIn))
	for i := 1; i < n; i++ {
		f := float64(i) / float64(n)
		points = append(points, trackedit.Lift(arc.PointAt(f), zIn+(zOut-zIn)*f))
	}
	points = append(points, trackedit.Lift(arc.End, zOut), exit.End)
	return Replacement{
		Points:  points,
		LeadIn:  1,
		LeadOut: len(points) - 2,
	}
}
