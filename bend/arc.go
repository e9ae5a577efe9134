// Package bend fits circular arcs into routes. It smooths a bend between two
// straight pieces of road by a tangent arc, and rounds single sharp corners.
//
// Fitting may legitimately fail for geometric reasons (parallel roads heading
// the same way, roads crossing each other, collinear points). Failure is
// reported as a false flag; callers leave the route unmodified.
package bend

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/trackedit"
	"github.com/npillmayer/trackedit/plane"
)

// tracer writes to trace with key 'trackedit.bend'
func tracer() tracing.Trace {
	return tracing.Select("trackedit.bend")
}

// Arc is a circular arc from Start to End. Start and End are the tangent
// points where the arc meets the entry and exit road. Sweep is the signed
// angle from Start to End, positive for counterclockwise arcs.
type Arc struct {
	Center trackedit.Pair
	Radius float64
	Start  trackedit.Pair // entry tangent point
	Middle trackedit.Pair // point the arc was constructed through
	End    trackedit.Pair // exit tangent point
	Sweep  float64
}

// Length is the length of the arc.
func (arc Arc) Length() float64 {
	return math.Abs(arc.Sweep) * arc.Radius
}

// PointAt returns the point at fraction f (0…1) of the arc's sweep.
func (arc Arc) PointAt(f float64) trackedit.Pair {
	return arc.Start.Rotatedaround(arc.Center, arc.Sweep*f)
}

// arcThrough builds the arc from start via middle to end.
func arcThrough(start, middle, end trackedit.Pair) (Arc, bool) {
	circle, ok := plane.CircleThrough(start, middle, end)
	if !ok {
		return Arc{}, false
	}
	c := circle.Center
	a0 := (start - c).Phase()
	ccw := func(p trackedit.Pair) float64 { // counterclockwise angle from start, 0…2π
		d := (p - c).Phase() - a0
		for d < 0 {
			d += 2 * math.Pi
		}
		return d
	}
	sweep := ccw(end)
	if ccw(middle) > sweep {
		sweep -= 2 * math.Pi
	}
	return Arc{
		Center: c,
		Radius: circle.Radius,
		Start:  start,
		Middle: middle,
		End:    end,
		Sweep:  sweep,
	}, true
}

// FitBend constructs a circular arc tangent to both the entry and the exit
// road. Roads are directed: travel goes from entry.Start to entry.End, then
// along the arc, then from exit.Start to exit.End.
//
// If the roads are antiparallel, the arc is a semicircle. Otherwise the
// intersection point P of the roads' lines decides: if P lies behind the entry
// road and beyond the exit road, the roads diverge and the arc loops around on
// the far side; if P lies ahead of the entry road and behind the exit road,
// they converge and the arc cuts the corner at P. Every other configuration
// has no tangent arc.
func FitBend(entry, exit plane.Segment) (Arc, bool) {
	if trackedit.Is0(entry.Length()) || trackedit.Is0(exit.Length()) {
		tracer().Debugf("no bend: degenerate road")
		return Arc{}, false
	}
	p, ok := plane.Intersect(entry.Line(), exit.Line())
	if !ok {
		return fitParallel(entry, exit)
	}
	divergent := entry.IsBefore(p) && exit.IsAfter(p)
	convergent := entry.IsAfter(p) && exit.IsBefore(p)
	if !divergent && !convergent {
		tracer().Debugf("no bend: roads neither converge nor diverge at %v", p)
		return Arc{}, false
	}
	t1, t2 := tangentPoints(p, entry, exit)
	center, ok := plane.Intersect(
		plane.Perpendicular(entry.Line(), t1),
		plane.Perpendicular(exit.Line(), t2))
	if !ok {
		return Arc{}, false
	}
	r := center.Dist(t1)
	if trackedit.Is0(r) {
		tracer().Debugf("no bend: zero radius at %v", center)
		return Arc{}, false
	}
	var middle trackedit.Pair
	if divergent {
		d := center.Dist(p)
		middle = p + (center - p).Unit().Scaled(r+d)
	} else {
		middle = center + (p - center).Unit().Scaled(r)
	}
	arc, ok := arcThrough(t1, middle, t2)
	if ok {
		tracer().Debugf("bend: r = %.3f, sweep = %.3f, center = %v", arc.Radius, arc.Sweep, arc.Center)
	}
	return arc, ok
}

// tangentPoints selects the midpoint of the road farther from p as one
// tangent point, and the point at the same distance from p on the other road's
// line as the other.
func tangentPoints(p trackedit.Pair, entry, exit plane.Segment) (trackedit.Pair, trackedit.Pair) {
	ma, mb := entry.Midpoint(), exit.Midpoint()
	da, db := p.Dist(ma), p.Dist(mb)
	if da >= db {
		return ma, p + (mb - p).Unit().Scaled(da)
	}
	return p + (ma - p).Unit().Scaled(db), mb
}

// fitParallel handles roads on parallel lines. Only antiparallel roads, i.e. a
// U-turn, can be joined; the arc is a semicircle.
func fitParallel(entry, exit plane.Segment) (Arc, bool) {
	da, db := entry.Vector().Unit(), exit.Vector().Unit()
	if da.Dot(db) > 0 {
		tracer().Debugf("no bend: parallel roads heading the same way")
		return Arc{}, false
	}
	center := entry.Midpoint().Mid(exit.Midpoint())
	t1 := plane.Foot(entry.Line(), center)
	t2 := plane.Foot(exit.Line(), center)
	r := center.Dist(t1)
	if trackedit.Is0(r) {
		tracer().Debugf("no bend: roads on the same line")
		return Arc{}, false
	}
	return arcThrough(t1, center+da.Scaled(r), t2)
}
