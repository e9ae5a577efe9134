// Package enrich derives per-point attributes for a route: distance from the
// start, bearings, effective direction, direction and gradient change, and a
// cost metric telling how much shape a point contributes.
//
// Enrichment is always done for a complete point sequence. After any edit,
// clients call Enrich again on the new sequence; there is no incremental
// update.
package enrich

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/trackedit"
	"gonum.org/v1/gonum/floats"
)

// tracer writes to trace with key 'trackedit.enrich'
func tracer() tracing.Trace {
	return tracing.Select("trackedit.enrich")
}

// Sentinel is the cost metric of the first and last point of a sequence.
// Simplification never selects points carrying it.
const Sentinel = math.MaxFloat64

// DefaultMaxTurn is the turn beyond which a point is considered an egregious
// near-reversal, caused by noise in the input data.
const DefaultMaxTurn = s1.Angle(0.9 * math.Pi)

// NullAngle is an angle which may be absent.
type NullAngle struct {
	Angle s1.Angle
	Valid bool
}

func angle(a float64) NullAngle {
	return NullAngle{Angle: s1.Angle(a), Valid: true}
}

// EnrichedPoint is a track point together with its derived attributes.
type EnrichedPoint struct {
	trackedit.Point
	Index              int       // position within the sequence
	DistanceFromStart  float64   // cumulative 3D length up to this point
	BearingBefore      NullAngle // bearing from the previous point to this one
	BearingAfter       NullAngle // bearing from this point to the next one
	EffectiveDirection s1.Angle  // bisector of the bearings
	DirectionChange    NullAngle // absolute turn at this point
	GradientChange     NullAngle // signed change of gradient angle
	CostMetric         float64   // area of triangle with both neighbours
}

// Enricher computes enriched point sequences. MaxTurn is the direction change
// beyond which points are dropped as noise.
type Enricher struct {
	MaxTurn s1.Angle
}

// Default returns an enricher with DefaultMaxTurn.
func Default() Enricher {
	return Enricher{MaxTurn: DefaultMaxTurn}
}

// Enrich derives the attributes for a point sequence, using the default
// enricher.
func Enrich(points []trackedit.Point) []EnrichedPoint {
	return Default().Enrich(points)
}

// Enrich derives the attributes for points. Points with egregious direction
// changes are removed and the enrichment is repeated, until no such points
// remain. Every pass removes at least one point, therefore at most len(points)
// passes are made. points is not modified.
func (e Enricher) Enrich(points []trackedit.Point) []EnrichedPoint {
	enriched := derive(points)
	for pass := 1; ; pass++ {
		kept := make([]trackedit.Point, 0, len(enriched))
		for _, ep := range enriched {
			if !e.isEgregious(ep) {
				kept = append(kept, ep.Point)
			}
		}
		if len(kept) == len(enriched) {
			return enriched
		}
		tracer().Debugf("cleanup pass %d removed %d egregious points", pass, len(enriched)-len(kept))
		enriched = derive(kept)
	}
}

func (e Enricher) isEgregious(ep EnrichedPoint) bool {
	return ep.DirectionChange.Valid && ep.DirectionChange.Angle > e.MaxTurn
}

// derive is a single enrichment pass.
func derive(points []trackedit.Point) []EnrichedPoint {
	n := len(points)
	enriched := make([]EnrichedPoint, n)
	if n == 0 {
		return enriched
	}
	steps := make([]float64, n)
	for i := 1; i < n; i++ {
		steps[i] = points[i-1].Distance(points[i])
	}
	distances := floats.CumSum(make([]float64, n), steps)
	for i, p := range points {
		ep := EnrichedPoint{
			Point:             p,
			Index:             i,
			DistanceFromStart: distances[i],
			CostMetric:        Sentinel,
		}
		if n >= 3 && i > 0 {
			ep.BearingBefore = bearing(points[i-1], p)
		}
		if n >= 3 && i < n-1 {
			ep.BearingAfter = bearing(p, points[i+1])
		}
		ep.EffectiveDirection = effectiveDirection(ep.BearingBefore, ep.BearingAfter)
		if ep.BearingBefore.Valid && ep.BearingAfter.Valid {
			turn := normalize(float64(ep.BearingAfter.Angle - ep.BearingBefore.Angle))
			ep.DirectionChange = angle(math.Abs(turn))
			ep.GradientChange = angle(gradient(p, points[i+1]) - gradient(points[i-1], p))
		}
		if i > 0 && i < n-1 {
			ep.CostMetric = triangleArea(points[i-1], p, points[i+1])
		}
		enriched[i] = ep
	}
	return enriched
}

// Positions discards the derived attributes of an enriched sequence.
func Positions(points []EnrichedPoint) []trackedit.Point {
	ps := make([]trackedit.Point, len(points))
	for i, ep := range points {
		ps[i] = ep.Point
	}
	return ps
}

// bearing is the compass direction of travel from p to q, ignoring
// elevation: 0 points along +y (north), π/2 along +x (east). Zero-length
// steps have no bearing.
func bearing(p, q trackedit.Point) NullAngle {
	d := q.XY() - p.XY()
	if trackedit.Is0(d.Norm()) {
		return NullAngle{}
	}
	return angle(math.Atan2(d.X(), d.Y()))
}

// gradient is the angle of ascent from p to q.
func gradient(p, q trackedit.Point) float64 {
	run := p.XY().Dist(q.XY())
	return math.Atan2(q.Z-p.Z, run)
}

func effectiveDirection(before, after NullAngle) s1.Angle {
	switch {
	case before.Valid && after.Valid:
		half := normalize(float64(after.Angle-before.Angle)) / 2
		return s1.Angle(normalize(float64(before.Angle) + half))
	case before.Valid:
		return before.Angle
	case after.Valid:
		return after.Angle
	}
	return 0
}

// normalize reduces an angle to -π…π.
func normalize(a float64) float64 {
	return math.Remainder(a, 2*math.Pi)
}

func triangleArea(a, b, c trackedit.Point) float64 {
	ab := b.V().Sub(a.V())
	ac := c.V().Sub(a.V())
	return ab.Cross(ac).Norm() / 2
}
