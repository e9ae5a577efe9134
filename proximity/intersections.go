/*
Package proximity answers spatial questions about a route: where it crosses
itself, and which of its points lie near a given location.

Both build a quadtree over the current route on every call. Nothing is
cached across edits.
*/
package proximity

import (
	"sort"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/trackedit"
	"github.com/npillmayer/trackedit/enrich"
	"github.com/npillmayer/trackedit/plane"
	"github.com/npillmayer/trackedit/quadtree"
)

// tracer writes to trace with key 'trackedit.proximity'
func tracer() tracing.Trace {
	return tracing.Select("trackedit.proximity")
}

// Defaults for Options.
const (
	DefaultMinCellSize   = 1.0
	DefaultJoinTolerance = 0.1
)

// Options configures the search for self-intersections.
type Options struct {
	MinCellSize   float64 // quadtree cells are not split below this size
	JoinTolerance float64 // hits this close to the joint of adjacent segments are ignored
}

// DefaultOptions returns DefaultMinCellSize and DefaultJoinTolerance.
func DefaultOptions() Options {
	return Options{MinCellSize: DefaultMinCellSize, JoinTolerance: DefaultJoinTolerance}
}

// Segment is the piece of route from point Index to point Index+1, projected
// onto the plane.
type Segment struct {
	Index int
	plane.Segment
}

// Crossing is a point where the route crosses itself. First is the segment
// travelled earlier.
type Crossing struct {
	First, Second Segment
	At            trackedit.Pair
}

// Segments returns the route's consecutive segments.
func Segments(points []enrich.EnrichedPoint) []Segment {
	if len(points) < 2 {
		return nil
	}
	segments := make([]Segment, len(points)-1)
	for i := range segments {
		segments[i] = Segment{
			Index:   i,
			Segment: plane.Seg(points[i].XY(), points[i+1].XY()),
		}
	}
	return segments
}

// FindIntersections reports the self-intersections of a route using
// DefaultOptions.
func FindIntersections(points []enrich.EnrichedPoint) []Crossing {
	return DefaultOptions().FindIntersections(points)
}

// FindIntersections reports the self-intersections of a route.
//
// Segments are processed in route order. Each one is tested against the
// previously seen segments whose bounding boxes overlap its own, then added
// to the index. Adjacent segments always touch at their common point; such a
// hit is dropped if it lies within JoinTolerance of that point. A route whose
// first and last points coincide within JoinTolerance is closed, and its last
// and first segments count as adjacent.
func (o Options) FindIntersections(points []enrich.EnrichedPoint) []Crossing {
	segments := Segments(points)
	if len(segments) < 2 {
		return nil
	}
	pairs := footprint(points)
	closed := len(segments) > 2 && pairs[0].Dist(pairs[len(pairs)-1]) <= o.JoinTolerance
	index := quadtree.New[Segment](trackedit.Box(pairs...), o.MinCellSize)
	var crossings []Crossing
	for _, seg := range segments {
		candidates := index.Query(seg.Box())
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].Value.Index < candidates[j].Value.Index
		})
		for _, c := range candidates {
			other := c.Value
			at, ok := other.Intersection(seg.Segment)
			if !ok {
				continue
			}
			if shared, adjacent := joint(other, seg, pairs, closed); adjacent && at.Dist(shared) <= o.JoinTolerance {
				continue
			}
			tracer().Debugf("route crosses itself at %v (segments %d and %d)", at, other.Index, seg.Index)
			crossings = append(crossings, Crossing{First: other, Second: seg, At: at})
		}
		index.Insert(seg.Box(), seg)
	}
	tracer().Infof("%d self-intersections in %d segments", len(crossings), len(segments))
	return crossings
}

// joint returns the point shared by adjacent segments earlier and later.
func joint(earlier, later Segment, pairs []trackedit.Pair, closed bool) (trackedit.Pair, bool) {
	if later.Index == earlier.Index+1 {
		return pairs[later.Index], true
	}
	if closed && earlier.Index == 0 && later.Index == len(pairs)-2 {
		return pairs[0], true
	}
	return trackedit.Origin, false
}

// footprint projects points onto the plane.
func footprint(points []enrich.EnrichedPoint) []trackedit.Pair {
	pairs := make([]trackedit.Pair, len(points))
	for i, p := range points {
		pairs[i] = p.XY()
	}
	return pairs
}
