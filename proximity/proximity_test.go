package proximity

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/trackedit"
	"github.com/npillmayer/trackedit/enrich"
	"github.com/npillmayer/trackedit/quadtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func route(points ...trackedit.Point) []enrich.EnrichedPoint {
	eps := make([]enrich.EnrichedPoint, len(points))
	for i, p := range points {
		eps[i] = enrich.EnrichedPoint{Point: p, Index: i}
	}
	return eps
}

// figureEight is a closed lemniscate which crosses itself at the origin.
func figureEight(n int, scale float64) []enrich.EnrichedPoint {
	points := make([]trackedit.Point, n+1)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * (float64(i) + 0.5) / float64(n)
		points[i] = trackedit.Pt(scale*math.Sin(t), scale*math.Sin(t)*math.Cos(t), float64(i))
	}
	points[n] = points[0]
	return route(points...)
}

func circle(n int, radius float64) []enrich.EnrichedPoint {
	points := make([]trackedit.Point, n+1)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		points[i] = trackedit.Pt(radius*math.Cos(t), radius*math.Sin(t), 0)
	}
	points[n] = points[0]
	return route(points...)
}

func TestFigureEightCrossesItself(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	crossings := FindIntersections(figureEight(40, 100))
	require.Len(t, crossings, 1)
	c := crossings[0]
	assert.Equal(t, 19, c.First.Index)
	assert.Equal(t, 39, c.Second.Index)
	assert.InDelta(t, 0.0, c.At.Norm(), 1e-9)
}

func TestClosedLoopHasNoCrossing(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Empty(t, FindIntersections(circle(40, 100)))
	// a loop closing just short of its start
	loop := circle(40, 100)
	loop[40].Point = trackedit.Pt(100, 0.05, 0)
	assert.Empty(t, FindIntersections(loop))
}

func TestOpenRouteCrossing(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	points := route(
		trackedit.Pt(0, 0, 0),
		trackedit.Pt(10, 0, 0),
		trackedit.Pt(10, 10, 0),
		trackedit.Pt(5, -5, 0),
	)
	crossings := FindIntersections(points)
	require.Len(t, crossings, 1)
	assert.Equal(t, 0, crossings[0].First.Index)
	assert.Equal(t, 2, crossings[0].Second.Index)
	assert.True(t, crossings[0].At.Equal(trackedit.P(20.0/3, 0)), "at %v", crossings[0].At)
}

func TestNoCrossings(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Empty(t, FindIntersections(nil))
	assert.Empty(t, FindIntersections(route(trackedit.Pt(0, 0, 0), trackedit.Pt(1, 1, 1))))
	zigzag := route(
		trackedit.Pt(0, 0, 0),
		trackedit.Pt(10, 10, 0),
		trackedit.Pt(20, 0, 0),
		trackedit.Pt(30, 10, 0),
		trackedit.Pt(40, 0, 0),
	)
	assert.Empty(t, FindIntersections(zigzag))
	// doubling back on the same line is not a crossing
	back := route(trackedit.Pt(0, 0, 0), trackedit.Pt(10, 0, 0), trackedit.Pt(5, 0, 0))
	assert.Empty(t, FindIntersections(back))
}

func TestJoinTolerance(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// a triangle which almost returns to its start
	points := route(
		trackedit.Pt(0, 0, 0),
		trackedit.Pt(10, 0, 0),
		trackedit.Pt(5, 8, 0),
		trackedit.Pt(1, -0.5, 0),
	)
	crossings := Options{MinCellSize: 1, JoinTolerance: 0.1}.FindIntersections(points)
	assert.Len(t, crossings, 1, "route does not close within tolerance")
	crossings = Options{MinCellSize: 1, JoinTolerance: 2}.FindIntersections(points)
	assert.Empty(t, crossings, "route closes within tolerance")
}

func TestOnlyAdjacentJointsAreExcluded(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// a duplicate vertex leaves a zero-length segment in between, so the
	// segments meeting at (10,0) are not adjacent in route order
	points := route(
		trackedit.Pt(0, 0, 0),
		trackedit.Pt(10, 0, 0),
		trackedit.Pt(10, 0, 1),
		trackedit.Pt(10, 10, 1),
	)
	crossings := FindIntersections(points)
	require.Len(t, crossings, 1)
	assert.Equal(t, 0, crossings[0].First.Index)
	assert.Equal(t, 2, crossings[0].Second.Index)
	assert.True(t, crossings[0].At.Equal(trackedit.P(10, 0)), "at %v", crossings[0].At)
}

func TestSegments(t *testing.T) {
	points := route(trackedit.Pt(0, 0, 0), trackedit.Pt(3, 4, 7), trackedit.Pt(3, 0, 0))
	segments := Segments(points)
	require.Len(t, segments, 2)
	assert.Equal(t, 1, segments[1].Index)
	assert.InDelta(t, 5.0, segments[0].Length(), 1e-12)
	assert.Nil(t, Segments(points[:1]))
}

func randomRoute(rnd *rand.Rand, n int) []enrich.EnrichedPoint {
	points := make([]trackedit.Point, n)
	for i := range points {
		points[i] = trackedit.Pt(rnd.Float64()*1000, rnd.Float64()*1000, rnd.Float64()*50)
	}
	return route(points...)
}

func TestPickNear(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rnd := rand.New(rand.NewSource(77))
	points := randomRoute(rnd, 500)
	index := NewPointIndex(points, 10, 30)
	require.Equal(t, 500, index.Len())
	for q := 0; q < 100; q++ {
		p := trackedit.P(rnd.Float64()*1000, rnd.Float64()*1000)
		var expected []int
		for i, ep := range points {
			if ep.XY().Dist(p) <= 30 {
				expected = append(expected, i)
			}
		}
		near := index.Near(p)
		require.Len(t, near, len(expected), "query %d", q)
		for i := 1; i < len(near); i++ {
			assert.LessOrEqual(t, points[near[i-1]].XY().Dist(p), points[near[i]].XY().Dist(p))
		}
		sort.Ints(near)
		assert.Equal(t, expected, near)
	}
}

func TestPickNearestAlongRay(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rnd := rand.New(rand.NewSource(78))
	points := randomRoute(rnd, 500)
	const tolerance = 5.0
	index := NewPointIndex(points, 10, tolerance)
	hits := 0
	for q := 0; q < 200; q++ {
		phi := rnd.Float64() * 2 * math.Pi
		ray := quadtree.Axis{
			Origin:    r2.Point{X: rnd.Float64() * 1000, Y: rnd.Float64() * 1000},
			Direction: r2.Point{X: 3 * math.Cos(phi), Y: 3 * math.Sin(phi)},
		}
		dir := trackedit.P(math.Cos(phi), math.Sin(phi))
		origin := trackedit.FromR2(ray.Origin)
		best, bestAlong := -1, math.Inf(1)
		for i, ep := range points {
			v := ep.XY() - origin
			along := v.Dot(dir)
			if along >= 0 && math.Abs(dir.Cross(v)) <= tolerance && along < bestAlong {
				best, bestAlong = i, along
			}
		}
		picked, ok := index.Nearest(ray)
		require.Equal(t, best >= 0, ok, "query %d", q)
		if ok {
			hits++
			assert.InDelta(t, bestAlong, (points[picked].XY() - origin).Dot(dir), 1e-9, "query %d", q)
		}
	}
	assert.Greater(t, hits, 0)
}
