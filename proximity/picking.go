package proximity

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/npillmayer/trackedit"
	"github.com/npillmayer/trackedit/enrich"
	"github.com/npillmayer/trackedit/quadtree"
)

// PointIndex finds route points near a location or a pick ray. Every point
// occupies a square of twice the pick tolerance around its position.
type PointIndex struct {
	tree      *quadtree.Tree[int]
	pairs     []trackedit.Pair
	tolerance float64
}

// NewPointIndex indexes the positions of points.
func NewPointIndex(points []enrich.EnrichedPoint, minCellSize, pickTolerance float64) *PointIndex {
	pickTolerance = math.Max(pickTolerance, 0)
	pairs := footprint(points)
	box := trackedit.Box(pairs...).ExpandedByMargin(pickTolerance)
	tree := quadtree.New[int](box, minCellSize)
	for i, p := range pairs {
		tree.Insert(r2.RectFromPoints(p.R2()).ExpandedByMargin(pickTolerance), i)
	}
	return &PointIndex{tree: tree, pairs: pairs, tolerance: pickTolerance}
}

// Len returns the number of indexed points.
func (pi *PointIndex) Len() int {
	return pi.tree.Len()
}

// Near returns the indices of all points within pick tolerance of p, nearest
// first.
func (pi *PointIndex) Near(p trackedit.Pair) []int {
	var near []int
	for _, item := range pi.tree.QueryContaining(p.R2()) {
		if pi.pairs[item.Value].Dist(p) <= pi.tolerance {
			near = append(near, item.Value)
		}
	}
	sort.Slice(near, func(i, j int) bool {
		di, dj := pi.pairs[near[i]].Dist(p), pi.pairs[near[j]].Dist(p)
		if di == dj {
			return near[i] < near[j]
		}
		return di < dj
	})
	return near
}

// Nearest returns the first point hit by a pick ray, i.e. the point within
// pick tolerance of the ray which is closest to the ray's origin. Only points
// ahead of the origin are candidates.
func (pi *PointIndex) Nearest(ray quadtree.Axis) (int, bool) {
	norm := ray.Direction.Norm()
	if norm == 0 {
		return 0, false
	}
	dir := ray.Direction.Mul(1 / norm)
	item, _, ok := pi.tree.QueryNearestAlongAxis(ray, func(item quadtree.Item[int]) (float64, bool) {
		v := pi.pairs[item.Value].R2().Sub(ray.Origin)
		along := v.Dot(dir)
		if along < 0 || math.Abs(dir.Cross(v)) > pi.tolerance {
			return 0, false
		}
		return along, true
	})
	if !ok {
		return 0, false
	}
	tracer().Debugf("picked point %d", item.Value)
	return item.Value, true
}
