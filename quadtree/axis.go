package quadtree

import (
	"math"

	"github.com/golang/geo/r2"
)

// Axis is an infinite line through Origin with direction Direction.
type Axis struct {
	Origin    r2.Point
	Direction r2.Point
}

// side is the signed area spanned by the axis direction and p, seen from
// the axis origin.
func (a Axis) side(p r2.Point) float64 {
	return a.Direction.Cross(p.Sub(a.Origin))
}

// Crosses is true if the axis intersects at least one edge of box.
func (a Axis) Crosses(box r2.Rect) bool {
	if box.IsEmpty() {
		return false
	}
	v := box.Vertices()
	for i := range v {
		s0, s1 := a.side(v[i]), a.side(v[(i+1)%4])
		if s0 == 0 || s1 == 0 || (s0 < 0) != (s1 < 0) {
			return true
		}
	}
	return false
}

// Valuation rates an item. Items with ok = false are not candidates.
type Valuation[T any] func(item Item[T]) (value float64, ok bool)

// QueryNearestAlongAxis visits every cell the axis crosses and returns the
// candidate item with the lowest value, together with that value.
func (t *Tree[T]) QueryNearestAlongAxis(axis Axis, value Valuation[T]) (Item[T], float64, bool) {
	var best Item[T]
	lowest, found := math.Inf(1), false
	if axis.Direction.Norm() == 0 {
		tracer().Errorf("quadtree: axis without direction")
		return best, lowest, false
	}
	t.walk(func(n *node[T]) bool {
		if n != t.root && !axis.Crosses(n.box) {
			return false
		}
		for _, item := range n.items {
			if v, ok := value(item); ok && v < lowest {
				best, lowest, found = item, v, true
			}
		}
		return true
	})
	return best, lowest, found
}
