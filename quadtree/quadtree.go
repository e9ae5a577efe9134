/*
Package quadtree implements a bounded region quadtree over axis-aligned boxes.

Each item is stored in the smallest cell that fully contains its box. Cells
are split lazily into four quadrants on first use, but never below a minimum
cell size. Items not contained in the root cell are kept at the root, so
nothing is ever lost.

The tree is mutated by Insert and read by the query functions. It is not
safe for concurrent mutation.
*/
package quadtree

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'trackedit.quadtree'
func tracer() tracing.Trace {
	return tracing.Select("trackedit.quadtree")
}

// maxDepth bounds the subdivision for tiny or zero minimum cell sizes.
const maxDepth = 32

// Item is a value stored together with its bounding box.
type Item[T any] struct {
	Box   r2.Rect
	Value T
}

// quadrants of a cell
const (
	sw = iota
	se
	nw
	ne
)

type node[T any] struct {
	box      r2.Rect
	items    []Item[T]
	children [4]*node[T] // nil for quadrants not yet in use
}

// Tree is a quadtree holding items of type T.
type Tree[T any] struct {
	root    *node[T]
	minCell float64
	count   int
}

// New creates an empty tree covering box. Cells are split only as long as
// both dimensions exceed twice minCellSize.
func New[T any](box r2.Rect, minCellSize float64) *Tree[T] {
	if box.IsEmpty() {
		box = r2.RectFromPoints(r2.Point{})
	}
	return &Tree[T]{
		root:    &node[T]{box: box},
		minCell: math.Max(0, minCellSize),
	}
}

// Len returns the number of items in the tree.
func (t *Tree[T]) Len() int {
	return t.count
}

// Insert stores value with bounding box box.
func (t *Tree[T]) Insert(box r2.Rect, value T) {
	item := Item[T]{Box: box, Value: value}
	t.count++
	n := t.root
	if !n.box.Contains(box) {
		tracer().Debugf("quadtree: item %v outside of root %v", box, n.box)
		n.items = append(n.items, item)
		return
	}
	depth := 0
	for depth < maxDepth {
		q, ok := t.quadrantFor(n, box)
		if !ok {
			break
		}
		if n.children[q] == nil {
			n.children[q] = &node[T]{box: quadrant(n.box, q)}
		}
		n = n.children[q]
		depth++
	}
	n.items = append(n.items, item)
	tracer().Debugf("quadtree: inserted %v at depth %d", box, depth)
}

// quadrantFor returns the quadrant of n which fully contains box, if n may
// be split at all.
func (t *Tree[T]) quadrantFor(n *node[T], box r2.Rect) (int, bool) {
	size := n.box.Size()
	if size.X <= 2*t.minCell || size.Y <= 2*t.minCell {
		return 0, false
	}
	for q := sw; q <= ne; q++ {
		if quadrant(n.box, q).Contains(box) {
			return q, true
		}
	}
	return 0, false
}

func quadrant(box r2.Rect, q int) r2.Rect {
	c := box.Center()
	switch q {
	case sw:
		return r2.RectFromPoints(box.Lo(), c)
	case se:
		return r2.RectFromPoints(r2.Point{X: c.X, Y: box.Y.Lo}, r2.Point{X: box.X.Hi, Y: c.Y})
	case nw:
		return r2.RectFromPoints(r2.Point{X: box.X.Lo, Y: c.Y}, r2.Point{X: c.X, Y: box.Y.Hi})
	}
	return r2.RectFromPoints(c, box.Hi())
}

// Query returns all items whose box intersects box.
func (t *Tree[T]) Query(box r2.Rect) []Item[T] {
	var result []Item[T]
	t.walk(func(n *node[T]) bool {
		if n != t.root && !n.box.Intersects(box) {
			return false
		}
		for _, item := range n.items {
			if item.Box.Intersects(box) {
				result = append(result, item)
			}
		}
		return true
	})
	return result
}

// QueryContaining returns all items whose box contains p.
func (t *Tree[T]) QueryContaining(p r2.Point) []Item[T] {
	var result []Item[T]
	t.walk(func(n *node[T]) bool {
		if n != t.root && !n.box.ContainsPoint(p) {
			return false
		}
		for _, item := range n.items {
			if item.Box.ContainsPoint(p) {
				result = append(result, item)
			}
		}
		return true
	})
	return result
}

// Items returns all items of the tree, in no particular order.
func (t *Tree[T]) Items() []Item[T] {
	result := make([]Item[T], 0, t.count)
	t.walk(func(n *node[T]) bool {
		result = append(result, n.items...)
		return true
	})
	return result
}

// walk visits cells depth first. visit returns false to skip a cell's
// children.
func (t *Tree[T]) walk(visit func(*node[T]) bool) {
	stack := []*node[T]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(n) {
			continue
		}
		for _, child := range n.children {
			if child != nil {
				stack = append(stack, child)
			}
		}
	}
}
