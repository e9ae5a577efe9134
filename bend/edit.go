package bend

import (
	"errors"
	"fmt"

	"github.com/npillmayer/trackedit"
)

var (
	// ErrStretchOutOfRange indicates stretch markers outside the route.
	ErrStretchOutOfRange = errors.New("stretch markers out of range")
	// ErrStretchTooShort indicates a stretch without room for two roads.
	ErrStretchTooShort = errors.New("stretch is too short")
)

// Default corner rounding parameters.
const (
	DefaultMaxSteal       = 10.0
	DefaultCornerSegments = 8
)

// CornerOptions configures corner rounding.
type CornerOptions struct {
	MaxSteal float64 // upper bound for the distance of tangent points from the vertex
	Segments int     // number of arc segments replacing the vertex
}

// DefaultCornerOptions returns DefaultMaxSteal and DefaultCornerSegments.
func DefaultCornerOptions() CornerOptions {
	return CornerOptions{MaxSteal: DefaultMaxSteal, Segments: DefaultCornerSegments}
}

// ValidateStretch checks stretch markers start and end for a route of n
// points. The stretch must contain an entry road (start, start+1) and an exit
// road (end-1, end).
func ValidateStretch(n, start, end int) error {
	if start < 0 || end >= n || start > end {
		return fmt.Errorf("%w: [%d,%d] for %d points", ErrStretchOutOfRange, start, end, n)
	}
	if end-start < 2 {
		return fmt.Errorf("%w: [%d,%d] needs at least three points", ErrStretchTooShort, start, end)
	}
	return nil
}

// SmoothBend replaces the stretch from points[start] to points[end] by a
// tangent arc between the first and the last road of the stretch, with points
// roughly spacing apart. It returns a new route; points is left untouched.
// If no arc fits, the original points are returned together with false.
func SmoothBend(points []trackedit.Point, start, end int, spacing float64) ([]trackedit.Point, Replacement, bool) {
	if err := ValidateStretch(len(points), start, end); err != nil {
		tracer().Errorf("smooth bend: %v", err)
		return points, Replacement{}, false
	}
	entry := Road{Start: points[start], End: points[start+1]}
	exit := Road{Start: points[end-1], End: points[end]}
	arc, ok := FitBend(entry.Segment(), exit.Segment())
	if !ok {
		return points, Replacement{}, false
	}
	repl := Materialize(spacing, entry, exit, arc)
	return splice(points, start, end, repl.Points), repl, true
}

// RoundCorner replaces points[index] by a rounded corner. It returns a new
// route; points is left untouched. End points and collinear vertices cannot
// be rounded; then the original points are returned together with false.
func RoundCorner(points []trackedit.Point, index int, opts CornerOptions) ([]trackedit.Point, bool) {
	if index < 1 || index >= len(points)-1 {
		tracer().Debugf("round corner: %d is not an interior point", index)
		return points, false
	}
	corner, ok := FitCorner(points[index-1], points[index], points[index+1], opts.MaxSteal)
	if !ok {
		return points, false
	}
	return splice(points, index, index, corner.Points(opts.Segments)), true
}

// splice returns a new sequence with points[from…to] replaced by repl.
func splice(points []trackedit.Point, from, to int, repl []trackedit.Point) []trackedit.Point {
	result := make([]trackedit.Point, 0, len(points)-(to-from+1)+len(repl))
	result = append(result, points[:from]...)
	result = append(result, repl...)
	return append(result, points[to+1:]...)
}
