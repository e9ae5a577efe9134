package enrich

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Candidates returns the indices of the interior points with the lowest cost
// metric, cheapest first. fraction (0…1) selects the share of interior points
// to return. End points are never returned.
func Candidates(points []EnrichedPoint, fraction float64) []int {
	if len(points) < 3 || fraction <= 0 {
		return nil
	}
	interior := points[1 : len(points)-1]
	costs := make([]float64, len(interior))
	for i, ep := range interior {
		costs[i] = ep.CostMetric
	}
	inds := make([]int, len(costs))
	floats.Argsort(costs, inds)
	k := int(math.Ceil(math.Min(fraction, 1) * float64(len(inds))))
	result := make([]int, k)
	for i := 0; i < k; i++ {
		result[i] = interior[inds[i]].Index
	}
	return result
}
