package gridgraph

import "math"

// Manhattan returns |Δrow| + |Δcol|.
func Manhattan(a, b Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

// Euclidean returns sqrt(Δrow² + Δcol²).
func Euclidean(a, b Cell) float64 {
	dr := float64(a.Row - b.Row)
	dc := float64(a.Col - b.Col)

	return math.Sqrt(dr*dr + dc*dc)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
