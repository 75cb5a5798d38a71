package search_test

import (
	"testing"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/search"
)

// BenchmarkSearch runs each algorithm on a 20×50 board with a water band,
// between the default endpoints.
func BenchmarkSearch(b *testing.B) {
	g, _ := gridgraph.NewGrid(20, 50)
	var water []gridgraph.Cell
	for r := 0; r < 15; r++ {
		water = append(water, gridgraph.Cell{Row: r, Col: 25})
	}
	s, err := gridgraph.NewSnapshot(g, nil, water)
	if err != nil {
		b.Fatal(err)
	}
	src, dst := gridgraph.Cell{Row: 9, Col: 9}, gridgraph.Cell{Row: 9, Col: 40}

	for _, alg := range search.Algorithms() {
		b.Run(alg.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := search.Search(s, src, dst, alg); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
