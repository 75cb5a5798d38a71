package search_test

import (
	"fmt"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/search"
)

// ExampleSearch runs BFS around a single wall and renders the result.
func ExampleSearch() {
	l, _ := gridgraph.ParseLayout("S..\n.#.\n..D")
	s, _ := l.Build()

	res, err := search.Search(s, l.Source, l.Destination, search.BFS)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.State, len(res.Path), res.Cost, len(res.Explored))
	fmt.Print(gridgraph.Render(s, l.Source, l.Destination, res.Explored, res.Path))
	// Output:
	// found 4 4 6
	// Soo
	// *#o
	// **D
}

// ExampleParseAlgorithm shows the accepted algorithm names.
func ExampleParseAlgorithm() {
	for _, name := range []string{"dfs", "Dijkstra's", "astar"} {
		alg, _ := search.ParseAlgorithm(name)
		fmt.Println(alg, alg.Weighted())
	}
	// Output:
	// DFS false
	// Dijkstra true
	// A* true
}

// Example_terrainDetour crosses a strip of water. The unweighted searches
// wade straight through it; the weighted ones walk around.
//
//	S~D
//	.~.
//	...
func Example_terrainDetour() {
	l, _ := gridgraph.ParseLayout("S~D\n.~.\n...")
	s, _ := l.Build()

	for _, alg := range search.Algorithms() {
		res, err := search.Search(s, l.Source, l.Destination, alg)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println(alg, res.State, len(res.Path), res.Cost)
	}
	// Output:
	// DFS found 2 11
	// BFS found 2 11
	// Greedy found 6 6
	// Dijkstra found 6 6
	// A* found 6 6
}
