package maze_test

import (
	"fmt"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/maze"
)

// ExampleGenerate carves a 5×5 maze from the top-left corner. Nine carve
// points are joined by eight links, leaving eight walls whatever the seed.
func ExampleGenerate() {
	g, _ := gridgraph.NewGrid(5, 5)
	walls, err := maze.Generate(g, gridgraph.Cell{Row: 0, Col: 0}, maze.WithSeed(1))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("walls:", len(walls))
	// Output:
	// walls: 8
}
