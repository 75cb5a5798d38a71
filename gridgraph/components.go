package gridgraph

// OpenRegions finds all 4-connected regions of non-wall cells.
// Returns a slice of regions; each region is a slice of row-major cell
// indices in BFS discovery order. Regions are ordered by their first cell
// in row-major order.
//
// To convert an index back to a Cell, use Grid.Coordinate.
//
// Time:   O(R·C·4).
// Memory: O(R·C) for seen flags and output.
func (s *Snapshot) OpenRegions() [][]int {
	g := s.grid
	seen := make([]bool, g.Size())
	var regions [][]int

	for i0 := range seen {
		if s.walls[i0] || seen[i0] {
			continue
		}
		queue := []int{i0}
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			u := g.Coordinate(queue[qi])
			for _, d := range neighborOffsets {
				v := Cell{Row: u.Row + d[0], Col: u.Col + d[1]}
				if s.IsBlocked(v) {
					continue
				}
				vi := g.Index(v)
				if !seen[vi] {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		regions = append(regions, queue)
	}

	return regions
}

// Connected reports whether a and b are both open and lie in the same
// 4-connected region.
// Time: O(R·C) worst case.
func (s *Snapshot) Connected(a, b Cell) bool {
	if s.IsBlocked(a) || s.IsBlocked(b) {
		return false
	}
	if a == b {
		return true
	}
	g := s.grid
	seen := make([]bool, g.Size())
	seen[g.Index(a)] = true
	queue := []Cell{a}
	for qi := 0; qi < len(queue); qi++ {
		for _, d := range neighborOffsets {
			v := Cell{Row: queue[qi].Row + d[0], Col: queue[qi].Col + d[1]}
			if s.IsBlocked(v) || seen[g.Index(v)] {
				continue
			}
			if v == b {
				return true
			}
			seen[g.Index(v)] = true
			queue = append(queue, v)
		}
	}

	return false
}
