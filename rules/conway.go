package rules

const (
	birthNeighbors       = 3
	minSurvivalNeighbors = 2
	maxSurvivalNeighbors = 3
)

/*
ApplyConwayRules reports whether a cell is alive in the next generation given its
current state and the number of living cells around it.

A living cell survives with 2 or 3 neighbors and dies of under or overpopulation
otherwise. A dead cell comes to life with exactly 3 neighbors.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return neighbors >= minSurvivalNeighbors && neighbors <= maxSurvivalNeighbors
	}
	return neighbors == birthNeighbors
}
