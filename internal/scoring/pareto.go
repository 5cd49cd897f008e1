package scoring

// ComputeFrontier returns the indices of the Pareto-optimal rows, in input order.
// A row is dominated if another row is at least as good on every criterion
// (>= for benefit criteria, <= for cost criteria) and strictly better on at least one.
// The dominance check is O(m^2 n) in suppliers m and criteria n.
func ComputeFrontier(rows [][]float64, benefit []bool) []int {
	var frontier []int
	for i := range rows {
		dominated := false
		for j := range rows {
			if i == j {
				continue
			}
			if dominates(rows[j], rows[i], benefit) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, i)
		}
	}
	return frontier
}

// dominates returns true if a dominates b.
func dominates(a, b []float64, benefit []bool) bool {
	strictly := false
	for j := range benefit {
		better, worse := a[j] > b[j], a[j] < b[j]
		if !benefit[j] {
			better, worse = worse, better
		}
		if worse {
			return false
		}
		if better {
			strictly = true
		}
	}
	return strictly
}
