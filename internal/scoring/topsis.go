package scoring

import (
	"fmt"
	"math"
	"sort"
)

// RankedAlternative is one alternative's TOPSIS outcome.
type RankedAlternative struct {
	Alternative
	Index         int     `json:"index"`
	Rank          int     `json:"rank"`
	Closeness     float64 `json:"closeness"`
	DistanceIdeal float64 `json:"distance_ideal"`
	DistanceNadir float64 `json:"distance_nadir"`
	Indeterminate bool    `json:"indeterminate,omitempty"`
	ParetoOptimal bool    `json:"pareto_optimal"`
}

// Ranking is the TOPSIS result. Results are in rank order; Weighted is in
// input row order.
type Ranking struct {
	Weights           []float64           `json:"weights"`
	Ideal             []float64           `json:"ideal"`
	Nadir             []float64           `json:"nadir"`
	Weighted          [][]float64         `json:"weighted"`
	DegenerateColumns []int               `json:"degenerate_columns,omitempty"`
	Results           []RankedAlternative `json:"results"`
}

// Rank orders the alternatives of dm by TOPSIS closeness to the ideal point.
//
// Columns are vector normalised and scaled by weights. For benefit criteria
// the ideal is the column maximum and the nadir the minimum; cost criteria
// swap the two. Closeness is dNadir / (dIdeal + dNadir).
//
// An all-zero column contributes nothing and is listed in DegenerateColumns.
// A row whose two distances are both zero gets closeness 0 and is marked
// Indeterminate. Equal closeness keeps input order, so the earlier row gets
// the lower rank number.
func Rank(dm DecisionMatrix, weights []float64, benefit []bool) (Ranking, error) {
	m := len(dm.Rows)
	if m == 0 {
		return Ranking{}, ErrEmptySupplierSet
	}
	n := len(weights)
	if len(benefit) != n {
		return Ranking{}, fmt.Errorf("%w: %d weights, %d benefit flags", ErrDimensionMismatch, n, len(benefit))
	}
	if len(dm.Alternatives) != m {
		return Ranking{}, fmt.Errorf("%w: %d alternatives, %d rows", ErrDimensionMismatch, len(dm.Alternatives), m)
	}
	for i, row := range dm.Rows {
		if len(row) != n {
			return Ranking{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Ranking{}, fmt.Errorf("row %d column %d: %w", i, j, ErrNonFinite)
			}
		}
	}

	r := Ranking{
		Weights:  append([]float64(nil), weights...),
		Ideal:    make([]float64, n),
		Nadir:    make([]float64, n),
		Weighted: make([][]float64, m),
	}

	norms := make([]float64, n)
	for j := 0; j < n; j++ {
		norms[j] = columnNorm(dm.Rows, j)
		if norms[j] == 0 {
			r.DegenerateColumns = append(r.DegenerateColumns, j)
		}
	}

	for i := 0; i < m; i++ {
		r.Weighted[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if norms[j] == 0 {
				continue
			}
			r.Weighted[i][j] = dm.Rows[i][j] / norms[j] * weights[j]
		}
	}

	for j := 0; j < n; j++ {
		lo, hi := r.Weighted[0][j], r.Weighted[0][j]
		for i := 1; i < m; i++ {
			lo = math.Min(lo, r.Weighted[i][j])
			hi = math.Max(hi, r.Weighted[i][j])
		}
		if benefit[j] {
			r.Ideal[j], r.Nadir[j] = hi, lo
		} else {
			r.Ideal[j], r.Nadir[j] = lo, hi
		}
	}

	r.Results = make([]RankedAlternative, m)
	for i := 0; i < m; i++ {
		dPos := distance(r.Weighted[i], r.Ideal)
		dNeg := distance(r.Weighted[i], r.Nadir)
		ra := RankedAlternative{
			Alternative:   dm.Alternatives[i],
			Index:         i,
			DistanceIdeal: dPos,
			DistanceNadir: dNeg,
		}
		if total := dPos + dNeg; total > 0 {
			ra.Closeness = dNeg / total
		} else {
			ra.Indeterminate = true
		}
		r.Results[i] = ra
	}

	sort.SliceStable(r.Results, func(a, b int) bool {
		return r.Results[a].Closeness > r.Results[b].Closeness
	})
	for k := range r.Results {
		r.Results[k].Rank = k + 1
	}
	return r, nil
}

// columnNorm is the Euclidean norm of column j, scaled by the largest
// magnitude so squaring cannot overflow.
func columnNorm(rows [][]float64, j int) float64 {
	var scale float64
	for _, row := range rows {
		scale = math.Max(scale, math.Abs(row[j]))
	}
	if scale == 0 {
		return 0
	}
	var sq float64
	for _, row := range rows {
		x := row[j] / scale
		sq += x * x
	}
	return scale * math.Sqrt(sq)
}

func distance(a, b []float64) float64 {
	var sum float64
	for j := range a {
		d := a[j] - b[j]
		sum += d * d
	}
	return math.Sqrt(sum)
}
