package scoring

import (
	"encoding/json"
	"fmt"
	"math"
)

const (
	MinIntensity = 1.0 / 9.0
	MaxIntensity = 9.0

	intensityTolerance = 1e-9
)

// Criterion is one column of the decision matrix. Benefit criteria prefer
// higher values.
type Criterion struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Benefit bool   `json:"benefit"`
}

// SupplierCriteria is the fixed criterion order used for supplier ranking.
// Deforestation is fed risk-reversed (Low=3, High=1), so it is a benefit criterion.
var SupplierCriteria = []Criterion{
	{Name: "total_cost", Label: "Total Cost", Benefit: false},
	{Name: "total_emissions", Label: "Total Emissions", Benefit: false},
	{Name: "deforestation", Label: "Deforestation", Benefit: true},
	{Name: "recyclability", Label: "Recyclability", Benefit: true},
}

// BenefitFlags returns the benefit flag of each criterion in order.
func BenefitFlags(criteria []Criterion) []bool {
	out := make([]bool, len(criteria))
	for i, c := range criteria {
		out[i] = c.Benefit
	}
	return out
}

// PairwiseMatrix is a reciprocal AHP comparison matrix. Entry [i][j] says how
// many times more important criterion i is than criterion j. Only the upper
// triangle is ever supplied; the diagonal is 1 and the lower triangle is
// derived, so m[j][i] == 1/m[i][j] holds for every valid matrix.
type PairwiseMatrix struct {
	m [][]float64
}

// NewPairwiseMatrix builds an n×n matrix from the n(n-1)/2 upper-triangle
// judgments in row-major order: (0,1), (0,2), ..., (1,2), ...
func NewPairwiseMatrix(upper []float64) (PairwiseMatrix, error) {
	n := 1
	for n*(n-1)/2 < len(upper) {
		n++
	}
	if n < 2 || n*(n-1)/2 != len(upper) {
		return PairwiseMatrix{}, fmt.Errorf("%w: %d judgments do not form an upper triangle", ErrDimensionMismatch, len(upper))
	}

	m := onesMatrix(n)
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := upper[k]
			k++
			if err := checkIntensity(i, j, v); err != nil {
				return PairwiseMatrix{}, err
			}
			m[i][j] = v
			m[j][i] = 1 / v
		}
	}
	return PairwiseMatrix{m: m}, nil
}

// UniformPairwise returns the n×n matrix with every judgment equal to 1.
func UniformPairwise(n int) PairwiseMatrix {
	return PairwiseMatrix{m: onesMatrix(n)}
}

// Judgment compares two named criteria: A is Value times as important as B.
type Judgment struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Value float64 `json:"value"`
}

// PairwiseFromJudgments builds a matrix over criteria from named judgments.
// Pairs may be given in either orientation; a pair that is not mentioned
// defaults to 1 (equal importance).
func PairwiseFromJudgments(criteria []Criterion, judgments []Judgment) (PairwiseMatrix, error) {
	index := make(map[string]int, len(criteria))
	for i, c := range criteria {
		index[c.Name] = i
	}
	n := len(criteria)
	upper := make([][]float64, n)
	for i := range upper {
		upper[i] = make([]float64, n)
	}

	for _, jd := range judgments {
		i, ok := index[jd.A]
		if !ok {
			return PairwiseMatrix{}, fmt.Errorf("unknown criterion %q", jd.A)
		}
		j, ok := index[jd.B]
		if !ok {
			return PairwiseMatrix{}, fmt.Errorf("unknown criterion %q", jd.B)
		}
		if i == j {
			return PairwiseMatrix{}, fmt.Errorf("criterion %q compared with itself", jd.A)
		}
		if err := checkIntensity(i, j, jd.Value); err != nil {
			return PairwiseMatrix{}, err
		}
		v := jd.Value
		if i > j {
			i, j = j, i
			v = 1 / v
		}
		if upper[i][j] != 0 {
			return PairwiseMatrix{}, fmt.Errorf("duplicate judgment for %q vs %q", criteria[i].Name, criteria[j].Name)
		}
		upper[i][j] = v
	}

	flat := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := upper[i][j]
			if v == 0 {
				v = 1
			}
			flat = append(flat, v)
		}
	}
	return NewPairwiseMatrix(flat)
}

func (p PairwiseMatrix) N() int { return len(p.m) }

func (p PairwiseMatrix) At(i, j int) float64 { return p.m[i][j] }

// Rows returns a copy of the full matrix.
func (p PairwiseMatrix) Rows() [][]float64 {
	out := make([][]float64, len(p.m))
	for i, row := range p.m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func (p PairwiseMatrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Rows())
}

// DeriveWeights approximates the principal eigenvector of the matrix: each
// column is divided by its sum and the weight of criterion i is the mean of
// normalised row i. No consistency ratio is computed.
func DeriveWeights(p PairwiseMatrix) []float64 {
	n := p.N()
	colSum := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			colSum[j] += p.m[i][j]
		}
	}

	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			sum += p.m[i][j] / colSum[j]
		}
		weights[i] = sum / float64(n)
	}
	return weights
}

func checkIntensity(i, j int, v float64) error {
	if math.IsNaN(v) || v <= 0 || v < MinIntensity-intensityTolerance || v > MaxIntensity+intensityTolerance {
		return &InvalidPairwiseEntryError{Row: i, Col: j, Value: v}
	}
	return nil
}

func onesMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			m[i][j] = 1
		}
	}
	return m
}
