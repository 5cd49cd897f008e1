package scoring

import (
	"github.com/MikeSquared-Agency/SupplyRank/internal/store"
)

// Alternative identifies one row of a decision matrix.
type Alternative struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// DecisionMatrix holds one row per alternative and one column per criterion.
type DecisionMatrix struct {
	Alternatives []Alternative `json:"alternatives"`
	Rows         [][]float64   `json:"rows"`
}

// DeforestationBenefit reverses a raw risk score so that higher is better:
// 1 (Low) maps to 3, 2 to 2, 3 (High) to 1. Anything else maps to 0.
func DeforestationBenefit(score int) float64 {
	if score < 1 || score > 3 {
		return 0
	}
	return float64(4 - score)
}

// RecyclabilityScore maps the recyclability flag to 1 or 0.
func RecyclabilityScore(recyclable bool) float64 {
	if recyclable {
		return 1
	}
	return 0
}

// BuildDecisionMatrix extracts the SupplierCriteria columns from each record,
// preserving record order.
func BuildDecisionMatrix(suppliers []*store.Supplier) DecisionMatrix {
	dm := DecisionMatrix{
		Alternatives: make([]Alternative, len(suppliers)),
		Rows:         make([][]float64, len(suppliers)),
	}
	for i, s := range suppliers {
		score := s.DeforestationScore
		if s.DeforestationRisk.Valid() {
			score = s.DeforestationRisk.Score()
		}
		dm.Alternatives[i] = Alternative{ID: s.ID.String(), Name: s.Name}
		dm.Rows[i] = []float64{
			s.TotalCost,
			s.TotalEmissions,
			DeforestationBenefit(score),
			RecyclabilityScore(s.Recyclable),
		}
	}
	return dm
}
