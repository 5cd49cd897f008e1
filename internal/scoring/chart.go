package scoring

import "github.com/MikeSquared-Agency/SupplyRank/internal/store"

// BubblePoint is one supplier on the cost vs emissions chart.
type BubblePoint struct {
	Name              string                  `json:"name"`
	X                 float64                 `json:"x"`
	Y                 float64                 `json:"y"`
	DeforestationRisk store.DeforestationRisk `json:"deforestation_risk"`
	Color             string                  `json:"color"`
}

var riskColors = map[store.DeforestationRisk]string{
	store.RiskHigh:   "red",
	store.RiskMedium: "orange",
	store.RiskLow:    "green",
}

// BubblePoints plots total emissions (x) against total cost (y), coloured by
// deforestation risk. Unknown risk categories are grey.
func BubblePoints(suppliers []*store.Supplier) []BubblePoint {
	out := make([]BubblePoint, 0, len(suppliers))
	for _, s := range suppliers {
		color, ok := riskColors[s.DeforestationRisk]
		if !ok {
			color = "gray"
		}
		out = append(out, BubblePoint{
			Name:              s.Name,
			X:                 s.TotalEmissions,
			Y:                 s.TotalCost,
			DeforestationRisk: s.DeforestationRisk,
			Color:             color,
		})
	}
	return out
}
