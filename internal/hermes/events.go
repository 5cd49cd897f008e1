package hermes

import "time"

type SupplierCreatedEvent struct {
	SupplierID     string    `json:"supplier_id"`
	Name           string    `json:"name"`
	TotalCost      float64   `json:"total_cost"`
	TotalEmissions float64   `json:"total_emissions"`
	CreatedAt      time.Time `json:"created_at"`
}

type RankedSupplier struct {
	SupplierID string  `json:"supplier_id"`
	Name       string  `json:"name"`
	Rank       int     `json:"rank"`
	Closeness  float64 `json:"closeness"`
}

type RankingComputedEvent struct {
	Suppliers int              `json:"suppliers"`
	Weights   []float64        `json:"weights"`
	Top       []RankedSupplier `json:"top"`
	Timestamp time.Time        `json:"timestamp"`
}
