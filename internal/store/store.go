package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type DeforestationRisk string

const (
	RiskLow    DeforestationRisk = "Low"
	RiskMedium DeforestationRisk = "Medium"
	RiskHigh   DeforestationRisk = "High"
)

// Score returns the raw risk score: 1 for Low, 2 for Medium, 3 for High.
// Unknown categories score 0.
func (r DeforestationRisk) Score() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	}
	return 0
}

func (r DeforestationRisk) Valid() bool {
	return r.Score() != 0
}

// SupplierAttributes is the raw input collected for one supplier. The
// validate tags are the range checks applied to the supplier form.
type SupplierAttributes struct {
	Name            string `json:"name" validate:"required"`
	LocationCity    string `json:"location_city"`
	LocationCountry string `json:"location_country"`

	// Cost
	QuantityUnits      float64 `json:"quantity_units" validate:"gte=0"`
	PricePerUnit       float64 `json:"price_per_unit" validate:"gte=0"`
	UnitWeightKg       float64 `json:"unit_weight_kg" validate:"gte=0"`
	DeliveryCostSea    float64 `json:"delivery_cost_sea" validate:"gte=0"`
	DeliveryCostRoad   float64 `json:"delivery_cost_road" validate:"gte=0"`
	EndOfLifeCostPerKg float64 `json:"end_of_life_cost_per_kg" validate:"gte=0"`

	// Distances
	DistanceSeaKm  float64 `json:"distance_sea_km" validate:"gte=0"`
	DistanceRoadKm float64 `json:"distance_road_km" validate:"gte=0"`
	DistanceAirKm  float64 `json:"distance_air_km" validate:"gte=0"`

	// Emission factors
	EmissionFactorProd float64 `json:"emission_factor_prod" validate:"gte=0"`
	EmissionFactorSea  float64 `json:"emission_factor_sea" validate:"gte=0"`
	EmissionFactorRoad float64 `json:"emission_factor_road" validate:"gte=0"`
	EmissionFactorAir  float64 `json:"emission_factor_air" validate:"gte=0"`
	EmissionFactorEOL  float64 `json:"emission_factor_eol" validate:"gte=0"`

	DeforestationRisk  DeforestationRisk `json:"deforestation_risk" validate:"required,oneof=Low Medium High"`
	DeforestationScore int               `json:"deforestation_score" validate:"omitempty,min=1,max=3"`

	// Circularity
	Reusable          bool    `json:"reusable"`
	ReuseCount        float64 `json:"reuse_count" validate:"gte=0"`
	ReturnKm          float64 `json:"return_km" validate:"gte=0"`
	Recyclable        bool    `json:"recyclability"`
	RecycledMaterials bool    `json:"recycled_materials"`
}

// Normalize zeroes reuse inputs for non-reusable suppliers and fills the
// deforestation score from the risk category.
func (a SupplierAttributes) Normalize() SupplierAttributes {
	if !a.Reusable {
		a.ReuseCount = 0
		a.ReturnKm = 0
	}
	if a.DeforestationScore == 0 {
		a.DeforestationScore = a.DeforestationRisk.Score()
	}
	return a
}

// Supplier is a persisted supplier record: the attributes plus derived totals.
type Supplier struct {
	ID uuid.UUID `json:"id"`
	SupplierAttributes

	TotalCost                  float64 `json:"total_cost"`
	TotalEmissions             float64 `json:"total_emissions"`
	AdjustedDistanceRoadKm     float64 `json:"adjusted_distance_road_km"`
	AdjustedEmissionFactorProd float64 `json:"adjusted_emission_factor_prod"`

	CreatedAt time.Time `json:"created_at"`
}

// Store persists supplier records. GetSupplier returns nil, nil when the id is
// unknown. ListSuppliers returns newest first, later inserts first on equal
// timestamps.
type Store interface {
	CreateSupplier(ctx context.Context, s *Supplier) error
	GetSupplier(ctx context.Context, id uuid.UUID) (*Supplier, error)
	ListSuppliers(ctx context.Context) ([]*Supplier, error)
	Close() error
}
