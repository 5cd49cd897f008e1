package scoring

import (
	"fmt"
	"math"

	"github.com/MikeSquared-Agency/SupplyRank/internal/store"
)

// DerivedTotals are the per-supplier metrics computed from raw attributes.
type DerivedTotals struct {
	TotalCost                  float64 `json:"total_cost"`
	TotalEmissions             float64 `json:"total_emissions"`
	AdjustedDistanceRoadKm     float64 `json:"adjusted_distance_road_km"`
	AdjustedEmissionFactorProd float64 `json:"adjusted_emission_factor_prod"`
}

// ComputeTotals derives total landed cost (€) and total lifecycle emissions
// (kg CO2) for one supplier.
//
// A reusable unit amortises its production emissions over ReuseCount cycles
// and adds ReuseCount*ReturnKm of road transport. The adjustment applies only
// when the supplier is reusable and both ReuseCount and ReturnKm are positive.
// Inputs are not range checked here.
func ComputeTotals(a store.SupplierAttributes) DerivedTotals {
	totalWeightKg := a.UnitWeightKg * a.QuantityUnits
	totalWeightTonnes := totalWeightKg / 1000

	road := a.DistanceRoadKm
	prodEF := a.EmissionFactorProd
	if a.Reusable && a.ReuseCount > 0 && a.ReturnKm > 0 {
		road += a.ReuseCount * a.ReturnKm
		prodEF /= a.ReuseCount
	}

	cost := a.QuantityUnits*a.PricePerUnit +
		a.DistanceSeaKm*a.DeliveryCostSea +
		road*a.DeliveryCostRoad +
		a.EndOfLifeCostPerKg*totalWeightKg

	emissions := prodEF*a.QuantityUnits +
		a.EmissionFactorSea*totalWeightTonnes*a.DistanceSeaKm +
		a.EmissionFactorRoad*totalWeightTonnes*road +
		a.EmissionFactorAir*totalWeightTonnes*a.DistanceAirKm +
		a.EmissionFactorEOL*a.QuantityUnits

	return DerivedTotals{
		TotalCost:                  cost,
		TotalEmissions:             emissions,
		AdjustedDistanceRoadKm:     road,
		AdjustedEmissionFactorProd: prodEF,
	}
}

// Check reports an ErrNonFinite naming the first total that overflowed.
func (t DerivedTotals) Check() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"total_cost", t.TotalCost},
		{"total_emissions", t.TotalEmissions},
		{"adjusted_distance_road_km", t.AdjustedDistanceRoadKm},
		{"adjusted_emission_factor_prod", t.AdjustedEmissionFactorProd},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s: %w", f.name, ErrNonFinite)
		}
	}
	return nil
}

// NewSupplier normalises the attributes and attaches derived totals. The
// returned record has no ID or timestamp; the store assigns those. Inputs
// whose totals overflow are rejected with ErrNonFinite.
func NewSupplier(a store.SupplierAttributes) (*store.Supplier, error) {
	a = a.Normalize()
	t := ComputeTotals(a)
	if err := t.Check(); err != nil {
		return nil, err
	}
	return &store.Supplier{
		SupplierAttributes:         a,
		TotalCost:                  t.TotalCost,
		TotalEmissions:             t.TotalEmissions,
		AdjustedDistanceRoadKm:     t.AdjustedDistanceRoadKm,
		AdjustedEmissionFactorProd: t.AdjustedEmissionFactorProd,
	}, nil
}
