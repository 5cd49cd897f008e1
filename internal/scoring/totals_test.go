package scoring

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/SupplyRank/internal/store"
)

func baseAttributes() store.SupplierAttributes {
	return store.SupplierAttributes{
		Name:               "Base",
		QuantityUnits:      100,
		PricePerUnit:       2,
		UnitWeightKg:       0.5,
		DistanceSeaKm:      1000,
		DistanceRoadKm:     200,
		DistanceAirKm:      400,
		DeliveryCostSea:    0.1,
		DeliveryCostRoad:   0.5,
		EndOfLifeCostPerKg: 0.2,
		EmissionFactorProd: 1.5,
		EmissionFactorSea:  0.01,
		EmissionFactorRoad: 0.1,
		EmissionFactorAir:  0.5,
		EmissionFactorEOL:  0.2,
		DeforestationRisk:  store.RiskLow,
	}
}

func approxEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestComputeTotalsNoReuse(t *testing.T) {
	got := ComputeTotals(baseAttributes())
	if !approxEqual(got.TotalCost, 410) {
		t.Errorf("total cost: expected 410, got %f", got.TotalCost)
	}
	if !approxEqual(got.TotalEmissions, 181.5) {
		t.Errorf("total emissions: expected 181.5, got %f", got.TotalEmissions)
	}
	if got.AdjustedDistanceRoadKm != 200 {
		t.Errorf("road distance must pass through, got %f", got.AdjustedDistanceRoadKm)
	}
	if got.AdjustedEmissionFactorProd != 1.5 {
		t.Errorf("production EF must pass through, got %f", got.AdjustedEmissionFactorProd)
	}
}

func TestComputeTotalsReuseFlagOffIgnoresReuseInputs(t *testing.T) {
	a := baseAttributes()
	a.Reusable = false
	a.ReuseCount = 5
	a.ReturnKm = 40
	got := ComputeTotals(a)
	if got.AdjustedDistanceRoadKm != a.DistanceRoadKm {
		t.Errorf("expected road %f, got %f", a.DistanceRoadKm, got.AdjustedDistanceRoadKm)
	}
	if got.AdjustedEmissionFactorProd != a.EmissionFactorProd {
		t.Errorf("expected production EF %f, got %f", a.EmissionFactorProd, got.AdjustedEmissionFactorProd)
	}
}

func TestComputeTotalsReuse(t *testing.T) {
	a := baseAttributes()
	a.Reusable = true
	a.ReuseCount = 3
	a.ReturnKm = 10
	got := ComputeTotals(a)

	if got.AdjustedDistanceRoadKm != a.DistanceRoadKm+30 {
		t.Errorf("expected road %f, got %f", a.DistanceRoadKm+30, got.AdjustedDistanceRoadKm)
	}
	if got.AdjustedEmissionFactorProd != a.EmissionFactorProd/3 {
		t.Errorf("expected production EF %f, got %f", a.EmissionFactorProd/3, got.AdjustedEmissionFactorProd)
	}
	if !approxEqual(got.TotalCost, 425) {
		t.Errorf("total cost: expected 425, got %f", got.TotalCost)
	}
	if !approxEqual(got.TotalEmissions, 81.65) {
		t.Errorf("total emissions: expected 81.65, got %f", got.TotalEmissions)
	}
}

func TestComputeTotalsReuseGuards(t *testing.T) {
	tests := []struct {
		name     string
		count    float64
		returnKm float64
	}{
		{"zero reuse count", 0, 10},
		{"zero return distance", 3, 0},
		{"both zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := baseAttributes()
			a.Reusable = true
			a.ReuseCount = tt.count
			a.ReturnKm = tt.returnKm
			got := ComputeTotals(a)
			if math.IsNaN(got.AdjustedEmissionFactorProd) || math.IsInf(got.AdjustedEmissionFactorProd, 0) {
				t.Fatalf("production EF not finite: %f", got.AdjustedEmissionFactorProd)
			}
			if got.AdjustedEmissionFactorProd != a.EmissionFactorProd {
				t.Errorf("expected unadjusted EF %f, got %f", a.EmissionFactorProd, got.AdjustedEmissionFactorProd)
			}
			if got.AdjustedDistanceRoadKm != a.DistanceRoadKm {
				t.Errorf("expected unadjusted road %f, got %f", a.DistanceRoadKm, got.AdjustedDistanceRoadKm)
			}
		})
	}
}

func TestComputeTotalsZeroQuantity(t *testing.T) {
	a := baseAttributes()
	a.QuantityUnits = 0
	got := ComputeTotals(a)
	// Only the distance-based delivery terms remain.
	if !approxEqual(got.TotalCost, 1000*0.1+200*0.5) {
		t.Errorf("expected delivery-only cost 200, got %f", got.TotalCost)
	}
	if got.TotalEmissions != 0 {
		t.Errorf("expected zero emissions, got %f", got.TotalEmissions)
	}
}

func TestNewSupplierNormalizes(t *testing.T) {
	a := baseAttributes()
	a.Reusable = false
	a.ReuseCount = 3
	a.ReturnKm = 10
	a.DeforestationRisk = store.RiskHigh

	s, err := NewSupplier(a)
	if err != nil {
		t.Fatalf("NewSupplier failed: %v", err)
	}
	if s.ReuseCount != 0 || s.ReturnKm != 0 {
		t.Errorf("expected reuse inputs cleared, got %f / %f", s.ReuseCount, s.ReturnKm)
	}
	if s.DeforestationScore != 3 {
		t.Errorf("expected deforestation score 3, got %d", s.DeforestationScore)
	}
	if !approxEqual(s.TotalCost, 410) {
		t.Errorf("expected total cost 410, got %f", s.TotalCost)
	}
	if s.AdjustedDistanceRoadKm != 200 {
		t.Errorf("expected adjusted road 200, got %f", s.AdjustedDistanceRoadKm)
	}
}

func TestNewSupplierRejectsOverflow(t *testing.T) {
	a := baseAttributes()
	a.QuantityUnits = 1e200
	a.PricePerUnit = 1e200

	if _, err := NewSupplier(a); !errors.Is(err, ErrNonFinite) {
		t.Fatalf("expected ErrNonFinite, got %v", err)
	}
	if err := ComputeTotals(a.Normalize()).Check(); err == nil || !strings.Contains(err.Error(), "total_cost") {
		t.Errorf("expected total_cost to be named, got %v", err)
	}
	if err := ComputeTotals(baseAttributes()).Check(); err != nil {
		t.Errorf("expected finite totals, got %v", err)
	}
}
