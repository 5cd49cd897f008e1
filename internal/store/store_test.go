package store

import (
	"testing"
)

func TestDeforestationRiskScore(t *testing.T) {
	tests := []struct {
		risk DeforestationRisk
		want int
	}{
		{RiskLow, 1},
		{RiskMedium, 2},
		{RiskHigh, 3},
		{"Unknown", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := tt.risk.Score(); got != tt.want {
			t.Errorf("%q: expected %d, got %d", tt.risk, tt.want, got)
		}
	}
	if DeforestationRisk("low").Valid() {
		t.Error("risk categories are case sensitive")
	}
}

func TestNormalizeClearsReuseWhenNotReusable(t *testing.T) {
	a := SupplierAttributes{
		Reusable:          false,
		ReuseCount:        4,
		ReturnKm:          25,
		DeforestationRisk: RiskMedium,
	}
	n := a.Normalize()
	if n.ReuseCount != 0 || n.ReturnKm != 0 {
		t.Errorf("expected reuse inputs cleared, got count=%f km=%f", n.ReuseCount, n.ReturnKm)
	}
	if n.DeforestationScore != 2 {
		t.Errorf("expected score 2 from Medium, got %d", n.DeforestationScore)
	}
	if a.ReuseCount != 4 {
		t.Error("Normalize must not modify the receiver")
	}
}

func TestNormalizeKeepsReuseWhenReusable(t *testing.T) {
	a := SupplierAttributes{Reusable: true, ReuseCount: 3, ReturnKm: 10, DeforestationRisk: RiskHigh, DeforestationScore: 3}
	n := a.Normalize()
	if n.ReuseCount != 3 || n.ReturnKm != 10 {
		t.Errorf("expected reuse inputs kept, got count=%f km=%f", n.ReuseCount, n.ReturnKm)
	}
}
