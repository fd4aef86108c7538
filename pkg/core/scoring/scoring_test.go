package scoring

import (
	"math"
	"testing"
)

func TestEfficiencyScore(t *testing.T) {
	// expense_ratio 0.47, margin 0.083, rpe at 105% of peer median.
	// a = 0.53, b = 0.083, c = min(1, 1.05) = 1
	// raw = 0.4*0.53 + 0.4*0.083 + 0.2*1 = 0.212 + 0.0332 + 0.2 = 0.4452
	got := Efficiency(0.47, 0.083, 105000, 100000)
	if math.Abs(got-44.5) > 0.05 {
		t.Errorf("expected ≈44.5, got %f", got)
	}
}

func TestEfficiencyClamp(t *testing.T) {
	// Adversarial extremes: rpe 100x peer median, negative expense
	// ratio, margin over 1. Score stays within [0,100].
	got := Efficiency(-5, 12, 10_000_000, 100_000)
	if got < 0 || got > 100 {
		t.Fatalf("score escaped [0,100]: %f", got)
	}
	if got != 100 {
		t.Errorf("saturated inputs should pin at 100, got %f", got)
	}

	got = Efficiency(2, -1, 0, 100_000)
	if got != 0 {
		t.Errorf("floor inputs should pin at 0, got %f", got)
	}
}

func TestGrowthOpportunityIndex(t *testing.T) {
	// Original demo features: market 500k, peer success 0.6,
	// capital 50k, roi 0.25.
	// market = 0.5, capital_score = 1/(1+0.5) = 0.6667
	// raw = 0.35*0.5 + 0.25*0.6 + 0.15*0.6667 + 0.25*0.25
	//     = 0.175 + 0.15 + 0.1 + 0.0625 = 0.4875
	got := GrowthOpportunity(GrowthFeatures{
		MarketSize:      500_000,
		PeerSuccess:     0.6,
		RequiredCapital: 50_000,
		EstROI:          0.25,
	})
	if math.Abs(got-48.8) > 0.05 {
		t.Errorf("expected ≈48.8, got %f", got)
	}
}

func TestGrowthOpportunityClamp(t *testing.T) {
	got := GrowthOpportunity(GrowthFeatures{
		MarketSize:      1e12,
		PeerSuccess:     50,
		RequiredCapital: 0,
		EstROI:          99,
	})
	if got < 0 || got > 100 {
		t.Fatalf("score escaped [0,100]: %f", got)
	}
}

func TestHealthComposite(t *testing.T) {
	// 0.4*0.8 + 0.25*0.7 + 0.2*0.8 + 0.15*(1-0.2)
	// = 0.32 + 0.175 + 0.16 + 0.12 = 0.775
	got := HealthComposite(0.8, 0.7, 0.8, 0.2)
	if math.Abs(got-77.5) > 0.05 {
		t.Errorf("expected 77.5, got %f", got)
	}

	// Extreme inputs clamp.
	if got := HealthComposite(10, 10, 10, -10); got != 100 {
		t.Errorf("expected 100, got %f", got)
	}
	if got := HealthComposite(-1, -1, -1, 2); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
}

func TestMapStateThresholds(t *testing.T) {
	cases := []struct {
		metric string
		value  float64
		want   State
	}{
		{"efficiency", 75, StateGood},
		{"efficiency", 65, StateCaution},
		{"efficiency", 59, StateBad},
		{"growth_index", 85, StateGood},
		{"growth_index", 70, StateCaution},
		{"growth_index", 30, StateBad},
		{"ar_days", 30, StateGood},
		{"ar_days", 38, StateCaution},
		{"ar_days", 45, StateBad},
		{"composite", 0.8, StateGood},
		{"composite", 0.5, StateStable},
		{"composite", 0.1, StateCaution},
	}
	for _, c := range cases {
		if got := MapState(c.metric, c.value); got != c.want {
			t.Errorf("MapState(%s, %v) = %s, want %s", c.metric, c.value, got, c.want)
		}
	}
}
