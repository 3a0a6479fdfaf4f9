package intelligence

import "testing"

func TestScoreInsufficientHistory(t *testing.T) {
	e := NewScoreEngine()
	if got := e.Score(seriesWithBreadths(60, 60, 60, 60)); got != nil {
		t.Fatalf("4 days should be unavailable, got %+v", got)
	}
}

func TestScoreFiveFlatDays(t *testing.T) {
	e := NewScoreEngine()
	got := e.Score(seriesWithBreadths(60, 60, 60, 60, 60))
	if got == nil {
		t.Fatalf("5 days should be available")
	}
	// flat momentum defaults to 50, volatility defaults to 50 below 10 days:
	// overall = 0.5*60 + 0.3*50 + 0.2*50 = 55
	if got.MomentumScore != 50 {
		t.Fatalf("momentum = %v, want 50", got.MomentumScore)
	}
	if got.VolatilityScore != 50 {
		t.Fatalf("volatility = %v, want 50", got.VolatilityScore)
	}
	if got.Overall != 55 {
		t.Fatalf("overall = %d, want 55", got.Overall)
	}
	if got.Breadth != 60 {
		t.Fatalf("breadth = %v, want 60", got.Breadth)
	}
}

func TestScoreRegimeBull(t *testing.T) {
	e := NewScoreEngine()
	// rising breadth: momentum = 50 + (80-55)/50*100 = 100, breadth 80 > 60
	got := e.Score(seriesWithBreadths(55, 60, 65, 70, 80))
	if got == nil {
		t.Fatalf("unavailable")
	}
	if got.Regime.Name != "BULL MARKET" {
		t.Fatalf("regime = %s, want BULL MARKET", got.Regime.Name)
	}
}

func TestScoreRegimeBear(t *testing.T) {
	e := NewScoreEngine()
	got := e.Score(seriesWithBreadths(45, 40, 35, 30, 25))
	if got == nil {
		t.Fatalf("unavailable")
	}
	if got.Regime.Name != "BEAR MARKET" {
		t.Fatalf("regime = %s, want BEAR MARKET", got.Regime.Name)
	}
}

func TestScoreRegimeHighVolatility(t *testing.T) {
	e := NewScoreEngine()
	// ten whipsawing days: flat 5-day net keeps momentum at 50 while the
	// 10-day sigma crushes the volatility score below 40
	got := e.Score(seriesWithBreadths(10, 90, 10, 90, 10, 50, 90, 10, 90, 50))
	if got == nil {
		t.Fatalf("unavailable")
	}
	if got.VolatilityScore >= 40 {
		t.Fatalf("volatility = %v, want < 40", got.VolatilityScore)
	}
	if got.Regime.Name != "HIGH VOLATILITY" {
		t.Fatalf("regime = %s, want HIGH VOLATILITY", got.Regime.Name)
	}
}

func TestScoreRegimeNeutral(t *testing.T) {
	e := NewScoreEngine()
	got := e.Score(seriesWithBreadths(50, 50, 50, 50, 50))
	if got == nil {
		t.Fatalf("unavailable")
	}
	if got.Regime.Name != "NEUTRAL" {
		t.Fatalf("regime = %s, want NEUTRAL", got.Regime.Name)
	}
}
