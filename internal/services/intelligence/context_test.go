package intelligence

import "testing"

func TestContextInsufficientHistory(t *testing.T) {
	e := NewContextEngine()
	breadths := make([]int, 29)
	for i := range breadths {
		breadths[i] = 50
	}
	if got := e.Context(seriesWithBreadths(breadths...)); got != nil {
		t.Fatalf("29 days should be unavailable, got %+v", got)
	}
}

func TestContextConstantSeries(t *testing.T) {
	e := NewContextEngine()
	breadths := make([]int, 30)
	for i := range breadths {
		breadths[i] = 50
	}
	got := e.Context(seriesWithBreadths(breadths...))
	if got == nil {
		t.Fatalf("30 days should be available")
	}
	if got.Std != 0 {
		t.Fatalf("std = %v, want 0", got.Std)
	}
	if got.ZScore != 0 {
		t.Fatalf("z = %v, want 0 when std is 0", got.ZScore)
	}
	if got.Interpretation != "Normal range" {
		t.Fatalf("interpretation = %q", got.Interpretation)
	}
	if got.Percentile != 100 {
		t.Fatalf("percentile = %v, want 100 (inclusive rank)", got.Percentile)
	}
}

func TestContextBullishOutlier(t *testing.T) {
	e := NewContextEngine()
	breadths := make([]int, 30)
	for i := range breadths {
		breadths[i] = 50
	}
	breadths[14] = 40 // give the history some spread
	breadths[29] = 75 // current day well above the mean
	got := e.Context(seriesWithBreadths(breadths...))
	if got == nil {
		t.Fatalf("unavailable")
	}
	if got.ZScore <= 2 {
		t.Fatalf("z = %v, want > 2", got.ZScore)
	}
	if got.Interpretation != "Extremely bullish (top 5%)" {
		t.Fatalf("interpretation = %q", got.Interpretation)
	}
}
