package intelligence

import "testing"

func TestDivergenceInsufficientHistory(t *testing.T) {
	e := NewDivergenceEngine()
	if _, ok := e.Detect(seriesWithBreadths(45, 46)); ok {
		t.Fatalf("2 days should be unavailable")
	}
}

func TestDivergenceBearish(t *testing.T) {
	e := NewDivergenceEngine()
	got, ok := e.Detect(seriesWithBreadths(45, 46, 44))
	if !ok || got == nil {
		t.Fatalf("expected a divergence")
	}
	if got.Type != "BEARISH DIVERGENCE" || got.Severity != "HIGH" {
		t.Fatalf("got %s/%s, want BEARISH DIVERGENCE/HIGH", got.Type, got.Severity)
	}
}

func TestDivergenceNarrowBreadth(t *testing.T) {
	e := NewDivergenceEngine()
	got, ok := e.Detect(seriesWithBreadths(49, 50, 51))
	if !ok || got == nil {
		t.Fatalf("expected a divergence")
	}
	if got.Type != "NARROW BREADTH" || got.Severity != "MEDIUM" {
		t.Fatalf("got %s/%s, want NARROW BREADTH/MEDIUM", got.Type, got.Severity)
	}
}

func TestDivergenceNone(t *testing.T) {
	e := NewDivergenceEngine()
	got, ok := e.Detect(seriesWithBreadths(49, 60, 51))
	if !ok {
		t.Fatalf("3 days should be enough history")
	}
	if got != nil {
		t.Fatalf("expected no divergence, got %+v", got)
	}
}

func TestDivergenceBoundariesExcluded(t *testing.T) {
	e := NewDivergenceEngine()
	// 48 exactly is outside both the bearish (<48) and narrow (48,52) bands
	got, ok := e.Detect(seriesWithBreadths(48, 49, 50))
	if !ok {
		t.Fatalf("enough history")
	}
	if got != nil {
		t.Fatalf("boundary 48 must not trigger, got %+v", got)
	}
	// only the last three days count
	got, _ = e.Detect(seriesWithBreadths(45, 44, 49, 50, 51))
	if got == nil || got.Type != "NARROW BREADTH" {
		t.Fatalf("trailing window should decide, got %+v", got)
	}
}
