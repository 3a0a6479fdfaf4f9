package breadth

import (
	"math"
	"testing"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestStdIsPopulation(t *testing.T) {
	// population std of [2,4,4,4,5,5,7,9] is exactly 2
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := Std(xs); !almost(got, 2) {
		t.Fatalf("std = %v, want 2", got)
	}
	if got := Std(nil); got != 0 {
		t.Fatalf("std of empty = %v, want 0", got)
	}
	if got := Std([]float64{7}); got != 0 {
		t.Fatalf("std of single = %v, want 0", got)
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{1, 2, 3, 4}); !almost(got, 2.5) {
		t.Fatalf("mean = %v, want 2.5", got)
	}
	if got := Mean(nil); got != 0 {
		t.Fatalf("mean of empty = %v, want 0", got)
	}
}

func TestDiffs(t *testing.T) {
	got := Diffs([]float64{1, 4, 2, 2})
	want := []float64{3, -2, 0}
	if len(got) != len(want) {
		t.Fatalf("diffs len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !almost(got[i], want[i]) {
			t.Fatalf("diffs[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if Diffs([]float64{1}) != nil {
		t.Fatalf("diffs of single value should be nil")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(120, 0, 100); got != 100 {
		t.Fatalf("clamp high = %v", got)
	}
	if got := Clamp(-3, 0, 100); got != 0 {
		t.Fatalf("clamp low = %v", got)
	}
	if got := Clamp(42, 0, 100); got != 42 {
		t.Fatalf("clamp mid = %v", got)
	}
}

func TestPercentileOfIsInclusive(t *testing.T) {
	xs := []float64{10, 20, 30, 40, 50}
	if got := PercentileOf(xs, 30); !almost(got, 60) {
		t.Fatalf("percentile = %v, want 60", got)
	}
	if got := PercentileOf(xs, 50); !almost(got, 100) {
		t.Fatalf("percentile = %v, want 100", got)
	}
	if got := PercentileOf(xs, 5); !almost(got, 0) {
		t.Fatalf("percentile = %v, want 0", got)
	}
}

func TestTail(t *testing.T) {
	xs := []float64{1, 2, 3}
	if got := Tail(xs, 2); len(got) != 2 || got[0] != 2 {
		t.Fatalf("tail = %v", got)
	}
	if got := Tail(xs, 9); len(got) != 3 {
		t.Fatalf("tail over len = %v", got)
	}
}

func TestRound(t *testing.T) {
	if got := Round(3.14159, 2); !almost(got, 3.14) {
		t.Fatalf("round = %v", got)
	}
	if got := Round(2.5, 0); !almost(got, 3) {
		t.Fatalf("round half = %v", got)
	}
}
