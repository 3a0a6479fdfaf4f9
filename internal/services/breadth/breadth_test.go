package breadth

import (
	"math"
	"testing"
	"time"

	"BreadthPulse/internal/domain/models"
)

func snap(up, down int) models.DailySnapshot {
	return models.DailySnapshot{
		Date:     time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Up3To5:   up,
		Down3To5: down,
	}
}

func TestGainersLosers(t *testing.T) {
	s := models.DailySnapshot{
		Up3To5: 1, Up5To10: 2, Up10To15: 3, Up15Plus: 4,
		Down3To5: 5, Down5To10: 6, Down10To15: 7, Down15Plus: 8,
		Neutral: 100,
	}
	if Gainers(s) != 10 {
		t.Fatalf("gainers = %d, want 10", Gainers(s))
	}
	if Losers(s) != 26 {
		t.Fatalf("losers = %d, want 26", Losers(s))
	}
	if Movers(s) != 36 {
		t.Fatalf("movers = %d, want 36", Movers(s))
	}
}

func TestPctZeroMoversDefaultsTo50(t *testing.T) {
	s := models.DailySnapshot{Neutral: 500}
	if got := Pct(s); got != 50 {
		t.Fatalf("breadth = %v, want 50 exactly", got)
	}
}

func TestPct(t *testing.T) {
	if got := Pct(snap(60, 40)); got != 60 {
		t.Fatalf("breadth = %v, want 60", got)
	}
	if got := Pct(snap(1, 3)); got != 25 {
		t.Fatalf("breadth = %v, want 25", got)
	}
}

func TestSeries(t *testing.T) {
	days := models.BreadthSeries{snap(60, 40), snap(0, 0), snap(30, 70)}
	got := Series(days)
	want := []float64{60, 50, 30}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("series[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
