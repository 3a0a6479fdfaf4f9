package intelligence

import (
	"math"
	"testing"
	"time"

	"BreadthPulse/internal/domain/models"
)

func sectorDay(date time.Time, breadths map[string]float64) models.SectorSeries {
	var out models.SectorSeries
	for name, b := range breadths {
		out = append(out, models.SectorSnapshot{Date: date, Sector: name, Total: 10, Breadth: b})
	}
	return out
}

func TestRiskInsufficientHistory(t *testing.T) {
	e := NewRiskEngine()
	series := sectorDay(day0, map[string]float64{"A": 50, "B": 50, "C": 50, "D": 50})
	if got := e.Risk(series); got != nil {
		t.Fatalf("4 rows should be unavailable, got %+v", got)
	}
}

func TestRiskHighDispersion(t *testing.T) {
	e := NewRiskEngine()
	series := sectorDay(day0, map[string]float64{"A": 40, "B": 45})
	series = append(series, sectorDay(day0.AddDate(0, 0, 1), map[string]float64{
		"A": 80, "B": 75, "C": 20, "D": 10,
	})...)

	got := e.Risk(series)
	if got == nil {
		t.Fatalf("unavailable")
	}
	// population std of [80 75 20 10]: mean 46.25, sigma ~31.5
	if math.Abs(got.SectorDispersion-31.5) > 0.1 {
		t.Fatalf("dispersion = %v, want ~31.5", got.SectorDispersion)
	}
	if got.StrongSectors != 2 || got.WeakSectors != 2 {
		t.Fatalf("strong/weak = %d/%d, want 2/2", got.StrongSectors, got.WeakSectors)
	}
	// weak == strong is not weak > strong; the dispersion threshold decides
	if got.Level != "HIGH" {
		t.Fatalf("level = %s, want HIGH", got.Level)
	}
}

func TestRiskOnlyLatestDayCounts(t *testing.T) {
	e := NewRiskEngine()
	series := sectorDay(day0, map[string]float64{"A": 5, "B": 95, "C": 5, "D": 95})
	series = append(series, sectorDay(day0.AddDate(0, 0, 1), map[string]float64{
		"A": 50, "B": 52, "C": 48, "D": 50,
	})...)

	got := e.Risk(series)
	if got == nil {
		t.Fatalf("unavailable")
	}
	if got.Level != "LOW" {
		t.Fatalf("level = %s, want LOW from the latest tight day", got.Level)
	}
	if got.Recommendation == "" {
		t.Fatalf("recommendation must be populated")
	}
}

func TestRiskWeakMajority(t *testing.T) {
	e := NewRiskEngine()
	series := sectorDay(day0, map[string]float64{"A": 50})
	series = append(series, sectorDay(day0.AddDate(0, 0, 1), map[string]float64{
		"A": 70, "B": 30, "C": 32, "D": 34, "E": 60,
	})...)

	got := e.Risk(series)
	if got == nil {
		t.Fatalf("unavailable")
	}
	if got.WeakSectors != 3 || got.StrongSectors != 1 {
		t.Fatalf("strong/weak = %d/%d", got.StrongSectors, got.WeakSectors)
	}
	if got.Level != "HIGH" {
		t.Fatalf("level = %s, want HIGH when weak sectors outnumber strong", got.Level)
	}
}
