package movement

import (
	"testing"

	"BreadthPulse/internal/domain/models"
)

func TestCategorizeBoundaries(t *testing.T) {
	c := ThresholdClassifier{}
	cases := []struct {
		pct  float64
		want models.MovementCategory
	}{
		{15, models.Up15Plus},
		{10, models.Up10To15},
		{5, models.Up5To10},
		{3, models.Up3To5},
		{-3, models.Down3To5},
		{-5, models.Down5To10},
		{-10, models.Down10To15},
		{-15, models.Down15Plus},
	}
	for _, tc := range cases {
		if got := c.Categorize(tc.pct); got != tc.want {
			t.Fatalf("Categorize(%v) = %s, want %s", tc.pct, got, tc.want)
		}
	}
}

func TestCategorizeNeutralIsOpenInterval(t *testing.T) {
	c := ThresholdClassifier{}
	for _, pct := range []float64{0, 2.99, -2.99, 1.5, -1.5} {
		if got := c.Categorize(pct); got != models.Neutral {
			t.Fatalf("Categorize(%v) = %s, want neutral", pct, got)
		}
	}
}

func TestCategorizeInterior(t *testing.T) {
	c := ThresholdClassifier{}
	cases := []struct {
		pct  float64
		want models.MovementCategory
	}{
		{22.4, models.Up15Plus},
		{12.1, models.Up10To15},
		{7.3, models.Up5To10},
		{4.2, models.Up3To5},
		{-4.2, models.Down3To5},
		{-7.3, models.Down5To10},
		{-12.1, models.Down10To15},
		{-22.4, models.Down15Plus},
	}
	for _, tc := range cases {
		if got := c.Categorize(tc.pct); got != tc.want {
			t.Fatalf("Categorize(%v) = %s, want %s", tc.pct, got, tc.want)
		}
	}
}
