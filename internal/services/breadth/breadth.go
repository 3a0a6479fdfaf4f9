package breadth

import "BreadthPulse/internal/domain/models"

// NeutralDefault is the breadth value used whenever a day has no movers.
// It is a deliberate numeric default, not a missing value: every
// downstream score composes additively assuming it.
const NeutralDefault = 50.0

// Gainers counts instruments that moved up at least 3%.
func Gainers(s models.DailySnapshot) int {
	return s.Up3To5 + s.Up5To10 + s.Up10To15 + s.Up15Plus
}

// Losers counts instruments that moved down at least 3%.
func Losers(s models.DailySnapshot) int {
	return s.Down3To5 + s.Down5To10 + s.Down10To15 + s.Down15Plus
}

// Movers counts all instruments with |change| >= 3%.
func Movers(s models.DailySnapshot) int { return Gainers(s) + Losers(s) }

// Pct is the percentage of movers that are gainers, or NeutralDefault
// when the day has no movers at all.
func Pct(s models.DailySnapshot) float64 {
	movers := Movers(s)
	if movers == 0 {
		return NeutralDefault
	}
	return float64(Gainers(s)) / float64(movers) * 100
}

// Series extracts per-day breadth percentages, oldest first.
func Series(days models.BreadthSeries) []float64 {
	out := make([]float64, len(days))
	for i, d := range days {
		out[i] = Pct(d)
	}
	return out
}
