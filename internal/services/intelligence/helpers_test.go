package intelligence

import (
	"time"

	"BreadthPulse/internal/domain/models"
)

var day0 = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

// seriesWithBreadths builds a daily series whose per-day breadth equals
// the given integer percentages: b gainers against 100-b losers.
func seriesWithBreadths(breadths ...int) models.BreadthSeries {
	out := make(models.BreadthSeries, 0, len(breadths))
	for i, b := range breadths {
		out = append(out, models.DailySnapshot{
			Date:     day0.AddDate(0, 0, i),
			Up3To5:   b,
			Down3To5: 100 - b,
		})
	}
	return out
}

// sectorHistory builds one sector's rows, one per day, with the given
// breadth values.
func sectorHistory(sector string, breadths ...float64) models.SectorSeries {
	out := make(models.SectorSeries, 0, len(breadths))
	for i, b := range breadths {
		out = append(out, models.SectorSnapshot{
			Date:    day0.AddDate(0, 0, i),
			Sector:  sector,
			Total:   10,
			Breadth: b,
		})
	}
	return out
}

type staticLookup map[string][]models.StockChange

func (l staticLookup) BySector(sector string) []models.StockChange { return l[sector] }
