package movement

import (
	"math"
	"sort"
	"time"

	"BreadthPulse/internal/domain/models"
)

// Observation is one instrument's resolved daily change. Callers drop
// instruments without a valid two-point close comparison before handing
// observations to the aggregator.
type Observation struct {
	Symbol    string
	Sector    string
	ChangePct float64
}

// Aggregator turns one day's observations into a market-wide histogram
// and per-sector breadth rows.
type Aggregator struct {
	classifier Classifier
}

// NewAggregator builds an aggregator; a nil classifier selects the
// standard threshold classifier.
func NewAggregator(c Classifier) *Aggregator {
	if c == nil {
		c = ThresholdClassifier{}
	}
	return &Aggregator{classifier: c}
}

// Aggregate is pure: it produces the daily snapshot, one sector row per
// sector with at least one observation, and the per-instrument detail
// records. An empty observation set yields all-zero counts.
func (a *Aggregator) Aggregate(date time.Time, obs []Observation) (models.DailySnapshot, []models.SectorSnapshot, []models.StockChange) {
	day := models.DailySnapshot{Date: date}
	type tally struct{ up, down, neutral int }
	sectors := make(map[string]*tally)
	details := make([]models.StockChange, 0, len(obs))

	for _, o := range obs {
		cat := a.classifier.Categorize(o.ChangePct)
		day.Add(cat)

		if o.Sector != "" {
			t, ok := sectors[o.Sector]
			if !ok {
				t = &tally{}
				sectors[o.Sector] = t
			}
			switch {
			case o.ChangePct >= 3:
				t.up++
			case o.ChangePct <= -3:
				t.down++
			default:
				t.neutral++
			}
		}

		details = append(details, models.StockChange{
			Symbol:    o.Symbol,
			Sector:    o.Sector,
			ChangePct: round2(o.ChangePct),
			Category:  cat,
		})
	}

	rows := make([]models.SectorSnapshot, 0, len(sectors))
	for name, t := range sectors {
		total := t.up + t.down + t.neutral
		if total == 0 {
			continue
		}
		rows = append(rows, models.SectorSnapshot{
			Date:      date,
			Sector:    name,
			Up3Plus:   t.up,
			Down3Plus: t.down,
			Neutral:   t.neutral,
			Total:     total,
			Breadth:   round1(float64(t.up) / float64(total) * 100),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Sector < rows[j].Sector })

	return day, rows, details
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
