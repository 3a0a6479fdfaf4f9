package intelligence

import (
	"math"

	"BreadthPulse/internal/domain/models"
	domsvc "BreadthPulse/internal/domain/service"
	"BreadthPulse/internal/services/breadth"
)

// Score weights. Fixed heuristics kept for compatibility with the
// historical scoring; candidates for recalibration, not tuned values.
const (
	weightBreadth    = 0.5
	weightMomentum   = 0.3
	weightVolatility = 0.2
)

// ScoreEngine combines current breadth, 5-day momentum and 10-day
// stability into a single 0-100 health score and a regime label.
type ScoreEngine struct{}

func NewScoreEngine() *ScoreEngine { return &ScoreEngine{} }

// Score requires at least 5 snapshots and returns nil otherwise.
func (ScoreEngine) Score(series models.BreadthSeries) *models.MarketScore {
	if len(series) < 5 {
		return nil
	}

	latest, _ := series.Last()
	b := breadth.Pct(latest)

	// 5-day momentum: shift the breadth delta into a 0-100 band around 50.
	recent := breadth.Series(series.Tail(5))
	raw := (recent[len(recent)-1] - recent[0]) / 50 * 100
	momentum := breadth.Clamp(50+raw, 0, 100)

	// 10-day stability: low breadth volatility scores high.
	volatility := 50.0
	if len(series) >= 10 {
		sigma := breadth.Std(breadth.Series(series.Tail(10)))
		volatility = breadth.Clamp(100-2*sigma, 0, 100)
	}

	overall := b*weightBreadth + momentum*weightMomentum + volatility*weightVolatility

	return &models.MarketScore{
		Overall:         int(math.Round(overall)),
		Breadth:         breadth.Round(b, 1),
		BreadthScore:    int(math.Round(b)),
		MomentumScore:   math.Round(momentum),
		VolatilityScore: math.Round(volatility),
		Regime:          determineRegime(b, momentum, volatility),
	}
}

// determineRegime evaluates the regime ladder in order, first match wins.
func determineRegime(b, momentum, volatility float64) models.Regime {
	switch {
	case b > 60 && momentum > 55:
		return models.Regime{Name: "BULL MARKET", Description: "Strong uptrend, favorable conditions"}
	case b < 40 && momentum < 45:
		return models.Regime{Name: "BEAR MARKET", Description: "Downtrend, defensive positioning advised"}
	case volatility < 40:
		return models.Regime{Name: "HIGH VOLATILITY", Description: "Choppy market, trade carefully"}
	default:
		return models.Regime{Name: "NEUTRAL", Description: "Range-bound, wait for direction"}
	}
}

var _ domsvc.MarketScorer = (*ScoreEngine)(nil)
