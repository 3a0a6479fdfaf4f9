package intelligence

import (
	"math"

	"BreadthPulse/internal/domain/models"
	domsvc "BreadthPulse/internal/domain/service"
	"BreadthPulse/internal/services/breadth"
)

// Forecast model coefficients. A fixed linear heuristic, not a fitted
// model; kept exactly for parity with the historical output.
const (
	forecastWCurrent   = 0.4
	forecastWMomentum  = 0.3
	forecastWReversion = 0.2 // applied to the neutral 50 level
	forecastWTrend     = 5.0
)

// ForecastEngine produces a next-session breadth point estimate with a
// confidence interval from the last 10 days of breadth dynamics.
type ForecastEngine struct{}

func NewForecastEngine() *ForecastEngine { return &ForecastEngine{} }

// Forecast requires at least 10 snapshots and returns nil otherwise.
func (ForecastEngine) Forecast(series models.BreadthSeries) *models.BreadthForecast {
	if len(series) < 10 {
		return nil
	}

	breadths := breadth.Series(series.Tail(10))
	current := breadths[len(breadths)-1]
	last5 := breadth.Tail(breadths, 5)
	momentum5d := breadth.Mean(last5)
	trend := breadth.Mean(breadth.Diffs(last5))
	volatility := breadth.Std(breadths)

	prediction := current*forecastWCurrent +
		momentum5d*forecastWMomentum +
		50*forecastWReversion +
		trend*forecastWTrend
	prediction = breadth.Clamp(prediction, 20, 80)
	confidence := math.Max(50, 100-volatility*3)

	label := "Flat"
	if trend > 0 {
		label = "Rising"
	} else if trend < 0 {
		label = "Falling"
	}

	return &models.BreadthForecast{
		Prediction: breadth.Round(prediction, 1),
		RangeLow:   breadth.Round(prediction-volatility*1.5, 1),
		RangeHigh:  breadth.Round(prediction+volatility*1.5, 1),
		Confidence: math.Round(confidence),
		Trend:      label,
	}
}

var _ domsvc.BreadthForecaster = (*ForecastEngine)(nil)
