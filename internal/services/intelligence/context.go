package intelligence

import (
	"BreadthPulse/internal/domain/models"
	domsvc "BreadthPulse/internal/domain/service"
	"BreadthPulse/internal/services/breadth"
)

// ContextEngine positions the current breadth against its full history.
type ContextEngine struct{}

func NewContextEngine() *ContextEngine { return &ContextEngine{} }

// Context requires at least 30 snapshots and returns nil otherwise.
func (ContextEngine) Context(series models.BreadthSeries) *models.StatContext {
	if len(series) < 30 {
		return nil
	}

	latest, _ := series.Last()
	current := breadth.Pct(latest)
	history := breadth.Series(series)

	mean := breadth.Mean(history)
	std := breadth.Std(history)
	z := 0.0
	if std > 0 {
		z = (current - mean) / std
	}

	return &models.StatContext{
		Current:        breadth.Round(current, 1),
		Mean:           breadth.Round(mean, 1),
		Std:            breadth.Round(std, 1),
		Percentile:     breadth.Round(breadth.PercentileOf(history, current), 0),
		ZScore:         breadth.Round(z, 2),
		Interpretation: interpretZ(z),
	}
}

func interpretZ(z float64) string {
	switch {
	case z > 2:
		return "Extremely bullish (top 5%)"
	case z > 1:
		return "Bullish (top 16%)"
	case z < -2:
		return "Extremely bearish (bottom 5%)"
	case z < -1:
		return "Bearish (bottom 16%)"
	default:
		return "Normal range"
	}
}

var _ domsvc.ContextAnalyzer = (*ContextEngine)(nil)
