package service

import "BreadthPulse/internal/domain/models"

// MarketScorer computes the 0-100 market health score and regime.
// A nil result means the series is shorter than the required history.
type MarketScorer interface {
	Score(series models.BreadthSeries) *models.MarketScore
}

// ContextAnalyzer positions the current breadth against its history.
type ContextAnalyzer interface {
	Context(series models.BreadthSeries) *models.StatContext
}

// BreadthForecaster estimates the next session's breadth.
type BreadthForecaster interface {
	Forecast(series models.BreadthSeries) *models.BreadthForecast
}

// DivergenceDetector flags persistent narrow-breadth conditions.
// A nil result with ok=true means no divergence; ok=false means the
// series is too short to judge.
type DivergenceDetector interface {
	Detect(series models.BreadthSeries) (*models.Divergence, bool)
}

// DetailLookup resolves a sector to its instruments' latest observed
// changes, ranked descending by change. An empty slice is a valid answer
// when no detail table is available.
type DetailLookup interface {
	BySector(sector string) []models.StockChange
}

// SectorSignaler grades each sector into an action recommendation.
// A nil slice means the sector history is too short.
type SectorSignaler interface {
	Signals(series models.SectorSeries, details DetailLookup) []models.SectorSignal
}

// RiskAnalyzer summarizes cross-sectional sector dispersion risk.
type RiskAnalyzer interface {
	Risk(series models.SectorSeries) *models.RiskMetrics
}
