package intelligence

import (
	"BreadthPulse/internal/domain/models"
	domsvc "BreadthPulse/internal/domain/service"
	"BreadthPulse/internal/services/breadth"
)

// RiskEngine summarizes the cross-sectional dispersion of sector
// breadths on the most recent day.
type RiskEngine struct{}

func NewRiskEngine() *RiskEngine { return &RiskEngine{} }

// Risk requires at least 5 sector rows overall and returns nil otherwise.
func (RiskEngine) Risk(series models.SectorSeries) *models.RiskMetrics {
	if len(series) < 5 {
		return nil
	}

	latest, ok := series.LatestDate()
	if !ok {
		return nil
	}

	rows := series.OnDate(latest)
	breadths := make([]float64, len(rows))
	strong, weak := 0, 0
	for i, row := range rows {
		breadths[i] = row.Breadth
		if row.Breadth >= 65 {
			strong++
		}
		if row.Breadth <= 35 {
			weak++
		}
	}

	dispersion := breadth.Std(breadths)

	level := "LOW"
	switch {
	case dispersion > 20 || weak > strong:
		level = "HIGH"
	case dispersion > 15:
		level = "MEDIUM"
	}

	return &models.RiskMetrics{
		Level:            level,
		SectorDispersion: breadth.Round(dispersion, 1),
		StrongSectors:    strong,
		WeakSectors:      weak,
		Recommendation:   riskRecommendation(level),
	}
}

func riskRecommendation(level string) string {
	switch level {
	case "HIGH":
		return "Reduce position sizes, increase cash levels, focus on quality"
	case "MEDIUM":
		return "Maintain balanced exposure, be selective with new positions"
	default:
		return "Favorable conditions for deployment, consider adding to winners"
	}
}

var _ domsvc.RiskAnalyzer = (*RiskEngine)(nil)
