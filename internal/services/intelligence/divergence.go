package intelligence

import (
	"BreadthPulse/internal/domain/models"
	domsvc "BreadthPulse/internal/domain/service"
	"BreadthPulse/internal/services/breadth"
)

// DivergenceEngine flags persistent narrow-breadth over the trailing
// three sessions.
type DivergenceEngine struct{}

func NewDivergenceEngine() *DivergenceEngine { return &DivergenceEngine{} }

// Detect requires at least 3 snapshots; ok=false reports insufficient
// history. With enough history a nil divergence means none was found.
func (DivergenceEngine) Detect(series models.BreadthSeries) (*models.Divergence, bool) {
	if len(series) < 3 {
		return nil, false
	}

	breadths := breadth.Series(series.Tail(3))

	below48 := true
	narrow := true
	for _, b := range breadths {
		if b >= 48 {
			below48 = false
		}
		if b <= 48 || b >= 52 {
			narrow = false
		}
	}

	switch {
	case below48:
		return &models.Divergence{
			Type:        "BEARISH DIVERGENCE",
			Severity:    "HIGH",
			Description: "Persistent narrow breadth for 3+ days. Weakness likely to continue.",
			Action:      "Reduce exposure, raise cash",
		}, true
	case narrow:
		return &models.Divergence{
			Type:        "NARROW BREADTH",
			Severity:    "MEDIUM",
			Description: "Market lacking conviction. Few stocks participating.",
			Action:      "Be selective, avoid chasing",
		}, true
	}
	return nil, true
}

var _ domsvc.DivergenceDetector = (*DivergenceEngine)(nil)
