package intelligence

import (
	"fmt"
	"sort"
	"strings"

	"BreadthPulse/internal/domain/models"
	domsvc "BreadthPulse/internal/domain/service"
	"BreadthPulse/internal/services/breadth"
)

// SectorEngine grades each sector's recent breadth trend and momentum
// pattern into an action recommendation.
type SectorEngine struct{}

func NewSectorEngine() *SectorEngine { return &SectorEngine{} }

// Signals requires at least 7 sector rows overall and, per sector, at
// least 5 of its own rows; sectors with shorter histories are skipped.
// Returns nil when the whole series is too short. Output is sorted
// descending by score.
func (SectorEngine) Signals(series models.SectorSeries, details domsvc.DetailLookup) []models.SectorSignal {
	if len(series) < 7 {
		return nil
	}

	signals := make([]models.SectorSignal, 0, 8)
	for _, name := range series.Sectors() {
		hist := series.ForSector(name)
		if len(hist) > 10 {
			hist = hist[len(hist)-10:]
		}
		if len(hist) < 5 {
			continue
		}

		breadths := make([]float64, len(hist))
		for i, row := range hist {
			breadths[i] = row.Breadth
		}

		latest := breadths[len(breadths)-1]
		trend := breadth.Mean(breadth.Tail(breadth.Diffs(breadths), 5))
		pattern := momentumPattern(breadths)

		score := latest/100*40 + (trend+5)*5 + pattern.Score*0.2
		score = breadth.Clamp(score, 0, 100)

		action, emoji, reasoning := gradeSector(score, latest, pattern.Pattern)

		trendLabel := "Falling"
		if trend > 0 {
			trendLabel = "Rising"
		}

		signals = append(signals, models.SectorSignal{
			Sector:    name,
			Score:     breadth.Round(score, 0),
			Action:    action,
			Emoji:     emoji,
			Breadth:   latest,
			Trend:     trendLabel,
			Pattern:   pattern,
			Reasoning: reasoning,
			TopStocks: pickStocks(details, name, action),
		})
	}

	sort.SliceStable(signals, func(i, j int) bool { return signals[i].Score > signals[j].Score })
	return signals
}

// momentumPattern classifies the last 7 breadth values into green,
// neutral and red markers and scores the sequence.
func momentumPattern(breadths []float64) models.MomentumPattern {
	var sb strings.Builder
	greens, reds := 0, 0
	for _, b := range breadth.Tail(breadths, 7) {
		switch {
		case b >= 65:
			sb.WriteByte('G')
			greens++
		case b >= 45:
			sb.WriteByte('N')
		default:
			sb.WriteByte('R')
			reds++
		}
	}

	p := models.MomentumPattern{Pattern: sb.String()}
	switch {
	case greens >= 5:
		p.Score, p.Description = 80, "Strong uptrend"
	case reds >= 5:
		p.Score, p.Description = 20, "Strong downtrend"
	default:
		p.Score, p.Description = 50, "Mixed"
	}
	return p
}

// gradeSector maps a score onto the action ladder, first match wins.
func gradeSector(score, latest float64, pattern string) (action, emoji, reasoning string) {
	switch {
	case score >= 70:
		return "STRONG BUY", "\U0001F7E2\U0001F7E2\U0001F7E2",
			fmt.Sprintf("Strong momentum (%s), breadth %.0f%% above average", pattern, latest)
	case score >= 55:
		return "BUY", "\U0001F7E2\U0001F7E2",
			fmt.Sprintf("Positive trend, breadth %.0f%%", latest)
	case score >= 45:
		return "HOLD", "\U0001F7E1\U0001F7E1",
			fmt.Sprintf("Neutral conditions, breadth near average (%.0f%%)", latest)
	case score >= 30:
		return "SELL", "\U0001F534\U0001F534",
			fmt.Sprintf("Weakening trend, breadth %.0f%%", latest)
	default:
		return "STRONG SELL", "\U0001F534\U0001F534\U0001F534",
			fmt.Sprintf("Persistent weakness (%s), breadth %.0f%%", pattern, latest)
	}
}

// pickStocks attaches instrument-level performers: top 3 for BUY-class
// actions, bottom 3 for SELL-class, top 2 for HOLD. A missing detail
// table yields an empty list.
func pickStocks(details domsvc.DetailLookup, sector, action string) []models.StockPick {
	if details == nil {
		return nil
	}
	ranked := details.BySector(sector)
	if len(ranked) == 0 {
		return nil
	}

	var slice []models.StockChange
	switch action {
	case "STRONG BUY", "BUY":
		slice = headOf(ranked, 3)
	case "STRONG SELL", "SELL":
		slice = tailOf(ranked, 3)
	default:
		slice = headOf(ranked, 2)
	}

	picks := make([]models.StockPick, 0, len(slice))
	for _, s := range slice {
		picks = append(picks, models.StockPick{Symbol: s.Symbol, ChangePct: s.ChangePct})
	}
	return picks
}

func headOf(xs []models.StockChange, n int) []models.StockChange {
	if n > len(xs) {
		n = len(xs)
	}
	return xs[:n]
}

func tailOf(xs []models.StockChange, n int) []models.StockChange {
	if n > len(xs) {
		n = len(xs)
	}
	return xs[len(xs)-n:]
}

var _ domsvc.SectorSignaler = (*SectorEngine)(nil)
