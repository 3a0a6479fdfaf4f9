package models

import "time"

// Regime is the discrete market-state label derived from breadth,
// momentum and volatility.
type Regime struct {
	Name        string `json:"name"`        // "BULL MARKET", "BEAR MARKET", "HIGH VOLATILITY", "NEUTRAL"
	Description string `json:"description"`
}

// MarketScore is the 0-100 market health score with its sub-scores.
type MarketScore struct {
	Overall         int     `json:"overall"`
	Breadth         float64 `json:"breadth"`          // latest-day breadth %, one decimal
	BreadthScore    int     `json:"breadth_score"`    // breadth rounded to an integer score
	MomentumScore   float64 `json:"momentum"`         // 5-day momentum, 0-100
	VolatilityScore float64 `json:"volatility"`       // 10-day stability, 0-100
	Regime          Regime  `json:"regime"`
}

// StatContext positions the current breadth against its own history.
type StatContext struct {
	Current        float64 `json:"current"`
	Mean           float64 `json:"mean"`
	Std            float64 `json:"std"`
	Percentile     float64 `json:"percentile"` // % of historical days with breadth <= current
	ZScore         float64 `json:"z_score"`
	Interpretation string  `json:"interpretation"`
}

// BreadthForecast is the next-session breadth point estimate.
type BreadthForecast struct {
	Prediction float64 `json:"prediction"`
	RangeLow   float64 `json:"range_low"`
	RangeHigh  float64 `json:"range_high"`
	Confidence float64 `json:"confidence"`
	Trend      string  `json:"trend"` // "Rising", "Falling", "Flat"
}

// Divergence flags a persistent narrow-breadth condition.
type Divergence struct {
	Type        string `json:"type"`     // "BEARISH DIVERGENCE", "NARROW BREADTH"
	Severity    string `json:"severity"` // "HIGH", "MEDIUM"
	Description string `json:"description"`
	Action      string `json:"action"`
}

// MomentumPattern is a fixed-length green/neutral/red classification of
// recent sector breadth values.
type MomentumPattern struct {
	Pattern     string  `json:"pattern"` // e.g. "GGNGRGG"
	Score       float64 `json:"score"`   // 20, 50 or 80
	Description string  `json:"description"`
}

// StockPick is an instrument-level performer attached to a sector signal.
type StockPick struct {
	Symbol    string  `json:"symbol"`
	ChangePct float64 `json:"change_pct"`
}

// SectorSignal is a graded per-sector action recommendation.
type SectorSignal struct {
	Sector    string          `json:"sector"`
	Score     float64         `json:"score"`
	Action    string          `json:"action"` // STRONG BUY .. STRONG SELL
	Emoji     string          `json:"emoji"`
	Breadth   float64         `json:"breadth"`
	Trend     string          `json:"trend"` // "Rising", "Falling"
	Pattern   MomentumPattern `json:"pattern"`
	Reasoning string          `json:"reasoning"`
	TopStocks []StockPick     `json:"top_stocks"`
}

// RiskMetrics is the cross-sectional sector dispersion risk summary.
type RiskMetrics struct {
	Level            string  `json:"level"` // "HIGH", "MEDIUM", "LOW"
	SectorDispersion float64 `json:"sector_dispersion"`
	StrongSectors    int     `json:"strong_sectors"`
	WeakSectors      int     `json:"weak_sectors"`
	Recommendation   string  `json:"recommendation"`
}

// IntelligenceReport is the consolidated view of every analytics result.
// Nil sections mean the backing history was too short to compute them.
type IntelligenceReport struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Days        int              `json:"days"`
	Score       *MarketScore     `json:"score,omitempty"`
	Context     *StatContext     `json:"context,omitempty"`
	Forecast    *BreadthForecast `json:"forecast,omitempty"`
	Divergence  *Divergence      `json:"divergence,omitempty"`
	Sectors     []SectorSignal   `json:"sectors,omitempty"`
	Risk        *RiskMetrics     `json:"risk,omitempty"`
}
