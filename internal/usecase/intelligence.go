package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"BreadthPulse/internal/domain/models"
	drepo "BreadthPulse/internal/domain/repository"
	domsvc "BreadthPulse/internal/domain/service"
	"BreadthPulse/pkg/cache"
	"BreadthPulse/pkg/logger"
)

// IntelligenceTTL configures per-section cache lifetimes. Zero disables
// caching for that section.
type IntelligenceTTL struct {
	Score    time.Duration
	Forecast time.Duration
	Sectors  time.Duration
	Report   time.Duration
}

// Intelligence aggregates every analytics engine over the stored
// histories. Results are cached because the backing histories change at
// most once per session while dashboards poll continuously.
type Intelligence struct {
	store      drepo.Storage
	scorer     domsvc.MarketScorer
	analyzer   domsvc.ContextAnalyzer
	forecaster domsvc.BreadthForecaster
	divergence domsvc.DivergenceDetector
	sectors    domsvc.SectorSignaler
	risk       domsvc.RiskAnalyzer
	cache      cache.Service
	ttl        IntelligenceTTL
	logger     *logger.Logger
}

// NewIntelligence wires the analytics engines over storage. cache may
// be nil to disable caching entirely.
func NewIntelligence(
	store drepo.Storage,
	scorer domsvc.MarketScorer,
	analyzer domsvc.ContextAnalyzer,
	forecaster domsvc.BreadthForecaster,
	divergence domsvc.DivergenceDetector,
	sectors domsvc.SectorSignaler,
	risk domsvc.RiskAnalyzer,
	c cache.Service,
	ttl IntelligenceTTL,
	lgr *logger.Logger,
) *Intelligence {
	return &Intelligence{
		store:      store,
		scorer:     scorer,
		analyzer:   analyzer,
		forecaster: forecaster,
		divergence: divergence,
		sectors:    sectors,
		risk:       risk,
		cache:      c,
		ttl:        ttl,
		logger:     lgr,
	}
}

// Score computes the market health score, nil when history is short.
func (u *Intelligence) Score(ctx context.Context) (*models.MarketScore, error) {
	key := cache.GenerateKey("intel", "score")
	var cached models.MarketScore
	if u.cacheGet(ctx, key, u.ttl.Score, &cached) {
		return &cached, nil
	}

	series, err := u.store.LoadBreadth(ctx)
	if err != nil {
		return nil, err
	}
	score := u.scorer.Score(series)
	if score != nil {
		u.cacheSet(ctx, key, u.ttl.Score, score)
	}
	return score, nil
}

// Context positions the latest breadth against its history.
func (u *Intelligence) Context(ctx context.Context) (*models.StatContext, error) {
	series, err := u.store.LoadBreadth(ctx)
	if err != nil {
		return nil, err
	}
	return u.analyzer.Context(series), nil
}

// Forecast estimates the next session's breadth.
func (u *Intelligence) Forecast(ctx context.Context) (*models.BreadthForecast, error) {
	key := cache.GenerateKey("intel", "forecast")
	var cached models.BreadthForecast
	if u.cacheGet(ctx, key, u.ttl.Forecast, &cached) {
		return &cached, nil
	}

	series, err := u.store.LoadBreadth(ctx)
	if err != nil {
		return nil, err
	}
	fc := u.forecaster.Forecast(series)
	if fc != nil {
		u.cacheSet(ctx, key, u.ttl.Forecast, fc)
	}
	return fc, nil
}

// Divergence flags persistent narrow breadth. ok=false means the
// history is too short to judge.
func (u *Intelligence) Divergence(ctx context.Context) (*models.Divergence, bool, error) {
	series, err := u.store.LoadBreadth(ctx)
	if err != nil {
		return nil, false, err
	}
	div, ok := u.divergence.Detect(series)
	return div, ok, nil
}

// SectorSignals grades each sector, nil when history is short.
func (u *Intelligence) SectorSignals(ctx context.Context) ([]models.SectorSignal, error) {
	key := cache.GenerateKey("intel", "sectors")
	var cached []models.SectorSignal
	if u.cacheGet(ctx, key, u.ttl.Sectors, &cached) {
		return cached, nil
	}

	series, err := u.store.LoadSectors(ctx)
	if err != nil {
		return nil, err
	}
	lookup, err := u.detailLookup(ctx)
	if err != nil {
		// signals degrade to empty top-stock lists without details
		u.logger.Warn("detail lookup unavailable", logger.Error(err))
		lookup = sectorDetails{}
	}
	signals := u.sectors.Signals(series, lookup)
	if signals != nil {
		u.cacheSet(ctx, key, u.ttl.Sectors, signals)
	}
	return signals, nil
}

// Risk summarizes sector dispersion risk for the latest session.
func (u *Intelligence) Risk(ctx context.Context) (*models.RiskMetrics, error) {
	series, err := u.store.LoadSectors(ctx)
	if err != nil {
		return nil, err
	}
	return u.risk.Risk(series), nil
}

// History returns the last n daily snapshots, all of them when n <= 0.
func (u *Intelligence) History(ctx context.Context, n int) (models.BreadthSeries, error) {
	series, err := u.store.LoadBreadth(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		series = series.Tail(n)
	}
	return series, nil
}

// SectorHistory returns one sector's last n breadth rows, all of them
// when n <= 0. An unknown sector yields an empty series.
func (u *Intelligence) SectorHistory(ctx context.Context, sector string, n int) (models.SectorSeries, error) {
	series, err := u.store.LoadSectors(ctx)
	if err != nil {
		return nil, err
	}
	return series.ForSector(sector).Tail(n), nil
}

// Report runs every engine over the stored histories in one pass.
func (u *Intelligence) Report(ctx context.Context) (*models.IntelligenceReport, error) {
	key := cache.GenerateKey("intel", "report")
	var cached models.IntelligenceReport
	if u.cacheGet(ctx, key, u.ttl.Report, &cached) {
		return &cached, nil
	}

	breadthSeries, err := u.store.LoadBreadth(ctx)
	if err != nil {
		return nil, err
	}
	sectorSeries, err := u.store.LoadSectors(ctx)
	if err != nil {
		return nil, err
	}
	lookup, err := u.detailLookup(ctx)
	if err != nil {
		lookup = sectorDetails{}
	}

	report := &models.IntelligenceReport{
		GeneratedAt: time.Now(),
		Days:        len(breadthSeries),
		Score:       u.scorer.Score(breadthSeries),
		Context:     u.analyzer.Context(breadthSeries),
		Forecast:    u.forecaster.Forecast(breadthSeries),
		Sectors:     u.sectors.Signals(sectorSeries, lookup),
		Risk:        u.risk.Risk(sectorSeries),
	}
	if div, ok := u.divergence.Detect(breadthSeries); ok {
		report.Divergence = div
	}

	u.cacheSet(ctx, key, u.ttl.Report, report)
	return report, nil
}

// Invalidate drops all cached analytics, called after a new snapshot
// lands so the next read reflects it.
func (u *Intelligence) Invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	keys := []string{
		cache.GenerateKey("intel", "score"),
		cache.GenerateKey("intel", "forecast"),
		cache.GenerateKey("intel", "sectors"),
		cache.GenerateKey("intel", "report"),
	}
	if err := u.cache.Delete(ctx, keys...); err != nil {
		u.logger.Warn("cache invalidation failed", logger.Error(err))
	}
}

func (u *Intelligence) cacheGet(ctx context.Context, key string, ttl time.Duration, dest interface{}) bool {
	if u.cache == nil || ttl <= 0 {
		return false
	}
	err := u.cache.Get(ctx, key, dest)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			u.logger.Warn("cache read failed", logger.String("key", key), logger.Error(err))
		}
		return false
	}
	return true
}

func (u *Intelligence) cacheSet(ctx context.Context, key string, ttl time.Duration, value interface{}) {
	if u.cache == nil || ttl <= 0 {
		return
	}
	if err := u.cache.Set(ctx, key, value, ttl); err != nil {
		u.logger.Warn("cache write failed", logger.String("key", key), logger.Error(err))
	}
}

// sectorDetails is the storage-backed DetailLookup: the latest detail
// table grouped by sector, each group ranked descending by change.
type sectorDetails map[string][]models.StockChange

var _ domsvc.DetailLookup = (sectorDetails)(nil)

func (d sectorDetails) BySector(sector string) []models.StockChange {
	return d[sector]
}

func (u *Intelligence) detailLookup(ctx context.Context) (sectorDetails, error) {
	rows, err := u.store.LatestDetails(ctx)
	if err != nil {
		return nil, err
	}
	lookup := make(sectorDetails)
	for _, r := range rows {
		lookup[r.Sector] = append(lookup[r.Sector], r)
	}
	for sector := range lookup {
		rows := lookup[sector]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].ChangePct > rows[j].ChangePct })
	}
	return lookup, nil
}
