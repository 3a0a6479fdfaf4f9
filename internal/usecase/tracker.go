package usecase

import (
	"context"
	"sync"
	"time"

	drepo "BreadthPulse/internal/domain/repository"
	"BreadthPulse/internal/middleware"
	"BreadthPulse/internal/services/breadth"
	"BreadthPulse/internal/services/movement"
	"BreadthPulse/pkg/logger"
	"BreadthPulse/pkg/util"
)

// Tracker runs a full market sweep: resolve the tracked universe, pull
// each instrument's daily change, aggregate the category histogram and
// sector tallies, and hand the snapshot to the processing pipeline.
type Tracker struct {
	directory  drepo.StockDirectory
	quotes     drepo.QuoteSource
	aggregator *movement.Aggregator
	pipe       *middleware.SnapshotPipeline
	metrics    drepo.Metrics
	logger     *logger.Logger
	workers    int
}

// NewTracker creates a tracker. workers bounds concurrent quote fetches.
func NewTracker(
	directory drepo.StockDirectory,
	quotes drepo.QuoteSource,
	aggregator *movement.Aggregator,
	pipe *middleware.SnapshotPipeline,
	metrics drepo.Metrics,
	lgr *logger.Logger,
	workers int,
) *Tracker {
	if workers <= 0 {
		workers = 8
	}
	return &Tracker{
		directory:  directory,
		quotes:     quotes,
		aggregator: aggregator,
		pipe:       pipe,
		metrics:    metrics,
		logger:     lgr,
		workers:    workers,
	}
}

// TrackToday runs a sweep for the current session.
func (t *Tracker) TrackToday(ctx context.Context) error {
	return t.track(ctx, util.Midnight(time.Now()), func(ctx context.Context, symbol string) (float64, bool, error) {
		return t.quotes.DailyChange(ctx, symbol)
	})
}

// TrackOn runs a sweep for a specific historical date.
func (t *Tracker) TrackOn(ctx context.Context, date time.Time) error {
	day := util.Midnight(date)
	return t.track(ctx, day, func(ctx context.Context, symbol string) (float64, bool, error) {
		return t.quotes.ChangeOn(ctx, symbol, day)
	})
}

type changeFn func(ctx context.Context, symbol string) (float64, bool, error)

func (t *Tracker) track(ctx context.Context, date time.Time, change changeFn) error {
	start := time.Now()

	listings, err := t.directory.List(ctx)
	if err != nil {
		t.metrics.RecordError("directory")
		return err
	}
	t.logger.Info("tracking run started",
		logger.String("date", date.Format(util.DateLayout)),
		logger.Int("universe", len(listings)))

	obs, failed := t.collect(ctx, listings, change)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	t.metrics.RecordInstruments(len(obs), failed)

	daily, sectors, details := t.aggregator.Aggregate(date, obs)
	t.metrics.RecordLastBreadth(breadth.Pct(daily))

	ev := &drepo.SnapshotEvent{
		Date:    date,
		Daily:   daily,
		Sectors: sectors,
		Details: details,
	}
	if err := t.pipe.Process(ctx, ev); err != nil {
		return err
	}

	t.logger.Info("tracking run finished",
		logger.String("date", date.Format(util.DateLayout)),
		logger.Int("observed", len(obs)),
		logger.Int("failed", failed),
		logger.Float64("breadth", breadth.Pct(daily)),
		logger.Duration("elapsed_ms", time.Since(start)))
	t.metrics.RecordLatency("tracking_run", time.Since(start).Seconds())
	return nil
}

// collect fans the universe across a bounded worker pool. Instruments
// without two valid closes are counted as failed and skipped.
func (t *Tracker) collect(ctx context.Context, listings []drepo.Listing, change changeFn) ([]movement.Observation, int) {
	type result struct {
		obs movement.Observation
		ok  bool
	}

	jobs := make(chan drepo.Listing)
	results := make(chan result, len(listings))

	var wg sync.WaitGroup
	for i := 0; i < t.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for l := range jobs {
				pct, ok, err := change(ctx, l.Symbol)
				if err != nil || !ok {
					if err != nil && ctx.Err() == nil {
						t.metrics.RecordError("quote")
					}
					results <- result{}
					continue
				}
				results <- result{
					obs: movement.Observation{Symbol: l.Symbol, Sector: l.Sector, ChangePct: pct},
					ok:  true,
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, l := range listings {
			select {
			case <-ctx.Done():
				return
			case jobs <- l:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	obs := make([]movement.Observation, 0, len(listings))
	failed := 0
	for r := range results {
		if r.ok {
			obs = append(obs, r.obs)
		} else {
			failed++
		}
	}
	return obs, failed
}
