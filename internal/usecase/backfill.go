package usecase

import (
	"context"
	"fmt"
	"time"

	"BreadthPulse/pkg/logger"
	"BreadthPulse/pkg/queue"
	"BreadthPulse/pkg/util"
)

const backfillJobType = "backfill_day"

// BackfillPayload is one queued backfill unit: a single trading day.
type BackfillPayload struct {
	Date string `json:"date"`
}

// Backfill seeds history by enqueueing one job per past trading day.
// Days are queued oldest first so the history file grows in order even
// when some days retry.
type Backfill struct {
	q      queue.QueueService
	logger *logger.Logger
}

// NewBackfill creates the backfill scheduler.
func NewBackfill(q queue.QueueService, lgr *logger.Logger) *Backfill {
	return &Backfill{q: q, logger: lgr}
}

// Enqueue schedules the last `days` trading days ending at `until`.
func (b *Backfill) Enqueue(ctx context.Context, until time.Time, days int) (int, error) {
	if days <= 0 {
		days = 14
	}
	tradingDays := util.TradingDays(until, days)

	queued := 0
	for _, day := range tradingDays {
		payload := BackfillPayload{Date: day.Format(util.DateLayout)}
		if err := b.q.PublishMessage(ctx, backfillJobType, payload); err != nil {
			return queued, fmt.Errorf("enqueue %s: %w", payload.Date, err)
		}
		queued++
	}

	b.logger.Info("backfill enqueued",
		logger.Int("days", queued),
		logger.String("from", tradingDays[0].Format(util.DateLayout)),
		logger.String("to", tradingDays[len(tradingDays)-1].Format(util.DateLayout)))
	return queued, nil
}

// BackfillJob is the queue worker side: one job run tracks one date.
type BackfillJob struct {
	tracker *Tracker
	logger  *logger.Logger
}

// NewBackfillJob creates the queue job handler.
func NewBackfillJob(tracker *Tracker, lgr *logger.Logger) *BackfillJob {
	return &BackfillJob{tracker: tracker, logger: lgr}
}

var _ queue.Job = (*BackfillJob)(nil)

func (j *BackfillJob) Name() string { return "backfill-day" }

func (j *BackfillJob) Type() string { return backfillJobType }

func (j *BackfillJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[BackfillPayload](payload)
	if err != nil {
		return fmt.Errorf("backfill payload: %w", err)
	}
	date, ok := util.ParseDate(p.Date)
	if !ok {
		return fmt.Errorf("backfill payload: bad date %q", p.Date)
	}

	j.logger.Info("backfill day started", logger.String("date", p.Date))
	if err := j.tracker.TrackOn(ctx, date); err != nil {
		return fmt.Errorf("backfill %s: %w", p.Date, err)
	}
	return nil
}
