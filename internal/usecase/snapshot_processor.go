package usecase

import (
	"context"
	"fmt"
	"time"

	"BreadthPulse/internal/domain/models"
	drepo "BreadthPulse/internal/domain/repository"
)

// SnapshotProcessor routes a tracking run's snapshot to the configured
// backend: direct storage (csv, clickhouse) or a Kafka topic that a
// downstream consumer drains into storage.
type SnapshotProcessor struct {
	pub     drepo.Publisher
	store   drepo.Storage
	metrics drepo.Metrics
	backend string
}

// NewSnapshotProcessor creates a new SnapshotProcessor instance.
func NewSnapshotProcessor(
	pub drepo.Publisher,
	store drepo.Storage,
	metrics drepo.Metrics,
	backend string,
) *SnapshotProcessor {
	return &SnapshotProcessor{
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
	}
}

// Process routes a single snapshot event to the configured backend.
func (p *SnapshotProcessor) Process(ctx context.Context, ev *drepo.SnapshotEvent) error {
	if ev == nil {
		return fmt.Errorf("event is nil")
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, ev)
	case "csv", "clickhouse":
		err = p.storeEvent(ctx, ev)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process snapshot: %w", err)
	}

	p.metrics.RecordSnapshotStored(p.backend, models.DateKey(ev.Date))
	p.metrics.RecordLatency("process", time.Since(start).Seconds())
	return nil
}

func (p *SnapshotProcessor) storeEvent(ctx context.Context, ev *drepo.SnapshotEvent) error {
	if err := p.store.UpsertDaily(ctx, ev.Daily); err != nil {
		return fmt.Errorf("upsert daily: %w", err)
	}
	if err := p.store.UpsertSectors(ctx, ev.Date, ev.Sectors); err != nil {
		return fmt.Errorf("upsert sectors: %w", err)
	}
	if len(ev.Details) > 0 {
		if err := p.store.SaveDetails(ctx, ev.Date, ev.Details); err != nil {
			return fmt.Errorf("save details: %w", err)
		}
	}
	return nil
}

// Close closes underlying resources if available.
func (p *SnapshotProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
