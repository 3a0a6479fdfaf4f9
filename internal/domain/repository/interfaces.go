package repository

import (
	"context"
	"time"

	"BreadthPulse/internal/domain/models"
)

// Listing is one entry of the tracked universe: a symbol and its sector.
type Listing struct {
	Symbol string
	Sector string
}

// StockDirectory provides the index constituent list with sector tags.
type StockDirectory interface {
	List(ctx context.Context) ([]Listing, error)
}

// QuoteSource resolves daily percentage changes from two-point close
// comparisons. ok=false means the instrument lacked two valid closes and
// must be skipped, never zero-filled.
type QuoteSource interface {
	DailyChange(ctx context.Context, symbol string) (pct float64, ok bool, err error)
	ChangeOn(ctx context.Context, symbol string, date time.Time) (pct float64, ok bool, err error)
}

// SnapshotEvent carries one tracking run's output through the backend.
type SnapshotEvent struct {
	Date    time.Time               `json:"date"`
	Daily   models.DailySnapshot    `json:"daily"`
	Sectors []models.SectorSnapshot `json:"sectors"`
	Details []models.StockChange    `json:"details"`
}

// Publisher ships snapshot events to a message backend.
type Publisher interface {
	Publish(ctx context.Context, ev *SnapshotEvent) error
	Close() error
}

// Storage persists and reloads the breadth, sector and detail histories.
// Writes are upserts keyed by calendar date.
type Storage interface {
	Init(ctx context.Context) error
	UpsertDaily(ctx context.Context, day models.DailySnapshot) error
	UpsertSectors(ctx context.Context, date time.Time, rows []models.SectorSnapshot) error
	SaveDetails(ctx context.Context, date time.Time, rows []models.StockChange) error
	LoadBreadth(ctx context.Context) (models.BreadthSeries, error)
	LoadSectors(ctx context.Context) (models.SectorSeries, error)
	LatestDetails(ctx context.Context) ([]models.StockChange, error)
	Health(ctx context.Context) error
	Close() error
}

// Metrics records operational counters and gauges.
type Metrics interface {
	RecordSnapshotStored(backend, date string)
	RecordInstruments(observed, failed int)
	RecordError(kind string)
	RecordLastBreadth(pct float64)
	RecordLatency(op string, seconds float64)
}
