package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	drepo "BreadthPulse/internal/domain/repository"
	"BreadthPulse/internal/middleware"
	"BreadthPulse/internal/services/movement"
)

type captureProc struct {
	mu     sync.Mutex
	events []*drepo.SnapshotEvent
}

func (p *captureProc) Process(_ context.Context, ev *drepo.SnapshotEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func trackerFixture(proc *captureProc, m *fakeMetrics) *Tracker {
	dir := &fakeDirectory{listings: []drepo.Listing{
		{Symbol: "HDFCBANK", Sector: "Banking"},
		{Symbol: "ICICIBANK", Sector: "Banking"},
		{Symbol: "SBIN", Sector: "Banking"},
		{Symbol: "INFY", Sector: "IT"},
		{Symbol: "TCS", Sector: "IT"},
		{Symbol: "WIPRO", Sector: "IT"},
	}}
	quotes := &fakeQuotes{changes: map[string]float64{
		"HDFCBANK":  3.5,
		"ICICIBANK": 0.5,
		"SBIN":      -4.0,
		"INFY":      12.0,
		// TCS has no closes and must be skipped
		"WIPRO": -16.0,
	}}
	pipe := middleware.NewSnapshotPipeline(proc, m)
	return NewTracker(dir, quotes, movement.NewAggregator(nil), pipe, m, testLogger(), 3)
}

func TestTrackOnAggregatesUniverse(t *testing.T) {
	proc := &captureProc{}
	m := newFakeMetrics()
	tr := trackerFixture(proc, m)

	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if err := tr.TrackOn(context.Background(), date); err != nil {
		t.Fatalf("track: %v", err)
	}

	if len(proc.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(proc.events))
	}
	ev := proc.events[0]
	if !ev.Date.Equal(date) {
		t.Fatalf("unexpected event date %v", ev.Date)
	}
	if ev.Daily.Total() != 5 {
		t.Fatalf("expected 5 observed instruments, got %d", ev.Daily.Total())
	}
	if ev.Daily.Up3To5 != 1 || ev.Daily.Up10To15 != 1 || ev.Daily.Down3To5 != 1 || ev.Daily.Down15Plus != 1 || ev.Daily.Neutral != 1 {
		t.Fatalf("unexpected histogram %+v", ev.Daily)
	}

	if m.observed != 5 || m.failed != 1 {
		t.Fatalf("expected 5 observed / 1 failed, got %d/%d", m.observed, m.failed)
	}
	if m.breadth != 50 {
		t.Fatalf("expected breadth 50, got %v", m.breadth)
	}

	if len(ev.Sectors) != 2 {
		t.Fatalf("expected 2 sector rows, got %d", len(ev.Sectors))
	}
	for _, row := range ev.Sectors {
		switch row.Sector {
		case "Banking":
			if row.Total != 3 || row.Up3Plus != 1 || row.Down3Plus != 1 || row.Neutral != 1 {
				t.Fatalf("unexpected Banking row %+v", row)
			}
		case "IT":
			if row.Total != 2 || row.Up3Plus != 1 || row.Down3Plus != 1 {
				t.Fatalf("unexpected IT row %+v", row)
			}
		default:
			t.Fatalf("unexpected sector %q", row.Sector)
		}
	}

	if len(ev.Details) != 5 {
		t.Fatalf("expected 5 detail rows, got %d", len(ev.Details))
	}
}

func TestTrackDirectoryError(t *testing.T) {
	m := newFakeMetrics()
	pipe := middleware.NewSnapshotPipeline(&captureProc{}, m)
	tr := NewTracker(
		&fakeDirectory{err: context.DeadlineExceeded},
		&fakeQuotes{},
		movement.NewAggregator(nil),
		pipe, m, testLogger(), 2,
	)

	if err := tr.TrackToday(context.Background()); err == nil {
		t.Fatalf("expected directory error")
	}
	if m.errors["directory"] != 1 {
		t.Fatalf("expected directory error recorded, got %v", m.errors)
	}
}

func TestTrackCanceledContext(t *testing.T) {
	proc := &captureProc{}
	tr := trackerFixture(proc, newFakeMetrics())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tr.TrackToday(ctx); err == nil {
		t.Fatalf("expected context error")
	}
	if len(proc.events) != 0 {
		t.Fatalf("canceled run must not emit an event")
	}
}
