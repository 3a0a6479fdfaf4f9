package usecase

import (
	"context"
	"testing"
	"time"

	"BreadthPulse/internal/domain/models"
	drepo "BreadthPulse/internal/domain/repository"
)

func testEvent(date time.Time) *drepo.SnapshotEvent {
	daily := models.DailySnapshot{Date: date, Up3To5: 3, Down3To5: 1, Neutral: 6}
	return &drepo.SnapshotEvent{
		Date:  date,
		Daily: daily,
		Sectors: []models.SectorSnapshot{
			{Date: date, Sector: "Banking", Up3Plus: 3, Down3Plus: 1, Neutral: 6, Total: 10, Breadth: 75},
		},
		Details: []models.StockChange{
			{Symbol: "HDFCBANK", Sector: "Banking", ChangePct: 3.2, Category: models.Up3To5},
		},
	}
}

func TestProcessorStoresDirectly(t *testing.T) {
	store := &fakeStorage{}
	m := newFakeMetrics()
	proc := NewSnapshotProcessor(nil, store, m, "csv")

	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if err := proc.Process(context.Background(), testEvent(date)); err != nil {
		t.Fatalf("process: %v", err)
	}

	if len(store.daily) != 1 || store.daily[0].Total() != 10 {
		t.Fatalf("daily not stored: %+v", store.daily)
	}
	if len(store.sectors) != 1 || store.sectors[0].Sector != "Banking" {
		t.Fatalf("sectors not stored: %+v", store.sectors)
	}
	if len(store.details) != 1 {
		t.Fatalf("details not stored: %+v", store.details)
	}
	if len(m.stored) != 1 || m.stored[0] != "csv/2025-03-14" {
		t.Fatalf("unexpected stored metric %v", m.stored)
	}
}

func TestProcessorPublishesForKafkaBackend(t *testing.T) {
	pub := &fakePublisher{}
	store := &fakeStorage{}
	proc := NewSnapshotProcessor(pub, store, newFakeMetrics(), "kafka")

	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if err := proc.Process(context.Background(), testEvent(date)); err != nil {
		t.Fatalf("process: %v", err)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}
	if len(store.daily) != 0 {
		t.Fatalf("kafka backend must not write storage directly")
	}
}

func TestProcessorUnknownBackend(t *testing.T) {
	m := newFakeMetrics()
	proc := NewSnapshotProcessor(nil, &fakeStorage{}, m, "sqlite")

	err := proc.Process(context.Background(), testEvent(time.Now()))
	if err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if m.errors["process"] != 1 {
		t.Fatalf("expected process error recorded, got %v", m.errors)
	}
}

func TestProcessorNilEvent(t *testing.T) {
	proc := NewSnapshotProcessor(nil, &fakeStorage{}, newFakeMetrics(), "csv")
	if err := proc.Process(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil event")
	}
}

func TestProcessorCloseReleasesResources(t *testing.T) {
	pub := &fakePublisher{}
	store := &fakeStorage{}
	proc := NewSnapshotProcessor(pub, store, newFakeMetrics(), "kafka")

	proc.Close()
	if !pub.closed || !store.closed {
		t.Fatalf("expected publisher and storage closed")
	}
}
