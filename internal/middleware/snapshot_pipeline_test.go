package middleware

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"BreadthPulse/internal/domain/models"
	domrepo "BreadthPulse/internal/domain/repository"
)

type stubProc struct {
	mu     sync.Mutex
	events []*domrepo.SnapshotEvent
	err    error
}

func (p *stubProc) Process(_ context.Context, ev *domrepo.SnapshotEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *stubProc) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type stubMetrics struct {
	mu     sync.Mutex
	errors map[string]int
}

func newStubMetrics() *stubMetrics { return &stubMetrics{errors: make(map[string]int)} }

func (m *stubMetrics) RecordSnapshotStored(string, string) {}
func (m *stubMetrics) RecordInstruments(int, int)          {}
func (m *stubMetrics) RecordLastBreadth(float64)           {}
func (m *stubMetrics) RecordLatency(string, float64)       {}

func (m *stubMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *stubMetrics) errorCount(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[kind]
}

func validSnapshotEvent(date time.Time) *domrepo.SnapshotEvent {
	return &domrepo.SnapshotEvent{
		Date:  date,
		Daily: models.DailySnapshot{Date: date, Up3To5: 2, Down3To5: 1, Neutral: 7},
		Sectors: []models.SectorSnapshot{
			{Date: date, Sector: "IT", Up3Plus: 2, Down3Plus: 1, Neutral: 7, Total: 10, Breadth: 66.7},
		},
	}
}

func TestPipelineForwardsValidEvent(t *testing.T) {
	proc := &stubProc{}
	p := NewSnapshotPipeline(proc, newStubMetrics())

	ev := validSnapshotEvent(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	if err := p.Process(context.Background(), ev); err != nil {
		t.Fatalf("process: %v", err)
	}
	if proc.count() != 1 {
		t.Fatalf("expected 1 forwarded event, got %d", proc.count())
	}
}

func TestPipelineRejectsInvalidEvents(t *testing.T) {
	proc := &stubProc{}
	m := newStubMetrics()
	p := NewSnapshotPipeline(proc, m)
	ctx := context.Background()

	if err := p.Process(ctx, nil); err == nil {
		t.Fatalf("expected error for nil event")
	}

	noDate := validSnapshotEvent(time.Time{})
	if err := p.Process(ctx, noDate); err == nil {
		t.Fatalf("expected error for missing date")
	}

	badSector := validSnapshotEvent(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	badSector.Sectors[0].Total = 99
	if err := p.Process(ctx, badSector); err == nil {
		t.Fatalf("expected error for mismatched sector totals")
	}

	if proc.count() != 0 {
		t.Fatalf("invalid events must not be forwarded")
	}
	if m.errorCount("pipeline_validate") != 3 {
		t.Fatalf("expected 3 validation errors, got %d", m.errorCount("pipeline_validate"))
	}
}

func TestPipelineDeduplicatesSameDate(t *testing.T) {
	proc := &stubProc{}
	m := newStubMetrics()
	p := NewSnapshotPipeline(proc, m, WithDedupWindow(time.Hour))
	ctx := context.Background()

	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if err := p.Process(ctx, validSnapshotEvent(date)); err != nil {
		t.Fatalf("first process: %v", err)
	}
	if err := p.Process(ctx, validSnapshotEvent(date)); err != nil {
		t.Fatalf("duplicate process: %v", err)
	}

	if proc.count() != 1 {
		t.Fatalf("duplicate within window must be dropped, forwarded %d", proc.count())
	}
	if m.errorCount("pipeline_duplicate") != 1 {
		t.Fatalf("expected 1 duplicate recorded")
	}

	// A different date inside the window still passes.
	if err := p.Process(ctx, validSnapshotEvent(date.AddDate(0, 0, 1))); err != nil {
		t.Fatalf("next day process: %v", err)
	}
	if proc.count() != 2 {
		t.Fatalf("expected 2 forwarded events, got %d", proc.count())
	}
}

func TestPipelineBuffersOnDownstreamFailure(t *testing.T) {
	proc := &stubProc{err: fmt.Errorf("backend down")}
	m := newStubMetrics()
	p := NewSnapshotPipeline(proc, m)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ev := validSnapshotEvent(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	if err := p.Process(ctx, ev); err == nil {
		t.Fatalf("expected downstream error")
	}
	if m.errorCount("pipeline_process") != 1 {
		t.Fatalf("expected process error recorded")
	}

	// Recovery: the flusher drains the buffered event once downstream heals.
	proc.mu.Lock()
	proc.err = nil
	proc.mu.Unlock()

	p.Start(ctx)
	defer p.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for proc.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("buffered event never flushed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestPipelineTransformHook(t *testing.T) {
	proc := &stubProc{}
	tagged := 0
	p := NewSnapshotPipeline(proc, newStubMetrics(),
		WithTransform(func(ev *domrepo.SnapshotEvent) *domrepo.SnapshotEvent {
			tagged++
			return ev
		}))

	ev := validSnapshotEvent(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	if err := p.Process(context.Background(), ev); err != nil {
		t.Fatalf("process: %v", err)
	}
	if tagged != 1 {
		t.Fatalf("transform hook not invoked")
	}
}
