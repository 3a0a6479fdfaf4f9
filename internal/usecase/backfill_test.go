package usecase

import (
	"context"
	"testing"
	"time"
)

func TestEnqueueSkipsWeekends(t *testing.T) {
	q := &fakeQueue{}
	b := NewBackfill(q, testLogger())

	// Friday; the 5 preceding trading days are Mon 10th .. Fri 14th.
	until := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	n, err := b.Enqueue(context.Background(), until, 5)
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 queued, got %d", n)
	}

	want := []string{"2025-03-10", "2025-03-11", "2025-03-12", "2025-03-13", "2025-03-14"}
	for i, msg := range q.messages {
		if msg.msgType != backfillJobType {
			t.Fatalf("unexpected message type %q", msg.msgType)
		}
		p, ok := msg.payload.(BackfillPayload)
		if !ok {
			t.Fatalf("unexpected payload %T", msg.payload)
		}
		if p.Date != want[i] {
			t.Fatalf("day %d: expected %s, got %s", i, want[i], p.Date)
		}
	}
}

func TestEnqueueDefaultDays(t *testing.T) {
	q := &fakeQueue{}
	b := NewBackfill(q, testLogger())

	n, err := b.Enqueue(context.Background(), time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), 0)
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if n != 14 {
		t.Fatalf("expected default 14 queued, got %d", n)
	}
}

func TestBackfillJobTracksDate(t *testing.T) {
	proc := &captureProc{}
	tr := trackerFixture(proc, newFakeMetrics())
	job := NewBackfillJob(tr, testLogger())

	payload := BackfillPayload{Date: "2025-03-12"}
	if err := job.Handle(context.Background(), payload); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(proc.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(proc.events))
	}
	if got := proc.events[0].Date.Format("2006-01-02"); got != "2025-03-12" {
		t.Fatalf("expected event for 2025-03-12, got %s", got)
	}
}

func TestBackfillJobRejectsBadDate(t *testing.T) {
	job := NewBackfillJob(trackerFixture(&captureProc{}, newFakeMetrics()), testLogger())
	if err := job.Handle(context.Background(), BackfillPayload{Date: "12-03-2025"}); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}
