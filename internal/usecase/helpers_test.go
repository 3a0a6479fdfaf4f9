package usecase

import (
	"context"
	"sync"
	"time"

	"BreadthPulse/internal/domain/models"
	drepo "BreadthPulse/internal/domain/repository"
	"BreadthPulse/pkg/logger"
)

func testLogger() *logger.Logger {
	l, _ := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	return l
}

type fakeMetrics struct {
	mu       sync.Mutex
	stored   []string
	errors   map[string]int
	observed int
	failed   int
	breadth  float64
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{errors: make(map[string]int)}
}

func (m *fakeMetrics) RecordSnapshotStored(backend, date string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stored = append(m.stored, backend+"/"+date)
}

func (m *fakeMetrics) RecordInstruments(observed, failed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observed, m.failed = observed, failed
}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *fakeMetrics) RecordLastBreadth(pct float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.breadth = pct
}

func (m *fakeMetrics) RecordLatency(string, float64) {}

type fakeStorage struct {
	mu      sync.Mutex
	daily   models.BreadthSeries
	sectors models.SectorSeries
	details []models.StockChange
	err     error
	closed  bool
}

func (s *fakeStorage) Init(context.Context) error { return nil }

func (s *fakeStorage) UpsertDaily(_ context.Context, day models.DailySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.daily = s.daily.Upsert(day)
	return nil
}

func (s *fakeStorage) UpsertSectors(_ context.Context, date time.Time, rows []models.SectorSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sectors = s.sectors.UpsertDay(date, rows)
	return nil
}

func (s *fakeStorage) SaveDetails(_ context.Context, _ time.Time, rows []models.StockChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.details = rows
	return nil
}

func (s *fakeStorage) LoadBreadth(context.Context) (models.BreadthSeries, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.daily, s.err
}

func (s *fakeStorage) LoadSectors(context.Context) (models.SectorSeries, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sectors, s.err
}

func (s *fakeStorage) LatestDetails(context.Context) ([]models.StockChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.details, s.err
}

func (s *fakeStorage) Health(context.Context) error { return nil }

func (s *fakeStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*drepo.SnapshotEvent
	err    error
	closed bool
}

func (p *fakePublisher) Publish(_ context.Context, ev *drepo.SnapshotEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *fakePublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

type fakeDirectory struct {
	listings []drepo.Listing
	err      error
}

func (d *fakeDirectory) List(context.Context) ([]drepo.Listing, error) {
	return d.listings, d.err
}

// fakeQuotes resolves changes from a fixed table; absent symbols are
// reported as lacking closes.
type fakeQuotes struct {
	changes map[string]float64
}

func (q *fakeQuotes) DailyChange(_ context.Context, symbol string) (float64, bool, error) {
	pct, ok := q.changes[symbol]
	return pct, ok, nil
}

func (q *fakeQuotes) ChangeOn(_ context.Context, symbol string, _ time.Time) (float64, bool, error) {
	pct, ok := q.changes[symbol]
	return pct, ok, nil
}

type queuedMessage struct {
	msgType string
	payload interface{}
}

type fakeQueue struct {
	mu       sync.Mutex
	messages []queuedMessage
	err      error
}

func (q *fakeQueue) PublishMessage(_ context.Context, msgType string, payload interface{}) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.messages = append(q.messages, queuedMessage{msgType: msgType, payload: payload})
	return nil
}
