package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	domrepo "BreadthPulse/internal/domain/repository"
)

// Proc is the minimal processor interface the pipeline needs.
type Proc interface {
	Process(ctx context.Context, ev *domrepo.SnapshotEvent) error
}

// SnapshotPipeline sits between the tracker and the storage backend.
// It validates events, de-duplicates repeated runs for the same date,
// and buffers events while downstream is unavailable so a tracking run
// never loses its snapshot to a transient backend failure.
type SnapshotPipeline struct {
	proc    Proc
	metrics domrepo.Metrics
	bufSize int
	bufCh   chan *domrepo.SnapshotEvent
	stopCh  chan struct{}
	started bool
	mu      sync.Mutex
	// last accepted event per date; repeated runs replace, not append
	lastSeen map[string]time.Time
	// minimum interval between accepted events for the same date
	dedupWindow time.Duration
	transform   func(*domrepo.SnapshotEvent) *domrepo.SnapshotEvent
}

type PipelineOption func(*SnapshotPipeline)

// WithBufferSize sets the temporary buffer size when downstream is unavailable.
func WithBufferSize(n int) PipelineOption {
	return func(p *SnapshotPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// WithDedupWindow sets the minimum spacing between accepted events per date.
func WithDedupWindow(d time.Duration) PipelineOption {
	return func(p *SnapshotPipeline) {
		if d > 0 {
			p.dedupWindow = d
		}
	}
}

// WithTransform sets a hook to rewrite events before forwarding.
func WithTransform(fn func(*domrepo.SnapshotEvent) *domrepo.SnapshotEvent) PipelineOption {
	return func(p *SnapshotPipeline) { p.transform = fn }
}

// NewSnapshotPipeline creates a new pipeline.
func NewSnapshotPipeline(pr Proc, metrics domrepo.Metrics, opts ...PipelineOption) *SnapshotPipeline {
	p := &SnapshotPipeline{
		proc:        pr,
		metrics:     metrics,
		bufSize:     64,
		bufCh:       make(chan *domrepo.SnapshotEvent, 64),
		stopCh:      make(chan struct{}),
		lastSeen:    make(map[string]time.Time),
		dedupWindow: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufSize != cap(p.bufCh) {
		p.bufCh = make(chan *domrepo.SnapshotEvent, p.bufSize)
	}
	return p
}

// Start launches background flushing of buffered events.
func (p *SnapshotPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 500 * time.Millisecond
		for {
			select {
			case <-p.stopCh:
				return
			case ev := <-p.bufCh:
				if ev == nil {
					continue
				}
				if err := p.proc.Process(ctx, ev); err != nil {
					if backoff < 30*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("pipeline_flush")
					time.Sleep(backoff)
					// requeue if space; drop otherwise
					select {
					case p.bufCh <- ev:
					default:
						p.metrics.RecordError("pipeline_buffer_drop")
					}
				} else {
					backoff = 500 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing.
func (p *SnapshotPipeline) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()
	close(p.stopCh)
}

// Process validates and forwards an event to downstream, buffering on errors.
func (p *SnapshotPipeline) Process(ctx context.Context, ev *domrepo.SnapshotEvent) error {
	start := time.Now()
	if err := validateEvent(ev); err != nil {
		p.metrics.RecordError("pipeline_validate")
		return err
	}
	if p.transform != nil {
		ev = p.transform(ev)
		if err := validateEvent(ev); err != nil {
			p.metrics.RecordError("pipeline_transform_invalid")
			return err
		}
	}
	if !p.allow(ev.Date.Format("2006-01-02"), start) {
		p.metrics.RecordError("pipeline_duplicate")
		return nil
	}

	if err := p.proc.Process(ctx, ev); err != nil {
		p.metrics.RecordError("pipeline_process")
		// buffer non-blocking
		select {
		case p.bufCh <- ev:
		default:
			p.metrics.RecordError("pipeline_buffer_full")
		}
		return fmt.Errorf("pipeline downstream: %w", err)
	}
	p.metrics.RecordLatency("pipeline_process", time.Since(start).Seconds())
	return nil
}

func validateEvent(ev *domrepo.SnapshotEvent) error {
	if ev == nil {
		return fmt.Errorf("event nil")
	}
	if ev.Date.IsZero() {
		return fmt.Errorf("date missing")
	}
	if ev.Daily.Total() < 0 {
		return fmt.Errorf("negative counts")
	}
	for _, s := range ev.Sectors {
		if s.Sector == "" {
			return fmt.Errorf("sector name empty")
		}
		if s.Up3Plus+s.Down3Plus+s.Neutral != s.Total {
			return fmt.Errorf("sector %s counts do not sum to total", s.Sector)
		}
	}
	return nil
}

func (p *SnapshotPipeline) allow(dateKey string, now time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	last := p.lastSeen[dateKey]
	if !last.IsZero() && now.Sub(last) < p.dedupWindow {
		return false
	}
	p.lastSeen[dateKey] = now
	return true
}
