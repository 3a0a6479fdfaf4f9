package usecase

import (
	"context"
	"encoding/json"
	"time"

	"BreadthPulse/internal/domain/models"
	domrepo "BreadthPulse/internal/domain/repository"
	pkgkafka "BreadthPulse/pkg/kafka"
)

// KafkaSnapshotsHandler consumes snapshot events and writes them to
// storage. It is the consumer half of the kafka backend: the tracker
// publishes, this drains into the persistent history.
type KafkaSnapshotsHandler struct {
	topic   string
	storage domrepo.Storage
	metrics domrepo.Metrics
}

func NewKafkaSnapshotsHandler(topic string, storage domrepo.Storage, metrics domrepo.Metrics) *KafkaSnapshotsHandler {
	return &KafkaSnapshotsHandler{topic: topic, storage: storage, metrics: metrics}
}

func (h *KafkaSnapshotsHandler) Topic() string { return h.topic }

func (h *KafkaSnapshotsHandler) Handle(ctx context.Context, b []byte) error {
	var ev domrepo.SnapshotEvent
	if err := json.Unmarshal(b, &ev); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if ev.Date.IsZero() {
		h.metrics.RecordError("consumer_validate")
		// nothing to retry; commit and move on
		return nil
	}

	start := time.Now()
	if err := h.storage.UpsertDaily(ctx, ev.Daily); err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	if err := h.storage.UpsertSectors(ctx, ev.Date, ev.Sectors); err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	if len(ev.Details) > 0 {
		if err := h.storage.SaveDetails(ctx, ev.Date, ev.Details); err != nil {
			h.metrics.RecordError("consumer_store")
			return err
		}
	}
	h.metrics.RecordLatency("store_snapshot", time.Since(start).Seconds())
	h.metrics.RecordSnapshotStored("clickhouse", models.DateKey(ev.Date))
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaSnapshotsHandler)(nil)
