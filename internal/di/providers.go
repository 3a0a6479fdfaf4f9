package di

import (
	"fmt"
	"net"
	"strconv"

	"github.com/redis/go-redis/v9"

	"BreadthPulse/internal/domain/repository"
	"BreadthPulse/internal/handler/api"
	mid "BreadthPulse/internal/middleware"
	internalrepo "BreadthPulse/internal/repository"
	"BreadthPulse/internal/services/intelligence"
	"BreadthPulse/internal/services/movement"
	"BreadthPulse/internal/services/nse"
	"BreadthPulse/internal/services/quotes"
	"BreadthPulse/internal/usecase"
	"BreadthPulse/pkg/cache"
	pkgch "BreadthPulse/pkg/clickhouse"
	"BreadthPulse/pkg/config"
	pkgkafka "BreadthPulse/pkg/kafka"
	"BreadthPulse/pkg/logger"
	"BreadthPulse/pkg/metrics"
	"BreadthPulse/pkg/queue"
	"BreadthPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	lc := &logger.Config{Level: "info", Format: "json", Output: "stdout"}
	if cfg.Environment == "development" {
		lc.Level = "debug"
		lc.Format = "console"
	}
	return logger.New(lc)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client. The csv backend
// keeps everything on disk, so no client is opened for it.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Backend.Type == "csv" {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideStorage creates the snapshot storage for the configured backend.
// Schema setup happens in Storage.Init during app startup.
func ProvideStorage(chClient *pkgch.Client, cfg *config.Config) (repository.Storage, error) {
	if cfg.Backend.Type == "csv" {
		return internalrepo.NewCSVStorage(cfg.Tracker.DataDir), nil
	}
	if chClient == nil {
		return nil, fmt.Errorf("backend %s requires a clickhouse client", cfg.Backend.Type)
	}
	return internalrepo.NewClickHouseStorage(chClient.DB(), cfg.ClickHouse.Database, cfg.Backend.BatchSize), nil
}

// ProvideKafkaProducer creates a Kafka producer for the kafka backend.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePublisher creates the snapshot publisher. Nil when the backend
// writes to storage directly.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates a Kafka consumer for the kafka backend.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}

	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideSnapshotsHandler registers the handler that drains snapshot
// events from the kafka topic into storage.
func ProvideSnapshotsHandler(store repository.Storage, m repository.Metrics, cfg *config.Config) *usecase.KafkaSnapshotsHandler {
	return usecase.NewKafkaSnapshotsHandler(cfg.Kafka.Topic, store, m)
}

// ProvideDirectory creates the exchange listing directory.
func ProvideDirectory(cfg *config.Config, lgr *logger.Logger) repository.StockDirectory {
	return nse.NewDirectory(cfg.Market.ListURL, cfg.Market.ListTimeout, lgr)
}

// ProvideQuoteSource creates the daily quote source.
func ProvideQuoteSource(cfg *config.Config, lgr *logger.Logger) repository.QuoteSource {
	return quotes.NewSource(quotes.Config{
		BaseURL:       cfg.Market.QuoteBaseURL,
		Timeout:       cfg.Market.QuoteTimeout,
		RatePerSecond: cfg.Market.RatePerSecond,
		RateBurst:     cfg.Market.RateBurst,
	}, lgr)
}

// ProvideSnapshotProcessor routes snapshot events to the configured backend.
func ProvideSnapshotProcessor(
	pub repository.Publisher,
	store repository.Storage,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.SnapshotProcessor {
	return usecase.NewSnapshotProcessor(pub, store, m, cfg.Backend.Type)
}

// ProvideSnapshotPipeline builds the validation and dedup pipeline
// between the tracker and the backend.
func ProvideSnapshotPipeline(proc *usecase.SnapshotProcessor, m repository.Metrics) *mid.SnapshotPipeline {
	return mid.NewSnapshotPipeline(proc, m)
}

// ProvideTracker creates the daily tracking use case.
func ProvideTracker(
	directory repository.StockDirectory,
	source repository.QuoteSource,
	pipe *mid.SnapshotPipeline,
	m repository.Metrics,
	cfg *config.Config,
	lgr *logger.Logger,
) *usecase.Tracker {
	agg := movement.NewAggregator(nil)
	return usecase.NewTracker(directory, source, agg, pipe, m, lgr, cfg.Market.MaxConcurrency)
}

// ProvideCache creates the analytics result cache. Redis when enabled,
// otherwise in-memory.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Analytics.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	host, port, err := splitAddr(cfg.Analytics.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	c, err := cache.NewRedisCache(
		cache.WithRedisHost(host),
		cache.WithRedisPort(port),
		cache.WithRedisPassword(cfg.Analytics.Redis.Password),
		cache.WithRedisDB(cfg.Analytics.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return c, nil
}

// ProvideQueue creates the background job queue. Redis-backed when
// Redis is configured, otherwise jobs run in-process.
func ProvideQueue(cfg *config.Config, lgr *logger.Logger) (queue.JobQueue, error) {
	if !cfg.Analytics.Redis.Enabled {
		return queue.NewInlineQueue(lgr), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Analytics.Redis.Addr,
		Password: cfg.Analytics.Redis.Password,
		DB:       cfg.Analytics.Redis.DB,
	})

	opts := []queue.RedisQueueOption{}
	if cfg.Queue.Key != "" {
		opts = append(opts, queue.WithKeyPrefix(cfg.Queue.Key))
	}
	q := queue.NewRedisQueue(lgr, &queue.QueueConfig{
		Workers:   cfg.Queue.Workers,
		RetryPoll: cfg.Queue.PollEvery,
	}, client, queue.ModeProducerConsumer, opts...)
	return q, nil
}

// ProvideBackfill creates the backfill scheduler.
func ProvideBackfill(q queue.JobQueue, lgr *logger.Logger) *usecase.Backfill {
	return usecase.NewBackfill(q, lgr)
}

// ProvideBackfillJob creates the per-day backfill worker job.
func ProvideBackfillJob(tracker *usecase.Tracker, lgr *logger.Logger) *usecase.BackfillJob {
	return usecase.NewBackfillJob(tracker, lgr)
}

// ProvideIntelligence wires the analytics engines over storage.
func ProvideIntelligence(
	store repository.Storage,
	c cache.Service,
	cfg *config.Config,
	lgr *logger.Logger,
) *usecase.Intelligence {
	ttl := usecase.IntelligenceTTL{
		Score:    cfg.Analytics.CacheTTL.Score,
		Forecast: cfg.Analytics.CacheTTL.Forecast,
		Sectors:  cfg.Analytics.CacheTTL.Sectors,
		Report:   cfg.Analytics.CacheTTL.Report,
	}
	return usecase.NewIntelligence(
		store,
		intelligence.NewScoreEngine(),
		intelligence.NewContextEngine(),
		intelligence.NewForecastEngine(),
		intelligence.NewDivergenceEngine(),
		intelligence.NewSectorEngine(),
		intelligence.NewRiskEngine(),
		c,
		ttl,
		lgr,
	)
}

// ProvideHandler creates the HTTP handler with all endpoints.
func ProvideHandler(
	lgr *logger.Logger,
	intel *usecase.Intelligence,
	tracker *usecase.Tracker,
	backfill *usecase.Backfill,
) *api.BreadthEchoHandler {
	return api.NewBreadthEchoHandler(lgr, intel, tracker, backfill)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	lgr *logger.Logger,
	handler *api.BreadthEchoHandler,
	tracker *usecase.Tracker,
	pipe *mid.SnapshotPipeline,
	proc *usecase.SnapshotProcessor,
	intel *usecase.Intelligence,
	q queue.JobQueue,
	backfillJob *usecase.BackfillJob,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaSnapshotsHandler,
	store repository.Storage,
	chClient *pkgch.Client,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	q.RegisterJob(backfillJob)
	return server.New(cfg, lgr, handler, tracker, pipe, proc, intel, q, consumer, kh, store, chClient)
}

func splitAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, err
	}
	return host, port, nil
}
