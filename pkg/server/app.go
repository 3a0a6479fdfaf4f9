package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"BreadthPulse/internal/domain/repository"
	"BreadthPulse/internal/handler/api"
	mid "BreadthPulse/internal/middleware"
	"BreadthPulse/internal/usecase"
	pkgch "BreadthPulse/pkg/clickhouse"
	"BreadthPulse/pkg/config"
	xhttp "BreadthPulse/pkg/http"
	pkgkafka "BreadthPulse/pkg/kafka"
	applogger "BreadthPulse/pkg/logger"
	"BreadthPulse/pkg/queue"
)

// App encapsulates the entire application lifecycle: storage schema,
// the snapshot pipeline, the cron-driven tracker, the optional kafka
// consumer, the job queue and the HTTP API.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    *api.BreadthEchoHandler
	tracker    *usecase.Tracker
	pipe       *mid.SnapshotPipeline
	proc       *usecase.SnapshotProcessor
	intel      *usecase.Intelligence
	queue      queue.JobQueue
	consumer   *pkgkafka.Consumer
	kh         *usecase.KafkaSnapshotsHandler
	store      repository.Storage
	chClient   *pkgch.Client
	httpServer *xhttp.Server
	cron       *cron.Cron
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	lgr *applogger.Logger,
	handler *api.BreadthEchoHandler,
	tracker *usecase.Tracker,
	pipe *mid.SnapshotPipeline,
	proc *usecase.SnapshotProcessor,
	intel *usecase.Intelligence,
	q queue.JobQueue,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaSnapshotsHandler,
	store repository.Storage,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:      cfg,
		logger:   lgr,
		handler:  handler,
		tracker:  tracker,
		pipe:     pipe,
		proc:     proc,
		intel:    intel,
		queue:    q,
		consumer: consumer,
		kh:       kh,
		store:    store,
		chClient: chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := a.logger

	if err := a.store.Init(ctx); err != nil {
		l.Error("storage init error", applogger.Error(err))
		return err
	}
	l.Info("storage ready", applogger.String("backend", a.cfg.Backend.Type))

	a.pipe.Start(ctx)

	if err := a.queue.Start(); err != nil {
		l.Error("job queue start error", applogger.Error(err))
		return err
	}

	// Consumer side of the kafka backend drains snapshot events into storage.
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	if err := a.startCron(ctx); err != nil {
		return err
	}

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
	}
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}
	l.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// startCron schedules the daily tracking run. An empty schedule
// disables it; tracking can still be triggered over HTTP.
func (a *App) startCron(ctx context.Context) error {
	run := func() {
		if err := a.tracker.TrackToday(ctx); err != nil {
			a.logger.Error("scheduled tracking failed", applogger.Error(err))
			return
		}
		a.intel.Invalidate(ctx)
	}

	if a.cfg.Tracker.RunOnStart {
		go run()
	}
	if a.cfg.Tracker.Schedule == "" {
		return nil
	}

	a.cron = cron.New()
	if _, err := a.cron.AddFunc(a.cfg.Tracker.Schedule, run); err != nil {
		a.logger.Error("invalid tracker schedule",
			applogger.String("schedule", a.cfg.Tracker.Schedule),
			applogger.Error(err))
		return err
	}
	a.cron.Start()
	a.logger.Info("tracker scheduled", applogger.String("schedule", a.cfg.Tracker.Schedule))
	return nil
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l := a.logger
	l.Info("shutting down...")

	if a.cron != nil {
		cronCtx := a.cron.Stop()
		<-cronCtx.Done()
	}

	// Pipeline first so buffered snapshots drain into the processor.
	a.pipe.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	if err := a.queue.Stop(shutdownCtx); err != nil {
		l.Warn("job queue stop error", applogger.Error(err))
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Closes the publisher and storage behind the processor.
	a.proc.Close()

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}
