//go:build wireinject
// +build wireinject

package di

import (
	"BreadthPulse/pkg/config"
	"BreadthPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideCache,
		ProvideQueue,

		// Repositories
		ProvideStorage,
		ProvidePublisher,
		ProvideDirectory,
		ProvideQuoteSource,

		// Use cases
		ProvideSnapshotProcessor,
		ProvideSnapshotPipeline,
		ProvideTracker,
		ProvideBackfill,
		ProvideBackfillJob,
		ProvideIntelligence,
		ProvideSnapshotsHandler,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
