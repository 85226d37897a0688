//go:build wireinject
// +build wireinject

package di

import (
	"EdgeScan/pkg/config"
	"EdgeScan/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideSeriesProvider,
		ProvideResultStore,
		ProvideReportPublisher,

		// Analysis components
		ProvideDetectConfig,
		ProvideEvaluator,
		ProvideEstimator,
		ProvideTester,

		// Use cases
		ProvideScanner,
		ProvideReportProcessor,
		ProvideScanQueue,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
