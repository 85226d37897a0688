// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"EdgeScan/pkg/config"
	"EdgeScan/pkg/server"
)

// Injectors from wire.go:

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, err
	}
	seriesProvider, err := ProvideSeriesProvider(cfg, logger)
	if err != nil {
		return nil, err
	}
	evaluator := ProvideEvaluator(cfg)
	estimator := ProvideEstimator(cfg)
	tester := ProvideTester(cfg)
	detectConfig := ProvideDetectConfig(cfg)
	metrics := ProvideMetrics()
	scanner := ProvideScanner(seriesProvider, evaluator, estimator, tester, detectConfig, metrics, logger, cfg)
	producer, err := ProvideKafkaProducer(cfg)
	if err != nil {
		return nil, err
	}
	reportPublisher := ProvideReportPublisher(producer, cfg)
	client, err := ProvideClickHouseClient(cfg)
	if err != nil {
		return nil, err
	}
	resultStore := ProvideResultStore(client, cfg)
	reportProcessor := ProvideReportProcessor(reportPublisher, resultStore, metrics, cfg)
	redisQueue := ProvideScanQueue(cfg, logger)
	app := ProvideApp(cfg, logger, scanner, reportProcessor, resultStore, client, redisQueue)
	return app, nil
}
