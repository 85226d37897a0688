package di

import (
	"fmt"

	"EdgeScan/internal/domain/repository"
	internalrepo "EdgeScan/internal/repository"
	"EdgeScan/internal/service/marketdata"
	"EdgeScan/internal/services/detect"
	"EdgeScan/internal/services/edge"
	"EdgeScan/internal/services/robust"
	"EdgeScan/internal/services/shuffle"
	"EdgeScan/internal/usecase"
	pkgcache "EdgeScan/pkg/cache"
	pkgch "EdgeScan/pkg/clickhouse"
	"EdgeScan/pkg/config"
	pkgkafka "EdgeScan/pkg/kafka"
	"EdgeScan/pkg/logger"
	"EdgeScan/pkg/metrics"
	pkgqueue "EdgeScan/pkg/queue"
	"EdgeScan/pkg/server"

	"github.com/redis/go-redis/v9"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
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

// ProvideKafkaProducer creates a Kafka producer, or nil when no brokers are
// configured (the kafka sink is optional).
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.BatchTimeout),
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

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSeriesProvider creates the market data provider, wrapped in a Redis
// read-through cache when enabled.
func ProvideSeriesProvider(cfg *config.Config, log *logger.Logger) (repository.SeriesProvider, error) {
	provider := marketdata.New(
		cfg.Provider.APIKey,
		cfg.Provider.BaseURL,
		cfg.Provider.Timeout,
		cfg.Provider.ReqPerSec,
		cfg.Provider.Burst,
	)

	if !cfg.Redis.Enabled || !cfg.Provider.UseCache {
		return provider, nil
	}

	redisCache, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Redis.Host),
		pkgcache.WithRedisPort(cfg.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
		pkgcache.WithRedisPool(cfg.Redis.PoolSize, cfg.Redis.MinIdleConns, cfg.Redis.PoolTimeout),
		pkgcache.WithRedisPrefix("edgescan"),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	layered := pkgcache.NewLayeredCache(redisCache)
	return marketdata.NewCachedProvider(provider, layered, cfg.Provider.CacheTTL, log), nil
}

// ProvideResultStore creates ClickHouse report storage.
func ProvideResultStore(chClient *pkgch.Client, cfg *config.Config) repository.ResultStore {
	return internalrepo.NewClickHouseResultStore(chClient.DB(), cfg.ClickHouse.Database+"."+cfg.ClickHouse.Table)
}

// ProvideReportPublisher creates the Kafka report publisher.
func ProvideReportPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.ReportPublisher {
	return internalrepo.NewKafkaReportPublisher(producer, cfg.Kafka.Topic)
}

// ProvideDetectConfig builds detector settings from the exposed knobs.
func ProvideDetectConfig(cfg *config.Config) detect.Config {
	dc := detect.DefaultConfig()
	dc.PivotWindow = cfg.Detect.PivotWindow
	dc.LookbackWindow = cfg.Detect.LookbackWindow
	dc.MinDeclinePct = cfg.Detect.MinDeclinePct
	dc.PairTolerance = cfg.Detect.PairTolerance
	dc.MinBouncePct = cfg.Detect.MinBouncePct
	dc.RequireVolumeDrop = cfg.Detect.RequireVolumeDrop
	dc.MomentumThreshold = cfg.Detect.MomentumThreshold
	dc.VolumeSurgeRatio = cfg.Detect.VolumeSurgeRatio
	dc.GapThreshold = cfg.Detect.GapThreshold
	return dc
}

// ProvideEvaluator creates the robustness evaluator.
func ProvideEvaluator(cfg *config.Config) *robust.Evaluator {
	return robust.NewEvaluator(robust.Config{
		MinOccurrences: cfg.Evaluator.MinOccurrences,
		MinConfidence:  cfg.Evaluator.MinConfidence,
	})
}

// ProvideEstimator creates the Bayesian edge estimator.
func ProvideEstimator(cfg *config.Config) *edge.Estimator {
	return edge.NewEstimator(edge.Config{
		PriorStd:            cfg.Edge.PriorStd,
		SurvivorshipPenalty: cfg.Edge.SurvivorshipPenalty,
		MinThreshold:        cfg.Edge.MinThreshold,
		TransactionCost:     cfg.Edge.TransactionCost,
	})
}

// ProvideTester creates the permutation tester.
func ProvideTester(cfg *config.Config) *shuffle.Tester {
	return shuffle.NewTester(shuffle.Config{
		NPermutations: cfg.Permutation.NPermutations,
		Seed:          cfg.Permutation.Seed,
	})
}

// ProvideScanner creates the scan use case.
func ProvideScanner(
	provider repository.SeriesProvider,
	evaluator *robust.Evaluator,
	estimator *edge.Estimator,
	tester *shuffle.Tester,
	detectCfg detect.Config,
	m repository.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.Scanner {
	return usecase.NewScanner(
		provider,
		evaluator,
		estimator,
		tester,
		detectCfg,
		cfg.Scan.Horizons,
		cfg.Scan.Workers,
		m,
		log,
	)
}

// ProvideReportProcessor creates the report delivery use case.
func ProvideReportProcessor(
	pub repository.ReportPublisher,
	store repository.ResultStore,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.ReportProcessor {
	return usecase.NewReportProcessor(pub, store, m, cfg.Scan.Sinks)
}

// ProvideScanQueue creates the Redis-backed scan queue, or nil when queued
// scans are disabled.
func ProvideScanQueue(cfg *config.Config, log *logger.Logger) *pkgqueue.RedisQueue {
	if !cfg.Queue.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return pkgqueue.NewRedisQueue(log, &pkgqueue.QueueConfig{
		Workers:    cfg.Queue.Workers,
		RetryLimit: cfg.Queue.RetryLimit,
		RetryDelay: cfg.Queue.RetryDelay,
	}, client, pkgqueue.WithKeyPrefix("edgescan:queue"))
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	scanner *usecase.Scanner,
	processor *usecase.ReportProcessor,
	store repository.ResultStore,
	chClient *pkgch.Client,
	scanQueue *pkgqueue.RedisQueue,
) *server.App {
	return server.New(cfg, log, scanner, processor, store, chClient, scanQueue)
}
