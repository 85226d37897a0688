package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"EdgeScan/internal/domain/repository"
	"EdgeScan/internal/handler/api"
	"EdgeScan/internal/usecase"
	pkgch "EdgeScan/pkg/clickhouse"
	"EdgeScan/pkg/config"
	xhttp "EdgeScan/pkg/http"
	applogger "EdgeScan/pkg/logger"
	pkgqueue "EdgeScan/pkg/queue"
)

// App encapsulates the entire application lifecycle: the periodic scan
// scheduler, the HTTP API, and infrastructure shutdown.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	scanner    *usecase.Scanner
	processor  *usecase.ReportProcessor
	store      repository.ResultStore
	chClient   *pkgch.Client
	scanQueue  *pkgqueue.RedisQueue
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	scanner *usecase.Scanner,
	processor *usecase.ReportProcessor,
	store repository.ResultStore,
	chClient *pkgch.Client,
	scanQueue *pkgqueue.RedisQueue,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		scanner:   scanner,
		processor: processor,
		store:     store,
		chClient:  chClient,
		scanQueue: scanQueue,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initCtx, initCancel := context.WithTimeout(ctx, 10*time.Second)
	defer initCancel()
	if err := a.store.Init(initCtx); err != nil {
		a.log.Error("result store init failed", applogger.Error(err))
		return err
	}

	if a.scanQueue != nil {
		a.scanQueue.RegisterJob(usecase.NewScanJob(a.scanner, a.processor))
		if err := a.scanQueue.Start(); err != nil {
			a.log.Error("scan queue start failed", applogger.Error(err))
			return err
		}
	}

	handler := api.NewScanEchoHandler(a.log, a.scanner, a.store)
	a.httpServer = xhttp.NewServer(handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	go a.scheduler(ctx)
	a.log.Info("scan scheduler started",
		applogger.Strings("tickers", a.cfg.Scan.Tickers),
		applogger.String("period", a.cfg.Scan.Period),
		applogger.Duration("interval", a.cfg.Scan.Interval))

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// scheduler runs a full universe scan immediately and then on every tick.
func (a *App) scheduler(ctx context.Context) {
	a.runScan(ctx)

	ticker := time.NewTicker(a.cfg.Scan.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.runScan(ctx)
		}
	}
}

func (a *App) runScan(ctx context.Context) {
	// With the queue enabled each ticker becomes a durable task; otherwise
	// the universe is scanned in-process.
	if a.scanQueue != nil {
		for _, t := range a.cfg.Scan.Tickers {
			task := usecase.ScanTask{Ticker: t, Period: a.cfg.Scan.Period}
			if err := a.scanQueue.Enqueue(ctx, usecase.ScanTaskType, task); err != nil {
				a.log.Error("enqueue scan task failed",
					applogger.String("ticker", t),
					applogger.Error(err))
			}
		}
		return
	}

	period := repository.NormalizePeriod(a.cfg.Scan.Period)
	reports := a.scanner.ScanUniverse(ctx, a.cfg.Scan.Tickers, period)

	if len(a.cfg.Scan.Sinks) == 0 {
		return
	}
	if err := a.processor.ProcessBatch(ctx, reports); err != nil {
		a.log.Error("report delivery failed", applogger.Error(err))
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.scanQueue != nil {
		if err := a.scanQueue.Stop(shutdownCtx); err != nil {
			a.log.Warn("scan queue stop error", applogger.Error(err))
		}
	}

	a.processor.Close()

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
