package repository

import (
	"context"

	"EdgeScan/internal/domain/models"
)

// SeriesProvider fetches one instrument's daily history. A failure excludes
// that instrument from the current run; callers never retry here.
type SeriesProvider interface {
	Fetch(ctx context.Context, ticker string, period Period) (*models.MarketSeries, error)
}

// ResultStore persists finished scan reports for later querying.
type ResultStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, report *models.ScanReport) error
	Query(ctx context.Context, symbol string, limit int) ([]*models.ScanReport, error)
	Health(ctx context.Context) error // ping
	Close() error
}

// ReportPublisher pushes finished scan reports to downstream consumers.
type ReportPublisher interface {
	Publish(ctx context.Context, report *models.ScanReport) error
	Close() error
}

// Metrics abstracts scan instrumentation.
type Metrics interface {
	RecordScan(symbol string)
	RecordSituations(symbol string, total, significant int)
	RecordError(kind string)
	RecordScanDuration(symbol string, seconds float64)
}
