package usecase

import (
	"context"
	"fmt"

	"EdgeScan/internal/domain/models"
	drepo "EdgeScan/internal/domain/repository"
)

// ReportProcessor routes finished scan reports to the configured sinks.
type ReportProcessor struct {
	pub     drepo.ReportPublisher
	store   drepo.ResultStore
	metrics drepo.Metrics
	sinks   []string
}

// NewReportProcessor creates a new ReportProcessor instance.
func NewReportProcessor(
	pub drepo.ReportPublisher,
	store drepo.ResultStore,
	metrics drepo.Metrics,
	sinks []string,
) *ReportProcessor {
	return &ReportProcessor{
		pub:     pub,
		store:   store,
		metrics: metrics,
		sinks:   sinks,
	}
}

// Process delivers a single report to every configured sink.
func (p *ReportProcessor) Process(ctx context.Context, report *models.ScanReport) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	for _, sink := range p.sinks {
		var err error
		switch sink {
		case "kafka":
			err = p.pub.Publish(ctx, report)
		case "clickhouse":
			err = p.store.Store(ctx, report)
		default:
			err = fmt.Errorf("unknown sink: %s", sink)
		}
		if err != nil {
			p.metrics.RecordError("process")
			return fmt.Errorf("process report %s via %s: %w", report.Symbol, sink, err)
		}
	}
	return nil
}

// ProcessBatch delivers multiple reports, stopping on the first sink error.
func (p *ReportProcessor) ProcessBatch(ctx context.Context, reports []*models.ScanReport) error {
	for _, r := range reports {
		if err := p.Process(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes underlying resources if available.
func (p *ReportProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
