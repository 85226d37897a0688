package usecase

import (
	"context"
	"fmt"

	drepo "EdgeScan/internal/domain/repository"
	"EdgeScan/pkg/queue"
)

// ScanTaskType is the queue message type for per-ticker scan tasks.
const ScanTaskType = "scan.ticker"

// ScanTask is the payload of one queued scan.
type ScanTask struct {
	Ticker string `json:"ticker"`
	Period string `json:"period"`
}

// ScanJob consumes queued scan tasks: it runs the pipeline for one ticker
// and delivers the report to the configured sinks. Queued scans survive a
// process restart, unlike the in-process universe walk.
type ScanJob struct {
	scanner   *Scanner
	processor *ReportProcessor
}

func NewScanJob(scanner *Scanner, processor *ReportProcessor) *ScanJob {
	return &ScanJob{scanner: scanner, processor: processor}
}

func (j *ScanJob) Name() string { return "scan_ticker" }

func (j *ScanJob) Type() string { return ScanTaskType }

func (j *ScanJob) Handle(ctx context.Context, payload interface{}) error {
	task, err := queue.ParsePayload[ScanTask](payload)
	if err != nil {
		return fmt.Errorf("scan task payload: %w", err)
	}

	report, err := j.scanner.Scan(ctx, task.Ticker, drepo.NormalizePeriod(task.Period))
	if err != nil {
		return err
	}
	return j.processor.Process(ctx, report)
}
