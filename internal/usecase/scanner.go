package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"EdgeScan/internal/domain/models"
	drepo "EdgeScan/internal/domain/repository"
	"EdgeScan/internal/services/confidence"
	"EdgeScan/internal/services/detect"
	"EdgeScan/internal/services/edge"
	"EdgeScan/internal/services/outcome"
	"EdgeScan/internal/services/robust"
	"EdgeScan/internal/services/shuffle"
	"EdgeScan/pkg/logger"
)

// Scanner runs the full detection and significance pipeline for one or more
// instruments. It holds no per-scan state, so a single Scanner is safe to
// share across concurrent scans.
type Scanner struct {
	provider  drepo.SeriesProvider
	evaluator *robust.Evaluator
	estimator *edge.Estimator
	tester    *shuffle.Tester
	detectCfg detect.Config
	horizons  []int
	workers   int
	metrics   drepo.Metrics
	log       *logger.Logger
}

// NewScanner creates a Scanner.
func NewScanner(
	provider drepo.SeriesProvider,
	evaluator *robust.Evaluator,
	estimator *edge.Estimator,
	tester *shuffle.Tester,
	detectCfg detect.Config,
	horizons []int,
	workers int,
	metrics drepo.Metrics,
	log *logger.Logger,
) *Scanner {
	if workers <= 0 {
		workers = 4
	}
	return &Scanner{
		provider:  provider,
		evaluator: evaluator,
		estimator: estimator,
		tester:    tester,
		detectCfg: detectCfg,
		horizons:  horizons,
		workers:   workers,
		metrics:   metrics,
		log:       log,
	}
}

// Scan fetches one instrument's history and analyzes it.
func (s *Scanner) Scan(ctx context.Context, ticker string, period drepo.Period) (*models.ScanReport, error) {
	start := time.Now()

	series, err := s.provider.Fetch(ctx, ticker, period)
	if err != nil {
		s.metrics.RecordError("fetch")
		return nil, fmt.Errorf("scan %s: %w", ticker, err)
	}

	report := s.Analyze(ctx, series)

	significant := 0
	for _, sit := range report.Situations {
		if sit.Significant {
			significant++
		}
	}
	s.metrics.RecordScan(ticker)
	s.metrics.RecordSituations(ticker, len(report.Situations), significant)
	s.metrics.RecordScanDuration(ticker, time.Since(start).Seconds())

	s.log.Info("scan finished",
		logger.String("ticker", ticker),
		logger.Int("bars", report.Bars),
		logger.Int("situations", len(report.Situations)),
		logger.Int("significant", significant),
		logger.Duration("elapsed", time.Since(start)))

	return report, nil
}

// Analyze runs detection and all statistical analyses on an already-fetched
// series. It is pure: same series and config always produce the same report.
func (s *Scanner) Analyze(ctx context.Context, series *models.MarketSeries) *models.ScanReport {
	report := &models.ScanReport{
		Symbol:      series.Symbol(),
		GeneratedAt: time.Now().UTC(),
		Bars:        series.Len(),
	}

	current := detect.All(series, s.detectCfg)
	if len(current) == 0 {
		return report
	}
	structuralOcc := ReplayStructural(series, s.detectCfg)
	baselines := s.baselines(series)

	for _, sit := range current {
		select {
		case <-ctx.Done():
			return report
		default:
		}

		indices := sit.Indices
		if sit.Priority == models.PriorityPrimary {
			indices = structuralOcc[sit.Name]
		}
		report.Situations = append(report.Situations, s.analyzeSituation(series, sit, indices, baselines))
	}

	sort.Slice(report.Situations, func(i, j int) bool {
		a, b := report.Situations[i], report.Situations[j]
		if a.Significant != b.Significant {
			return a.Significant
		}
		if a.BestScore != b.BestScore {
			return a.BestScore > b.BestScore
		}
		return a.Name < b.Name
	})
	return report
}

// baselines precomputes, per horizon, the forward returns of every bar in
// the series. The permutation tester draws its null samples from these.
func (s *Scanner) baselines(series *models.MarketSeries) map[int][]float64 {
	all := make([]int, series.Len())
	for i := range all {
		all[i] = i
	}
	out := make(map[int][]float64, len(s.horizons))
	for _, h := range s.horizons {
		out[h] = outcome.ForwardReturns(series, all, h)
	}
	return out
}

// analyzeSituation runs the four per-horizon analyses. Within one horizon
// they are independent and run concurrently; the WaitGroup is the barrier
// before the horizon's result is assembled.
func (s *Scanner) analyzeSituation(
	series *models.MarketSeries,
	sit models.Situation,
	indices []int,
	baselines map[int][]float64,
) models.SituationReport {
	sr := models.SituationReport{
		Symbol:      series.Symbol(),
		Name:        sit.Name,
		Kind:        sit.Kind,
		Priority:    sit.Priority,
		Description: sit.Description,
		Occurrences: len(indices),
	}
	if sit.Details != nil {
		sr.Metadata = sit.Details.Meta()
	}

	for _, h := range s.horizons {
		rets := outcome.ForwardReturns(series, indices, h)
		hr := models.HorizonResult{Horizon: h}

		var wg sync.WaitGroup
		wg.Add(4)
		go func() {
			defer wg.Done()
			hr.Outcome = outcome.Analyze(rets)
		}()
		go func() {
			defer wg.Done()
			hr.Evaluation = s.evaluator.Evaluate(sit.Name, rets)
		}()
		go func() {
			defer wg.Done()
			hr.Edge = s.estimator.Estimate(rets)
		}()
		go func() {
			defer wg.Done()
			hr.Permutation = s.tester.Test(rets, baselines[h])
		}()
		wg.Wait()

		hr.Robust = s.evaluator.RobustStats(rets)
		wins := int(math.Round(hr.Outcome.WinRate * float64(hr.Outcome.SampleSize)))
		hr.WinRateCI = confidence.WilsonScoreInterval(wins, hr.Outcome.SampleSize, 95)

		if hr.Robust.RobustScore > sr.BestScore {
			sr.BestScore = hr.Robust.RobustScore
		}
		if hr.Evaluation.IsSignificant {
			sr.Significant = true
		}
		sr.Horizons = append(sr.Horizons, hr)
	}
	return sr
}

// ScanUniverse scans a list of tickers on a bounded worker pool. A fetch
// failure excludes that ticker and never aborts the batch.
func (s *Scanner) ScanUniverse(ctx context.Context, tickers []string, period drepo.Period) []*models.ScanReport {
	type result struct {
		idx    int
		report *models.ScanReport
	}

	jobs := make(chan int)
	results := make(chan result)

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				report, err := s.Scan(ctx, tickers[idx], period)
				if err != nil {
					s.log.Warn("skipping ticker",
						logger.String("ticker", tickers[idx]),
						logger.Error(err))
					continue
				}
				select {
				case results <- result{idx: idx, report: report}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range tickers {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	reports := make([]*models.ScanReport, 0, len(tickers))
	for r := range results {
		reports = append(reports, r.report)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Symbol < reports[j].Symbol })
	return reports
}
