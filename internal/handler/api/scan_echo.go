package api

import (
	"context"
	"time"

	models "EdgeScan/internal/domain/models"
	domrepo "EdgeScan/internal/domain/repository"
	icache "EdgeScan/internal/service/cache"
	"EdgeScan/internal/usecase"
	pkgcache "EdgeScan/pkg/cache"
	xhttp "EdgeScan/pkg/http"
	xlogger "EdgeScan/pkg/logger"

	"github.com/labstack/echo/v4"
)

// reportTTL bounds how long an on-demand scan result is reused for repeat
// requests. Daily bars only move once per session.
const reportTTL = 5 * time.Minute

// ScanEchoHandler exposes on-demand scans and stored reports over HTTP.
type ScanEchoHandler struct {
	logger  *xlogger.Logger
	scanner *usecase.Scanner
	store   domrepo.ResultStore
	reports *icache.ReportCache
}

func NewScanEchoHandler(logger *xlogger.Logger, scanner *usecase.Scanner, store domrepo.ResultStore) *ScanEchoHandler {
	return &ScanEchoHandler{
		logger:  logger,
		scanner: scanner,
		store:   store,
		reports: icache.NewReportCache(),
	}
}

// scan memoizes on-demand scans per (ticker, period).
func (h *ScanEchoHandler) scan(ctx context.Context, ticker string, period domrepo.Period) (*models.ScanReport, error) {
	key := pkgcache.GenerateKeyWithParams("report", ticker, period)
	if report, ok := h.reports.Get(key); ok {
		return report, nil
	}
	report, err := h.scanner.Scan(ctx, ticker, period)
	if err != nil {
		return nil, err
	}
	h.reports.Set(key, report, reportTTL)
	return report, nil
}

func (h *ScanEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/scan", h.Scan)
	g.GET("/situations", h.Situations)
	g.GET("/reports", h.Reports)
	g.GET("/health", h.Health)
}

// Scan runs the full pipeline for one ticker and returns the report.
func (h *ScanEchoHandler) Scan(c echo.Context) error {
	req := &models.ScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	period := domrepo.NormalizePeriod(req.Period)

	report, err := h.scan(c.Request().Context(), req.Ticker, period)
	if err != nil {
		h.logger.Error("scan usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("scan %s failed", req.Ticker).WithError(err))
	}
	return xhttp.SuccessResponse(c, report)
}

// Situations runs a scan and returns only the ranked situation entries,
// optionally filtered to significant ones.
func (h *ScanEchoHandler) Situations(c echo.Context) error {
	req := &models.SituationsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	period := domrepo.NormalizePeriod(req.Period)

	report, err := h.scan(c.Request().Context(), req.Ticker, period)
	if err != nil {
		h.logger.Error("scan usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("scan %s failed", req.Ticker).WithError(err))
	}

	out := make([]models.SituationReport, 0, len(report.Situations))
	for _, sit := range report.Situations {
		if req.Significant && !sit.Significant {
			continue
		}
		out = append(out, sit)
		if len(out) >= req.Limit {
			break
		}
	}
	return xhttp.SuccessResponse(c, out)
}

// Reports returns previously stored scan reports for a ticker.
func (h *ScanEchoHandler) Reports(c echo.Context) error {
	req := &models.ReportsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	reports, err := h.store.Query(c.Request().Context(), req.Ticker, req.Limit)
	if err != nil {
		h.logger.Error("reports query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("reports query failed").WithError(err))
	}
	if len(reports) == 0 {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no stored reports for %s", req.Ticker))
	}
	return xhttp.SuccessResponse(c, reports)
}

// Health reports storage reachability.
func (h *ScanEchoHandler) Health(c echo.Context) error {
	if err := h.store.Health(c.Request().Context()); err != nil {
		return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("storage unreachable").WithError(err))
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
