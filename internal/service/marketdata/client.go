// Package marketdata implements the daily-candle series provider backed by a
// REST candle API, with an optional Redis read-through layer.
package marketdata

import (
	"context"
	"fmt"
	"time"

	"EdgeScan/internal/domain/models"
	drepo "EdgeScan/internal/domain/repository"
	"EdgeScan/internal/service/ratelimit"
	phttp "EdgeScan/pkg/http"
	"EdgeScan/pkg/util"
)

// Client fetches daily OHLCV candles over HTTP and implements SeriesProvider.
type Client struct {
	apiKey     string
	baseURL    string
	http       *phttp.Client
	limiter    *ratelimit.Limiter
	reqPerSec  float64
	burstLimit float64
}

// New creates a candle API client. reqPerSec and burst bound the outbound
// request rate; free-tier candle APIs reject bursts well below their
// advertised quota.
func New(apiKey, baseURL string, timeout time.Duration, reqPerSec, burst float64) drepo.SeriesProvider {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		http:       phttp.NewClient(phttp.WithTimeout(timeout)),
		limiter:    ratelimit.New(),
		reqPerSec:  reqPerSec,
		burstLimit: burst,
	}
}

// candleResponse mirrors the provider's column-oriented candle payload.
type candleResponse struct {
	Status string    `json:"s"`
	T      []int64   `json:"t"` // unix seconds
	O      []float64 `json:"o"`
	H      []float64 `json:"h"`
	L      []float64 `json:"l"`
	C      []float64 `json:"c"`
	V      []float64 `json:"v"`
}

// Fetch downloads the daily history for ticker covering period. A failure
// here excludes the ticker from the current run; the caller never retries.
func (c *Client) Fetch(ctx context.Context, ticker string, period drepo.Period) (*models.MarketSeries, error) {
	if ticker == "" {
		return nil, fmt.Errorf("marketdata: ticker is required")
	}
	if err := c.waitForSlot(ctx); err != nil {
		return nil, err
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -util.CalendarDaysForBars(period.ApproxBars()))

	var resp candleResponse
	err := c.http.DoJSON(ctx, &phttp.Request{
		Method: phttp.MethodGet,
		URL:    c.baseURL + "/stock/candle",
		QueryParams: map[string][]string{
			"symbol":     {ticker},
			"resolution": {"D"},
			"from":       {fmt.Sprintf("%d", from.Unix())},
			"to":         {fmt.Sprintf("%d", to.Unix())},
			"token":      {c.apiKey},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("fetch %s: provider status %q", ticker, resp.Status)
	}
	if len(resp.T) != len(resp.C) || len(resp.C) != len(resp.O) ||
		len(resp.O) != len(resp.H) || len(resp.H) != len(resp.L) || len(resp.L) != len(resp.V) {
		return nil, fmt.Errorf("fetch %s: ragged candle arrays", ticker)
	}

	bars := make([]models.Bar, 0, len(resp.T))
	for i := range resp.T {
		bars = append(bars, models.Bar{
			Timestamp: util.AlignToDay(time.Unix(resp.T[i], 0)),
			Open:      resp.O[i],
			High:      resp.H[i],
			Low:       resp.L[i],
			Close:     resp.C[i],
			Volume:    resp.V[i],
		})
	}
	return models.NewMarketSeries(ticker, bars)
}

func (c *Client) waitForSlot(ctx context.Context) error {
	for !c.limiter.Allow("candles", c.burstLimit, c.reqPerSec) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	return nil
}
