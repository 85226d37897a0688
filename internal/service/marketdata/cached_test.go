package marketdata

import (
	"context"
	"fmt"
	"testing"
	"time"

	"EdgeScan/internal/domain/models"
	drepo "EdgeScan/internal/domain/repository"
	"EdgeScan/pkg/cache"
	"EdgeScan/pkg/logger"
)

type countingProvider struct {
	calls int
	fail  bool
}

func (p *countingProvider) Fetch(_ context.Context, ticker string, _ drepo.Period) (*models.MarketSeries, error) {
	p.calls++
	if p.fail {
		return nil, fmt.Errorf("provider down")
	}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, 3)
	for i := range bars {
		bars[i] = models.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      100, High: 101, Low: 99, Close: 100 + float64(i),
			Volume: 1000,
		}
	}
	return models.NewMarketSeries(ticker, bars)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestCachedProviderReadThrough(t *testing.T) {
	inner := &countingProvider{}
	p := NewCachedProvider(inner, cache.NewMemoryCache(), time.Minute, testLogger(t))

	first, err := p.Fetch(context.Background(), "AAPL", drepo.Period1Y)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := p.Fetch(context.Background(), "AAPL", drepo.Period1Y)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if inner.calls != 1 {
		t.Fatalf("expected one provider call, got %d", inner.calls)
	}
	if first.Len() != second.Len() || first.Close(2) != second.Close(2) {
		t.Fatalf("cached series differs from fetched series")
	}
}

func TestCachedProviderSeparateKeys(t *testing.T) {
	inner := &countingProvider{}
	p := NewCachedProvider(inner, cache.NewMemoryCache(), time.Minute, testLogger(t))

	if _, err := p.Fetch(context.Background(), "AAPL", drepo.Period1Y); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, err := p.Fetch(context.Background(), "AAPL", drepo.Period5Y); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("periods must not share cache entries, got %d calls", inner.calls)
	}
}

func TestCachedProviderPropagatesFetchError(t *testing.T) {
	inner := &countingProvider{fail: true}
	p := NewCachedProvider(inner, cache.NewMemoryCache(), time.Minute, testLogger(t))

	if _, err := p.Fetch(context.Background(), "AAPL", drepo.Period1Y); err == nil {
		t.Fatalf("expected provider error")
	}
}
