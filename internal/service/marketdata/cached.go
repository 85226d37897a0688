package marketdata

import (
	"context"
	"errors"
	"time"

	"EdgeScan/internal/domain/models"
	drepo "EdgeScan/internal/domain/repository"
	"EdgeScan/pkg/cache"
	"EdgeScan/pkg/logger"
)

// CachedProvider is a read-through cache in front of a SeriesProvider.
// Daily bars only change once per session, so a short TTL keeps repeated
// scans of the same universe from re-downloading every history.
type CachedProvider struct {
	inner drepo.SeriesProvider
	cache cache.Service
	ttl   time.Duration
	log   *logger.Logger
}

func NewCachedProvider(inner drepo.SeriesProvider, c cache.Service, ttl time.Duration, log *logger.Logger) drepo.SeriesProvider {
	return &CachedProvider{inner: inner, cache: c, ttl: ttl, log: log}
}

func (p *CachedProvider) Fetch(ctx context.Context, ticker string, period drepo.Period) (*models.MarketSeries, error) {
	key := cache.GenerateKeyWithParams("series", ticker, period)

	var bars []models.Bar
	err := p.cache.Get(ctx, key, &bars)
	if err == nil {
		s, buildErr := models.NewMarketSeries(ticker, bars)
		if buildErr == nil {
			return s, nil
		}
		// Corrupt cache entry, fall through to the provider.
		p.log.Warn("discarding invalid cached series",
			logger.String("ticker", ticker), logger.Error(buildErr))
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		p.log.Warn("series cache read failed",
			logger.String("ticker", ticker), logger.Error(err))
	}

	s, err := p.inner.Fetch(ctx, ticker, period)
	if err != nil {
		return nil, err
	}
	if setErr := p.cache.Set(ctx, key, s.Bars(), p.ttl); setErr != nil {
		p.log.Warn("series cache write failed",
			logger.String("ticker", ticker), logger.Error(setErr))
	}
	return s, nil
}
