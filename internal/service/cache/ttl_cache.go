// Package cache holds a small in-process TTL cache used to memoize recent
// scan reports behind the HTTP API.
package cache

import (
	"sync"
	"time"

	"EdgeScan/internal/domain/models"
)

type entry struct {
	v   *models.ScanReport
	exp time.Time
}

// ReportCache memoizes scan reports per cache key for a short TTL so that
// back-to-back API calls for the same ticker do not rerun the pipeline.
type ReportCache struct {
	mu sync.RWMutex
	m  map[string]entry
}

func NewReportCache() *ReportCache {
	return &ReportCache{m: make(map[string]entry)}
}

func (c *ReportCache) Get(key string) (*models.ScanReport, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.v, true
}

func (c *ReportCache) Set(key string, v *models.ScanReport, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.m[key] = entry{v: v, exp: exp}
	c.mu.Unlock()
}
