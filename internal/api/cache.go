package api

import (
	"time"

	"github.com/patrickmn/go-cache"

	"flight_tracker/internal/domain"
)

const defaultCacheTTL = 30 * time.Second

// ReadCache holds datasets served by the read endpoints. Anything that
// rewrites a dataset outside the HTTP triggers should Flush it.
type ReadCache struct {
	entries *cache.Cache
}

func NewReadCache(ttl time.Duration) *ReadCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ReadCache{entries: cache.New(ttl, 2*ttl)}
}

func (c *ReadCache) get(date string) ([]domain.FlightRecord, bool) {
	cached, ok := c.entries.Get("flights:" + date)
	if !ok {
		return nil, false
	}
	return cached.([]domain.FlightRecord), true
}

func (c *ReadCache) set(date string, records []domain.FlightRecord) {
	c.entries.SetDefault("flights:"+date, records)
}

// Flush drops every cached dataset.
func (c *ReadCache) Flush() {
	c.entries.Flush()
}
