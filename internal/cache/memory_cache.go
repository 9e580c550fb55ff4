package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// RateCache provides an in-memory cache of the latest exchange rate per
// currency pair. Stale entries are still returned; callers decide what
// staleness means for them.
type RateCache struct {
	rates map[string]rateEntry
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
}

type rateEntry struct {
	rate      decimal.Decimal
	fetchedAt time.Time
	updatedAt time.Time
}

// CachedRate is a cache hit. FetchedAt is when this process (or a previous
// one) fetched the rate and drives staleness; UpdatedAt is when the provider
// last published it, zero if unknown.
type CachedRate struct {
	Rate      decimal.Decimal
	FetchedAt time.Time
	UpdatedAt time.Time
	Stale     bool
}

// NewRateCache creates a new in-memory rate cache
func NewRateCache(ttl time.Duration) *RateCache {
	return &RateCache{
		rates: make(map[string]rateEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// WithClock replaces the time source (for testing)
func (c *RateCache) WithClock(now func() time.Time) *RateCache {
	c.now = now
	return c
}

// rateCacheKey generates a cache key for a currency pair
func rateCacheKey(base, quote string) string {
	return strings.ToUpper(base) + "/" + strings.ToUpper(quote)
}

// GetRate retrieves the cached rate for a pair if one was ever stored
func (c *RateCache) GetRate(base, quote string) (CachedRate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.rates[rateCacheKey(base, quote)]
	if !exists {
		return CachedRate{}, false
	}
	return CachedRate{
		Rate:      entry.rate,
		FetchedAt: entry.fetchedAt,
		UpdatedAt: entry.updatedAt,
		Stale:     c.ttl > 0 && c.now().Sub(entry.fetchedAt) > c.ttl,
	}, true
}

// SetRate caches a rate fetched now, replacing any previous value for the pair
func (c *RateCache) SetRate(base, quote string, rate decimal.Decimal, updatedAt time.Time) {
	c.SetRateAt(base, quote, rate, c.now(), updatedAt)
}

// SetRateAt caches a rate fetched at the given time, e.g. one restored from
// the database. It may be stale on arrival.
func (c *RateCache) SetRateAt(base, quote string, rate decimal.Decimal, fetchedAt, updatedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rates[rateCacheKey(base, quote)] = rateEntry{
		rate:      rate,
		fetchedAt: fetchedAt,
		updatedAt: updatedAt,
	}
}
