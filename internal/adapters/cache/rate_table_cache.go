package cache

import (
	"fmt"
	"fxreport/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoRateTableCache keeps provider tables for one run so each
// (base, day) table is downloaded once no matter how many currencies
// are sampled. It is never shared between runs.
type RistrettoRateTableCache struct {
	cache *ristretto.Cache
}

func NewRateTableCache(maxItems int64) (*RistrettoRateTableCache, error) {
	if maxItems <= 0 {
		maxItems = 256
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate table cache failed: %w", err)
	}
	return &RistrettoRateTableCache{cache: c}, nil
}

func (c *RistrettoRateTableCache) Get(base domain.CurrencyCode, day string) (map[domain.CurrencyCode]float64, bool) {
	if v, ok := c.cache.Get(toKey(base, day)); ok {
		table, ok := v.(map[domain.CurrencyCode]float64)
		return table, ok
	}
	return nil, false
}

// Set stores the table. Ristretto applies sets asynchronously and may drop
// them under contention; a dropped entry only costs a repeated download.
func (c *RistrettoRateTableCache) Set(base domain.CurrencyCode, day string, table map[domain.CurrencyCode]float64) {
	c.cache.Set(toKey(base, day), table, 1)
}

func (c *RistrettoRateTableCache) Wait() { c.cache.Wait() }

func (c *RistrettoRateTableCache) Close() { c.cache.Close() }

func toKey(base domain.CurrencyCode, day string) string { return string(base) + ":" + day }
