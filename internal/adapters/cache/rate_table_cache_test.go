package cache

import (
	"testing"

	"fxreport/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestRateTableCache_SetAndGet(t *testing.T) {
	c, err := NewRateTableCache(128)
	require.NoError(t, err)
	defer c.Close()

	table := map[domain.CurrencyCode]float64{"eur": 0.92, "jpy": 150}

	c.Set("usd", "2026-10-14", table)
	c.Wait()

	got, ok := c.Get("usd", "2026-10-14")
	require.True(t, ok)
	require.Equal(t, table, got)
}

func TestRateTableCache_GetMissWhenEmpty(t *testing.T) {
	c, err := NewRateTableCache(64)
	require.NoError(t, err)
	defer c.Close()

	got, ok := c.Get("usd", "latest")
	require.False(t, ok)
	require.Nil(t, got)
}

func TestRateTableCache_KeysByBaseAndDay(t *testing.T) {
	c, err := NewRateTableCache(0)
	require.NoError(t, err)
	defer c.Close()

	c.Set("usd", "2026-10-14", map[domain.CurrencyCode]float64{"eur": 0.92})
	c.Set("eur", "2026-10-14", map[domain.CurrencyCode]float64{"usd": 1.08})
	c.Wait()

	_, ok := c.Get("usd", "2026-10-13")
	require.False(t, ok)

	got, ok := c.Get("eur", "2026-10-14")
	require.True(t, ok)
	require.InDelta(t, 1.08, got["usd"], 1e-9)
}
