package rate

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"fxreport/internal/domain"
)

// Sample picks n distinct currencies uniformly at random. The input is
// sorted first so a seeded rng always yields the same sample.
func Sample(available []domain.CurrencyCode, n int, rng *rand.Rand) ([]domain.CurrencyCode, error) {
	if n <= 0 {
		return nil, ErrSampleSizeTooSmall
	}
	if n > len(available) {
		return nil, fmt.Errorf("requested %d of %d currencies: %w", n, len(available), domain.ErrInsufficientSupply)
	}

	pool := slices.Clone(available)
	slices.Sort(pool)
	picked := make([]domain.CurrencyCode, 0, n)
	for _, idx := range rng.Perm(len(pool))[:n] {
		picked = append(picked, pool[idx])
	}
	return picked, nil
}
