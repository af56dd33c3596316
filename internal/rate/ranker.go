package rate

import (
	"cmp"
	"slices"

	"fxreport/internal/domain"
)

// Rank orders currencies by percentage change, highest first. Equal
// changes keep their input order.
func Rank(perf []domain.Performance) domain.RankedList {
	ranked := slices.Clone(perf)
	slices.SortStableFunc(ranked, func(a, b domain.Performance) int {
		return cmp.Compare(b.PctChange, a.PctChange)
	})
	return domain.RankedList(ranked)
}
