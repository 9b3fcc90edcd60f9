package mdfs

import (
	"cmp"
	"slices"
)

// Rank returns variable indices ordered by decreasing gain. Ties keep index
// order.
func Rank(gains []float32) []int {
	idx := make([]int, len(gains))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(gains[b], gains[a])
	})
	return idx
}
