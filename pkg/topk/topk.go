// Package topk selects the most frequent items of a collection.
package topk

import (
	"slices"
	"sort"

	"golang.org/x/exp/constraints"
)

// Select returns the k items with the largest count, highest first.
// Items with equal counts keep their input order. When fewer than k items
// exist all of them are returned; k <= 0 yields an empty result.
//
// The result is kept in a buffer of at most k items sorted by count, so the
// selection costs O(n log k) comparisons.
func Select[T any, C constraints.Integer](items []T, k int, count func(T) C) []T {
	if k <= 0 {
		return []T{}
	}
	top := make([]T, 0, min(k, len(items)))
	for _, item := range items {
		c := count(item)
		// first position holding a strictly smaller count: ties stay behind
		// the items discovered before them
		pos := sort.Search(len(top), func(i int) bool { return count(top[i]) < c })
		if pos >= k {
			continue
		}
		if len(top) < k {
			top = append(top, item)
		}
		copy(top[pos+1:], top[pos:len(top)-1])
		top[pos] = item
	}
	return top
}

// Ranked returns a copy of items sorted by descending count, ties in input order.
func Ranked[T any, C constraints.Integer](items []T, count func(T) C) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		ca, cb := count(a), count(b)
		switch {
		case ca > cb:
			return -1
		case ca < cb:
			return 1
		}
		return 0
	})
	return out
}
