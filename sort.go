package segments

import (
	"cmp"
	"slices"
)

// SortSegmentsDescending returns a copy of segs ordered by descending From.
// A segment without From compares as the smallest start and therefore lands
// after every bounded segment. Equal starts keep their input order.
func SortSegmentsDescending[T cmp.Ordered](segs []Range[T]) []Range[T] {
	out := slices.Clone(segs)
	slices.SortStableFunc(out, func(a, b Range[T]) int {
		switch {
		case !a.From.Set && !b.From.Set:
			return 0
		case !a.From.Set:
			return 1
		case !b.From.Set:
			return -1
		}
		return cmp.Compare(b.From.Value, a.From.Value)
	})
	return out
}

// sortSegmentsAscending is the exact reverse of SortSegmentsDescending, ties
// included.
func sortSegmentsAscending[T cmp.Ordered](segs []Range[T]) []Range[T] {
	out := SortSegmentsDescending(segs)
	slices.Reverse(out)
	return out
}
