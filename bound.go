package segments

import "cmp"

// Bound adalah satu ujung Range yang bersifat opsional. Bound yang tidak Set
// berarti rentang memanjang sampai tepi domain (−∞ untuk From, +∞ untuk To).
type Bound[T cmp.Ordered] struct {
	Value T
	Set   bool
}

// At returns a present bound at v.
func At[T cmp.Ordered](v T) Bound[T] {
	return Bound[T]{Value: v, Set: true}
}

// Unbounded returns an absent bound.
func Unbounded[T cmp.Ordered]() Bound[T] {
	return Bound[T]{}
}

// isNaN reports whether b holds a floating-point NaN.
func isNaN[T cmp.Ordered](b Bound[T]) bool {
	return b.Set && b.Value != b.Value
}

// The helpers below never fall back to comparing zero values: an absent bound
// is resolved to the domain edge implied by which end of a range it sits on.

// lowerBefore reports whether lower bound a starts strictly before lower bound b.
func lowerBefore[T cmp.Ordered](a, b Bound[T]) bool {
	switch {
	case !a.Set && !b.Set:
		return false
	case !a.Set:
		return true
	case !b.Set:
		return false
	}
	return a.Value < b.Value
}

// extendsBeyond reports whether upper bound a extends strictly past upper bound b.
func extendsBeyond[T cmp.Ordered](a, b Bound[T]) bool {
	switch {
	case !a.Set && !b.Set:
		return false
	case !a.Set:
		return true
	case !b.Set:
		return false
	}
	return a.Value > b.Value
}

// isAfter reports whether lower bound lo lies strictly after upper bound hi.
// An absent bound on either side reaches the other, so the answer is false.
func isAfter[T cmp.Ordered](lo, hi Bound[T]) bool {
	return lo.Set && hi.Set && lo.Value > hi.Value
}

// isBefore reports whether upper bound hi lies strictly before lower bound lo.
func isBefore[T cmp.Ordered](hi, lo Bound[T]) bool {
	return hi.Set && lo.Set && hi.Value < lo.Value
}

// lowerEarliest returns the lower of two lower bounds.
func lowerEarliest[T cmp.Ordered](a, b Bound[T]) Bound[T] {
	if lowerBefore(b, a) {
		return b
	}
	return a
}

// upperLatest returns the higher of two upper bounds.
func upperLatest[T cmp.Ordered](a, b Bound[T]) Bound[T] {
	if extendsBeyond(b, a) {
		return b
	}
	return a
}
