package segments

import (
	"cmp"
	"slices"
)

// SegmentMap is the cache state: coalesced Segments in descending start order
// plus the raw SegmentHistory of every recorded range.
//
// The zero value is an empty map. Values are never modified by this package;
// RecordSegment always builds fresh slices.
type SegmentMap[T cmp.Ordered] struct {
	Segments       []Range[T]
	SegmentHistory []Range[T]
}

// Empty returns a map with no segments and no history.
func Empty[T cmp.Ordered]() SegmentMap[T] {
	return SegmentMap[T]{Segments: []Range[T]{}, SegmentHistory: []Range[T]{}}
}

// Clone returns a deep copy of m.
func (m SegmentMap[T]) Clone() SegmentMap[T] {
	return SegmentMap[T]{
		Segments:       slices.Clone(m.Segments),
		SegmentHistory: slices.Clone(m.SegmentHistory),
	}
}

// Covers reports whether every point of req is inside a stored segment.
// Stored segments never touch, so full coverage always means a single
// segment covers req.
func (m SegmentMap[T]) Covers(req Range[T]) bool {
	for _, s := range m.Segments {
		if s.Covers(req) {
			return true
		}
	}
	return false
}
