package segments

import "cmp"

// RecordSegment merges newSegment into m and returns the resulting map.
//
// Segments that touch or overlap newSegment are folded into a single segment;
// the rest pass through untouched. newSegment itself is appended verbatim to
// the history. m is never modified, and a nil m is treated as empty.
func RecordSegment[T cmp.Ordered](m *SegmentMap[T], newSegment *Range[T]) (SegmentMap[T], error) {
	if newSegment == nil {
		return SegmentMap[T]{}, ErrMissingSegment
	}
	if err := newSegment.Validate(); err != nil {
		return SegmentMap[T]{}, err
	}

	var existing, history []Range[T]
	if m != nil {
		existing, history = m.Segments, m.SegmentHistory
	}

	acc := *newSegment
	next := make([]Range[T], 0, len(existing)+1)
	for _, s := range existing {
		if acc.disjoint(s) {
			next = append(next, s)
			continue
		}
		acc.From = lowerEarliest(acc.From, s.From)
		acc.To = upperLatest(acc.To, s.To)
	}
	next = append(next, acc)

	h := make([]Range[T], len(history), len(history)+1)
	copy(h, history)
	h = append(h, *newSegment)

	return SegmentMap[T]{
		Segments:       SortSegmentsDescending(next),
		SegmentHistory: h,
	}, nil
}

// Replay rebuilds a map by recording every range of history in order onto an
// empty map.
func Replay[T cmp.Ordered](history []Range[T]) (SegmentMap[T], error) {
	m := Empty[T]()
	for i := range history {
		next, err := RecordSegment(&m, &history[i])
		if err != nil {
			return SegmentMap[T]{}, err
		}
		m = next
	}
	return m, nil
}
