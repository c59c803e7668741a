package segments

import (
	"cmp"
	"fmt"
)

// relevantSegments returns the stored segments that strictly overlap req,
// in ascending start order.
func relevantSegments[T cmp.Ordered](m *SegmentMap[T], req Range[T]) []Range[T] {
	if m == nil {
		return nil
	}
	var out []Range[T]
	for _, s := range m.Segments {
		if s.overlaps(req) {
			out = append(out, s)
		}
	}
	return sortSegmentsAscending(out)
}

// GetMissingSegments returns the parts of req not covered by m, ascending.
//
// A nil map is treated as empty. req must carry both bounds; the map itself
// is only read.
func GetMissingSegments[T cmp.Ordered](m *SegmentMap[T], req Range[T]) ([]Range[T], error) {
	if !req.Bounded() {
		return nil, fmt.Errorf("%w: %v", ErrUnboundedRequest, req)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cursor := req.From
	var missing []Range[T]
	for _, s := range relevantSegments(m, req) {
		// a cursor at or inside the segment start leaves no gap before it
		if isBefore(cursor, s.From) {
			missing = append(missing, Range[T]{From: cursor, To: s.From})
		}
		cursor = upperLatest(cursor, s.To)
		if !cursor.Set {
			// the segment runs to the end of the domain
			return missing, nil
		}
	}

	if cursor.Value < req.To.Value {
		missing = append(missing, Range[T]{From: cursor, To: req.To})
	}
	return missing, nil
}
