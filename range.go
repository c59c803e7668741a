package segments

import (
	"cmp"
	"errors"
	"fmt"
)

var (
	// ErrMissingSegment is returned by RecordSegment when no segment is given.
	ErrMissingSegment = errors.New("a segment to record is required")
	// ErrInvalidRange is returned when both bounds are present and From > To.
	ErrInvalidRange = errors.New("invalid segment: end precedes start")
	// ErrUnboundedRequest is returned by GetMissingSegments when the requested
	// range lacks either bound.
	ErrUnboundedRequest = errors.New("requested range must have both bounds")
)

// Range adalah interval pada sumbu terurut: From inklusif, To eksklusif.
//
// A Range with both bounds absent covers the entire domain.
type Range[T cmp.Ordered] struct {
	From Bound[T]
	To   Bound[T]
}

// Segment is a Range stored inside a SegmentMap.
type Segment[T cmp.Ordered] = Range[T]

// NewRange builds a Range and rejects one whose end precedes its start.
func NewRange[T cmp.Ordered](from, to Bound[T]) (Range[T], error) {
	r := Range[T]{From: from, To: to}
	if err := r.Validate(); err != nil {
		return Range[T]{}, err
	}
	return r, nil
}

// Between is shorthand for a fully bounded range [from, to).
func Between[T cmp.Ordered](from, to T) (Range[T], error) {
	return NewRange(At(from), At(to))
}

// Validate checks the From <= To invariant. A NaN bound has no place in the
// ordering and is rejected too.
func (r Range[T]) Validate() error {
	if isNaN(r.From) || isNaN(r.To) {
		return fmt.Errorf("%w: NaN bound in %v", ErrInvalidRange, r)
	}
	if r.From.Set && r.To.Set && r.From.Value > r.To.Value {
		return fmt.Errorf("%w: [%v, %v)", ErrInvalidRange, r.From.Value, r.To.Value)
	}
	return nil
}

// Bounded reports whether both ends are present.
func (r Range[T]) Bounded() bool { return r.From.Set && r.To.Set }

// Contains reports whether v falls inside [From, To).
func (r Range[T]) Contains(v T) bool {
	if r.From.Set && v < r.From.Value {
		return false
	}
	if r.To.Set && v >= r.To.Value {
		return false
	}
	return true
}

// Covers reports whether o lies entirely inside r.
func (r Range[T]) Covers(o Range[T]) bool {
	return !lowerBefore(o.From, r.From) && !extendsBeyond(o.To, r.To)
}

// overlaps is the strict relevance test used by gap detection: touching
// ranges do not overlap.
func (r Range[T]) overlaps(o Range[T]) bool {
	endsAfterStart := !r.To.Set || !o.From.Set || r.To.Value > o.From.Value
	startsBeforeEnd := !r.From.Set || !o.To.Set || r.From.Value < o.To.Value
	return endsAfterStart && startsBeforeEnd
}

// disjoint is the merge test used by recording: touching ranges are not
// disjoint and an absent bound is never disjoint from anything on its side.
func (r Range[T]) disjoint(o Range[T]) bool {
	return isAfter(r.From, o.To) || isBefore(r.To, o.From)
}

func (r Range[T]) String() string {
	from, to := "-∞", "+∞"
	if r.From.Set {
		from = fmt.Sprint(r.From.Value)
	}
	if r.To.Set {
		to = fmt.Sprint(r.To.Value)
	}
	return "[" + from + ", " + to + ")"
}
