package segments

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrTimeOutOfRange is returned by TimeRange for a time that int64 Unix
// nanoseconds cannot represent (roughly before 1678 or after 2262).
var ErrTimeOutOfRange = errors.New("time outside the Unix-nanosecond range")

var (
	minNanoTime = time.Unix(0, math.MinInt64)
	maxNanoTime = time.Unix(0, math.MaxInt64)
)

// TimeRange builds a Range on the Unix-nanosecond axis. A zero time.Time
// leaves the corresponding bound absent.
func TimeRange(from, to time.Time) (Range[int64], error) {
	var r Range[int64]
	if !from.IsZero() {
		v, err := unixNano(from)
		if err != nil {
			return Range[int64]{}, err
		}
		r.From = At(v)
	}
	if !to.IsZero() {
		v, err := unixNano(to)
		if err != nil {
			return Range[int64]{}, err
		}
		r.To = At(v)
	}
	if err := r.Validate(); err != nil {
		return Range[int64]{}, err
	}
	return r, nil
}

func unixNano(t time.Time) (int64, error) {
	if t.Before(minNanoTime) || t.After(maxNanoTime) {
		return 0, fmt.Errorf("%w: %s", ErrTimeOutOfRange, t.Format(time.RFC3339))
	}
	return t.UnixNano(), nil
}

// RangeTimes converts a Unix-nanosecond range back to times. Absent bounds
// come back as the zero time.Time.
func RangeTimes(r Range[int64]) (from, to time.Time) {
	if r.From.Set {
		from = time.Unix(0, r.From.Value).UTC()
	}
	if r.To.Set {
		to = time.Unix(0, r.To.Value).UTC()
	}
	return from, to
}
