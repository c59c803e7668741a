package segments

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// mustDay parses a date (or date-time) into Unix nanoseconds.
func mustDay(s string) int64 {
	layout := "2006-01-02"
	if len(s) > len(layout) {
		layout = "2006-01-02T15:04:05"
	}
	ts, err := time.Parse(layout, s)
	if err != nil {
		panic(err)
	}
	return ts.UnixNano()
}

func span(from, to string) Range[int64] {
	return Range[int64]{From: At(mustDay(from)), To: At(mustDay(to))}
}

func since(from string) Range[int64] { return Range[int64]{From: At(mustDay(from))} }

func until(to string) Range[int64] { return Range[int64]{To: At(mustDay(to))} }

func ints(from, to int) Range[int] { return Range[int]{From: At(from), To: At(to)} }

func assertEqual[T any](t *testing.T, got, want T) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
