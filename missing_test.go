package segments

import (
	"errors"
	"testing"
)

func TestMissingSegmentsOneSegment(t *testing.T) {
	cacheMap := &SegmentMap[int64]{
		Segments: []Range[int64]{span("2020-01-01", "2020-01-02")},
	}

	tests := []struct {
		name string
		m    *SegmentMap[int64]
		req  Range[int64]
		want []Range[int64]
	}{
		{
			name: "no existing segments",
			req:  span("2019-01-01", "2019-12-31"),
			want: []Range[int64]{span("2019-01-01", "2019-12-31")},
		},
		{
			name: "segment before",
			m:    cacheMap,
			req:  span("2019-01-01", "2019-12-31"),
			want: []Range[int64]{span("2019-01-01", "2019-12-31")},
		},
		{
			name: "segment after",
			m:    cacheMap,
			req:  span("2020-01-02", "2020-01-03"),
			want: []Range[int64]{span("2020-01-02", "2020-01-03")},
		},
		{
			name: "overlapping start",
			m:    cacheMap,
			req:  span("2019-12-31", "2020-01-02"),
			want: []Range[int64]{span("2019-12-31", "2020-01-01")},
		},
		{
			name: "starting inside",
			m:    cacheMap,
			req:  span("2020-01-01T12:00:00", "2020-01-03"),
			want: []Range[int64]{span("2020-01-02", "2020-01-03")},
		},
		{
			name: "overlapping end",
			m:    cacheMap,
			req:  span("2020-01-01", "2020-01-03"),
			want: []Range[int64]{span("2020-01-02", "2020-01-03")},
		},
		{
			name: "covering existing",
			m:    cacheMap,
			req:  span("2019-12-31", "2020-01-03"),
			want: []Range[int64]{
				span("2019-12-31", "2020-01-01"),
				span("2020-01-02", "2020-01-03"),
			},
		},
		{
			name: "exactly covered",
			m:    cacheMap,
			req:  span("2020-01-01", "2020-01-02"),
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetMissingSegments(tt.m, tt.req)
			if err != nil {
				t.Fatalf("GetMissingSegments: %v", err)
			}
			assertEqual(t, got, tt.want)
		})
	}
}

func TestMissingSegmentsTwoSegments(t *testing.T) {
	cacheMap := &SegmentMap[int64]{
		Segments: []Range[int64]{
			span("2020-01-01", "2020-01-02"),
			span("2020-02-01", "2020-02-02"),
		},
	}

	tests := []struct {
		name string
		req  Range[int64]
		want []Range[int64]
	}{
		{
			name: "before all",
			req:  span("2019-01-01", "2019-12-31"),
			want: []Range[int64]{span("2019-01-01", "2019-12-31")},
		},
		{
			name: "after all",
			req:  span("2020-02-02", "2020-02-03"),
			want: []Range[int64]{span("2020-02-02", "2020-02-03")},
		},
		{
			name: "overlapping but not covering both",
			req:  span("2020-01-01", "2020-02-02"),
			want: []Range[int64]{span("2020-01-02", "2020-02-01")},
		},
		{
			name: "covering both",
			req:  span("2019-12-31", "2020-02-03"),
			want: []Range[int64]{
				span("2019-12-31", "2020-01-01"),
				span("2020-01-02", "2020-02-01"),
				span("2020-02-02", "2020-02-03"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetMissingSegments(cacheMap, tt.req)
			if err != nil {
				t.Fatalf("GetMissingSegments: %v", err)
			}
			assertEqual(t, got, tt.want)
		})
	}
}

func TestMissingSegmentsUnboundedStored(t *testing.T) {
	tests := []struct {
		name string
		segs []Range[int64]
		req  Range[int64]
		want []Range[int64]
	}{
		{
			name: "from-less segment covers the head",
			segs: []Range[int64]{until("2020-01-10")},
			req:  span("2019-12-01", "2020-01-20"),
			want: []Range[int64]{span("2020-01-10", "2020-01-20")},
		},
		{
			name: "to-less segment covers the tail",
			segs: []Range[int64]{since("2020-01-10")},
			req:  span("2020-01-01", "2020-02-01"),
			want: []Range[int64]{span("2020-01-01", "2020-01-10")},
		},
		{
			name: "both open ends with a hole",
			segs: []Range[int64]{since("2020-01-20"), until("2020-01-05")},
			req:  span("2020-01-01", "2020-02-01"),
			want: []Range[int64]{span("2020-01-05", "2020-01-20")},
		},
		{
			name: "forever segment",
			segs: []Range[int64]{{}},
			req:  span("2020-01-01", "2020-02-01"),
			want: nil,
		},
		{
			name: "from-less segment ending at request start",
			segs: []Range[int64]{until("2020-01-01")},
			req:  span("2020-01-01", "2020-01-02"),
			want: []Range[int64]{span("2020-01-01", "2020-01-02")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetMissingSegments(&SegmentMap[int64]{Segments: tt.segs}, tt.req)
			if err != nil {
				t.Fatalf("GetMissingSegments: %v", err)
			}
			assertEqual(t, got, tt.want)
		})
	}
}

func TestMissingSegmentsRejectsBadRequest(t *testing.T) {
	m := &SegmentMap[int]{Segments: []Range[int]{ints(10, 20)}}

	for _, req := range []Range[int]{
		{From: At(10)},
		{To: At(10)},
		{},
	} {
		if _, err := GetMissingSegments(m, req); !errors.Is(err, ErrUnboundedRequest) {
			t.Fatalf("request %v: expected ErrUnboundedRequest, got %v", req, err)
		}
	}
	if _, err := GetMissingSegments(m, ints(20, 10)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestMissingSegmentsDoesNotModifyMap(t *testing.T) {
	m := &SegmentMap[int]{
		Segments:       []Range[int]{ints(30, 40), ints(10, 20)},
		SegmentHistory: []Range[int]{ints(10, 20), ints(30, 40)},
	}
	before := m.Clone()

	if _, err := GetMissingSegments(m, ints(0, 50)); err != nil {
		t.Fatalf("GetMissingSegments: %v", err)
	}
	assertEqual(t, *m, before)
}
