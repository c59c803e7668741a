package segments

import (
	"cmp"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Store persists recorded ranges in insertion order. *HistoryLog implements it.
type Store[T cmp.Ordered] interface {
	Append(r Range[T]) error
}

// Tracker holds the current SegmentMap for a cache that is read and written
// by several goroutines.
//
// Readers work on immutable snapshots and never block. Recordings are
// serialized, and each one reaches the Store before its snapshot is
// published, so readers never see a range that failed to persist.
type Tracker[T cmp.Ordered] struct {
	current atomic.Pointer[SegmentMap[T]]
	writeMu sync.Mutex
	store   Store[T]
	log     logrus.FieldLogger

	statQueries uint64 // jumlah pemanggilan Missing
	statHits    uint64 // request yang sudah tercakup penuh
	statMisses  uint64 // request yang masih memiliki gap
	statGaps    uint64 // total gap yang dikembalikan
	statRecords uint64 // rekaman yang berhasil
	statFailed  uint64 // rekaman yang gagal
}

// NewTracker starts a tracker from initial, usually the result of
// HistoryLog.Load or Empty.
func NewTracker[T cmp.Ordered](initial SegmentMap[T], opts TrackerOptions[T]) *Tracker[T] {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	t := &Tracker[T]{store: opts.Store, log: log}
	m := initial.Clone()
	t.current.Store(&m)
	return t
}

// Snapshot returns the current map. Callers must not modify its slices.
func (t *Tracker[T]) Snapshot() SegmentMap[T] {
	return *t.current.Load()
}

// Missing returns the gaps of req against the current snapshot.
func (t *Tracker[T]) Missing(req Range[T]) ([]Range[T], error) {
	gaps, err := GetMissingSegments(t.current.Load(), req)
	if err != nil {
		return nil, err
	}
	atomic.AddUint64(&t.statQueries, 1)
	if len(gaps) == 0 {
		atomic.AddUint64(&t.statHits, 1)
	} else {
		atomic.AddUint64(&t.statMisses, 1)
		atomic.AddUint64(&t.statGaps, uint64(len(gaps)))
	}
	return gaps, nil
}

// Record merges seg into the current map, persists it and publishes the new
// snapshot, which is also returned.
func (t *Tracker[T]) Record(seg Range[T]) (SegmentMap[T], error) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	next, err := RecordSegment(t.current.Load(), &seg)
	if err != nil {
		atomic.AddUint64(&t.statFailed, 1)
		return SegmentMap[T]{}, err
	}
	if t.store != nil {
		if err := t.store.Append(seg); err != nil {
			atomic.AddUint64(&t.statFailed, 1)
			t.log.WithError(err).WithField("segment", seg.String()).Error("persist segment")
			return SegmentMap[T]{}, err
		}
	}

	t.current.Store(&next)
	atomic.AddUint64(&t.statRecords, 1)
	t.log.WithFields(logrus.Fields{
		"segment":  seg.String(),
		"segments": len(next.Segments),
		"history":  len(next.SegmentHistory),
	}).Debug("segment recorded")
	return next, nil
}
