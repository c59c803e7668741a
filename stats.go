package segments

import "sync/atomic"

// Stats menyimpan statistik Tracker.
// HitRatio dalam persentase (0-100): porsi query yang tidak memiliki gap.
type Stats struct {
	Queries      uint64
	Hits         uint64
	Misses       uint64
	GapsReturned uint64
	Records      uint64
	RecordErrors uint64
	HitRatio     float64
}

// GetStats mengambil snapshot statistik tanpa lock berat.
func (t *Tracker[T]) GetStats() Stats {
	hits := atomic.LoadUint64(&t.statHits)
	misses := atomic.LoadUint64(&t.statMisses)
	total := hits + misses
	ratio := 0.0
	if total > 0 {
		ratio = float64(hits) / float64(total) * 100.0
	}
	return Stats{
		Queries:      atomic.LoadUint64(&t.statQueries),
		Hits:         hits,
		Misses:       misses,
		GapsReturned: atomic.LoadUint64(&t.statGaps),
		Records:      atomic.LoadUint64(&t.statRecords),
		RecordErrors: atomic.LoadUint64(&t.statFailed),
		HitRatio:     ratio,
	}
}

// ResetStats mengatur ulang semua penghitung.
func (t *Tracker[T]) ResetStats() {
	atomic.StoreUint64(&t.statQueries, 0)
	atomic.StoreUint64(&t.statHits, 0)
	atomic.StoreUint64(&t.statMisses, 0)
	atomic.StoreUint64(&t.statGaps, 0)
	atomic.StoreUint64(&t.statRecords, 0)
	atomic.StoreUint64(&t.statFailed, 0)
}

// Len returns the number of coalesced segments in the current snapshot.
func (t *Tracker[T]) Len() int { return len(t.current.Load().Segments) }
