package segments

import (
	"cmp"

	"github.com/sirupsen/logrus"
)

// LogOptions menyediakan opsi konfigurasi untuk HistoryLog.
//
//   - SyncOnAppend:   fsync data dan tulis ulang meta setiap Append
//   - Lock:           ambil flock eksklusif agar hanya ada satu penulis
//   - BufferPoolSize: ukuran pool buffer untuk mengurangi alokasi (0 = nonaktif)
//   - Logger:         tujuan log (nil = logrus.StandardLogger())
//
// Lihat DefaultLogOptions() untuk nilai bawaan.
type LogOptions struct {
	SyncOnAppend   bool
	Lock           bool
	BufferPoolSize int
	Logger         logrus.FieldLogger
}

// DefaultLogOptions mengembalikan konfigurasi default yang digunakan OpenHistoryLog.
func DefaultLogOptions() LogOptions {
	return LogOptions{
		SyncOnAppend:   true,
		Lock:           true,
		BufferPoolSize: 16,
	}
}

func (o LogOptions) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}

// TrackerOptions configures a Tracker.
type TrackerOptions[T cmp.Ordered] struct {
	// Store receives every range before it becomes visible to readers.
	// Nil keeps the tracker purely in memory.
	Store  Store[T]
	Logger logrus.FieldLogger
}
