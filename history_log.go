package segments

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

var (
	// ErrCorrupted is returned when a record or the meta file fails its CRC
	// check, or when the data file holds fewer records than were committed.
	ErrCorrupted = errors.New("corrupted history log")
	// ErrLocked is returned when another process holds the log's write lock.
	ErrLocked = errors.New("history log is locked by another writer")
	// ErrClosed is returned by operations on a closed log.
	ErrClosed = errors.New("history log is closed")
)

// HistoryLog adalah log append-only berbasis file yang menyimpan setiap range
// mentah yang pernah direkam. Isi SegmentMap selalu dapat dibangun ulang dengan
// me-replay log ini (lihat Load).
//
// Each record has a fixed width: CRC32, a flag byte and both bound values.
// Semua operasi aman untuk goroutine.
type HistoryLog[T cmp.Ordered] struct {
	mu       sync.Mutex
	file     *os.File
	path     string
	metaPath string
	codec    Codec[T]
	diskRec  int    // CRC + flags + 2 * codec.Size()
	head     uint64 // committed record count
	size     int64  // data file length, may extend past head
	dirty    bool   // appended since the meta file was last written
	locked   bool
	options  LogOptions
	bufPool  *sync.Pool
	log      logrus.FieldLogger
}

var _ Store[int64] = (*HistoryLog[int64])(nil)

// OpenHistoryLog opens or creates the log at path using DefaultLogOptions.
func OpenHistoryLog[T cmp.Ordered](path string, codec Codec[T]) (*HistoryLog[T], error) {
	return OpenHistoryLogWithOptions(path, codec, DefaultLogOptions())
}

// OpenHistoryLogWithOptions opens or creates the log at path.
//
// Next to the data file it keeps path.config (record layout, JSON) and
// path.meta (committed record count). Records found past the committed count
// that still pass their CRC are recovered; the first torn record ends the log
// and everything from it on is dropped by the next Append.
func OpenHistoryLogWithOptions[T cmp.Ordered](path string, codec Codec[T], opts LogOptions) (*HistoryLog[T], error) {
	if codec == nil || codec.Size() <= 0 {
		return nil, fmt.Errorf("codec with a positive size is required")
	}
	log := opts.logger().WithField("path", path)

	// Pastikan direktori ada
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}
	if err := verifyOrWriteConfig(configPath(path), newPersistedConfig(codec.Name(), codec.Size())); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open history log: %w", err)
	}

	if opts.Lock {
		if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
			f.Close()
			if errors.Is(err, unix.EWOULDBLOCK) {
				return nil, fmt.Errorf("%w: %s", ErrLocked, path)
			}
			return nil, fmt.Errorf("lock history log: %w", err)
		}
	}

	diskRec := diskRecordSize(codec.Size())
	var pool *sync.Pool
	if opts.BufferPoolSize > 0 {
		pool = &sync.Pool{New: func() any { return make([]byte, diskRec) }}
	}

	l := &HistoryLog[T]{
		file:     f,
		path:     path,
		metaPath: metaPath(path),
		codec:    codec,
		diskRec:  diskRec,
		locked:   opts.Lock,
		options:  opts,
		bufPool:  pool,
		log:      log,
	}

	if err := l.recoverHead(); err != nil {
		l.release()
		return nil, err
	}
	log.WithField("records", l.head).Debug("history log opened")
	return l, nil
}

// recoverHead sets head from the meta file and then advances it over any
// intact records appended after the last meta write.
func (l *HistoryLog[T]) recoverHead() error {
	fi, err := l.file.Stat()
	if err != nil {
		return fmt.Errorf("stat history log: %w", err)
	}
	l.size = fi.Size()
	whole := uint64(l.size / int64(l.diskRec))

	head, err := loadMeta(l.metaPath)
	switch {
	case err == nil:
	case os.IsNotExist(err):
		head = 0
	default:
		l.log.WithError(err).Warn("meta file unreadable, rescanning history log")
		head = 0
	}
	if head > whole {
		return fmt.Errorf("%w: meta records %d, file holds %d", ErrCorrupted, head, whole)
	}

	committed := head
	buf := l.getBufFromPool()
	defer l.returnBufToPool(buf)
	for head < whole {
		if _, err := l.file.ReadAt(buf, l.offset(head)); err != nil {
			return fmt.Errorf("read record %d: %w", head, err)
		}
		if _, err := l.decode(buf); err != nil {
			l.log.WithField("record", head).Warn("torn record at end of history log, ignoring the rest")
			break
		}
		head++
	}
	if head != committed {
		l.log.WithFields(logrus.Fields{"committed": committed, "recovered": head - committed}).
			Info("recovered uncommitted history records")
		l.dirty = true
	}
	l.head = head
	return nil
}

func (l *HistoryLog[T]) offset(record uint64) int64 {
	return int64(record) * int64(l.diskRec)
}

// Len returns the number of committed records.
func (l *HistoryLog[T]) Len() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return int64(l.head)
}

// Path returns the data file path.
func (l *HistoryLog[T]) Path() string { return l.path }
