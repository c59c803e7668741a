package segments

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// syncLocked makes written records durable and then commits the head to the
// meta file. Caller holds l.mu.
func (l *HistoryLog[T]) syncLocked() error {
	if err := unix.Fsync(int(l.file.Fd())); err != nil {
		return fmt.Errorf("gagal fsync history log: %w", err)
	}
	if err := saveMeta(l.metaPath, l.head); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	l.dirty = false
	return nil
}

// Flush memaksa semua record tersimpan ke disk dan memperbarui file meta.
func (l *HistoryLog[T]) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return ErrClosed
	}
	if !l.dirty {
		return nil
	}
	return l.syncLocked()
}

// Close menutup log: flush, lepaskan flock, lalu tutup file.
func (l *HistoryLog[T]) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	var firstErr error
	if l.dirty {
		firstErr = l.syncLocked()
	}
	if err := l.release(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// release drops the flock and closes the file without flushing.
func (l *HistoryLog[T]) release() error {
	var firstErr error
	if l.locked {
		if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
			firstErr = fmt.Errorf("gagal melepas lock: %w", err)
		}
		l.locked = false
	}
	if err := l.file.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("gagal menutup history log: %w", err)
	}
	l.file = nil
	return firstErr
}
