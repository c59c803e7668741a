package segments

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// record layout (little-endian)
// 0..3 : CRC32 (IEEE) of bytes 4..end
// 4    : flags, bit 0 = From present, bit 1 = To present
// 5..  : From value, then To value, codec.Size() bytes each (zero when absent)

const (
	flagFrom byte = 1 << iota
	flagTo

	recordHeader = 5
)

func diskRecordSize(valueSize int) int { return recordHeader + 2*valueSize }

func (l *HistoryLog[T]) encode(buf []byte, r Range[T]) {
	clear(buf)
	n := l.codec.Size()
	var flags byte
	if r.From.Set {
		flags |= flagFrom
		l.codec.Put(buf[recordHeader:recordHeader+n], r.From.Value)
	}
	if r.To.Set {
		flags |= flagTo
		l.codec.Put(buf[recordHeader+n:recordHeader+2*n], r.To.Value)
	}
	buf[4] = flags
	binary.LittleEndian.PutUint32(buf[0:4], crc32.ChecksumIEEE(buf[4:]))
}

func (l *HistoryLog[T]) decode(buf []byte) (Range[T], error) {
	if crc32.ChecksumIEEE(buf[4:]) != binary.LittleEndian.Uint32(buf[0:4]) {
		return Range[T]{}, fmt.Errorf("%w: CRC mismatch", ErrCorrupted)
	}
	flags := buf[4]
	if flags&^(flagFrom|flagTo) != 0 {
		return Range[T]{}, fmt.Errorf("%w: unknown flags %#x", ErrCorrupted, flags)
	}
	n := l.codec.Size()
	var r Range[T]
	if flags&flagFrom != 0 {
		r.From = At(l.codec.Get(buf[recordHeader : recordHeader+n]))
	}
	if flags&flagTo != 0 {
		r.To = At(l.codec.Get(buf[recordHeader+n : recordHeader+2*n]))
	}
	return r, nil
}

// Append writes r as the next history record. With SyncOnAppend the record
// is durable when Append returns.
func (l *HistoryLog[T]) Append(r Range[T]) error {
	if err := r.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return ErrClosed
	}

	// bytes past head were never committed; drop them before the slot is
	// reused so a later recovery scan cannot pick them up
	if err := l.truncateLocked(); err != nil {
		return err
	}

	buf := l.getBufFromPool()
	defer l.returnBufToPool(buf)
	l.encode(buf, r)

	if _, err := l.file.WriteAt(buf, l.offset(l.head)); err != nil {
		// part of the record may have landed
		l.size = l.offset(l.head + 1)
		return fmt.Errorf("write record %d: %w", l.head, err)
	}
	l.head++
	l.size = l.offset(l.head)
	l.dirty = true

	if l.options.SyncOnAppend {
		if err := l.syncLocked(); err != nil {
			l.head--
			if terr := l.truncateLocked(); terr != nil {
				l.log.WithError(terr).Error("failed to drop uncommitted record")
			}
			return err
		}
	}
	return nil
}

// truncateLocked cuts the data file back to the end of record head.
// Caller holds l.mu.
func (l *HistoryLog[T]) truncateLocked() error {
	end := l.offset(l.head)
	if l.size <= end {
		return nil
	}
	if err := l.file.Truncate(end); err != nil {
		return fmt.Errorf("truncate history log to %d records: %w", l.head, err)
	}
	l.log.WithField("bytes", l.size-end).Warn("discarded uncommitted tail of history log")
	l.size = end
	return nil
}

// Replay reads every committed record in insertion order.
func (l *HistoryLog[T]) Replay() ([]Range[T], error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil, ErrClosed
	}

	buf := l.getBufFromPool()
	defer l.returnBufToPool(buf)

	out := make([]Range[T], 0, l.head)
	for i := uint64(0); i < l.head; i++ {
		if _, err := l.file.ReadAt(buf, l.offset(i)); err != nil {
			return nil, fmt.Errorf("read record %d: %w", i, err)
		}
		r, err := l.decode(buf)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Load rebuilds the SegmentMap recorded in the log.
func (l *HistoryLog[T]) Load() (SegmentMap[T], error) {
	history, err := l.Replay()
	if err != nil {
		return SegmentMap[T]{}, err
	}
	m, err := Replay(history)
	if err != nil {
		return SegmentMap[T]{}, fmt.Errorf("replay history log: %w", err)
	}
	return m, nil
}
