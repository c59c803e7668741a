package segments

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"
)

// meta file layout: 16 bytes (little-endian)
// 0..7   : uint64 head (number of committed history records)
// 8..11  : uint32 CRC32 of bytes 0..7
// 12..15 : reserved

const metaSize = 16

func metaPath(base string) string { return base + ".meta" }

func saveMeta(path string, head uint64) error {
	buf := make([]byte, metaSize)
	binary.LittleEndian.PutUint64(buf[0:8], head)
	binary.LittleEndian.PutUint32(buf[8:12], crc32.ChecksumIEEE(buf[0:8]))

	// write-then-rename so a crash never leaves a half written meta behind
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o666); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func loadMeta(path string) (head uint64, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if len(data) < metaSize {
		return 0, fmt.Errorf("meta file too small")
	}
	if crc32.ChecksumIEEE(data[0:8]) != binary.LittleEndian.Uint32(data[8:12]) {
		return 0, fmt.Errorf("%w: meta CRC mismatch", ErrCorrupted)
	}
	return binary.LittleEndian.Uint64(data[0:8]), nil
}
