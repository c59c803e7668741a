package segments

import (
	"cmp"
	"encoding/binary"
	"math"
)

// Codec menerjemahkan nilai bound ke representasi biner berukuran tetap
// sehingga setiap record history di disk memiliki panjang yang sama.
type Codec[T cmp.Ordered] interface {
	// Name identifies the codec in the persisted log config.
	Name() string
	// Size is the encoded width in bytes.
	Size() int
	Put(dst []byte, v T)
	Get(src []byte) T
}

// Int64Codec stores int64 values, e.g. Unix nanoseconds from TimeRange.
type Int64Codec struct{}

func (Int64Codec) Name() string { return "int64" }
func (Int64Codec) Size() int    { return 8 }

func (Int64Codec) Put(dst []byte, v int64) { binary.LittleEndian.PutUint64(dst, uint64(v)) }
func (Int64Codec) Get(src []byte) int64    { return int64(binary.LittleEndian.Uint64(src)) }

// Uint64Codec stores uint64 values such as sequence numbers or block heights.
type Uint64Codec struct{}

func (Uint64Codec) Name() string { return "uint64" }
func (Uint64Codec) Size() int    { return 8 }

func (Uint64Codec) Put(dst []byte, v uint64) { binary.LittleEndian.PutUint64(dst, v) }
func (Uint64Codec) Get(src []byte) uint64    { return binary.LittleEndian.Uint64(src) }

// Float64Codec stores float64 values by their IEEE-754 bits.
type Float64Codec struct{}

func (Float64Codec) Name() string { return "float64" }
func (Float64Codec) Size() int    { return 8 }

func (Float64Codec) Put(dst []byte, v float64) {
	binary.LittleEndian.PutUint64(dst, math.Float64bits(v))
}

func (Float64Codec) Get(src []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(src))
}
