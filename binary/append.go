package binary

import (
	stdbinary "encoding/binary"
	"math"
)

// AppendLong appends the zigzag varint encoding of v.
func AppendLong(b []byte, v int64) []byte {
	return stdbinary.AppendUvarint(b, uint64(v<<1)^uint64(v>>63))
}

// AppendInt appends the zigzag varint encoding of v.
func AppendInt(b []byte, v int32) []byte {
	return stdbinary.AppendUvarint(b, uint64(uint32(v<<1)^uint32(v>>31)))
}

// AppendBoolean appends a single 0 or 1 byte.
func AppendBoolean(b []byte, v bool) []byte {
	if v {
		return append(b, 1)
	}
	return append(b, 0)
}

// AppendFloat and AppendDouble append little-endian IEEE 754 bits.
func AppendFloat(b []byte, v float32) []byte {
	return stdbinary.LittleEndian.AppendUint32(b, math.Float32bits(v))
}

func AppendDouble(b []byte, v float64) []byte {
	return stdbinary.LittleEndian.AppendUint64(b, math.Float64bits(v))
}

// AppendBytes appends the length of v followed by v.
func AppendBytes(b []byte, v []byte) []byte {
	b = AppendLong(b, int64(len(v)))
	return append(b, v...)
}

// AppendString is AppendBytes for a string.
func AppendString(b []byte, v string) []byte {
	b = AppendLong(b, int64(len(v)))
	return append(b, v...)
}

// AppendBlockHeader appends the header of a plain array or map block.
// A count of 0 is the terminator.
func AppendBlockHeader(b []byte, count int64) []byte {
	return AppendLong(b, count)
}

// AppendSizedBlockHeader appends the header of a size-prefixed block:
// the negated count followed by the byte size of the block's items.
func AppendSizedBlockHeader(b []byte, count, size int64) []byte {
	b = AppendLong(b, -count)
	return AppendLong(b, size)
}
