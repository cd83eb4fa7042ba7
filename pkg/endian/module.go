// Package endian holds the byte order primitives used by every fixed-size
// record that goes to disk or onto the wire. All such records are little
// endian; on a little endian host every conversion here is a no-op.
package endian

import (
	"encoding/binary"
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Native is the host byte order. Records are endian corrected first and then
// written in native layout, which yields little endian bytes on any host.
var Native binary.ByteOrder = binary.NativeEndian

func IsLittle() bool {
	return hostIsLittle
}

func IsBig() bool {
	return !hostIsLittle
}

// Swap reverses the bytes of an 8, 16, 32 or 64 bit integer. Named integer
// types (enums) are swapped through their underlying type.
func Swap[T constraints.Integer](value T) T {
	switch unsafe.Sizeof(value) {
	case 2:
		return T(bits.ReverseBytes16(uint16(value)))
	case 4:
		return T(bits.ReverseBytes32(uint32(value)))
	case 8:
		return T(bits.ReverseBytes64(uint64(value)))
	default:
		return value
	}
}

func SwapInPlace[T constraints.Integer](value *T) {
	*value = Swap(*value)
}

func ToLittle[T constraints.Integer](value T) T {
	if hostIsLittle {
		return value
	}
	return Swap(value)
}

func FromLittle[T constraints.Integer](value T) T {
	return ToLittle(value)
}

func ToBig[T constraints.Integer](value T) T {
	if hostIsLittle {
		return Swap(value)
	}
	return value
}

func FromBig[T constraints.Integer](value T) T {
	return ToBig(value)
}

// CorrectInPlace converts between host and little endian in place. The
// operation is its own inverse.
func CorrectInPlace[T constraints.Integer](value *T) {
	*value = ToLittle(*value)
}

// Swappable is implemented by records that know how to byte swap every
// multi-byte field they physically contain.
type Swappable interface {
	ByteSwap()
}

// Correct byte swaps a record only when the host is big endian.
func Correct(record Swappable) {
	if !hostIsLittle {
		record.ByteSwap()
	}
}
