package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

type weaponID uint8
type gameType int32

func TestSwap(t *testing.T) {
	assert.Equal(t, uint8(0xAB), Swap(uint8(0xAB)))
	assert.Equal(t, int8(-2), Swap(int8(-2)))
	assert.Equal(t, uint16(0x3412), Swap(uint16(0x1234)))
	assert.Equal(t, int16(0x0180), Swap(int16(-32767)))
	assert.Equal(t, uint32(0x78563412), Swap(uint32(0x12345678)))
	assert.Equal(t, int32(-1), Swap(int32(-1)))
	assert.Equal(t, uint64(0xEFCDAB8967452301), Swap(uint64(0x0123456789ABCDEF)))
}

func TestSwapEnums(t *testing.T) {
	assert.Equal(t, weaponID(10), Swap(weaponID(10)))
	assert.Equal(t, gameType(0x02000000), Swap(gameType(2)))
}

func TestSwapIsInvolution(t *testing.T) {
	for _, value := range []uint32{0, 1, 0xFFFFFFFF, 0xDEADBEEF, 0x80000000} {
		assert.Equal(t, value, Swap(Swap(value)))
	}

	value := int64(-123456789)
	SwapInPlace(&value)
	SwapInPlace(&value)
	assert.Equal(t, int64(-123456789), value)
}

func TestHostConversions(t *testing.T) {
	value := uint32(0x11223344)
	assert.Equal(t, value, FromLittle(ToLittle(value)))
	assert.Equal(t, value, FromBig(ToBig(value)))
	assert.Equal(t, Swap(ToLittle(value)), ToBig(value))

	// Whatever the host, the corrected value laid out natively must read back as
	// little endian.
	buffer := make([]byte, 4)
	Native.PutUint32(buffer, ToLittle(value))
	assert.Equal(t, value, binary.LittleEndian.Uint32(buffer))

	assert.NotEqual(t, IsLittle(), IsBig())
}

type pair struct {
	A uint16
	B int32
}

func (p *pair) ByteSwap() {
	SwapInPlace(&p.A)
	SwapInPlace(&p.B)
}

func TestCorrect(t *testing.T) {
	p := pair{A: 0x0102, B: 0x01020304}
	Correct(&p)

	buffer := make([]byte, 6)
	Native.PutUint16(buffer[0:], p.A)
	Native.PutUint32(buffer[2:], uint32(p.B))
	assert.Equal(t, []byte{0x02, 0x01, 0x04, 0x03, 0x02, 0x01}, buffer)
}
