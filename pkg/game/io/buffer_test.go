package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cmp[T any](t *testing.T, before T) {
	p := Buffer{}
	err := p.Put(before)
	require.NoError(t, err)

	var after T
	err = p.Get(&after)
	require.NoError(t, err)

	assert.Equal(t, before, after, "should yield same result")
	assert.Empty(t, p)
}

func TestRecords(t *testing.T) {
	type Record struct {
		A uint8
		_ [3]byte
		B int32
		C [2]uint16
	}

	cmp(t, Record{A: 7, B: -3, C: [2]uint16{1, 2}})
	cmp(t, int64(-99))
}

func TestShort(t *testing.T) {
	p := Buffer{1, 2, 3}

	var value uint32
	assert.ErrorIs(t, p.Get(&value), ErrShort)
	assert.Len(t, p, 3, "failed reads do not consume")

	var small uint16
	require.NoError(t, p.Get(&small))
	assert.Equal(t, Buffer{3}, p)
}

func TestPeekInt(t *testing.T) {
	p := Buffer{0xFF, 0xFF, 0xFF, 0xFF, 0x01}
	value, ok := p.PeekInt()
	assert.True(t, ok)
	assert.Equal(t, int32(-1), value)
	assert.Len(t, p, 5)
}
