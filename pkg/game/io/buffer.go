package io

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/psydoom/ticksync/pkg/endian"
)

// Buffer reads and writes fixed layout records without any compression.
// Records are expected to be endian corrected by the caller, so they are
// laid out in host order here.
type Buffer []byte

var ErrShort = errors.New("buffer too short")

func (p *Buffer) Get(pieces ...interface{}) error {
	for _, piece := range pieces {
		size := binary.Size(piece)
		if size < 0 {
			return errors.New("value has no fixed size")
		}

		if size > len(*p) {
			return ErrShort
		}

		err := binary.Read(bytes.NewReader((*p)[:size]), endian.Native, piece)
		if err != nil {
			return err
		}

		*p = (*p)[size:]
	}

	return nil
}

func (p *Buffer) Put(pieces ...interface{}) error {
	for _, piece := range pieces {
		var buffer bytes.Buffer

		err := binary.Write(&buffer, endian.Native, piece)
		if err != nil {
			return err
		}

		*p = append(*p, buffer.Bytes()...)
	}

	return nil
}

func (p *Buffer) PeekInt() (int32, bool) {
	if len(*p) < 4 {
		return 0, false
	}
	return int32(endian.FromLittle(endian.Native.Uint32(*p))), true
}
