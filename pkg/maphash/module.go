// Package maphash identifies the map a demo was recorded on.
package maphash

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"os"
)

// Hash is the two word digest stored in demo headers.
type Hash struct {
	Word1 uint64
	Word2 uint64
}

func (h Hash) String() string {
	return fmt.Sprintf("%016x%016x", h.Word1, h.Word2)
}

func (h Hash) IsZero() bool {
	return h.Word1 == 0 && h.Word2 == 0
}

// Sum digests the raw map lump data.
func Sum(data []byte) Hash {
	digest := md5.Sum(data)
	return Hash{
		Word1: binary.LittleEndian.Uint64(digest[:8]),
		Word2: binary.LittleEndian.Uint64(digest[8:]),
	}
}

// Provider supplies the hash of the currently loaded map.
type Provider interface {
	MapHash() Hash
}

// Static is a Provider with a fixed value.
type Static Hash

func (s Static) MapHash() Hash {
	return Hash(s)
}

func FromFile(path string) (Hash, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Hash{}, err
	}
	return Sum(data), nil
}
