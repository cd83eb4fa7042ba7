// Package archive stores demos by content. Keys are the xxhash of the raw
// demo and blobs are kept gzip compressed.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

func Key(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, gzipMagic)
}

func Compress(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer := gzip.NewWriter(&buffer)

	_, err := writer.Write(data)
	if err != nil {
		return nil, err
	}

	err = writer.Close()
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

func Decompress(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

// Unwrap returns data as is unless it is gzip compressed.
func Unwrap(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return data, nil
	}
	return Decompress(data)
}

// Put stores a demo and returns its key. Storing the same demo twice is
// harmless.
func Put(ctx context.Context, store Store, demo []byte) (string, error) {
	key := Key(demo)

	compressed, err := Compress(demo)
	if err != nil {
		return "", err
	}

	err = store.Set(ctx, key, compressed)
	if err != nil {
		return "", err
	}

	return key, nil
}

// Get returns the demo stored under key and checks it against the key.
func Get(ctx context.Context, store Store, key string) ([]byte, error) {
	compressed, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	demo, err := Decompress(compressed)
	if err != nil {
		return nil, err
	}

	if actual := Key(demo); actual != key {
		return nil, fmt.Errorf("demo %s is corrupt: content hashes to %s", key, actual)
	}

	return demo, nil
}

// ParseKey checks that key looks like something Key returned.
func ParseKey(key string) (uint64, error) {
	return strconv.ParseUint(key, 16, 64)
}
