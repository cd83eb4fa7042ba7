package maphash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	// md5("") = d41d8cd98f00b204e9800998ecf8427e
	hash := Sum(nil)
	assert.Equal(t, uint64(0x04b2008fd98c1dd4), hash.Word1)
	assert.Equal(t, uint64(0x7e42f8ec980980e9), hash.Word2)
	assert.False(t, hash.IsZero())

	assert.NotEqual(t, Sum([]byte("MAP01")), Sum([]byte("MAP02")))
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MAP05.WAD")
	require.NoError(t, os.WriteFile(path, []byte("things"), 0644))

	hash, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, Sum([]byte("things")), hash)
	assert.Equal(t, hash, Static(hash).MapHash())

	_, err = FromFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
