package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/psydoom/ticksync/pkg/demo"
	"github.com/psydoom/ticksync/pkg/game"
	"github.com/psydoom/ticksync/pkg/maphash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *Catalog {
	catalog, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { catalog.Close() })
	return catalog
}

func header(mapNumber int32) *demo.Header {
	return &demo.Header{
		FormatVersion: demo.FormatVersion,
		Skill:         game.Hard,
		Map:           mapNumber,
		GameType:      game.Single,
		MapHash:       maphash.Sum([]byte{byte(mapNumber)}),
	}
}

func TestAddGet(t *testing.T) {
	ctx := context.Background()
	catalog := open(t)

	entry := NewEntry("00000000000000aa", "DEMO_MAP05.LMP", header(5), 300)
	require.NoError(t, catalog.Add(ctx, &entry))

	found, err := catalog.Get(ctx, "00000000000000aa")
	require.NoError(t, err)
	assert.Equal(t, int32(5), found.Map)
	assert.Equal(t, int32(2), found.RulesetVersion)
	assert.Equal(t, int32(game.Hard), found.Skill)
	assert.Equal(t, 300, found.Ticks)
	assert.Len(t, found.MapHash, 32)

	_, err = catalog.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddTwice(t *testing.T) {
	ctx := context.Background()
	catalog := open(t)

	first := NewEntry("00000000000000bb", "first.lmp", header(3), 10)
	require.NoError(t, catalog.Add(ctx, &first))

	second := NewEntry("00000000000000bb", "second.lmp", header(3), 10)
	require.NoError(t, catalog.Add(ctx, &second))

	entries, err := catalog.ByMap(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "second.lmp", entries[0].Source)
}

func TestByMap(t *testing.T) {
	ctx := context.Background()
	catalog := open(t)

	for i, mapNumber := range []int32{1, 2, 1} {
		entry := NewEntry(string(rune('a'+i))+"000000000000000", "", header(mapNumber), i)
		require.NoError(t, catalog.Add(ctx, &entry))
	}

	entries, err := catalog.ByMap(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = catalog.ByMap(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	entries, err = catalog.ByMap(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
