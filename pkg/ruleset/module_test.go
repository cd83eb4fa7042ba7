package ruleset

import (
	"encoding/binary"
	"testing"

	"github.com/psydoom/ticksync/pkg/game"
	"github.com/psydoom/ticksync/pkg/game/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var doom = game.Identity{}
var finalDoomPAL = game.Identity{FinalDoom: true, PAL: true}

func TestSizes(t *testing.T) {
	assert.Equal(t, Size(V1), binary.Size(&RulesetV1{}))
	assert.Equal(t, Size(V2), binary.Size(&RulesetV2{}))
	assert.Equal(t, -1, Size(3))
}

func TestClassic(t *testing.T) {
	classic := Classic(doom)
	assert.False(t, classic.UsePalTimings)
	assert.True(t, classic.UseDemoTimings)
	assert.False(t, classic.UseFinalDoomPlayerMovement)
	assert.Equal(t, int32(LostSoulLimitDoom), classic.LostSoulSpawnLimit)
	assert.Equal(t, game.FracUnit, classic.ViewBobbingStrength)
	assert.Zero(t, classic.DmFragLimit)

	final := Classic(finalDoomPAL)
	assert.True(t, final.UsePalTimings)
	assert.True(t, final.UseFinalDoomPlayerMovement)
	assert.True(t, final.AllowMovementCancellation)
	assert.Equal(t, int32(LostSoulLimitFinalDoom), final.LostSoulSpawnLimit)
}

func TestMigrateV1(t *testing.T) {
	var old RulesetV1
	old.FixKillCount = true
	old.NoMonsters = true
	old.UseDemoTimings = false
	old.LostSoulSpawnLimit = 32
	old.ViewBobbingStrength = game.FracUnit / 2

	migrated, err := Migrate(&old, finalDoomPAL)
	require.NoError(t, err)

	// Every field version 1 has is taken as is, even when the classic
	// value differs.
	assert.Equal(t, old, migrated.RulesetV1)
	assert.False(t, migrated.UseDemoTimings)
	assert.False(t, migrated.UsePalTimings)

	// Everything else is classic.
	classic := Classic(finalDoomPAL)
	assert.Equal(t, classic.DmFragLimit, migrated.DmFragLimit)
	assert.Equal(t, classic.CoopPreserveAmmoFactor, migrated.CoopPreserveAmmoFactor)
	assert.Equal(t, classic.SinglePlayerForceSpawnDmThings, migrated.SinglePlayerForceSpawnDmThings)
}

func TestReadAndMigrate(t *testing.T) {
	current := Classic(doom)
	current.DmFragLimit = 20
	current.TurboMode = true

	data := Encode(current)
	require.Len(t, data, Size(V2))

	decoded, err := ReadAndMigrate(V2, append(data, 0xFF), doom)
	require.NoError(t, err)
	assert.Equal(t, current, decoded)

	// The first 36 bytes of a current record are a valid version 1 record.
	decoded, err = ReadAndMigrate(V1, data, doom)
	require.NoError(t, err)
	assert.Equal(t, current.RulesetV1, decoded.RulesetV1)
	assert.Zero(t, decoded.DmFragLimit)
}

func TestReadAndMigrateLayout(t *testing.T) {
	var old RulesetV1
	old.UsePalTimings = true
	old.EnableMapPatchesGamePlay = true
	old.LostSoulSpawnLimit = 0x01020304
	old.ViewBobbingStrength = -1

	var buffer io.Buffer
	require.NoError(t, buffer.Put(&old))
	assert.Equal(t, byte(1), buffer[0])
	assert.Equal(t, byte(1), buffer[26])
	assert.Equal(t, []byte{4, 3, 2, 1}, []byte(buffer[28:32]))
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, []byte(buffer[32:36]))

	decoded, err := ReadAndMigrate(V1, buffer, doom)
	require.NoError(t, err)
	assert.Equal(t, old, decoded.RulesetV1)
}

func TestUnknownVersion(t *testing.T) {
	data := make([]byte, 128)

	for _, version := range []Version{0, 3, -1} {
		_, err := ReadAndMigrate(version, data, doom)
		assert.ErrorIs(t, err, ErrUnknownVersion)
	}

	_, err := ReadAndMigrate(V2, data[:40], doom)
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestTables(t *testing.T) {
	version, ok := ForDemoFormat(11)
	assert.True(t, ok)
	assert.Equal(t, V1, version)

	version, ok = ForDemoFormat(14)
	assert.True(t, ok)
	assert.Equal(t, V2, version)

	_, ok = ForDemoFormat(12)
	assert.False(t, ok)

	version, ok = ForProtocol(31)
	assert.True(t, ok)
	assert.Equal(t, V2, version)

	version, ok = ForProtocol(28)
	assert.True(t, ok)
	assert.Equal(t, V1, version)

	_, ok = ForProtocol(30)
	assert.False(t, ok)
}

func TestUser(t *testing.T) {
	options := Options{
		UsePalTimings:              Auto,
		UseFinalDoomPlayerMovement: 0,
		AllowMovementCancellation:  Auto,
		ViewBobbingStrength:        100,
		DmFragLimit:                10,
	}

	r := User(options, finalDoomPAL)
	assert.True(t, r.UsePalTimings)
	assert.False(t, r.UseFinalDoomPlayerMovement)
	assert.True(t, r.AllowMovementCancellation)
	assert.Equal(t, int32(LostSoulLimitFinalDoom), r.LostSoulSpawnLimit)
	assert.Equal(t, 64*game.FracUnit, r.ViewBobbingStrength)
	assert.Equal(t, int32(10), r.DmFragLimit)

	options.UsePalTimings = 0
	options.LostSoulSpawnLimit = 4
	options.ViewBobbingStrength = 0.5
	r = User(options, finalDoomPAL)
	assert.False(t, r.UsePalTimings)
	assert.Equal(t, int32(4), r.LostSoulSpawnLimit)
	assert.Equal(t, game.FracUnit/2, r.ViewBobbingStrength)
}

func TestByteSwapV1(t *testing.T) {
	r := Classic(finalDoomPAL).RulesetV1

	swapped := r
	swapped.ByteSwap()
	assert.Equal(t, int32(0x10000000), swapped.LostSoulSpawnLimit)
	assert.Equal(t, game.Fixed(0x00000100), swapped.ViewBobbingStrength)
	assert.True(t, swapped.UsePalTimings)
	assert.True(t, swapped.UseFinalDoomPlayerMovement)
	assert.False(t, swapped.NoMonsters)

	swapped.ByteSwap()
	assert.Equal(t, r, swapped)
}

func TestByteSwapV2(t *testing.T) {
	r := Classic(doom)
	r.DmFragLimit = 0x01020304
	r.CoopPreserveAmmoFactor = 2
	r.CoopNoFriendlyFire = true

	swapped := r
	swapped.ByteSwap()
	assert.Equal(t, int32(-1), swapped.LostSoulSpawnLimit)
	assert.Equal(t, game.Fixed(0x00000100), swapped.ViewBobbingStrength)
	assert.Equal(t, int32(0x04030201), swapped.DmFragLimit)
	assert.Equal(t, int32(0x02000000), swapped.CoopPreserveAmmoFactor)
	assert.True(t, swapped.CoopNoFriendlyFire)
	assert.True(t, swapped.UseDemoTimings)

	swapped.ByteSwap()
	assert.Equal(t, r, swapped)
}
