package demo

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/psydoom/ticksync/pkg/game"
	gameio "github.com/psydoom/ticksync/pkg/game/io"
	"github.com/psydoom/ticksync/pkg/game/weapon"
	"github.com/psydoom/ticksync/pkg/input"
	"github.com/psydoom/ticksync/pkg/maphash"
	"github.com/psydoom/ticksync/pkg/player"
	"github.com/psydoom/ticksync/pkg/ruleset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, header Header, ticks [][game.MaxPlayers]input.TickInput) []byte {
	var out bytes.Buffer
	recorder, err := NewRecorder(&out, header)
	require.NoError(t, err)

	for i := range ticks {
		require.NoError(t, recorder.RecordTick(&ticks[i], [game.MaxPlayers]int32{int32(i % 8), 1}))
	}
	require.NoError(t, recorder.End())
	return out.Bytes()
}

func TestReadBack(t *testing.T) {
	header := singlePlayerHeader()
	header.GameType = game.Deathmatch
	header.PlayerIndex = 1
	header.Ruleset.DmFragLimit = 25
	second := player.Fresh(7)
	second.Health = 42
	header.Players = append(header.Players, second)

	a := idle()
	a[0].SetAnalogSideMove(-game.FracUnit / 2)
	a[0].MouseDx = 30
	a[1].SwitchToWeapon = weapon.PlasmaRifle

	b := a
	b[1].SetAnalogTurn(0x40000000)

	data := record(t, header, [][game.MaxPlayers]input.TickInput{a, a, b, idle()})

	reader, err := NewReader(bytes.NewReader(data), ReaderOptions{NumMaps: 30})
	require.NoError(t, err)
	assert.Equal(t, FormatPsyDoom, reader.Format)
	assert.Equal(t, FormatVersion, reader.Header.FormatVersion)
	assert.Equal(t, header.Ruleset, reader.Header.Ruleset)
	assert.Equal(t, header.Players, reader.Header.Players)
	assert.Equal(t, int32(1), reader.Header.PlayerIndex)

	require.NoError(t, reader.VerifyMap(maphash.Static(header.MapHash)))

	expected := [][game.MaxPlayers]input.TickInput{a, a, b, idle()}
	for i, inputs := range expected {
		tick, err := reader.Next()
		require.NoError(t, err, "tick %d", i)

		// Mouse deltas do not survive recording.
		inputs[0].MouseDx = 0
		assert.Equal(t, inputs, tick.Inputs, "tick %d", i)
		assert.Equal(t, [game.MaxPlayers]int32{int32(i), 1}, tick.Elapsed)
	}

	_, err = reader.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 4, reader.Ticks())
}

func TestMapMismatch(t *testing.T) {
	data := record(t, singlePlayerHeader(), nil)

	reader, err := NewReader(bytes.NewReader(data), ReaderOptions{})
	require.NoError(t, err)

	err = reader.VerifyMap(maphash.Static(maphash.Sum([]byte("MAP06"))))
	assert.ErrorIs(t, err, ErrMapMismatch)
}

func TestTruncated(t *testing.T) {
	a := idle()
	a[0].Set(input.Attack, true)
	data := record(t, singlePlayerHeader(), [][game.MaxPlayers]input.TickInput{a})

	_, ticks, err := ReadAll(bytes.NewReader(data[:len(data)-3]), ReaderOptions{})
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
	assert.Empty(t, ticks)

	_, _, err = ReadAll(bytes.NewReader(data[:headerSize-1]), ReaderOptions{})
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	_, ticks, err = ReadAll(bytes.NewReader(data), ReaderOptions{})
	require.NoError(t, err)
	assert.Len(t, ticks, 1)
}

func TestUnsupported(t *testing.T) {
	var classic gameio.Buffer
	require.NoError(t, classic.Put(make([]int32, 8)))
	_, err := NewReader(bytes.NewReader(classic), ReaderOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	var gec gameio.Buffer
	require.NoError(t, gec.Put(GecSignature, make([]int32, 7)))
	_, err = NewReader(bytes.NewReader(gec), ReaderOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	data := record(t, singlePlayerHeader(), nil)
	data[4] = 12
	_, err = NewReader(bytes.NewReader(data), ReaderOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestInvalidFields(t *testing.T) {
	data := record(t, singlePlayerHeader(), nil)

	_, err := NewReader(bytes.NewReader(data), ReaderOptions{NumMaps: 4})
	assert.ErrorIs(t, err, ErrInvalidHeader)

	// Player two in a single player game.
	data[20] = 1
	_, err = NewReader(bytes.NewReader(data), ReaderOptions{})
	assert.ErrorIs(t, err, ErrInvalidHeader)
}

// Demos from game 1.0.x carry a version 1 ruleset.
func TestReadFormat11(t *testing.T) {
	identity := game.Identity{FinalDoom: true}

	var rules ruleset.RulesetV1
	rules.UseDemoTimings = true
	rules.FixKillCount = true
	rules.LostSoulSpawnLimit = 16
	rules.ViewBobbingStrength = game.FracUnit

	hash := maphash.Sum([]byte("MAP12"))
	snapshot := player.Fresh(0)

	var data gameio.Buffer
	require.NoError(t, data.Put(
		Signature,
		uint32(11),
		int32(game.Medium),
		int32(12),
		int32(game.Single),
		int32(0),
		&rules,
		hash.Word1,
		hash.Word2,
		&snapshot,
		uint8(0x80|1<<3),
	))

	compact := input.Compact(&input.TickInput{SwitchToWeapon: weapon.Shotgun})
	require.NoError(t, data.Put(&compact))

	header, ticks, err := ReadAll(bytes.NewReader(data), ReaderOptions{Identity: identity})
	require.NoError(t, err)

	assert.Equal(t, uint32(11), header.FormatVersion)
	assert.Equal(t, rules, header.Ruleset.RulesetV1)
	assert.Equal(t, ruleset.Classic(identity).DmFragLimit, header.Ruleset.DmFragLimit)
	assert.Equal(t, hash, header.MapHash)

	require.Len(t, ticks, 1)
	assert.Equal(t, weapon.Shotgun, ticks[0].Inputs[0].SwitchToWeapon)
	assert.Equal(t, weapon.NoChange, ticks[0].Inputs[1].SwitchToWeapon)
}

func TestReadFile(t *testing.T) {
	path := FileName(t.TempDir(), "demo_%d.lmp", 5)
	recorder, err := Begin(path, singlePlayerHeader())
	require.NoError(t, err)
	require.NoError(t, recorder.End())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	reader, err := NewReader(file, ReaderOptions{})
	require.NoError(t, err)
	assert.Equal(t, int32(5), reader.Header.Map)

	_, err = reader.Next()
	assert.Equal(t, io.EOF, err)
}
