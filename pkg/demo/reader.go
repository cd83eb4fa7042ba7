package demo

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/psydoom/ticksync/pkg/endian"
	"github.com/psydoom/ticksync/pkg/game"
	gameio "github.com/psydoom/ticksync/pkg/game/io"
	"github.com/psydoom/ticksync/pkg/input"
	"github.com/psydoom/ticksync/pkg/maphash"
	"github.com/psydoom/ticksync/pkg/player"
	"github.com/psydoom/ticksync/pkg/ruleset"
)

type ReaderOptions struct {
	// Upper bound for map numbers. Zero disables the check.
	NumMaps int32

	// The disc being played, used when migrating old rulesets.
	Identity game.Identity
}

// Tick is one decoded tick record.
type Tick struct {
	Inputs  [game.MaxPlayers]input.TickInput
	Elapsed [game.MaxPlayers]int32
}

type Reader struct {
	Header Header
	Format Format

	reader   *bufio.Reader
	previous [game.MaxPlayers]input.CompactTickInput
	ticks    int
}

func readRecord(r io.Reader, size int) (gameio.Buffer, error) {
	data := make([]byte, size)
	_, err := io.ReadFull(r, data)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, newError(KindEOF, "", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, newError(KindIO, "", err)
	}
	return gameio.Buffer(data), nil
}

// NewReader parses and validates the header of a demo.
func NewReader(r io.Reader, options ReaderOptions) (*Reader, error) {
	reader := &Reader{
		reader: bufio.NewReader(r),
	}

	prefix, err := readRecord(reader.reader, prefixSize)
	if err != nil {
		return nil, err
	}

	first, _ := prefix.PeekInt()
	reader.Format = DetectFormat(first)
	if reader.Format != FormatPsyDoom {
		return nil, newError(KindFormat, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, reader.Format))
	}

	var (
		signature, skill, mapNumber, gameType, playerIndex int32
		version                                            uint32
	)
	err = prefix.Get(&signature, &version, &skill, &mapNumber, &gameType, &playerIndex)
	if err != nil {
		return nil, newError(KindEOF, "", err)
	}

	header := &reader.Header
	header.FormatVersion = endian.FromLittle(version)
	header.Skill = game.Skill(endian.FromLittle(skill))
	header.Map = endian.FromLittle(mapNumber)
	header.GameType = game.Type(endian.FromLittle(gameType))
	header.PlayerIndex = endian.FromLittle(playerIndex)

	rulesVersion, ok := ruleset.ForDemoFormat(header.FormatVersion)
	if !ok {
		return nil, newError(KindVersion, "", fmt.Errorf("format version %d", header.FormatVersion))
	}

	rules, err := readRecord(reader.reader, ruleset.Size(rulesVersion))
	if err != nil {
		return nil, err
	}

	header.Ruleset, err = ruleset.ReadAndMigrate(rulesVersion, rules, options.Identity)
	if err != nil {
		return nil, newError(KindVersion, "", err)
	}

	hash, err := readRecord(reader.reader, hashSize)
	if err != nil {
		return nil, err
	}

	var word1, word2 uint64
	err = hash.Get(&word1, &word2)
	if err != nil {
		return nil, newError(KindEOF, "", err)
	}
	header.MapHash = maphash.Hash{
		Word1: endian.FromLittle(word1),
		Word2: endian.FromLittle(word2),
	}

	// Validate before the snapshots: their count depends on the game type.
	header.Players = make([]player.Snapshot, header.GameType.NumPlayers())
	err = header.Validate(options.NumMaps)
	if err != nil {
		return nil, err
	}

	for i := range header.Players {
		data, err := readRecord(reader.reader, player.Size)
		if err != nil {
			return nil, err
		}

		snapshot := &header.Players[i]
		err = data.Get(snapshot)
		if err != nil {
			return nil, newError(KindEOF, "", err)
		}
		endian.Correct(snapshot)
	}

	for i := range reader.previous {
		reader.previous[i].Reset()
	}

	return reader, nil
}

// VerifyMap checks that the demo was recorded on the map the provider has
// loaded.
func (r *Reader) VerifyMap(provider maphash.Provider) error {
	actual := provider.MapHash()
	if actual != r.Header.MapHash {
		return newError(
			KindMapMismatch,
			"",
			fmt.Errorf("expected %s, have %s", r.Header.MapHash, actual),
		)
	}
	return nil
}

// Next decodes the next tick record. It returns io.EOF once the stream ends
// on a record boundary.
func (r *Reader) Next() (Tick, error) {
	var tick Tick

	status, err := r.reader.ReadByte()
	if errors.Is(err, io.EOF) {
		return tick, io.EOF
	}
	if err != nil {
		return tick, newError(KindIO, "", err)
	}

	tick.Elapsed[0] = int32(status>>3) & maxElapsed
	tick.Elapsed[1] = int32(status) & maxElapsed

	for i, mask := range []uint8{player1Changed, player2Changed} {
		if status&mask != 0 {
			data, err := readRecord(r.reader, input.CompactSize)
			if err != nil {
				return tick, err
			}

			var compact input.CompactTickInput
			err = data.Get(&compact)
			if err != nil {
				return tick, newError(KindEOF, "", err)
			}
			endian.Correct(&compact)
			r.previous[i] = compact
		}

		r.previous[i].DeserializeTo(&tick.Inputs[i])
	}

	r.ticks++
	return tick, nil
}

// Ticks is the number of tick records decoded so far.
func (r *Reader) Ticks() int {
	return r.ticks
}

// ReadAll decodes a whole demo.
func ReadAll(r io.Reader, options ReaderOptions) (*Header, []Tick, error) {
	reader, err := NewReader(r, options)
	if err != nil {
		return nil, nil, err
	}

	var ticks []Tick
	for {
		tick, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return &reader.Header, ticks, err
		}
		ticks = append(ticks, tick)
	}

	return &reader.Header, ticks, nil
}
