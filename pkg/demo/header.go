package demo

import (
	"fmt"
	"path/filepath"

	"github.com/psydoom/ticksync/pkg/endian"
	"github.com/psydoom/ticksync/pkg/game"
	gameio "github.com/psydoom/ticksync/pkg/game/io"
	"github.com/psydoom/ticksync/pkg/maphash"
	"github.com/psydoom/ticksync/pkg/player"
	"github.com/psydoom/ticksync/pkg/ruleset"
)

const (
	// Signature replaces the skill field of classic demos, where it is out
	// of range.
	Signature int32 = -1

	// GecSignature is 'DVME' read as a little endian word.
	GecSignature int32 = 0x454D5644

	// FormatVersion is the demo format written by the recorder.
	FormatVersion uint32 = 14

	DefaultFileName = "DEMO_MAP%02d.LMP"

	// Size of the fields that precede the ruleset.
	prefixSize = 24
	hashSize   = 16
)

type Format uint8

const (
	FormatClassic Format = iota
	FormatPsyDoom
	FormatGecMe
)

func (f Format) String() string {
	switch f {
	case FormatPsyDoom:
		return "psydoom"
	case FormatGecMe:
		return "gec-me"
	default:
		return "classic"
	}
}

// DetectFormat decides the demo format from the first word of the file.
func DetectFormat(first int32) Format {
	switch first {
	case Signature:
		return FormatPsyDoom
	case GecSignature:
		return FormatGecMe
	default:
		return FormatClassic
	}
}

// FileName formats a demo file name for a map. An empty pattern uses
// DefaultFileName.
func FileName(directory, pattern string, mapNumber int32) string {
	if pattern == "" {
		pattern = DefaultFileName
	}
	return filepath.Join(directory, fmt.Sprintf(pattern, mapNumber))
}

// Header is everything that precedes the tick stream.
type Header struct {
	FormatVersion uint32
	Skill         game.Skill
	Map           int32
	GameType      game.Type
	PlayerIndex   int32
	Ruleset       ruleset.Ruleset
	MapHash       maphash.Hash
	Players       []player.Snapshot
}

// Validate checks the header fields. numMaps of zero skips the upper bound
// check on the map number.
func (h *Header) Validate(numMaps int32) error {
	if _, ok := ruleset.ForDemoFormat(h.FormatVersion); !ok {
		return newError(KindVersion, "", fmt.Errorf("format version %d", h.FormatVersion))
	}

	if !h.Skill.Valid() {
		return newError(KindFormat, "", fmt.Errorf("skill %d", h.Skill))
	}

	if h.Map < 1 || (numMaps > 0 && h.Map > numMaps) {
		return newError(KindFormat, "", fmt.Errorf("map number %d", h.Map))
	}

	if !h.GameType.Valid() {
		return newError(KindFormat, "", fmt.Errorf("game type %d", h.GameType))
	}

	if h.PlayerIndex != 0 && (h.GameType == game.Single || h.PlayerIndex != 1) {
		return newError(KindFormat, "", fmt.Errorf("player index %d", h.PlayerIndex))
	}

	if len(h.Players) != h.GameType.NumPlayers() {
		return newError(KindFormat, "", fmt.Errorf("%d player snapshots for %s", len(h.Players), h.GameType))
	}

	return nil
}

// encode writes the header with the current format version and ruleset
// layout.
func (h *Header) encode() ([]byte, error) {
	var buffer gameio.Buffer

	rules := h.Ruleset
	endian.Correct(&rules)

	err := buffer.Put(
		endian.ToLittle(Signature),
		endian.ToLittle(FormatVersion),
		endian.ToLittle(int32(h.Skill)),
		endian.ToLittle(h.Map),
		endian.ToLittle(int32(h.GameType)),
		endian.ToLittle(h.PlayerIndex),
		&rules,
		endian.ToLittle(h.MapHash.Word1),
		endian.ToLittle(h.MapHash.Word2),
	)
	if err != nil {
		return nil, err
	}

	for _, snapshot := range h.Players {
		endian.Correct(&snapshot)
		err = buffer.Put(&snapshot)
		if err != nil {
			return nil, err
		}
	}

	return buffer, nil
}
