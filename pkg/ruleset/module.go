// Package ruleset holds the gameplay rules that every participant of a
// session (players, demo recorder, demo player) must agree on, along with the
// historical layouts of those rules and migration between them.
package ruleset

import (
	"errors"
	"fmt"

	"github.com/psydoom/ticksync/pkg/endian"
	"github.com/psydoom/ticksync/pkg/game"
	"github.com/psydoom/ticksync/pkg/game/io"
)

var (
	ErrUnknownVersion = errors.New("unknown ruleset version")
	ErrShortBuffer    = errors.New("buffer too short for ruleset")
)

const (
	LostSoulLimitDoom      = -1
	LostSoulLimitFinalDoom = 16
)

// Classic is the rule set of the original game for the given disc. It is
// also the fallback for every field an old ruleset version lacks.
func Classic(identity game.Identity) Ruleset {
	var r Ruleset
	r.UsePalTimings = identity.PAL
	r.UseDemoTimings = true
	r.UseFinalDoomPlayerMovement = identity.FinalDoom
	r.AllowMovementCancellation = identity.FinalDoom
	r.LostSoulSpawnLimit = LostSoulLimitDoom
	if identity.FinalDoom {
		r.LostSoulSpawnLimit = LostSoulLimitFinalDoom
	}
	r.ViewBobbingStrength = game.FracUnit
	return r
}

// Migrate upgrades any ruleset layout to the current one. Fields the old
// layout does not have keep their classic value.
func Migrate(old Record, identity game.Identity) (Ruleset, error) {
	out := Classic(identity)

	switch old := old.(type) {
	case *RulesetV1:
		out.RulesetV1 = *old
	case *RulesetV2:
		out = *old
	default:
		return Ruleset{}, fmt.Errorf("%w: %T", ErrUnknownVersion, old)
	}

	return out, nil
}

// ReadAndMigrate decodes a little endian ruleset of the given layout from
// the front of data and upgrades it to the current layout.
func ReadAndMigrate(version Version, data []byte, identity game.Identity) (Ruleset, error) {
	record := newRecord(version)
	if record == nil {
		return Ruleset{}, fmt.Errorf("%w: %d", ErrUnknownVersion, version)
	}

	if len(data) < Size(version) {
		return Ruleset{}, fmt.Errorf("%w: have %d bytes, need %d", ErrShortBuffer, len(data), Size(version))
	}

	buffer := io.Buffer(data[:Size(version)])
	err := buffer.Get(record)
	if err != nil {
		return Ruleset{}, err
	}

	endian.Correct(record)
	return Migrate(record, identity)
}

// Encode returns the little endian wire form of a ruleset.
func Encode(r Ruleset) []byte {
	endian.Correct(&r)

	var buffer io.Buffer
	// Fixed layout records always encode.
	_ = buffer.Put(&r)
	return buffer
}
