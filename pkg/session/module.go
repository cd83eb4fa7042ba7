// Package session runs a two player network game: the handshake, the tick
// exchange and the lockstep barrier, optionally recording a demo.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/psydoom/ticksync/pkg/demo"
	"github.com/psydoom/ticksync/pkg/endian"
	"github.com/psydoom/ticksync/pkg/game"
	gameio "github.com/psydoom/ticksync/pkg/game/io"
	"github.com/psydoom/ticksync/pkg/input"
	"github.com/psydoom/ticksync/pkg/lockstep"
	"github.com/psydoom/ticksync/pkg/maphash"
	"github.com/psydoom/ticksync/pkg/netplay"
	"github.com/psydoom/ticksync/pkg/player"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
)

// DefaultElapsed is one 30Hz tick on NTSC timings.
const DefaultElapsed = 2

var ErrSinglePlayer = errors.New("network games need a multiplayer game type")

type Options struct {
	Role   netplay.Role
	Params netplay.Params

	// Number of ticks to simulate
	Ticks      int
	MaxDelayMs int32

	// Produces the local input for a tick. Nil means no buttons held.
	Input   func(tick uint64) input.TickInput
	Elapsed int32

	// Hash of the map being played, stored in recorded demos
	MapHash maphash.Hash
	// Starts a demo if the host asked for one. Nil disables recording.
	Demo func(header demo.Header) (*demo.Recorder, error)
}

type Result struct {
	Params netplay.Params
	Ticks  int
	// Digest of every agreed tick, identical on both ends
	Digest uint64
	// Where the demo was written, if one was
	DemoPath string
}

func idle(tick uint64) input.TickInput {
	var in input.TickInput
	in.Reset()
	return in
}

func header(options Options, params *netplay.Params) demo.Header {
	players := make([]player.Snapshot, params.GameType.NumPlayers())
	for i := range players {
		players[i] = player.Fresh(int32(i))
	}

	return demo.Header{
		FormatVersion: demo.FormatVersion,
		Skill:         params.Skill,
		Map:           params.Map,
		GameType:      params.GameType,
		PlayerIndex:   int32(options.Role.PlayerIndex()),
		Ruleset:       params.Ruleset,
		MapHash:       options.MapHash,
		Players:       players,
	}
}

// Run plays a session over conn until Ticks ticks have been agreed on.
func Run(ctx context.Context, conn io.ReadWriter, options Options) (*Result, error) {
	params, err := netplay.Handshake(ctx, conn, options.Role, options.Params)
	if err != nil {
		return nil, fmt.Errorf("handshake failed: %w", err)
	}

	if params.GameType.NumPlayers() != game.MaxPlayers {
		return nil, ErrSinglePlayer
	}

	if options.Input == nil {
		options.Input = idle
	}
	if options.Elapsed <= 0 {
		options.Elapsed = DefaultElapsed
	}

	result := Result{Params: *params}

	var recorder *demo.Recorder
	if params.RecordDemos && options.Demo != nil {
		recorder, err = options.Demo(header(options, params))
		if err != nil {
			return nil, err
		}
		result.DemoPath = recorder.Path()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	peer := netplay.NewPeer(ctx, conn, options.Role, options.MaxDelayMs)
	barrier := lockstep.NewBarrier(game.MaxPlayers)
	digest := xxhash.New()

	// The first update only primes the one tick lead
	local := netplay.Local{
		Input:   options.Input(0),
		Elapsed: options.Elapsed,
		InGame:  true,
	}
	_, err = peer.Update(ctx, local)
	if err != nil {
		return nil, abort(recorder, err)
	}

	for tick := uint64(0); tick < uint64(options.Ticks); tick++ {
		local = netplay.Local{
			Input:      options.Input(tick + 1),
			Elapsed:    options.Elapsed,
			ErrorCheck: uint32(digest.Sum64()),
			InGame:     true,
		}

		exchange, err := peer.Update(ctx, local)
		if err != nil {
			return nil, abort(recorder, fmt.Errorf("tick %d: %w", tick, err))
		}

		// Update already waited for the remote input, so the barrier never
		// blocks here. It still rejects duplicate and out of order ticks.
		for i := 0; i < game.MaxPlayers; i++ {
			err = barrier.Submit(i, tick, exchange.Inputs[i], exchange.Elapsed[i])
			if err != nil {
				return nil, abort(recorder, err)
			}
		}

		step, err := barrier.Wait(ctx, tick)
		if err != nil {
			return nil, abort(recorder, err)
		}

		err = hash(digest, step)
		if err != nil {
			return nil, abort(recorder, err)
		}

		if recorder != nil {
			err = recorder.RecordTick(&step.Inputs, step.Elapsed)
			if err != nil {
				return nil, err
			}
		}

		result.Ticks++
	}

	if recorder != nil {
		err = recorder.End()
		if err != nil {
			return nil, err
		}
	}

	result.Digest = digest.Sum64()
	log.Debug().
		Str("role", options.Role.String()).
		Int("ticks", result.Ticks).
		Int32("timeAdjustMs", peer.TimeAdjustMs()).
		Msg("session finished")

	return &result, nil
}

// hash folds a step into the digest in little-endian layout so that peers
// of either byte order agree.
func hash(digest *xxhash.Digest, step lockstep.Step) error {
	var record gameio.Buffer
	for i := range step.Inputs {
		in := step.Inputs[i]
		endian.Correct(&in)
		err := record.Put(in, endian.ToLittle(step.Elapsed[i]))
		if err != nil {
			return err
		}
	}
	_, err := digest.Write(record)
	return err
}

func abort(recorder *demo.Recorder, cause error) error {
	if recorder != nil && recorder.IsRecording() {
		err := recorder.End()
		if err != nil {
			log.Warn().Err(err).Msg("failed to finish demo")
		}
	}
	return cause
}
