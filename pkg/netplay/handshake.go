package netplay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/psydoom/ticksync/pkg/game"
	"github.com/psydoom/ticksync/pkg/ruleset"

	"github.com/rs/zerolog/log"
)

type Role uint8

const (
	// The server is player one and decides the game parameters.
	Server Role = iota
	Client
)

func (r Role) PlayerIndex() int {
	if r == Server {
		return 0
	}
	return 1
}

func (r Role) String() string {
	if r == Server {
		return "server"
	}
	return "client"
}

var ErrIncompatiblePeer = errors.New("peer runs a different game or protocol version")

// Params describe the game both peers are about to start.
type Params struct {
	Identity    game.Identity
	GameType    game.Type
	Skill       game.Skill
	Map         int32
	RecordDemos bool
	Ruleset     ruleset.Ruleset
}

type deadliner interface {
	SetDeadline(time.Time) error
}

// Handshake agrees on the game to play. The server sends its params and
// ruleset; the client ignores its own params other than Identity and adopts
// the server's.
func Handshake(ctx context.Context, conn io.ReadWriter, role Role, params Params) (*Params, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if d, ok := conn.(deadliner); ok {
			d.SetDeadline(deadline)
			defer d.SetDeadline(time.Time{})
		}
	}

	gameID := GameID(params.Identity)
	out := ConnectPacket{
		ProtocolVersion: ProtocolVersion,
		GameID:          gameID,
	}
	if role == Server {
		out.GameType = params.GameType
		out.Skill = params.Skill
		out.Map = params.Map
		out.RecordDemos = params.RecordDemos
	}

	err := writeConnect(conn, out)
	if err != nil {
		return nil, fmt.Errorf("failed to send connect packet: %w", err)
	}

	if role == Server {
		_, err = conn.Write(ruleset.Encode(params.Ruleset))
		if err != nil {
			return nil, fmt.Errorf("failed to send ruleset: %w", err)
		}
	}

	in, err := readConnect(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to read connect packet: %w", err)
	}

	if in.ProtocolVersion != ProtocolVersion || in.GameID != gameID {
		return nil, fmt.Errorf(
			"%w: protocol %d game %08x, want protocol %d game %08x",
			ErrIncompatiblePeer,
			in.ProtocolVersion,
			in.GameID,
			ProtocolVersion,
			gameID,
		)
	}

	result := params
	if role == Client {
		result.GameType = in.GameType
		result.Skill = in.Skill
		result.Map = in.Map
		result.RecordDemos = in.RecordDemos

		version, ok := ruleset.ForProtocol(in.ProtocolVersion)
		if !ok {
			return nil, fmt.Errorf("%w: protocol %d", ruleset.ErrUnknownVersion, in.ProtocolVersion)
		}

		data := make([]byte, ruleset.Size(version))
		_, err = io.ReadFull(conn, data)
		if err != nil {
			return nil, fmt.Errorf("failed to read ruleset: %w", err)
		}

		result.Ruleset, err = ruleset.ReadAndMigrate(version, data, params.Identity)
		if err != nil {
			return nil, err
		}
	}

	if !result.GameType.Valid() || !result.Skill.Valid() || result.Map < 1 {
		return nil, fmt.Errorf("invalid game parameters: type %d skill %d map %d", result.GameType, result.Skill, result.Map)
	}

	log.Debug().
		Str("role", role.String()).
		Str("type", result.GameType.String()).
		Str("skill", result.Skill.String()).
		Int32("map", result.Map).
		Msg("handshake complete")

	return &result, nil
}
