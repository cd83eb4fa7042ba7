package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"

	"github.com/psydoom/ticksync/pkg/config"
	"github.com/psydoom/ticksync/pkg/demo"
	"github.com/psydoom/ticksync/pkg/game"
	"github.com/psydoom/ticksync/pkg/maphash"
	"github.com/psydoom/ticksync/pkg/netplay"
	"github.com/psydoom/ticksync/pkg/ruleset"
	"github.com/psydoom/ticksync/pkg/session"

	"github.com/rs/zerolog/log"
)

func gameType(name string) game.Type {
	if name == "deathmatch" {
		return game.Deathmatch
	}
	return game.Cooperative
}

func mapHash(path string) (maphash.Hash, error) {
	if path == "" {
		return maphash.Hash{}, nil
	}
	return maphash.FromFile(path)
}

func recordDemo(cfg *config.Config) func(demo.Header) (*demo.Recorder, error) {
	return func(header demo.Header) (*demo.Recorder, error) {
		err := os.MkdirAll(cfg.Recorder.Directory, 0755)
		if err != nil {
			return nil, err
		}

		path := demo.FileName(cfg.Recorder.Directory, cfg.Recorder.FileNamePattern, header.Map)
		log.Info().Str("path", path).Msg("recording demo")
		return demo.Begin(path, header)
	}
}

func play(ctx context.Context, cfg *config.Config, conn net.Conn, options session.Options) error {
	defer conn.Close()

	options.MaxDelayMs = cfg.Network.MaxPacketDelayMs
	options.Demo = recordDemo(cfg)

	result, err := session.Run(ctx, conn, options)
	if err != nil {
		return err
	}

	log.Info().
		Str("role", options.Role.String()).
		Int("ticks", result.Ticks).
		Str("digest", fmt.Sprintf("%016x", result.Digest)).
		Msg("session complete")

	if result.DemoPath != "" {
		fmt.Println(result.DemoPath)
	}
	return nil
}

func hostCommand(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	skill := game.Skill(CLI.Host.Skill)
	if !skill.Valid() {
		return fmt.Errorf("invalid skill %d", CLI.Host.Skill)
	}

	hash, err := mapHash(CLI.Host.MapFile)
	if err != nil {
		return err
	}

	address := cfg.Network.Address()
	log.Info().
		Str("address", address).
		Str("transport", string(cfg.Network.Transport)).
		Msg("waiting for a player to join")

	var conn net.Conn
	if cfg.Network.Transport == config.TransportWebsocket {
		conn, err = netplay.ListenWS(ctx, address)
	} else {
		conn, err = netplay.Listen(ctx, address)
	}
	if err != nil {
		return err
	}

	return play(ctx, cfg, conn, session.Options{
		Role: netplay.Server,
		Params: netplay.Params{
			Identity:    cfg.Game,
			GameType:    gameType(CLI.Host.Type),
			Skill:       skill,
			Map:         CLI.Host.Map,
			RecordDemos: CLI.Host.Record,
			Ruleset:     ruleset.User(cfg.Ruleset, cfg.Game),
		},
		Ticks:   CLI.Host.Ticks,
		MapHash: hash,
	})
}

func joinCommand(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	hash, err := mapHash(CLI.Join.MapFile)
	if err != nil {
		return err
	}

	address := CLI.Join.Address
	if address == "" {
		address = cfg.Network.Address()
	}

	var conn net.Conn
	if cfg.Network.Transport == config.TransportWebsocket {
		conn, err = netplay.DialWS(ctx, fmt.Sprintf("ws://%s/", address))
	} else {
		conn, err = netplay.Dial(ctx, address)
	}
	if err != nil {
		return err
	}

	return play(ctx, cfg, conn, session.Options{
		Role: netplay.Client,
		Params: netplay.Params{
			Identity: cfg.Game,
		},
		Ticks:   CLI.Join.Ticks,
		MapHash: hash,
	})
}
