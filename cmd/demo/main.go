package main

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/psydoom/ticksync/pkg/archive"
	"github.com/psydoom/ticksync/pkg/demo"
	"github.com/psydoom/ticksync/pkg/game"

	"github.com/rs/zerolog"
	Z "github.com/rs/zerolog/log"
)

func main() {
	Z.Logger = Z.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	finalDoom := flag.Bool("final", false, "the demo was recorded on Final Doom")
	pal := flag.Bool("pal", false, "the demo was recorded on a PAL disc")
	flag.Parse()
	args := flag.Args()

	if len(args) != 1 {
		Z.Fatal().Msg("You must provide only a single argument.")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		Z.Fatal().Err(err).Msg("could not open demo")
	}

	data, err = archive.Unwrap(data)
	if err != nil {
		Z.Fatal().Err(err).Msg("could not unzip demo")
	}

	reader, err := demo.NewReader(bytes.NewReader(data), demo.ReaderOptions{
		Identity: game.Identity{FinalDoom: *finalDoom, PAL: *pal},
	})
	if err != nil {
		Z.Fatal().Err(err).Msg("could not read demo header")
	}

	header := reader.Header
	Z.Info().
		Uint32("version", header.FormatVersion).
		Int32("map", header.Map).
		Str("skill", header.Skill.String()).
		Str("type", header.GameType.String()).
		Str("hash", header.MapHash.String()).
		Msg("demo")

	numPlayers := header.GameType.NumPlayers()
	for {
		tick, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			Z.Fatal().Err(err).Int("tick", reader.Ticks()).Msg("failed to parse tick")
		}

		for i := 0; i < numPlayers; i++ {
			log.Printf(
				"|%6d| p%d +%d %+v",
				reader.Ticks()-1,
				i+1,
				tick.Elapsed[i],
				tick.Inputs[i],
			)
		}
	}
}
