package main

import (
	"fmt"
	"os"
	"time"

	"github.com/psydoom/ticksync/pkg/config"
	"github.com/psydoom/ticksync/pkg/report"
	"github.com/psydoom/ticksync/pkg/version"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Version bool     `help:"Print version information and exit." short:"v"`
	Debug   bool     `help:"Whether to enable debug logging."`
	Config  []string `help:"Configuration files, applied in order over the defaults." short:"c" type:"existingfile"`

	Inspect struct {
		Demo   string        `arg:"" help:"Demo file or URL, optionally gzipped."`
		Ticks  bool          `help:"Also print every tick."`
		Format report.Format `help:"Output format (text, json, yaml, cbor)." default:"text" enum:"text,json,yaml,cbor"`
	} `cmd:"" help:"Summarize a demo."`

	Verify struct {
		Demo string `arg:"" help:"Demo file or URL, optionally gzipped."`
		Map  string `arg:"" help:"Map file the demo should have been recorded on." type:"existingfile"`
	} `cmd:"" help:"Check that a demo was recorded on a map."`

	Ruleset struct {
		Classic bool          `help:"Print the rules of the original game instead of the configured ones."`
		Format  report.Format `help:"Output format (json, yaml, cbor)." default:"yaml" enum:"json,yaml,cbor"`
	} `cmd:"" help:"Print the ruleset new games are played with."`

	Archive struct {
		Demo string `arg:"" help:"Demo file or URL, optionally gzipped."`
	} `cmd:"" help:"Store a demo in the archive and add it to the catalog."`

	Catalog struct {
		Map    int32         `help:"Only list demos recorded on this map."`
		Format report.Format `help:"Output format (text, json, yaml, cbor)." default:"text" enum:"text,json,yaml,cbor"`
	} `cmd:"" help:"List archived demos."`

	Host struct {
		Type    string `help:"Game type (coop, deathmatch)." default:"coop" enum:"coop,deathmatch"`
		Skill   int32  `help:"Skill level, 0 through 4." default:"2"`
		Map     int32  `help:"Map number." default:"1"`
		Ticks   int    `help:"Number of ticks to play." default:"150"`
		Record  bool   `help:"Have both players record a demo."`
		MapFile string `help:"Map file whose hash is stored in recorded demos." type:"existingfile"`
	} `cmd:"" help:"Wait for a player to join and play a network session."`

	Join struct {
		Address string `help:"Host to connect to. Defaults to the configured network address."`
		Ticks   int    `help:"Number of ticks to play." default:"150"`
		MapFile string `help:"Map file whose hash is stored in recorded demos." type:"existingfile"`
	} `cmd:"" help:"Join a hosted network session."`

	Defaults struct {
	} `cmd:"" name:"config" help:"Write the default configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func setLevel(level config.LogLevel) {
	switch level {
	case config.LogLevelDebug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case config.LogLevelWarn:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case config.LogLevelError:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("ticksync"),
		kong.Description("record, inspect and play PsyDoom tick streams"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Version {
		fmt.Printf(
			"ticksync %s (commit %s)\n",
			version.Version,
			version.GitCommit,
		)
		fmt.Printf(
			"built %s\n",
			version.BuildTime,
		)
		os.Exit(0)
	}

	if ctx.Command() == "config" {
		os.Stdout.Write(config.DEFAULT)
		return
	}

	cfg, err := config.Process(CLI.Config)
	if err != nil {
		writeError(fmt.Errorf("failed to load configuration: %w", err))
	}

	setLevel(cfg.Logging.Level)
	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	switch ctx.Command() {
	case "inspect <demo>":
		err = inspectCommand(cfg)
	case "verify <demo> <map>":
		err = verifyCommand(cfg)
	case "ruleset":
		err = rulesetCommand(cfg)
	case "archive <demo>":
		err = archiveCommand(cfg)
	case "catalog":
		err = catalogCommand(cfg)
	case "host":
		err = hostCommand(cfg)
	case "join":
		err = joinCommand(cfg)
	default:
		err = fmt.Errorf("unknown command %s", ctx.Command())
	}

	if err != nil {
		writeError(err)
	}
}
