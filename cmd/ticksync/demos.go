package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/psydoom/ticksync/pkg/archive"
	"github.com/psydoom/ticksync/pkg/catalog"
	"github.com/psydoom/ticksync/pkg/config"
	"github.com/psydoom/ticksync/pkg/demo"
	"github.com/psydoom/ticksync/pkg/maphash"
	"github.com/psydoom/ticksync/pkg/report"
	"github.com/psydoom/ticksync/pkg/ruleset"

	"github.com/go-redis/redis/v9"
	"github.com/rs/zerolog/log"
)

// Demos already in the archive can be referred to as archive:<key>.
const archivePrefix = "archive:"

func openStore(cfg *config.Config) (archive.Store, error) {
	if cfg.Archive.Redis.Address == "" {
		return archive.FSStore(cfg.Archive.Directory), nil
	}

	expiry, err := cfg.Archive.ExpiryDuration()
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Archive.Redis.Address,
		DB:   cfg.Archive.Redis.DB,
	})
	return archive.NewRedisStore(client, expiry), nil
}

func loadDemo(ctx context.Context, cfg *config.Config, path string) ([]byte, error) {
	if key, ok := strings.CutPrefix(path, archivePrefix); ok {
		if _, err := archive.ParseKey(key); err != nil {
			return nil, fmt.Errorf("invalid archive key %q", key)
		}

		store, err := openStore(cfg)
		if err != nil {
			return nil, err
		}
		return archive.Get(ctx, store, key)
	}

	data, err := archive.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return archive.Unwrap(data)
}

func readerOptions(cfg *config.Config) demo.ReaderOptions {
	return demo.ReaderOptions{
		Identity: cfg.Game,
	}
}

func inspectCommand(cfg *config.Config) error {
	ctx := context.Background()
	data, err := loadDemo(ctx, cfg, CLI.Inspect.Demo)
	if err != nil {
		return err
	}

	header, ticks, err := demo.ReadAll(bytes.NewReader(data), readerOptions(cfg))
	if err != nil {
		return err
	}

	summary := report.Summarize(header, ticks)
	if !CLI.Inspect.Ticks {
		return report.Write(os.Stdout, CLI.Inspect.Format, summary)
	}

	if CLI.Inspect.Format != report.FormatText {
		return report.Write(os.Stdout, CLI.Inspect.Format, struct {
			Summary report.Summary `json:"summary" yaml:"summary"`
			Ticks   []demo.Tick    `json:"ticks" yaml:"ticks"`
		}{summary, ticks})
	}

	err = report.Write(os.Stdout, report.FormatText, summary)
	if err != nil {
		return err
	}

	for i, tick := range ticks {
		for player := 0; player < header.GameType.NumPlayers(); player++ {
			in := tick.Inputs[player]
			fmt.Printf(
				"%6d p%d +%d fwd %+.3f side %+.3f turn %04x weapon %-14s buttons % x\n",
				i,
				player+1,
				tick.Elapsed[player],
				in.AnalogForwardMove().Float(),
				in.AnalogSideMove().Float(),
				in.Turn,
				in.SwitchToWeapon,
				in.Buttons[:],
			)
		}
	}

	return nil
}

func verifyCommand(cfg *config.Config) error {
	ctx := context.Background()
	data, err := loadDemo(ctx, cfg, CLI.Verify.Demo)
	if err != nil {
		return err
	}

	reader, err := demo.NewReader(bytes.NewReader(data), readerOptions(cfg))
	if err != nil {
		return err
	}

	hash, err := maphash.FromFile(CLI.Verify.Map)
	if err != nil {
		return err
	}

	err = reader.VerifyMap(maphash.Static(hash))
	if err != nil {
		return err
	}

	fmt.Printf("demo matches map %s (%s)\n", CLI.Verify.Map, hash)
	return nil
}

func rulesetCommand(cfg *config.Config) error {
	rules := ruleset.User(cfg.Ruleset, cfg.Game)
	if CLI.Ruleset.Classic {
		rules = ruleset.Classic(cfg.Game)
	}
	return report.Write(os.Stdout, CLI.Ruleset.Format, rules)
}

func archiveCommand(cfg *config.Config) error {
	ctx := context.Background()
	data, err := loadDemo(ctx, cfg, CLI.Archive.Demo)
	if err != nil {
		return err
	}

	// Only valid demos make it into the archive
	header, ticks, err := demo.ReadAll(bytes.NewReader(data), readerOptions(cfg))
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	key, err := archive.Put(ctx, store, data)
	if err != nil {
		return fmt.Errorf("failed to archive demo: %w", err)
	}

	demos, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	defer demos.Close()

	entry := catalog.NewEntry(key, CLI.Archive.Demo, header, len(ticks))
	err = demos.Add(ctx, &entry)
	if err != nil {
		return err
	}

	log.Info().Str("key", key).Int32("map", header.Map).Msg("archived demo")
	fmt.Println(archivePrefix + key)
	return nil
}

func catalogCommand(cfg *config.Config) error {
	demos, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	defer demos.Close()

	entries, err := demos.ByMap(context.Background(), CLI.Catalog.Map)
	if err != nil {
		return err
	}

	if CLI.Catalog.Format != report.FormatText {
		return report.Write(os.Stdout, CLI.Catalog.Format, entries)
	}

	for _, entry := range entries {
		fmt.Printf(
			"%s map %02d v%d %6d ticks %s %s\n",
			entry.Key,
			entry.Map,
			entry.FormatVersion,
			entry.Ticks,
			entry.Created.Format("2006-01-02 15:04"),
			entry.Source,
		)
	}

	return nil
}
