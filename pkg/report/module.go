// Package report summarizes demos for humans and tooling.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/psydoom/ticksync/pkg/demo"
	"github.com/psydoom/ticksync/pkg/game/weapon"
	"github.com/psydoom/ticksync/pkg/input"
	"github.com/psydoom/ticksync/pkg/ruleset"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatCBOR}

const (
	vblanksNTSC = 60
	vblanksPAL  = 50
)

type Player struct {
	Index          int   `json:"index" yaml:"index"`
	ElapsedVBlanks int64 `json:"elapsedVBlanks" yaml:"elapsedVBlanks"`
	// Ticks where the input differs from the tick before
	Changes        int `json:"changes" yaml:"changes"`
	AttackTicks    int `json:"attackTicks" yaml:"attackTicks"`
	UseTicks       int `json:"useTicks" yaml:"useTicks"`
	WeaponSwitches int `json:"weaponSwitches" yaml:"weaponSwitches"`
}

type Summary struct {
	FormatVersion  uint32          `json:"formatVersion" yaml:"formatVersion"`
	RulesetVersion int32           `json:"rulesetVersion" yaml:"rulesetVersion"`
	Skill          string          `json:"skill" yaml:"skill"`
	Map            int32           `json:"map" yaml:"map"`
	GameType       string          `json:"gameType" yaml:"gameType"`
	PlayerIndex    int32           `json:"playerIndex" yaml:"playerIndex"`
	MapHash        string          `json:"mapHash" yaml:"mapHash"`
	Ticks          int             `json:"ticks" yaml:"ticks"`
	Duration       time.Duration   `json:"duration" yaml:"duration"`
	Players        []Player        `json:"players" yaml:"players"`
	Ruleset        ruleset.Ruleset `json:"ruleset" yaml:"ruleset"`
}

// Summarize tallies the decoded ticks of a demo.
func Summarize(header *demo.Header, ticks []demo.Tick) Summary {
	version, _ := ruleset.ForDemoFormat(header.FormatVersion)
	summary := Summary{
		FormatVersion:  header.FormatVersion,
		RulesetVersion: int32(version),
		Skill:          header.Skill.String(),
		Map:            header.Map,
		GameType:       header.GameType.String(),
		PlayerIndex:    header.PlayerIndex,
		MapHash:        header.MapHash.String(),
		Ticks:          len(ticks),
		Ruleset:        header.Ruleset,
	}

	numPlayers := header.GameType.NumPlayers()
	summary.Players = make([]Player, numPlayers)
	for i := range summary.Players {
		player := &summary.Players[i]
		player.Index = i

		var previous input.TickInput
		previous.Reset()
		for _, tick := range ticks {
			in := tick.Inputs[i]
			player.ElapsedVBlanks += int64(tick.Elapsed[i])
			if input.Compact(&in) != input.Compact(&previous) {
				player.Changes++
			}
			if in.Pressed(input.Attack) {
				player.AttackTicks++
			}
			if in.Pressed(input.Use) {
				player.UseTicks++
			}
			if in.SwitchToWeapon != weapon.NoChange {
				player.WeaponSwitches++
			}
			previous = in
		}
	}

	rate := int64(vblanksNTSC)
	if header.Ruleset.UsePalTimings {
		rate = vblanksPAL
	}
	if len(summary.Players) > 0 {
		summary.Duration = time.Duration(summary.Players[0].ElapsedVBlanks) * time.Second / time.Duration(rate)
	}

	return summary
}

func writeText(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w,
		"format %d (ruleset v%d)\nmap %02d %s %s, recorded by player %d\nhash %s\n%d ticks, %s\n",
		s.FormatVersion, s.RulesetVersion,
		s.Map, s.Skill, s.GameType, s.PlayerIndex+1,
		s.MapHash,
		s.Ticks, s.Duration.Round(time.Millisecond),
	)
	if err != nil {
		return err
	}

	for _, player := range s.Players {
		_, err = fmt.Fprintf(w,
			"player %d: %d vblanks, %d changes, %d attacking, %d using, %d weapon switches\n",
			player.Index+1,
			player.ElapsedVBlanks,
			player.Changes,
			player.AttackTicks,
			player.UseTicks,
			player.WeaponSwitches,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// Write renders anything serializable. Text is only supported for
// summaries.
func Write(w io.Writer, format Format, value any) error {
	switch format {
	case FormatText:
		summary, ok := value.(Summary)
		if !ok {
			return fmt.Errorf("text output not supported for %T", value)
		}
		return writeText(w, summary)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		err := encoder.Encode(value)
		if err != nil {
			return err
		}
		return encoder.Close()
	case FormatCBOR:
		bytes, err := cbor.Marshal(value)
		if err != nil {
			return err
		}
		_, err = w.Write(bytes)
		return err
	}

	return fmt.Errorf("unknown format %q", format)
}
