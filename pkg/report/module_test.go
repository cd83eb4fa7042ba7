package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/psydoom/ticksync/pkg/demo"
	"github.com/psydoom/ticksync/pkg/game"
	"github.com/psydoom/ticksync/pkg/game/weapon"
	"github.com/psydoom/ticksync/pkg/input"
	"github.com/psydoom/ticksync/pkg/ruleset"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func scenario() (*demo.Header, []demo.Tick) {
	header := &demo.Header{
		FormatVersion: demo.FormatVersion,
		Skill:         game.Hard,
		Map:           5,
		GameType:      game.Single,
		Ruleset:       ruleset.Classic(game.Identity{}),
	}

	var idle input.TickInput
	idle.Reset()

	attack := idle
	attack.Set(input.Attack, true)

	swap := idle
	swap.SwitchToWeapon = weapon.Shotgun

	ticks := make([]demo.Tick, 0, 4)
	for _, in := range []input.TickInput{idle, attack, attack, swap} {
		var tick demo.Tick
		tick.Inputs[0] = in
		tick.Elapsed[0] = 30
		ticks = append(ticks, tick)
	}
	return header, ticks
}

func TestSummarize(t *testing.T) {
	summary := Summarize(scenario())

	assert.Equal(t, 4, summary.Ticks)
	assert.Equal(t, int32(2), summary.RulesetVersion)
	assert.Equal(t, "hard", summary.Skill)
	assert.Equal(t, "single", summary.GameType)
	require.Len(t, summary.Players, 1)

	player := summary.Players[0]
	assert.Equal(t, int64(120), player.ElapsedVBlanks)
	assert.Equal(t, 2, player.Changes)
	assert.Equal(t, 2, player.AttackTicks)
	assert.Equal(t, 1, player.WeaponSwitches)
	assert.Equal(t, "2s", summary.Duration.String())
}

func TestPalDuration(t *testing.T) {
	header, ticks := scenario()
	header.Ruleset.UsePalTimings = true

	summary := Summarize(header, ticks)
	assert.Equal(t, "2.4s", summary.Duration.String())
}

func TestWrite(t *testing.T) {
	summary := Summarize(scenario())

	var text bytes.Buffer
	require.NoError(t, Write(&text, FormatText, summary))
	assert.True(t, strings.HasPrefix(text.String(), "format 14 (ruleset v2)\nmap 05 hard single"))

	var out bytes.Buffer
	require.NoError(t, Write(&out, FormatJSON, summary))
	var fromJSON Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &fromJSON))
	assert.Equal(t, summary, fromJSON)

	out.Reset()
	require.NoError(t, Write(&out, FormatYAML, summary))
	var fromYAML Summary
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &fromYAML))
	assert.Equal(t, summary.Players, fromYAML.Players)
	assert.Equal(t, summary.Ruleset, fromYAML.Ruleset)

	out.Reset()
	require.NoError(t, Write(&out, FormatCBOR, summary))
	var fromCBOR Summary
	require.NoError(t, cbor.Unmarshal(out.Bytes(), &fromCBOR))
	assert.Equal(t, summary, fromCBOR)

	assert.Error(t, Write(&out, Format("xml"), summary))
	assert.Error(t, Write(&out, FormatText, 5))
}
