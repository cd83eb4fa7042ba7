package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/psydoom/ticksync/pkg/ruleset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, contents string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestProcess(t *testing.T) {
	// Default config
	config, err := Process([]string{})
	require.NoError(t, err)
	assert.Equal(t, LogLevelInfo, config.Logging.Level)
	assert.Equal(t, TransportTCP, config.Network.Transport)
	assert.Equal(t, int32(15), config.Network.MaxPacketDelayMs)
	assert.Equal(t, ruleset.Auto, config.Ruleset.UsePalTimings)
	assert.Equal(t, "127.0.0.1:666", config.Network.Address())

	expiry, err := config.Archive.ExpiryDuration()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, expiry)

	dir := t.TempDir()

	// yaml config
	{
		yaml := write(t, dir, "config.yaml", `
network:
  port: 1234
`)
		config, err := Process([]string{yaml})
		require.NoError(t, err)
		assert.Equal(t, 1234, config.Network.Port)
		assert.Equal(t, "127.0.0.1", config.Network.Host)
	}

	// json config
	{
		json := write(t, dir, "config.json", `{
  "game": {
    "finalDoom": true
  }
}`)
		config, err := Process([]string{json})
		require.NoError(t, err)
		assert.True(t, config.Game.FinalDoom)
		assert.False(t, config.Game.PAL)
	}

	// multiple yaml
	{
		yaml1 := write(t, dir, "config1.yaml", `
network:
  port: 1234
`)
		yaml2 := write(t, dir, "config2.yml", `
network:
  transport: ws
logging:
  level: debug
`)
		config, err := Process([]string{yaml1, yaml2})
		require.NoError(t, err)
		assert.Equal(t, 1234, config.Network.Port)
		assert.Equal(t, TransportWebsocket, config.Network.Transport)
		assert.Equal(t, LogLevelDebug, config.Logging.Level)
	}
}

func TestInvalid(t *testing.T) {
	dir := t.TempDir()

	for name, contents := range map[string]string{
		"transport.yaml": "network:\n  transport: udp\n",
		"level.yaml":     "logging:\n  level: loud\n",
		"expiry.yaml":    "archive:\n  expiry: soon\n",
		"pattern.yaml":   "recorder:\n  fileNamePattern: demo.lmp\n",
		"tristate.yaml":  "ruleset:\n  usePalTimings: 2\n",
		"unknown.yaml":   "server:\n  port: 1\n",
		"unknown.json":   `{"server": {}}`,
		"config.toml":    "",
	} {
		path := write(t, dir, name, contents)
		_, err := Process([]string{path})
		assert.Error(t, err, name)
	}

	_, err := Process([]string{filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}
