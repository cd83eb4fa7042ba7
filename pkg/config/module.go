package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/psydoom/ticksync/pkg/game"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DEFAULT []byte

func decodeYAML(data []byte, config *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	return decoder.Decode(config)
}

func decodeJSON(data []byte, config *Config) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(config)
}

func readFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	extension := filepath.Ext(path)
	switch extension {
	case ".json":
		return decodeJSON(data, config)
	case ".yaml", ".yml":
		// An empty file is a valid overlay
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		return decodeYAML(data, config)
	}

	return fmt.Errorf(
		"not in a valid format",
	)
}

// Process loads the default configuration and then overlays the provided
// configuration files in order. Later files win for every key they set.
func Process(configPaths []string) (*Config, error) {
	config := Config{}
	err := decodeYAML(DEFAULT, &config)
	if err != nil {
		return nil, fmt.Errorf(
			"invalid default config file: %v",
			err,
		)
	}

	for _, path := range configPaths {
		err := readFile(path, &config)
		if err != nil {
			return nil, fmt.Errorf(
				"could not process config file %s: %v",
				path,
				err,
			)
		}
	}

	err = config.Validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Logging.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}

	switch c.Network.Transport {
	case TransportTCP, TransportWebsocket:
	default:
		return fmt.Errorf("invalid transport %q", c.Network.Transport)
	}

	if c.Network.Port <= 0 || c.Network.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Network.Port)
	}

	if c.Network.MaxPacketDelayMs < 0 {
		return fmt.Errorf("max packet delay must not be negative")
	}

	if !strings.Contains(c.Recorder.FileNamePattern, "%") {
		return fmt.Errorf(
			"demo file name pattern %q must contain the map number",
			c.Recorder.FileNamePattern,
		)
	}

	if _, err := c.Archive.ExpiryDuration(); err != nil {
		return err
	}

	for _, option := range []int{
		c.Ruleset.UsePalTimings,
		c.Ruleset.UseFinalDoomPlayerMovement,
		c.Ruleset.AllowMovementCancellation,
	} {
		if option < -1 || option > 1 {
			return fmt.Errorf("tri-state ruleset option must be -1, 0 or 1, not %d", option)
		}
	}

	return nil
}

func (a Archive) ExpiryDuration() (time.Duration, error) {
	expiry, err := time.ParseDuration(a.Expiry)
	if err != nil {
		return 0, fmt.Errorf("invalid archive expiry: %w", err)
	}
	if expiry < 0 {
		return 0, fmt.Errorf("archive expiry must not be negative")
	}
	return expiry, nil
}

// Address is where hosts listen and clients connect.
func (n Network) Address() string {
	return fmt.Sprintf("%s:%d", n.Host, n.Port)
}

func (c *Config) Identity() game.Identity {
	return c.Game
}
