package config

import (
	"github.com/psydoom/ticksync/pkg/game"
	"github.com/psydoom/ticksync/pkg/ruleset"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

type Logging struct {
	Level LogLevel `yaml:"level" json:"level"`
}

type Recorder struct {
	// Where new demos are written
	Directory string `yaml:"directory" json:"directory"`
	// Formatted with the map number
	FileNamePattern string `yaml:"fileNamePattern" json:"fileNamePattern"`
}

type Transport string

const (
	TransportTCP       Transport = "tcp"
	TransportWebsocket Transport = "ws"
)

type Network struct {
	Host             string    `yaml:"host" json:"host"`
	Port             int       `yaml:"port" json:"port"`
	Transport        Transport `yaml:"transport" json:"transport"`
	MaxPacketDelayMs int32     `yaml:"maxPacketDelayMs" json:"maxPacketDelayMs"`
}

type Redis struct {
	Address string `yaml:"address" json:"address"`
	DB      int    `yaml:"db" json:"db"`
}

type Archive struct {
	Directory string `yaml:"directory" json:"directory"`
	// If Address is empty demos are archived to Directory instead
	Redis Redis `yaml:"redis" json:"redis"`
	// How long archived demos live in redis, e.g. "24h"
	Expiry string `yaml:"expiry" json:"expiry"`
}

type Catalog struct {
	Path string `yaml:"path" json:"path"`
}

type Config struct {
	Logging  Logging         `yaml:"logging" json:"logging"`
	Game     game.Identity   `yaml:"game" json:"game"`
	Ruleset  ruleset.Options `yaml:"ruleset" json:"ruleset"`
	Recorder Recorder        `yaml:"recorder" json:"recorder"`
	Network  Network         `yaml:"network" json:"network"`
	Archive  Archive         `yaml:"archive" json:"archive"`
	Catalog  Catalog         `yaml:"catalog" json:"catalog"`
}
