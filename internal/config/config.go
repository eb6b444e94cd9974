// Package config defines the kong CLI root.
package config

import "github.com/deckforge/deckforge/internal/cmd"

// LogConfig carries the global logging flags.
type LogConfig struct {
	Level   string `help:"Log level (trace, debug, info, warn, error)" default:"info" env:"DECKFORGE_LOG_LEVEL"`
	File    string `help:"Log file path; empty logs to stdout/stderr" env:"DECKFORGE_LOG_FILE"`
	RawFile string `help:"File for raw USB wire hex dumps (implied to stdout at trace level)" env:"DECKFORGE_LOG_RAW_FILE"`
}

// CLI is the root command structure parsed by kong.
type CLI struct {
	Config string    `help:"Path to configuration file" env:"DECKFORGE_CONFIG"`
	Log    LogConfig `embed:"" prefix:"log."`

	Serve     cmd.Serve         `cmd:"" default:"withargs" help:"Run the deck emulator"`
	Models    cmd.Models        `cmd:"" help:"List supported deck models"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration file helpers"`
}
