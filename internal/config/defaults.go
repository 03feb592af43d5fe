package config

import (
	_ "embed"
)

//go:embed defaults/sokoban.yaml
var defaultSokobanYAML []byte

// DefaultConfig returns the hard-coded default configuration.
func DefaultConfig() Config {
	return Config{
		Pacing: PacingConfig{
			MoveIntervalMS: 150,
			TickRate:       30,
		},
		Levels: LevelsConfig{
			Pack: "classic",
		},
		Glyphs: DefaultGlyphs(),
		Storage: StorageConfig{
			DBPath: "~/.sokoban/records.db",
		},
		Server: ServerConfig{
			Address:            ":23234",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultGlyphs returns the standard level-file notation.
func DefaultGlyphs() GlyphsConfig {
	return GlyphsConfig{
		Wall:         "#",
		Floor:        " ",
		Sink:         ".",
		Box:          "$",
		BoxOnSink:    "*",
		Player:       "@",
		PlayerOnSink: "+",
	}
}
