package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const configFile = "sokoban.yaml"

// Load loads the configuration and validates it.
// Search order: customPath -> ~/.sokoban/configs/sokoban.yaml -> ./configs/sokoban.yaml -> embedded default
// Missing keys keep their default values.
func Load(customPath string) (Config, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return Validate(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return Validate(cfg), nil
			}
			cfg = DefaultConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return Validate(cfg), nil
		}
		cfg = DefaultConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSokobanYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return Validate(cfg), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sokoban", "configs", filename)
}

// Validate clamps pacing into playable bounds and replaces unusable glyphs
// and empty values with defaults.
func Validate(cfg Config) Config {
	def := DefaultConfig()

	interval := clampDuration(cfg.MoveInterval(), MinMoveInterval, MaxMoveInterval)
	cfg.Pacing.MoveIntervalMS = int(interval / time.Millisecond)

	if cfg.Pacing.TickRate < MinTickRate {
		cfg.Pacing.TickRate = MinTickRate
	}
	if cfg.Pacing.TickRate > MaxTickRate {
		cfg.Pacing.TickRate = MaxTickRate
	}

	if cfg.Levels.Pack == "" {
		cfg.Levels.Pack = def.Levels.Pack
	}
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = def.Storage.DBPath
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = def.Server.Address
	}
	if cfg.Server.IdleTimeoutMinutes <= 0 {
		cfg.Server.IdleTimeoutMinutes = def.Server.IdleTimeoutMinutes
	}

	g := &cfg.Glyphs
	dg := def.Glyphs
	for _, pair := range []struct {
		field *string
		def   string
	}{
		{&g.Wall, dg.Wall},
		{&g.Floor, dg.Floor},
		{&g.Sink, dg.Sink},
		{&g.Box, dg.Box},
		{&g.BoxOnSink, dg.BoxOnSink},
		{&g.Player, dg.Player},
		{&g.PlayerOnSink, dg.PlayerOnSink},
	} {
		if utf8.RuneCountInString(*pair.field) != 1 {
			*pair.field = pair.def
		}
	}

	return cfg
}

func clampDuration(d, min, max time.Duration) time.Duration {
	if d < min {
		return min
	}
	if d > max {
		return max
	}
	return d
}
