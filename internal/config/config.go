// Package config provides YAML-based configuration loading and move pacing
// presets for the Sokoban platform.
package config

import "time"

// Config contains all configuration for the game and its server.
type Config struct {
	Pacing  PacingConfig  `yaml:"pacing"`
	Levels  LevelsConfig  `yaml:"levels"`
	Glyphs  GlyphsConfig  `yaml:"glyphs"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// PacingConfig controls how fast moves are applied.
type PacingConfig struct {
	MoveIntervalMS int `yaml:"move_interval_ms"` // Minimum wall-clock time between applied moves
	TickRate       int `yaml:"tick_rate"`        // Frames per second of the presentation loop
}

// LevelsConfig selects where levels come from.
type LevelsConfig struct {
	Dir  string `yaml:"dir"`  // Extra level directory, registered as pack "custom"
	Pack string `yaml:"pack"` // Pack opened by default
}

// GlyphsConfig maps cell states to single terminal characters.
type GlyphsConfig struct {
	Wall         string `yaml:"wall"`
	Floor        string `yaml:"floor"`
	Sink         string `yaml:"sink"`
	Box          string `yaml:"box"`
	BoxOnSink    string `yaml:"box_on_sink"`
	Player       string `yaml:"player"`
	PlayerOnSink string `yaml:"player_on_sink"`
}

// StorageConfig locates the records database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig configures the SSH server and its spectator feed.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
	SpectateAddress    string `yaml:"spectate_address"` // Empty disables the spectator feed
}

// Bounds applied by Validate.
const (
	MinMoveInterval = 50 * time.Millisecond
	MaxMoveInterval = time.Second
	MinTickRate     = 10
	MaxTickRate     = 120
)

// MoveInterval returns the pacing interval as a duration.
func (c Config) MoveInterval() time.Duration {
	return time.Duration(c.Pacing.MoveIntervalMS) * time.Millisecond
}

// IdleTimeout returns the SSH idle timeout as a duration.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.Server.IdleTimeoutMinutes) * time.Minute
}
