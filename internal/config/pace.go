package config

import (
	"fmt"
	"strings"
	"time"
)

// PacePreset represents a named move pacing.
type PacePreset string

const (
	PaceSlow   PacePreset = "slow"
	PaceNormal PacePreset = "normal"
	PaceFast   PacePreset = "fast"
	PaceFixed  PacePreset = "fixed" // keep the configured interval
)

// ParsePace parses a preset name. An empty name means PaceFixed.
func ParsePace(name string) (PacePreset, error) {
	switch p := PacePreset(strings.ToLower(strings.TrimSpace(name))); p {
	case PaceSlow, PaceNormal, PaceFast, PaceFixed:
		return p, nil
	case "":
		return PaceFixed, nil
	default:
		return "", fmt.Errorf("unknown pace %q (want slow, normal, fast or fixed)", name)
	}
}

// IntervalForPreset returns the move interval of a preset.
// ok is false for PaceFixed, which has no interval of its own.
func IntervalForPreset(preset PacePreset) (time.Duration, bool) {
	switch preset {
	case PaceSlow:
		return 250 * time.Millisecond, true
	case PaceNormal:
		return 150 * time.Millisecond, true
	case PaceFast:
		return 100 * time.Millisecond, true
	default:
		return 0, false
	}
}

// ApplyPacePreset modifies the config based on a pace preset.
func ApplyPacePreset(cfg *Config, preset PacePreset) {
	if d, ok := IntervalForPreset(preset); ok {
		cfg.Pacing.MoveIntervalMS = int(d / time.Millisecond)
	}
}
