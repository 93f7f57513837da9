// Package config loads the engine-wide tunables consumed by the
// cmd/symbolplace harness: fade duration, cross-source-collision
// policy, and tile geometry defaults. The placement package itself
// never reads this package directly; it is parameterized by explicit
// constructor arguments, so that the core engine has no dependency on
// how a particular host chooses to configure it.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the top-level TOML document.
type Config struct {
	// FadeDurationMS is the symbol fade-in/fade-out duration, in
	// milliseconds.
	FadeDurationMS float64 `toml:"fade_duration_ms"`
	// CrossSourceCollisions enables the single global collision
	// group across all sources.
	CrossSourceCollisions bool `toml:"cross_source_collisions"`
	// TileSize is the default rendered tile size, in pixels.
	TileSize float64 `toml:"tile_size"`
	// CollisionPadding is the padding band, in pixels, around the
	// viewport within which off-screen symbols still skip their
	// fade-in (GLOSSARY: skip-fade, offscreen).
	CollisionPadding float32 `toml:"collision_padding"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		FadeDurationMS:        300,
		CrossSourceCollisions: false,
		TileSize:              512,
		CollisionPadding:      100,
	}
}

// Load reads and parses a TOML config file at path.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
