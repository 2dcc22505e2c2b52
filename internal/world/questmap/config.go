package questmap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"lukechampine.com/blake3"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid quest map config")

// Config holds everything needed to generate one quest map.
type Config struct {
	Width  int `yaml:"width"`  // Grid columns
	Height int `yaml:"height"` // Grid rows

	Seed       int64  `yaml:"seed"`        // Random seed (0 = derive from SeedPhrase or time)
	SeedPhrase string `yaml:"seed_phrase"` // Shareable seed, e.g. "daily-2026-10-18"

	Detours           int  `yaml:"detours"`             // Extra routes through random waypoints
	MaxDetourAttempts int  `yaml:"max_detour_attempts"` // Waypoint draws per detour before giving up
	PruneDeadEnds     bool `yaml:"prune_dead_ends"`     // Drop branches that cannot reach the boss

	Encounters EncounterChance `yaml:"encounters"`

	PortraitDir  string `yaml:"portrait_dir"`  // Directory of portrait images ("" = none)
	PortraitGlob string `yaml:"portrait_glob"` // Glob inside PortraitDir
}

// DefaultConfig returns the settings used by the game's map screen
func DefaultConfig() *Config {
	return &Config{
		Width:             15,
		Height:            21,
		Detours:           3,
		MaxDetourAttempts: 10,
		PruneDeadEnds:     true,
		Encounters:        DefaultEncounterChance,
		PortraitGlob:      "**/*.png",
	}
}

// LoadConfig loads a quest map config from a YAML file. Values missing
// from the file keep their defaults; a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading quest map config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing quest map config: %w", err)
	}
	return config, nil
}

// Validate checks the config for values generation cannot work with.
func (c *Config) Validate() error {
	// diagonal moves need at least two columns and two rows
	if c.Width < 2 || c.Height < 2 {
		return fmt.Errorf("%w: grid must be at least 2x2, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.MaxDetourAttempts < 1 && c.Detours > 0 {
		return fmt.Errorf("%w: detours need at least one waypoint attempt", ErrInvalidConfig)
	}
	if c.Detours < 0 {
		return fmt.Errorf("%w: detours cannot be negative", ErrInvalidConfig)
	}
	if c.Encounters.Base < 0 || c.Encounters.Step < 0 {
		return fmt.Errorf("%w: encounter chance cannot be negative", ErrInvalidConfig)
	}
	return nil
}

// ResolveSeed picks the seed to generate with: Seed if set, else the
// phrase hash, else the current time.
func (c *Config) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	if c.SeedPhrase != "" {
		return SeedFromPhrase(c.SeedPhrase)
	}
	return time.Now().UnixNano()
}

// SeedFromPhrase derives a stable seed from a phrase.
func SeedFromPhrase(phrase string) int64 {
	sum := blake3.Sum256([]byte(phrase))
	return int64(binary.LittleEndian.Uint64(sum[:8]))
}
