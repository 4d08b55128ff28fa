package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sim       SimConfig       `toml:"sim"`
	Player    PlayerConfig    `toml:"player"`
	Particles ParticlesConfig `toml:"particles"`
	Collision CollisionConfig `toml:"collision"`
	Benchmark BenchmarkConfig `toml:"benchmark"`
	Logging   LoggingConfig   `toml:"logging"`
	Content   ContentConfig   `toml:"content"`
}

type SimConfig struct {
	Step       float64 `toml:"step"`         // fixed step in seconds
	MaxCatchUp float64 `toml:"max_catch_up"` // frame time accepted before clamping, in steps
	Seed       uint64  `toml:"seed"`
}

type PlayerConfig struct {
	Speed float32 `toml:"speed"` // units per second
}

type ParticlesConfig struct {
	SpawnCount  int        `toml:"spawn_count"`  // spawned per update
	DeathChance float64    `toml:"death_chance"` // per particle per update (0.0-1.0)
	Workers     int        `toml:"workers"`
	BoundsMin   [3]float32 `toml:"bounds_min"`
	BoundsMax   [3]float32 `toml:"bounds_max"`
	Speed       float32    `toml:"speed"` // max initial speed per axis
}

type CollisionConfig struct {
	CellSize float32 `toml:"cell_size"`
}

type BenchmarkConfig struct {
	ObjectsPerSecond float64 `toml:"objects_per_second"` // 0 disables spawning
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ContentConfig struct {
	Manifest string `toml:"manifest"` // empty uses the built-in manifest
}

// Load reads the TOML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that an empty path yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Defaults(), nil
	}
	return Load(path)
}

func Defaults() *Config {
	return &Config{
		Sim: SimConfig{
			Step:       1.0 / 60.0,
			MaxCatchUp: 4,
			Seed:       1,
		},
		Player: PlayerConfig{
			Speed: 20,
		},
		Particles: ParticlesConfig{
			SpawnCount:  200,
			DeathChance: 1.0 / 500.0,
			Workers:     4,
			BoundsMin:   [3]float32{-100, 0, -100},
			BoundsMax:   [3]float32{100, 100, 100},
			Speed:       5,
		},
		Collision: CollisionConfig{
			CellSize: 10,
		},
		Benchmark: BenchmarkConfig{
			ObjectsPerSecond: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

var (
	ErrInvalidStep     = errors.New("sim.step must be positive")
	ErrInvalidCatchUp  = errors.New("sim.max_catch_up must be at least 1")
	ErrInvalidCellSize = errors.New("collision.cell_size must be positive")
	ErrInvalidChance   = errors.New("particles.death_chance must be within [0, 1]")
	ErrInvalidBounds   = errors.New("particles.bounds_min must not exceed bounds_max")
)

// Validate reports the first setting the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Sim.Step <= 0:
		return ErrInvalidStep
	case c.Sim.MaxCatchUp < 1:
		return ErrInvalidCatchUp
	case c.Collision.CellSize <= 0:
		return ErrInvalidCellSize
	case c.Particles.DeathChance < 0 || c.Particles.DeathChance > 1:
		return ErrInvalidChance
	}
	for axis := range 3 {
		if c.Particles.BoundsMin[axis] > c.Particles.BoundsMax[axis] {
			return ErrInvalidBounds
		}
	}
	if c.Particles.SpawnCount < 0 {
		c.Particles.SpawnCount = 0
	}
	if c.Particles.Workers < 1 {
		c.Particles.Workers = 1
	}
	return nil
}
