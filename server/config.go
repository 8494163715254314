package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables of a game world. Zero values in a YAML file keep
// the defaults.
type Config struct {
	WorldWidth  float64 `yaml:"world_width"`
	WorldHeight float64 `yaml:"world_height"`
	ViewWidth   float64 `yaml:"view_width"`
	ViewHeight  float64 `yaml:"view_height"`

	TickRate        int     `yaml:"tick_rate"`         // steps per second
	SpawnIntervalMs float64 `yaml:"spawn_interval_ms"` // base enemy spawn interval
	MaxEnemies      int     `yaml:"max_enemies"`
	BossEvery       int     `yaml:"boss_every"` // kills between bosses
	ObstacleCount   int     `yaml:"obstacle_count"`
	Seed            uint64  `yaml:"seed"` // 0 = random
	MaxSessions     int     `yaml:"max_sessions"`
}

// DefaultConfig returns the stock arcade tuning
func DefaultConfig() Config {
	return Config{
		WorldWidth:      2400,
		WorldHeight:     1800,
		ViewWidth:       800,
		ViewHeight:      600,
		TickRate:        60,
		SpawnIntervalMs: 2000,
		MaxEnemies:      20,
		BossEvery:       20,
		ObstacleCount:   30,
		MaxSessions:     100,
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.merge(file)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.WorldWidth != 0 {
		c.WorldWidth = o.WorldWidth
	}
	if o.WorldHeight != 0 {
		c.WorldHeight = o.WorldHeight
	}
	if o.ViewWidth != 0 {
		c.ViewWidth = o.ViewWidth
	}
	if o.ViewHeight != 0 {
		c.ViewHeight = o.ViewHeight
	}
	if o.TickRate != 0 {
		c.TickRate = o.TickRate
	}
	if o.SpawnIntervalMs != 0 {
		c.SpawnIntervalMs = o.SpawnIntervalMs
	}
	if o.MaxEnemies != 0 {
		c.MaxEnemies = o.MaxEnemies
	}
	if o.BossEvery != 0 {
		c.BossEvery = o.BossEvery
	}
	if o.ObstacleCount != 0 {
		c.ObstacleCount = o.ObstacleCount
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.MaxSessions != 0 {
		c.MaxSessions = o.MaxSessions
	}
}

// Validate rejects values the simulation cannot run with
func (c Config) Validate() error {
	var errs []error
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		errs = append(errs, errors.New("world size must be positive"))
	}
	if c.ViewWidth <= 0 || c.ViewHeight <= 0 {
		errs = append(errs, errors.New("view size must be positive"))
	}
	if c.ViewWidth > c.WorldWidth || c.ViewHeight > c.WorldHeight {
		errs = append(errs, errors.New("view must fit inside the world"))
	}
	if c.TickRate <= 0 {
		errs = append(errs, errors.New("tick_rate must be positive"))
	}
	if c.SpawnIntervalMs <= 0 {
		errs = append(errs, errors.New("spawn_interval_ms must be positive"))
	}
	if c.MaxEnemies < 0 || c.ObstacleCount < 0 {
		errs = append(errs, errors.New("counts must not be negative"))
	}
	if c.BossEvery <= 0 {
		errs = append(errs, errors.New("boss_every must be positive"))
	}
	return errors.Join(errs...)
}

// StepInterval is the wall-clock time between simulation steps
func (c Config) StepInterval() time.Duration {
	if c.TickRate <= 0 {
		return TickDuration
	}
	return time.Second / time.Duration(c.TickRate)
}
