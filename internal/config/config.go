package config

import (
	"fmt"
	"os"

	"github.com/san-kum/particlesim/internal/dynamo"
	"github.com/san-kum/particlesim/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCount       = 100
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
	DefaultSteps       = 1000
	DefaultFPS         = 30
	DefaultRecordEvery = 10
)

type Config struct {
	Count          int     `yaml:"count"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Seed           int64   `yaml:"seed"`
	Dt             float64 `yaml:"dt"`
	SurfaceTension float64 `yaml:"surface_tension"`
	Steps          int     `yaml:"steps"`
	FPS            int     `yaml:"fps"`
	RecordEvery    int     `yaml:"record_every"`
}

func DefaultConfig() *Config {
	return &Config{
		Count:          DefaultCount,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Dt:             physics.DefaultDt,
		SurfaceTension: physics.DefaultSurfaceTension,
		Steps:          DefaultSteps,
		FPS:            DefaultFPS,
		RecordEvery:    DefaultRecordEvery,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the command line should not hand to the
// kernel. The kernel itself accepts anything.
func (c *Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("%w: count must not be negative, got %d", dynamo.ErrParameterBounds, c.Count)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: placement area must be positive, got %gx%g", dynamo.ErrParameterBounds, c.Width, c.Height)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrParameterBounds, c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrParameterBounds, c.Steps)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", dynamo.ErrParameterBounds, c.FPS)
	}
	return nil
}

// NewSimulation builds the kernel described by the config.
func (c *Config) NewSimulation(opts ...physics.Option) *physics.Simulation {
	opts = append([]physics.Option{physics.WithSeed(c.Seed)}, opts...)
	s := physics.New(c.Count, c.Width, c.Height, opts...)
	s.SetDt(c.Dt)
	s.SetSurfaceTension(c.SurfaceTension)
	return s
}

func (c *Config) RunConfig() dynamo.Config {
	return dynamo.Config{
		Steps:         c.Steps,
		RecordEvery:   c.RecordEvery,
		ValidateState: true,
	}
}
