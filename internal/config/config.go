package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kwhitlock/fiberlab/internal/units"
	"github.com/kwhitlock/fiberlab/internal/world"
)

const (
	DefaultRadius      = 1
	DefaultSpan        = 10000.0
	DefaultActin       = 5
	DefaultActinin     = 20
	DefaultMotors      = 10
	DefaultSteps       = 1000
	DefaultSampleEvery = 10
)

type Config struct {
	Radius      int     `yaml:"radius"`
	Span        float64 `yaml:"span"`
	Actin       int     `yaml:"actin"`
	Actinin     int     `yaml:"actinin"`
	Motors      int     `yaml:"motors"`
	Seed        int64   `yaml:"seed"`
	Temperature float64 `yaml:"temperature"`
	Dt          float64 `yaml:"dt"`
	Steps       int     `yaml:"steps"`
	SampleEvery int     `yaml:"sample_every"`
}

func DefaultConfig() *Config {
	return &Config{
		Radius:      DefaultRadius,
		Span:        DefaultSpan,
		Actin:       DefaultActin,
		Actinin:     DefaultActinin,
		Motors:      DefaultMotors,
		Temperature: units.Temperature,
		Dt:          units.Timestep,
		Steps:       DefaultSteps,
		SampleEvery: DefaultSampleEvery,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Options maps the file-level configuration onto world construction options.
func (c *Config) Options() world.Options {
	return world.Options{
		Radius:      c.Radius,
		Span:        c.Span,
		NActin:      c.Actin,
		NActinin:    c.Actinin,
		NMotors:     c.Motors,
		Seed:        c.Seed,
		Temperature: c.Temperature,
		Dt:          c.Dt,
	}
}
