package config

import (
	"sort"

	"github.com/kwhitlock/fiberlab/internal/units"
)

// Presets are named starting points for common experiments. Unset fields
// keep their zero value; callers that need defaults should start from
// DefaultConfig and overlay.
var Presets = map[string]*Config{
	"demo": {
		Radius: 1, Span: 10000, Actin: 5, Actinin: 20, Motors: 10,
		Temperature: units.Temperature, Dt: units.Timestep,
		Steps: 1000, SampleEvery: 10,
	},
	"single-tract": {
		Radius: 0, Span: 10000, Actin: 5, Actinin: 20, Motors: 10,
		Temperature: units.Temperature, Dt: units.Timestep,
		Steps: 1000, SampleEvery: 10,
	},
	"dense": {
		Radius: 2, Span: 10000, Actin: 10, Actinin: 60, Motors: 30,
		Temperature: units.Temperature, Dt: units.Timestep,
		Steps: 5000, SampleEvery: 50,
	},
	"sparse": {
		Radius: 1, Span: 20000, Actin: 3, Actinin: 8, Motors: 4,
		Temperature: units.Temperature, Dt: units.Timestep,
		Steps: 2000, SampleEvery: 20,
	},
	"cold": {
		Radius: 1, Span: 10000, Actin: 5, Actinin: 20, Motors: 10,
		Temperature: 277, Dt: units.Timestep,
		Steps: 1000, SampleEvery: 10,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
