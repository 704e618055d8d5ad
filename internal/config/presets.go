package config

import "sort"

var Presets = map[string]*Config{
	"default": {
		Count: 100, Width: 800, Height: 600, Dt: 0.05, SurfaceTension: 10,
		Steps: 1000, FPS: 30, RecordEvery: 10,
	},
	"sparse": {
		Count: 30, Width: 800, Height: 600, Dt: 0.05, SurfaceTension: 10,
		Steps: 2000, FPS: 30, RecordEvery: 20,
	},
	"dense": {
		Count: 300, Width: 400, Height: 300, Dt: 0.02, SurfaceTension: 10,
		Steps: 500, FPS: 20, RecordEvery: 5,
	},
	"droplet": {
		Count: 64, Width: 120, Height: 120, Dt: 0.01, SurfaceTension: 25,
		Steps: 3000, FPS: 30, RecordEvery: 30,
	},
	"pair": {
		Count: 2, Width: 40, Height: 40, Dt: 0.05, SurfaceTension: 10,
		Steps: 200, FPS: 30, RecordEvery: 1,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
