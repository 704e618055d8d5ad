package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/particlesim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Count != 100 {
		t.Errorf("expected 100 particles, got %d", cfg.Count)
	}
	if cfg.Dt != 0.05 {
		t.Errorf("expected dt 0.05, got %f", cfg.Dt)
	}
	if cfg.SurfaceTension != 10 {
		t.Errorf("expected surface tension 10, got %f", cfg.SurfaceTension)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	data := "count: 12\nseed: 9\ndt: 0.01\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Count != 12 || cfg.Seed != 9 || cfg.Dt != 0.01 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Width != DefaultWidth || cfg.SurfaceTension != 10 {
		t.Errorf("defaults lost for unset keys: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("count: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Count = 7
	cfg.SurfaceTension = 3.5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch: %+v vs %+v", got, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative count", func(c *Config) { c.Count = -1 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative dt", func(c *Config) { c.Dt = -0.1 }},
		{"zero steps", func(c *Config) { c.Steps = 0 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestNewSimulation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 5
	cfg.Seed = 3
	cfg.Dt = 0.02
	cfg.SurfaceTension = 1

	a := cfg.NewSimulation()
	b := cfg.NewSimulation()
	if a.Len() != 5 || a.Dt() != 0.02 || a.SurfaceTension() != 1 {
		t.Errorf("simulation does not reflect config: len=%d dt=%f st=%f", a.Len(), a.Dt(), a.SurfaceTension())
	}
	pa, pb := a.Particles(), b.Particles()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatal("same seed produced different placement")
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pair")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Count != 2 {
		t.Errorf("expected 2 particles, got %d", cfg.Count)
	}

	cfg.Count = 99
	if Presets["pair"].Count != 2 {
		t.Error("GetPreset returned shared preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
