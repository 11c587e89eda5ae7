package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"min above max", func(t *Tuning) { t.MinSpawnInterval = 5; t.MaxSpawnInterval = 1; t.InitialSpawnInterval = 1 }},
		{"initial below min", func(t *Tuning) { t.InitialSpawnInterval = 0.01 }},
		{"initial above max", func(t *Tuning) { t.MaxSpawnInterval = 0.1 }},
		{"negative increase rate", func(t *Tuning) { t.SpawnIntervalIncreaseRate = -1 }},
		{"rare chance above one", func(t *Tuning) { t.RareChance = 1.5 }},
		{"negative max pickups", func(t *Tuning) { t.MaxPickupsOnScreen = -1; t.StartingPickupCount = -1 }},
		{"max pickups overflow index", func(t *Tuning) { t.MaxPickupsOnScreen = math.MaxInt32 + 1 }},
		{"starting above cap", func(t *Tuning) { t.StartingPickupCount = 500 }},
		{"zero win threshold", func(t *Tuning) { t.WinScoreThreshold = 0 }},
		{"zero arena", func(t *Tuning) { t.ArenaHalfExtent = 0 }},
		{"despawn inside arena", func(t *Tuning) { t.DespawnHalfExtent = 6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tun := Default()
			tt.mutate(&tun)
			err := tun.Validate()
			if !errors.Is(err, ErrInvalidTuning) {
				t.Fatalf("Validate() = %v, want ErrInvalidTuning", err)
			}
		})
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != Default() {
		t.Fatalf("got %+v, want defaults", got)
	}
}

func TestLoadTOMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "tuning.toml", `
win_score_threshold = 10
movement_speed = 6.5
`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.WinScoreThreshold != 10 || got.MovementSpeed != 6.5 {
		t.Fatalf("overrides not applied: %+v", got)
	}
	if got.InitialSpawnInterval != Default().InitialSpawnInterval {
		t.Fatalf("omitted key lost its default: got=%v", got.InitialSpawnInterval)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "tuning.yaml", "starting_pickup_count: 2\nrare_chance: 0.5\n")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.StartingPickupCount != 2 || got.RareChance != 0.5 {
		t.Fatalf("overrides not applied: %+v", got)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	for _, f := range []struct{ name, body string }{
		{"bad.toml", "spawn_rate = 3\n"},
		{"bad.yml", "spawn_rate: 3\n"},
	} {
		if _, err := Load(writeFile(t, f.name, f.body)); err == nil {
			t.Errorf("%s: expected error for unknown key", f.name)
		}
	}
}

func TestLoadValidates(t *testing.T) {
	path := writeFile(t, "tuning.toml", "min_spawn_interval = 2.0\nmax_spawn_interval = 1.0\n")
	_, err := Load(path)
	if !errors.Is(err, ErrInvalidTuning) {
		t.Fatalf("Load() = %v, want ErrInvalidTuning", err)
	}
}

func TestLoadRejectsHugePickupCap(t *testing.T) {
	path := writeFile(t, "tuning.toml", "max_pickups_on_screen = 9000000000000000000\n")
	_, err := Load(path)
	if !errors.Is(err, ErrInvalidTuning) {
		t.Fatalf("Load() = %v, want ErrInvalidTuning", err)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	if _, err := Load(writeFile(t, "tuning.json", "{}")); err == nil {
		t.Fatal("expected error for .json")
	}
}
