// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidTuning is wrapped by every Validate failure.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds the fixed game parameters for one session.
// Values are read once at start-up and never mutated while a session runs.
type Tuning struct {
	// Spawn pacing (seconds)
	InitialSpawnInterval        float64 `toml:"initial_spawn_interval" yaml:"initial_spawn_interval"`
	MinSpawnInterval            float64 `toml:"min_spawn_interval" yaml:"min_spawn_interval"`
	MaxSpawnInterval            float64 `toml:"max_spawn_interval" yaml:"max_spawn_interval"`
	SpawnIntervalIncreaseRate   float64 `toml:"spawn_interval_increase_rate" yaml:"spawn_interval_increase_rate"`     // Seconds added per second without a catch
	SpawnIntervalDecreaseAmount float64 `toml:"spawn_interval_decrease_amount" yaml:"spawn_interval_decrease_amount"` // Seconds removed per catch

	// Population
	MaxPickupsOnScreen  int     `toml:"max_pickups_on_screen" yaml:"max_pickups_on_screen"`
	StartingPickupCount int     `toml:"starting_pickup_count" yaml:"starting_pickup_count"`
	RareChance          float64 `toml:"rare_chance" yaml:"rare_chance"` // Probability a spawn is the rare variant

	// Scoring
	WinScoreThreshold int `toml:"win_score_threshold" yaml:"win_score_threshold"`

	// Arena (world units, centered on the origin)
	ArenaHalfExtent   float64 `toml:"arena_half_extent" yaml:"arena_half_extent"`
	DespawnHalfExtent float64 `toml:"despawn_half_extent" yaml:"despawn_half_extent"`

	// Player and pickup shapes
	MovementSpeed  float64 `toml:"movement_speed" yaml:"movement_speed"`
	PlayerHalfSize float64 `toml:"player_half_size" yaml:"player_half_size"`
	PickupRadius   float64 `toml:"pickup_radius" yaml:"pickup_radius"`
}

// Default returns the stock tuning.
func Default() Tuning {
	return Tuning{
		InitialSpawnInterval:        0.24,
		MinSpawnInterval:            0.08,
		MaxSpawnInterval:            1_000_000,
		SpawnIntervalIncreaseRate:   0.04,
		SpawnIntervalDecreaseAmount: 0.04,
		MaxPickupsOnScreen:          200,
		StartingPickupCount:         5,
		RareChance:                  0.1,
		WinScoreThreshold:           50,
		ArenaHalfExtent:             7,
		DespawnHalfExtent:           8,
		MovementSpeed:               5,
		PlayerHalfSize:              0.32,
		PickupRadius:                0.32,
	}
}

// Validate rejects inconsistent tuning instead of silently clamping it.
func (t Tuning) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"initial_spawn_interval", t.InitialSpawnInterval},
		{"min_spawn_interval", t.MinSpawnInterval},
		{"max_spawn_interval", t.MaxSpawnInterval},
		{"spawn_interval_increase_rate", t.SpawnIntervalIncreaseRate},
		{"spawn_interval_decrease_amount", t.SpawnIntervalDecreaseAmount},
		{"rare_chance", t.RareChance},
		{"arena_half_extent", t.ArenaHalfExtent},
		{"despawn_half_extent", t.DespawnHalfExtent},
		{"movement_speed", t.MovementSpeed},
		{"player_half_size", t.PlayerHalfSize},
		{"pickup_radius", t.PickupRadius},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidTuning, f.name, f.v)
		}
	}

	switch {
	case t.MinSpawnInterval > t.MaxSpawnInterval:
		return fmt.Errorf("%w: min_spawn_interval %v exceeds max_spawn_interval %v",
			ErrInvalidTuning, t.MinSpawnInterval, t.MaxSpawnInterval)
	case t.InitialSpawnInterval < t.MinSpawnInterval || t.InitialSpawnInterval > t.MaxSpawnInterval:
		return fmt.Errorf("%w: initial_spawn_interval %v outside [%v, %v]",
			ErrInvalidTuning, t.InitialSpawnInterval, t.MinSpawnInterval, t.MaxSpawnInterval)
	case t.RareChance > 1:
		return fmt.Errorf("%w: rare_chance %v exceeds 1", ErrInvalidTuning, t.RareChance)
	case t.MaxPickupsOnScreen < 0 || t.MaxPickupsOnScreen > math.MaxInt32:
		return fmt.Errorf("%w: max_pickups_on_screen %d outside [0, %d]",
			ErrInvalidTuning, t.MaxPickupsOnScreen, math.MaxInt32)
	case t.StartingPickupCount < 0 || t.StartingPickupCount > t.MaxPickupsOnScreen:
		return fmt.Errorf("%w: starting_pickup_count %d outside [0, %d]",
			ErrInvalidTuning, t.StartingPickupCount, t.MaxPickupsOnScreen)
	case t.WinScoreThreshold <= 0:
		return fmt.Errorf("%w: win_score_threshold must be positive", ErrInvalidTuning)
	case t.ArenaHalfExtent == 0:
		return fmt.Errorf("%w: arena_half_extent must be positive", ErrInvalidTuning)
	case t.DespawnHalfExtent < t.ArenaHalfExtent:
		// Freshly spawned pickups would be culled on their first tick
		return fmt.Errorf("%w: despawn_half_extent %v is inside arena_half_extent %v",
			ErrInvalidTuning, t.DespawnHalfExtent, t.ArenaHalfExtent)
	}
	return nil
}

// Host loop timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS

	// MaxFrameDelta caps the step handed to the simulation after a stall.
	MaxFrameDelta = 100 * time.Millisecond
)

// Max render area in terminal cells. Larger terminals get a centered area.
const (
	MaxTermWidth  = 120
	MaxTermHeight = 40
)

// ViewMargin is the world-unit padding drawn around the arena.
const ViewMargin = 1.0
