package object

import (
	"math"

	"github.com/tomz197/catcher/internal/loop/config"
)

// Population is what the Spawner asks for new pickups.
type Population interface {
	// Live returns the number of pickups currently alive.
	Live() int
	// Spawn creates exactly one pickup.
	Spawn()
}

// Spawner paces pickup creation. Idle time relaxes the spawn interval toward
// the maximum; every catch tightens it toward the minimum.
type Spawner struct {
	initial  float64
	min, max float64
	increase float64 // per second
	decrease float64 // per catch
	maxLive  int

	interval   float64
	sinceSpawn float64
	sinceCatch float64
}

// NewSpawner creates a spawner from validated tuning.
func NewSpawner(t config.Tuning) *Spawner {
	s := &Spawner{
		initial:  t.InitialSpawnInterval,
		min:      t.MinSpawnInterval,
		max:      t.MaxSpawnInterval,
		increase: t.SpawnIntervalIncreaseRate,
		decrease: t.SpawnIntervalDecreaseAmount,
		maxLive:  t.MaxPickupsOnScreen,
	}
	s.Reset()
	return s
}

// Tick advances the timers by dt seconds and spawns at most one pickup.
// Non-positive or NaN deltas are ignored.
func (s *Spawner) Tick(dt float64, pop Population) {
	if !(dt > 0) {
		return
	}

	s.sinceCatch += dt
	s.interval = s.clamp(s.interval + s.increase*dt)

	if pop.Live() >= s.maxLive {
		return
	}
	s.sinceSpawn += dt
	if s.sinceSpawn >= s.interval {
		pop.Spawn()
		s.sinceSpawn = 0
	}
}

// OnCollected tightens the interval after a catch.
func (s *Spawner) OnCollected() {
	s.interval = s.clamp(s.interval - s.decrease)
	s.sinceCatch = 0
}

// Reset restores the initial interval and zeroes both timers.
func (s *Spawner) Reset() {
	s.interval = s.clamp(s.initial)
	s.sinceSpawn = 0
	s.sinceCatch = 0
}

// Interval returns the current spawn interval in seconds.
func (s *Spawner) Interval() float64 { return s.interval }

// SinceSpawn returns seconds accumulated toward the next spawn.
func (s *Spawner) SinceSpawn() float64 { return s.sinceSpawn }

// SinceCatch returns seconds since the last catch (or reset).
func (s *Spawner) SinceCatch() float64 { return s.sinceCatch }

func (s *Spawner) clamp(v float64) float64 {
	return math.Min(s.max, math.Max(s.min, v))
}
