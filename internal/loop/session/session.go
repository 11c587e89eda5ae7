// Package session runs one single-player catcher game: spawn pacing, pickup
// lifecycle, player movement, score and the win/restart state machine.
package session

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/catcher/internal/loop/config"
	"github.com/tomz197/catcher/internal/object"
	"github.com/tomz197/catcher/internal/physics"
)

// Phase is the session's position in its state machine.
type Phase int

const (
	PhaseActive Phase = iota // Player alive, catches score
	PhaseWon                 // Threshold reached, player removed until restart
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseWon:
		return "won"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is a read-only snapshot of the session.
type State struct {
	Score              int
	SpawnInterval      float64
	TimeSinceLastSpawn float64
	TimeSinceLastCatch float64
	LivePickups        int
	PlayerAlive        bool
	Phase              Phase
}

// Options configures a session. Every field is optional.
type Options struct {
	Rand     *rand.Rand  // Source for placement and kind; seeded from the clock when nil
	Listener Listener    // Event sink; NopListener when nil
	Logger   *zap.Logger // zap.NewNop when nil
}

// Session owns every piece of game state. It is driven by Tick and Restart
// from a single goroutine and is not safe for concurrent use.
type Session struct {
	tuning config.Tuning
	rng    *rand.Rand
	kinds  object.KindSelector
	events Listener
	log    *zap.Logger

	registry  *object.Registry
	spawner   *object.Spawner
	lifecycle *object.Lifecycle
	player    *object.Player

	score int
	phase Phase

	cleared []object.ID // Reused by restart
}

// New validates t and returns a session with a fresh player and the starting
// pickups already placed.
func New(t config.Tuning, opts Options) (*Session, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	s := &Session{
		tuning:   t,
		rng:      opts.Rand,
		kinds:    object.RareOdds(t.RareChance),
		events:   opts.Listener,
		log:      opts.Logger,
		registry: object.NewRegistry(t.MaxPickupsOnScreen),
		spawner:  object.NewSpawner(t),
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if s.events == nil {
		s.events = NopListener{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.lifecycle = object.NewLifecycle(t.DespawnHalfExtent, t.PickupRadius, (*hooks)(s), s.spawner, (*hooks)(s))

	s.reset()
	s.log.Debug("session created",
		zap.Float64("initial_spawn_interval", t.InitialSpawnInterval),
		zap.Int("max_pickups", t.MaxPickupsOnScreen),
		zap.Int("win_score", t.WinScoreThreshold),
	)
	return s, nil
}

// Tick advances the simulation by dt seconds. input is the steering
// direction, each component in [-1, 1]. Order: spawn pacing, pickup checks,
// player movement, win evaluation.
func (s *Session) Tick(dt float64, input physics.Vec) {
	if !(dt > 0) {
		return
	}
	s.spawner.Tick(dt, (*hooks)(s))
	s.lifecycle.Step(s.registry, s.player)
	s.player.Tick(dt, input)
	s.evaluate()
}

// Restart returns to PhaseActive with score 0, the initial spawn interval,
// a recreated player and StartingPickupCount fresh pickups. It is valid in
// any phase.
func (s *Session) Restart() {
	prev := s.score
	s.reset()
	s.log.Info("session restarted", zap.Int("previous_score", prev))
	s.events.ScoreChanged(0)
	s.events.SessionRestarted()
}

func (s *Session) reset() {
	s.score = 0
	s.phase = PhaseActive
	s.spawner.Reset()

	s.cleared = s.registry.Clear(s.cleared[:0])
	for _, id := range s.cleared {
		s.events.PickupDestroyed(id)
	}

	if s.player != nil {
		s.player.Destroy()
	}
	t := s.tuning
	s.player = object.NewPlayer(physics.Vec{}, t.MovementSpeed, t.PlayerHalfSize, t.ArenaHalfExtent)

	for i := 0; i < t.StartingPickupCount; i++ {
		s.spawnPickup()
	}
}

// evaluate moves to PhaseWon once the threshold is reached.
func (s *Session) evaluate() {
	if s.phase != PhaseActive || s.score < s.tuning.WinScoreThreshold {
		return
	}
	s.phase = PhaseWon
	s.player.Destroy()
	s.log.Info("session won", zap.Int("score", s.score))
	s.events.SessionWon()
}

func (s *Session) spawnPickup() {
	id := s.registry.Spawn(s.rng, s.kinds, s.tuning.ArenaHalfExtent)
	p, _ := s.registry.Get(id)
	s.events.PickupSpawned(id, p.Pos, p.Kind)
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	return State{
		Score:              s.score,
		SpawnInterval:      s.spawner.Interval(),
		TimeSinceLastSpawn: s.spawner.SinceSpawn(),
		TimeSinceLastCatch: s.spawner.SinceCatch(),
		LivePickups:        s.registry.Count(),
		PlayerAlive:        s.player.Alive,
		Phase:              s.phase,
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Player returns a copy of the player.
func (s *Session) Player() object.Player { return *s.player }

// Tuning returns the parameters the session was built with.
func (s *Session) Tuning() config.Tuning { return s.tuning }

// EachPickup calls fn for every live pickup.
func (s *Session) EachPickup(fn func(p object.Pickup)) {
	s.registry.Each(fn)
}

// hooks exposes the session to its components without widening the
// Session API.
type hooks Session

// IncreaseScore implements object.Scorer.
func (h *hooks) IncreaseScore() {
	s := (*Session)(h)
	if s.phase != PhaseActive {
		return
	}
	s.score++
	s.events.ScoreChanged(s.score)
	s.evaluate()
}

// Remove implements object.Remover.
func (h *hooks) Remove(id object.ID) bool {
	s := (*Session)(h)
	if !s.registry.Destroy(id) {
		return false
	}
	s.events.PickupDestroyed(id)
	return true
}

// Live implements object.Population.
func (h *hooks) Live() int {
	return h.registry.Count()
}

// Spawn implements object.Population.
func (h *hooks) Spawn() {
	(*Session)(h).spawnPickup()
}

var (
	_ object.Scorer     = (*hooks)(nil)
	_ object.Remover    = (*hooks)(nil)
	_ object.Population = (*hooks)(nil)
)
