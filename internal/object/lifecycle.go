package object

import (
	"github.com/tomz197/catcher/internal/physics"
)

// Scorer is credited once per caught pickup.
type Scorer interface {
	IncreaseScore()
}

// Pacer is told about every catch so it can adjust spawn pacing.
type Pacer interface {
	OnCollected()
}

// Remover destroys a pickup and reports whether it was still alive.
type Remover interface {
	Remove(id ID) bool
}

// Lifecycle runs the per-pickup checks each tick: out-of-bounds culling and
// collection by the player.
type Lifecycle struct {
	DespawnHalfExtent float64
	PickupRadius      float64

	scorer  Scorer
	pacer   Pacer
	remover Remover

	ids []ID // Reused snapshot of live IDs
}

// NewLifecycle wires the collaborators notified on collection.
func NewLifecycle(despawnHalfExtent, pickupRadius float64, scorer Scorer, pacer Pacer, remover Remover) *Lifecycle {
	return &Lifecycle{
		DespawnHalfExtent: despawnHalfExtent,
		PickupRadius:      pickupRadius,
		scorer:            scorer,
		pacer:             pacer,
		remover:           remover,
	}
}

// OutOfBounds reports whether pos has left the despawn square.
func (l *Lifecycle) OutOfBounds(pos physics.Vec) bool {
	return physics.OutsideSquare(pos, l.DespawnHalfExtent)
}

// Collected reports whether a pickup at pos overlaps the player.
func (l *Lifecycle) Collected(pos physics.Vec, player *Player) bool {
	if player == nil || !player.Alive {
		return false
	}
	return physics.CircleBoxOverlap(pos, l.PickupRadius, player.Pos, player.HalfSize)
}

// Step checks every pickup that is live at the start of the call. A pickup
// removed earlier in the same step is skipped, so each pickup is destroyed
// and scored at most once. Returns the number of pickups caught.
func (l *Lifecycle) Step(reg *Registry, player *Player) int {
	l.ids = reg.IDs(l.ids[:0])

	caught := 0
	for _, id := range l.ids {
		p, ok := reg.Get(id)
		if !ok {
			continue
		}

		if l.OutOfBounds(p.Pos) {
			l.remover.Remove(id)
			continue
		}

		if l.Collected(p.Pos, player) {
			l.collect(id)
			caught++
		}
	}
	return caught
}

// collect applies a catch: score, pacing, then removal.
func (l *Lifecycle) collect(id ID) {
	l.scorer.IncreaseScore()
	l.pacer.OnCollected()
	l.remover.Remove(id)
}
