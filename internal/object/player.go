package object

import (
	"github.com/tomz197/catcher/internal/physics"
)

// Player is the avatar the user steers around the arena.
type Player struct {
	Pos   physics.Vec
	Alive bool

	Speed    float64 // Units per second at full input
	HalfSize float64 // Half the side of the collision box
	Bound    float64 // Position is clamped to [-Bound, Bound] on both axes
}

// NewPlayer creates a live player at pos.
func NewPlayer(pos physics.Vec, speed, halfSize, bound float64) *Player {
	return &Player{
		Pos:      pos,
		Alive:    true,
		Speed:    speed,
		HalfSize: halfSize,
		Bound:    bound,
	}
}

// Tick moves the player by input*Speed*dt and clamps to the arena.
// Each input component is limited to [-1, 1] but the vector is not
// normalized, so diagonals move faster.
func (p *Player) Tick(dt float64, input physics.Vec) {
	if !p.Alive || !(dt > 0) {
		return
	}
	velocity := input.ClampAxes(1).Scale(p.Speed)
	p.Pos = p.Pos.Add(velocity.Scale(dt)).ClampAxes(p.Bound)
}

// Destroy removes the player from play. Movement and collection stop.
func (p *Player) Destroy() {
	p.Alive = false
}

