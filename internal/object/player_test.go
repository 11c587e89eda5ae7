package object

import (
	"testing"

	"github.com/tomz197/catcher/internal/physics"
)

func TestPlayerDiagonalIsNotNormalized(t *testing.T) {
	p := NewPlayer(physics.Vec{}, 5, 0.32, 100)
	p.Tick(1, physics.Vec{X: 1, Y: 1})
	if want := (physics.Vec{X: 5, Y: 5}); p.Pos != want {
		t.Fatalf("pos=%v want=%v", p.Pos, want)
	}
}

func TestPlayerClampsToArena(t *testing.T) {
	p := NewPlayer(physics.Vec{X: 4, Y: -4}, 5, 0.32, 7)
	p.Tick(1, physics.Vec{X: 1, Y: -1})
	if want := (physics.Vec{X: 7, Y: -7}); p.Pos != want {
		t.Fatalf("pos=%v want=%v", p.Pos, want)
	}
}

func TestPlayerInputComponentsLimited(t *testing.T) {
	p := NewPlayer(physics.Vec{}, 5, 0.32, 100)
	p.Tick(1, physics.Vec{X: 3, Y: -0.5})
	if want := (physics.Vec{X: 5, Y: -2.5}); p.Pos != want {
		t.Fatalf("pos=%v want=%v", p.Pos, want)
	}
}

func TestPlayerDeadDoesNotMove(t *testing.T) {
	p := NewPlayer(physics.Vec{X: 1}, 5, 0.32, 7)
	p.Destroy()
	p.Tick(1, physics.Vec{X: 1, Y: 1})
	if p.Pos != (physics.Vec{X: 1}) {
		t.Fatalf("dead player moved to %v", p.Pos)
	}
}

func TestPlayerStepsAccumulate(t *testing.T) {
	p := NewPlayer(physics.Vec{}, 5, 0.32, 7)
	for i := 0; i < 4; i++ {
		p.Tick(0.25, physics.Vec{X: -1})
	}
	if p.Pos.X != -5 || p.Pos.Y != 0 {
		t.Fatalf("pos=%v want=(-5,0)", p.Pos)
	}
}
