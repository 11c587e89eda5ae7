package session

import (
	"github.com/tomz197/catcher/internal/object"
	"github.com/tomz197/catcher/internal/physics"
)

// Listener receives session events, typically to drive presentation.
// Callbacks run synchronously inside Tick or Restart and must not call back
// into the session.
type Listener interface {
	PickupSpawned(id object.ID, pos physics.Vec, kind object.Kind)
	PickupDestroyed(id object.ID)
	ScoreChanged(score int)
	SessionWon()
	SessionRestarted()
}

// NopListener ignores every event.
type NopListener struct{}

func (NopListener) PickupSpawned(object.ID, physics.Vec, object.Kind) {}
func (NopListener) PickupDestroyed(object.ID)                         {}
func (NopListener) ScoreChanged(int)                                  {}
func (NopListener) SessionWon()                                       {}
func (NopListener) SessionRestarted()                                 {}

// Listeners fans each event out to every listener in order.
type Listeners []Listener

func (ls Listeners) PickupSpawned(id object.ID, pos physics.Vec, kind object.Kind) {
	for _, l := range ls {
		l.PickupSpawned(id, pos, kind)
	}
}

func (ls Listeners) PickupDestroyed(id object.ID) {
	for _, l := range ls {
		l.PickupDestroyed(id)
	}
}

func (ls Listeners) ScoreChanged(score int) {
	for _, l := range ls {
		l.ScoreChanged(score)
	}
}

func (ls Listeners) SessionWon() {
	for _, l := range ls {
		l.SessionWon()
	}
}

func (ls Listeners) SessionRestarted() {
	for _, l := range ls {
		l.SessionRestarted()
	}
}

var (
	_ Listener = NopListener{}
	_ Listener = Listeners(nil)
)
