package loop

import (
	"strconv"

	"github.com/tomz197/catcher/internal/draw"
	"github.com/tomz197/catcher/internal/loop/config"
	"github.com/tomz197/catcher/internal/loop/session"
	"github.com/tomz197/catcher/internal/object"
	"github.com/tomz197/catcher/internal/physics"
)

// pickupDrawScale shrinks pickups relative to their collision radius so they
// read as smaller than the player.
const pickupDrawScale = 0.7

const (
	restartHint  = "[r] Restart"
	controlsHint = "WASD/arrows move  q quit"
	winTitle     = "Y O U   W I N"
	winPrompt    = "Press R to play again"
)

// drawFrame draws the arena, pickups, player and HUD, then flushes.
func (g *Game) drawFrame() error {
	// Text is drawn over the canvas. When it changes, repaint everything so
	// stale characters do not survive.
	overlay := g.overlayKey()
	if overlay != g.overlay {
		draw.ClearScreen(g.chunkWriter)
		g.canvas.ForceRedraw()
		g.overlay = overlay
	}

	g.canvas.Clear()
	g.drawWorld()
	g.canvas.Render(g.chunkWriter)
	g.drawHUD()

	return g.chunkWriter.Flush()
}

func (g *Game) overlayKey() string {
	return strconv.Itoa(g.session.Score()) + "/" + g.session.Phase().String()
}

func (g *Game) drawWorld() {
	t := g.session.Tuning()
	g.canvas.StrokeRect(physics.Vec{}, t.ArenaHalfExtent+config.ViewMargin/2)

	g.session.EachPickup(func(p object.Pickup) {
		half := t.PickupRadius * pickupDrawScale
		if p.Kind == object.KindRare {
			g.canvas.StrokeRect(p.Pos, half)
			return
		}
		g.canvas.FillRect(p.Pos, half)
	})

	if player := g.session.Player(); player.Alive {
		g.canvas.FillRect(player.Pos, player.HalfSize)
	}
}

func (g *Game) drawHUD() {
	width := g.canvas.Width()
	height := g.canvas.Height()
	cw := g.chunkWriter

	cw.WriteAt(2, 1, "Score: "+strconv.Itoa(g.session.Score()))
	cw.WriteAt(max(width-len(restartHint), 1), 1, restartHint)
	cw.WriteAt(2, height, controlsHint)

	if g.session.Phase() == session.PhaseWon {
		centerX, centerY := width/2, height/2
		cw.WriteAt(max(centerX-len(winTitle)/2, 1), centerY-1, winTitle)
		cw.WriteAt(max(centerX-len(winPrompt)/2, 1), centerY+1, winPrompt)
	}
}
