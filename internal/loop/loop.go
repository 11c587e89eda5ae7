// Package loop runs a catcher session in a terminal: Input → Update → Draw.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/catcher/internal/draw"
	"github.com/tomz197/catcher/internal/input"
	"github.com/tomz197/catcher/internal/loop/config"
	"github.com/tomz197/catcher/internal/loop/session"
	"github.com/tomz197/catcher/internal/object"
	"github.com/tomz197/catcher/internal/physics"
)

// Options configures a game.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // draw.DefaultTermSizeFunc when nil
	Tuning       config.Tuning
	Seed         uint64 // 0 seeds from the clock
	FPS          int    // config.TargetFPS when zero
	Logger       *zap.Logger
	Listener     session.Listener
}

// Game owns one session and its terminal.
type Game struct {
	session      *session.Session
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	frameTime    time.Duration
	log          *zap.Logger
	tally        *tally

	running bool
	offCol  int
	offRow  int
	overlay string // HUD content drawn last frame
}

// NewGame creates a game reading keys from r and drawing to w.
func NewGame(r *bufio.Reader, w io.Writer, opts Options) (*Game, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = config.TargetFPS
	}

	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	}
	counts := &tally{}
	listeners := session.Listeners{counts}
	if opts.Listener != nil {
		listeners = append(listeners, opts.Listener)
	}
	sess, err := session.New(opts.Tuning, session.Options{
		Rand:     rng,
		Listener: listeners,
		Logger:   log,
	})
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		log.Warn("terminal size unavailable", zap.Error(err))
		termWidth, termHeight = config.MaxTermWidth, config.MaxTermHeight
	}
	renderWidth, renderHeight, offCol, offRow := clampTermSize(termWidth, termHeight)
	viewHalf := opts.Tuning.ArenaHalfExtent + config.ViewMargin

	return &Game{
		session:      sess,
		canvas:       draw.NewCanvas(renderWidth, renderHeight, viewHalf),
		chunkWriter:  draw.NewChunkWriter(w, offCol, offRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		frameTime:    time.Second / time.Duration(fps),
		log:          log,
		tally:        counts,
		running:      true,
		offCol:       offCol,
		offRow:       offRow,
	}, nil
}

// Run creates a game and plays it until the player quits, the input ends or
// ctx is canceled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	g, err := NewGame(r, w, opts)
	if err != nil {
		return err
	}
	return g.Run(ctx)
}

// Run plays the game. Blocks until it stops.
func (g *Game) Run(ctx context.Context) error {
	draw.HideCursor(g.writer)
	defer draw.ShowCursor(g.writer)
	draw.ClearScreen(g.writer)

	lastTime := time.Now()

	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
			continue
		default:
		}

		frameStart := time.Now()
		delta := min(frameStart.Sub(lastTime), config.MaxFrameDelta)
		lastTime = frameStart

		g.update(input.ReadInput(g.inputStream), delta)
		g.updateScreen()

		if err := g.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < g.frameTime {
			time.Sleep(g.frameTime - elapsed)
		}
	}

	g.log.Info("game ended",
		zap.Int("score", g.session.Score()),
		zap.Stringer("phase", g.session.Phase()),
		zap.Int("pickups_spawned", g.tally.spawned),
		zap.Int("wins", g.tally.wins))

	draw.ClearScreen(g.writer)
	return nil
}

// update applies one frame of input and advances the session by delta.
func (g *Game) update(in input.Input, delta time.Duration) {
	if in.Quit || g.inputStream.Closed() {
		g.running = false
		return
	}
	if in.Restart {
		g.session.Restart()
	}
	g.session.Tick(delta.Seconds(), in.Vector())
}

// updateScreen handles terminal resize, clamping to the max render size.
func (g *Game) updateScreen() {
	termWidth, termHeight, err := g.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offCol, offRow := clampTermSize(termWidth, termHeight)
	if renderWidth == g.canvas.Width() && renderHeight == g.canvas.Height() &&
		offCol == g.offCol && offRow == g.offRow {
		return
	}

	g.canvas.Resize(renderWidth, renderHeight)
	g.canvas.ForceRedraw()
	g.chunkWriter.SetOffset(offCol, offRow)
	g.offCol, g.offRow = offCol, offRow
	// Wipe residue outside the new render area.
	draw.ClearScreen(g.chunkWriter)
}

// tally counts session events for the end-of-game log.
type tally struct {
	session.NopListener
	spawned int
	wins    int
}

func (t *tally) PickupSpawned(object.ID, physics.Vec, object.Kind) { t.spawned++ }
func (t *tally) SessionWon()                                       { t.wins++ }

// clampTermSize clamps terminal dimensions to the max render size and
// computes the offset that centers the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
