package loop

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tomz197/catcher/internal/input"
	"github.com/tomz197/catcher/internal/loop/config"
	"github.com/tomz197/catcher/internal/loop/session"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

// instantWin tunes a session so the first pickup spawns under the player
// and a single catch wins.
func instantWin() config.Tuning {
	t := config.Default()
	t.ArenaHalfExtent = 0.1
	t.DespawnHalfExtent = 1
	t.InitialSpawnInterval = 0.05
	t.MinSpawnInterval = 0.01
	t.MaxSpawnInterval = 1
	t.StartingPickupCount = 0
	t.MaxPickupsOnScreen = 1
	t.WinScoreThreshold = 1
	return t
}

// newTestGame creates a game whose input never ends.
func newTestGame(t *testing.T, tuning config.Tuning, out io.Writer) *Game {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	g, err := NewGame(bufio.NewReader(pr), out, Options{
		TermSizeFunc: fixedSize(80, 24),
		Tuning:       tuning,
		Seed:         7,
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func TestNewGameRejectsInvalidTuning(t *testing.T) {
	tuning := config.Default()
	tuning.WinScoreThreshold = 0
	_, err := NewGame(bufio.NewReader(strings.NewReader("")), io.Discard, Options{
		TermSizeFunc: fixedSize(80, 24),
		Tuning:       tuning,
	})
	if !errors.Is(err, config.ErrInvalidTuning) {
		t.Fatalf("err=%v want ErrInvalidTuning", err)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	var out bytes.Buffer
	core, logs := observer.New(zap.InfoLevel)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := Run(ctx, bufio.NewReader(strings.NewReader("q")), &out, Options{
		TermSizeFunc: fixedSize(80, 24),
		Tuning:       config.Default(),
		Logger:       zap.New(core),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("Run returned only after the deadline")
	}

	got := out.String()
	if !strings.HasPrefix(got, "\033[?25l") {
		t.Fatalf("cursor not hidden first: %q", got[:min(len(got), 20)])
	}
	if !strings.HasSuffix(got, "\033[H\033[2J\033[?25h") {
		t.Fatal("terminal not cleared and cursor not restored on exit")
	}
	ended := logs.FilterMessage("game ended").All()
	if len(ended) != 1 {
		t.Fatalf("expected one game ended log, got %v", logs.All())
	}
	// The starting pickups are counted through the listener fan-out.
	if n, _ := ended[0].ContextMap()["pickups_spawned"].(int64); n < int64(config.Default().StartingPickupCount) {
		t.Fatalf("pickups_spawned=%v", ended[0].ContextMap()["pickups_spawned"])
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, bufio.NewReader(pr), io.Discard, Options{
			TermSizeFunc: fixedSize(80, 24),
			Tuning:       config.Default(),
		})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestUpdateMovesPlayer(t *testing.T) {
	g := newTestGame(t, config.Default(), io.Discard)

	g.update(input.Input{Right: true, Up: true}, 100*time.Millisecond)

	p := g.session.Player()
	if p.Pos.X != 0.5 || p.Pos.Y != 0.5 {
		t.Fatalf("player at %v want (0.5, 0.5)", p.Pos)
	}
	if !g.running {
		t.Fatal("game stopped without quit")
	}
}

func TestUpdateStopsOnQuit(t *testing.T) {
	g := newTestGame(t, config.Default(), io.Discard)
	g.update(input.Input{Quit: true}, time.Millisecond)
	if g.running {
		t.Fatal("quit did not stop the game")
	}
}

func TestWinBannerAndRestart(t *testing.T) {
	var out bytes.Buffer
	g := newTestGame(t, instantWin(), &out)

	if err := g.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	if !strings.Contains(out.String(), "Score: 0") || !strings.Contains(out.String(), restartHint) {
		t.Fatalf("HUD missing from %q", out.String())
	}
	if strings.Contains(out.String(), winTitle) {
		t.Fatal("win banner shown while active")
	}

	g.update(input.Input{}, 100*time.Millisecond)
	if g.session.Phase() != session.PhaseWon {
		t.Fatalf("phase=%v want won", g.session.Phase())
	}
	if g.tally.wins != 1 {
		t.Fatalf("tally.wins=%d want=1", g.tally.wins)
	}
	out.Reset()
	if err := g.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	if !strings.Contains(out.String(), winTitle) || !strings.Contains(out.String(), "Score: 1") {
		t.Fatalf("win screen missing from %q", out.String())
	}
	if !strings.HasPrefix(out.String(), "\033[H\033[2J") {
		t.Fatal("overlay change should repaint from a cleared screen")
	}

	g.update(input.Input{Restart: true}, 0)
	st := g.session.State()
	if st.Phase != session.PhaseActive || st.Score != 0 || !st.PlayerAlive {
		t.Fatalf("after restart: %+v", st)
	}
	out.Reset()
	_ = g.drawFrame()
	if strings.Contains(out.String(), winTitle) {
		t.Fatal("win banner still drawn after restart")
	}
}

func TestUnchangedFrameIsSmall(t *testing.T) {
	var out bytes.Buffer
	g := newTestGame(t, config.Default(), &out)
	_ = g.drawFrame()
	first := out.Len()

	out.Reset()
	_ = g.drawFrame()
	if out.Len() >= first/4 {
		t.Fatalf("repeat frame wrote %d bytes, first wrote %d", out.Len(), first)
	}
}

func TestClampTermSize(t *testing.T) {
	cases := []struct {
		w, h                   int
		rw, rh, offCol, offRow int
	}{
		{80, 24, 80, 24, 0, 0},
		{config.MaxTermWidth, config.MaxTermHeight, config.MaxTermWidth, config.MaxTermHeight, 0, 0},
		{config.MaxTermWidth + 10, config.MaxTermHeight + 4, config.MaxTermWidth, config.MaxTermHeight, 5, 2},
	}
	for _, tc := range cases {
		rw, rh, oc, or := clampTermSize(tc.w, tc.h)
		if rw != tc.rw || rh != tc.rh || oc != tc.offCol || or != tc.offRow {
			t.Fatalf("clampTermSize(%d,%d)=(%d,%d,%d,%d) want (%d,%d,%d,%d)",
				tc.w, tc.h, rw, rh, oc, or, tc.rw, tc.rh, tc.offCol, tc.offRow)
		}
	}
}

func TestResizeRecentersRenderArea(t *testing.T) {
	var out bytes.Buffer
	g := newTestGame(t, config.Default(), &out)
	_ = g.drawFrame()

	g.termSizeFunc = fixedSize(config.MaxTermWidth+20, config.MaxTermHeight+10)
	g.updateScreen()
	if g.canvas.Width() != config.MaxTermWidth || g.canvas.Height() != config.MaxTermHeight {
		t.Fatalf("canvas %dx%d", g.canvas.Width(), g.canvas.Height())
	}
	if g.offCol != 10 || g.offRow != 5 {
		t.Fatalf("offset=(%d,%d) want (10,5)", g.offCol, g.offRow)
	}

	out.Reset()
	_ = g.drawFrame()
	// Score sits at column 2, row 1 of the render area.
	if !strings.Contains(out.String(), "\033[6;12HScore: 0") {
		t.Fatalf("score not drawn at the offset position: %q", out.String())
	}
}
