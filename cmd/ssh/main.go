package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"go.uber.org/zap"

	"github.com/tomz197/catcher/internal/config"
	"github.com/tomz197/catcher/internal/draw"
	"github.com/tomz197/catcher/internal/loop"
	loopconfig "github.com/tomz197/catcher/internal/loop/config"
)

const shutdownTimeout = 5 * time.Second

func main() {
	host, err := config.LoadHost()
	if err != nil {
		fmt.Fprintf(os.Stderr, "catcher-ssh: %v\n", err)
		os.Exit(1)
	}

	out := "stderr"
	if host.Log.File != "" {
		out = host.Log.File
	}
	log, err := config.NewLogger(host.Log, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catcher-ssh: create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	tuning, err := loopconfig.Load(host.TuningPath)
	if err != nil {
		log.Fatal("load tuning", zap.Error(err))
	}

	workingDir, err := os.Getwd()
	if err != nil {
		log.Warn("working directory unavailable", zap.Error(err))
	}
	log.Info("ssh config",
		zap.String("host", host.SSHHost),
		zap.String("port", host.SSHPort),
		zap.String("host_key", host.HostKeyPath),
		zap.String("working_dir", workingDir),
		zap.String("tuning", host.TuningPath))

	// Canceled on shutdown to end every running game.
	gamesCtx, stopGames := context.WithCancel(context.Background())
	defer stopGames()

	games := &gameHandler{
		ctx:    gamesCtx,
		tuning: tuning,
		seed:   host.Seed,
		fps:    host.FPS,
		log:    log,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host.SSHHost, host.SSHPort)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(zap.NewStdLog(log.Named("ssh"))),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if host.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(host.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("create server", zap.Error(err))
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	log.Info("starting ssh server", zap.String("addr", s.Addr))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("serve", zap.Error(err))
		}
	}()

	<-done
	log.Info("shutting down", zap.Int("active_games", games.active()))
	stopGames()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

// gameHandler runs one independent game per SSH session.
type gameHandler struct {
	ctx    context.Context
	tuning loopconfig.Tuning
	seed   uint64
	fps    int
	log    *zap.Logger

	mu    sync.Mutex
	count int
}

func (h *gameHandler) active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

func (h *gameHandler) track(delta int) {
	h.mu.Lock()
	h.count += delta
	h.mu.Unlock()
}

func (h *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		log := h.log.With(
			zap.String("user", sess.User()),
			zap.String("remote", sess.RemoteAddr().String()))
		log.Info("game session started",
			zap.String("term", pty.Term),
			zap.Int("width", pty.Window.Width),
			zap.Int("height", pty.Window.Height))

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stop := context.AfterFunc(h.ctx, cancel)
		defer stop()

		h.track(1)
		defer h.track(-1)

		err := loop.Run(ctx, bufio.NewReader(sess), sess, loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			Tuning:       h.tuning,
			Seed:         h.seed,
			FPS:          h.fps,
			Logger:       log,
		})
		if err != nil {
			log.Error("game error", zap.Error(err))
		}

		log.Info("game session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
