package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/catcher/internal/audio"
	"github.com/tomz197/catcher/internal/config"
	"github.com/tomz197/catcher/internal/loop"
	loopconfig "github.com/tomz197/catcher/internal/loop/config"
	"github.com/tomz197/catcher/internal/loop/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "catcher: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	host, err := config.LoadHost()
	if err != nil {
		return err
	}
	tuning, err := loopconfig.Load(host.TuningPath)
	if err != nil {
		return err
	}

	// The game owns the terminal, so logs only go to a file.
	log := zap.NewNop()
	if host.Log.File != "" {
		if log, err = config.NewLogger(host.Log, host.Log.File); err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
	}
	defer log.Sync()

	var listener session.Listener
	if host.Audio {
		sink, err := audio.OpenSpeaker()
		if err != nil {
			log.Warn("audio disabled", zap.Error(err))
		} else {
			listener = audio.NewCues(sink, log.Named("audio"))
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	log.Info("starting game",
		zap.String("tuning", host.TuningPath),
		zap.Uint64("seed", host.Seed),
		zap.Bool("audio", listener != nil))

	err = loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Tuning:   tuning,
		Seed:     host.Seed,
		FPS:      host.FPS,
		Logger:   log,
		Listener: listener,
	})
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}
