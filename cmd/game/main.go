package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/tomz197/galactic/internal/audio"
	"github.com/tomz197/galactic/internal/config"
	"github.com/tomz197/galactic/internal/draw"
	"github.com/tomz197/galactic/internal/game"
	"github.com/tomz197/galactic/internal/loop"
	"github.com/tomz197/galactic/internal/loop/client"
	"github.com/tomz197/galactic/internal/platform"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	logFile, err := config.OpenLog()
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := config.NewLogger(logFile, "galactic")

	tiers, err := config.LoadTiers()
	if err != nil {
		return err
	}

	out := draw.NewLockedWriter(os.Stdout)
	user := config.GetEnv("USER", "pilot")
	sharer := platform.NewClipboardSharer(out, os.Getenv("TMUX") != "")
	deps, err := game.ForPlayer(config.DataDir(), user, sharer, tiers, config.ScaleProfile(), uint64(time.Now().UnixNano()))
	if err != nil {
		return err
	}
	deps.Logger = logger

	if config.GetEnvBool(config.EnvSound, true) {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sm.Close()
			deps.Sounds = sm
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "user", user, "data", config.DataDir())
	return loop.Run(ctx, os.Stdin, out, deps, client.ClientOptions{
		Profile: draw.LocalProfile(os.Stdout),
	})
}
