package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/galactic/internal/audio"
	"github.com/tomz197/galactic/internal/config"
	"github.com/tomz197/galactic/internal/game"
	"github.com/tomz197/galactic/internal/gfx"
	loopconfig "github.com/tomz197/galactic/internal/loop/config"
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
	logger := config.NewLogger(os.Stderr, "galactic")

	tiers, err := config.LoadTiers()
	if err != nil {
		return err
	}
	user := config.GetEnv("USER", "pilot")
	sharer := platform.NewClipboardSharer(os.Stdout, false)
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

	ebiten.SetWindowSize(loopconfig.FieldWidth/2, loopconfig.FieldHeight/2)
	ebiten.SetWindowTitle("Galactic Shooter")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(loopconfig.TickRate)

	logger.Info("starting", "user", user, "data", config.DataDir())
	return ebiten.RunGame(gfx.NewGame(game.New(deps)))
}
