package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/laneshift/audio"
	"github.com/plus3/laneshift/config"
	"github.com/plus3/laneshift/ecs/debugui"
	debugui_ebiten "github.com/plus3/laneshift/ecs/debugui/ebiten"
	"github.com/plus3/laneshift/gui"
	"github.com/plus3/laneshift/runner"
	"github.com/plus3/laneshift/tui"
)

func newSound(cfg config.Config, logger *slog.Logger) *audio.Player {
	player := audio.New(audio.Options{
		Enabled: cfg.Audio.Enabled,
		Music:   cfg.Audio.Music,
		Volume:  cfg.Audio.Volume,
	}, logger)
	player.Init()
	return player
}

func runGUI(game *runner.Game, driver runner.Driver, pilot *runner.Autopilot, cfg config.Config, debug bool, logger *slog.Logger) error {
	sound := newSound(cfg, logger)
	defer sound.Close()

	opts := gui.Options{
		Title:        cfg.Window.Title,
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		PlayerSprite: cfg.Assets.PlayerSprite,
		Clock:        cfg.Clock(),
		Pilot:        pilot,
		Sound:        sound,
		Logger:       logger,
	}
	if debug {
		backend := debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		opts.Overlay = debugui_ebiten.NewOverlay(backend, debugui.Target{
			Storage:    game.Storage(),
			Scheduler:  game.Scheduler(),
			WatchTitle: "Session",
			Watch:      watchSession(game),
		})
	}

	return gui.New(driver, opts).Run()
}

// watchSession feeds the overlay's session panel.
func watchSession(game *runner.Game) func() []debugui.Field {
	return func() []debugui.Field {
		snap := game.Snapshot()
		fields := debugui.Struct("session", snap.Session)
		fields = append(fields, debugui.Struct("player", snap.Player)...)
		return append(fields, debugui.Struct("board", snap.Scoreboard)...)
	}
}

func runTUI(ctx context.Context, game *runner.Game, driver runner.Driver, pilot *runner.Autopilot, cfg config.Config, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer screen.Fini()

	sound := newSound(cfg, logger)
	defer sound.Close()

	err = tui.New(screen, driver, tui.Options{
		Clock:  cfg.Clock(),
		Pilot:  pilot,
		Sound:  sound,
		Logger: logger,
	}).Run(ctx)

	board := game.Snapshot().Scoreboard
	logger.Info("terminal closed", "score", board.Score, "best", board.Best)
	return err
}
