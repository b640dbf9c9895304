package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/plus3/laneshift/config"
	"github.com/plus3/laneshift/highscore"
	"github.com/plus3/laneshift/replay"
	"github.com/plus3/laneshift/runner"
)

// options holds the command-line flags. They override the configuration.
type options struct {
	config   string
	ui       string
	seed     uint64
	demo     bool
	record   string
	replay   string
	debug    bool
	logLevel string
	ticks    int
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("laneshift", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&o.config, "config", "", "YAML configuration file.")
	fs.StringVar(&o.ui, "ui", "", "Front-end: gui, tui or headless.")
	fs.Uint64Var(&o.seed, "seed", 0, "Random seed. 0 uses the configured seed, or the clock if that is 0 too.")
	fs.BoolVar(&o.demo, "demo", false, "Let the autopilot play.")
	fs.StringVar(&o.record, "record", "", "Write a replay of this run to the given file.")
	fs.StringVar(&o.replay, "replay", "", "Play back a replay headless and verify its final score.")
	fs.BoolVar(&o.debug, "debug", false, "Enable the F1 debug overlay in the window front-end.")
	fs.StringVar(&o.logLevel, "log", "", "Log level: debug, info, warn or error.")
	fs.IntVar(&o.ticks, "ticks", 0, "Stop a headless run after this many ticks. 0 runs until the session ends.")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

// apply lays the flags over cfg and revalidates it.
func (o options) apply(cfg *config.Config) error {
	if o.ui != "" {
		cfg.UI = o.ui
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	return cfg.Validate()
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "laneshift:", err)
		os.Exit(1)
	}
}

func run(opts options) (err error) {
	cfg, err := config.Load(opts.config, ".env")
	if err != nil {
		return err
	}
	if err := opts.apply(&cfg); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.replay != "" {
		return verifyReplay(opts.replay, logger)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	game, err := runner.NewGame(runner.GameConfig{
		Tuning: cfg.Tuning,
		Seed:   seed,
		Scores: newScoreStore(cfg),
		Logger: logger,
	})
	if err != nil {
		return err
	}
	logger.Info("starting", "ui", cfg.UI, "seed", seed, "timestep", cfg.Timestep.Mode)

	var driver runner.Driver = game
	if opts.record != "" {
		recorder := replay.NewRecorder(game, seed)
		driver = recorder
		defer func() {
			if saveErr := replay.Save(opts.record, recorder.Replay()); saveErr != nil {
				err = errors.Join(err, saveErr)
				return
			}
			logger.Info("replay saved", "path", opts.record)
		}()
	}

	var pilot *runner.Autopilot
	if opts.demo || cfg.UI == config.UIHeadless {
		p := runner.DefaultAutopilot()
		pilot = &p
	}

	switch cfg.UI {
	case config.UIHeadless:
		return runHeadless(ctx, driver, pilot, cfg, opts.ticks, os.Stdout)
	case config.UITui:
		return runTUI(ctx, game, driver, pilot, cfg, logger)
	default:
		return runGUI(game, driver, pilot, cfg, opts.debug, logger)
	}
}

// newLogger builds the process logger. The terminal front-end owns the
// screen, so without a configured file it logs to the temp directory.
func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, nil, err
	}

	path := cfg.Log.File
	if path == "" && cfg.UI == config.UITui {
		path = filepath.Join(os.TempDir(), "laneshift.log")
	}

	var w io.Writer = os.Stderr
	closeLog := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeLog = func() { f.Close() }
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeLog, nil
}

func newScoreStore(cfg config.Config) runner.ScoreKeeper {
	if cfg.HighScore.File == "" {
		return &highscore.MemoryStore{}
	}
	return highscore.NewFileStore(cfg.HighScore.File)
}

func verifyReplay(path string, logger *slog.Logger) error {
	rep, err := replay.Load(path)
	if err != nil {
		return err
	}
	snap, err := replay.Verify(rep, logger)
	if err != nil {
		return err
	}
	fmt.Printf("replay ok: %d frames, score %d, %s\n",
		len(rep.Frames), snap.Scoreboard.Final, snap.Session.Outcome)
	return nil
}

// runHeadless plays one session with the autopilot at the configured rate.
func runHeadless(ctx context.Context, driver runner.Driver, pilot *runner.Autopilot, cfg config.Config, ticks int, out io.Writer) error {
	dt := 1.0 / 60
	if cfg.Timestep.Mode == config.TimestepFixed {
		dt = 1 / cfg.Timestep.Rate
	}

	snap, err := pilot.PlaySession(ctx, driver, dt, ticks)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Fprintf(out, "score %d  wave %d  speed %.2f  ticks %d  %s\n",
		snap.Scoreboard.Score, snap.Session.Wave, snap.Session.Speed, snap.Session.Ticks, snap.Session.Phase)
	return nil
}
