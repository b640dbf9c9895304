package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/laneshift/runner"
)

// maxSessionFrames bounds one autopilot session, about an hour of frames.
const maxSessionFrames = 60 * 60 * 60

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	sessions := flag.Int("sessions", 0, "Stop after this many sessions. 0 runs until the duration elapses.")
	seed := flag.Uint64("seed", 1, "Seed of the first session; each following session adds one.")
	fixed := flag.Bool("fixed", false, "Integrate through the fixed-step clock with jittered frame times.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting laneshift soak...")

	report := &Report{
		Duration:       *duration,
		Sessions:       *sessions,
		Seed:           *seed,
		Fixed:          *fixed,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	soak(ctx, report, *sessions, *seed, *fixed, maxSessionFrames)
	report.TotalTime = time.Since(startTime)
	report.TickTime.Finalize()
	report.Scores.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Soak finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// soak plays autopilot sessions back to back until ctx is done or the
// session limit is reached. Each session is cut off after maxFrames frames.
func soak(ctx context.Context, report *Report, limit int, seed uint64, fixed bool, maxFrames int) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	pilot := runner.DefaultAutopilot()
	jitter := rand.New(rand.NewPCG(seed, 0))

	for i := 0; limit == 0 || i < limit; i++ {
		if ctx.Err() != nil {
			return
		}

		game, err := runner.NewGame(runner.GameConfig{
			Tuning: runner.DefaultTuning(),
			Seed:   seed + uint64(i),
			Logger: quiet,
		})
		if err != nil {
			log.Fatalf("Failed to build game: %v", err)
		}

		var clock runner.Clock = runner.VariableClock{}
		if fixed {
			clock = runner.NewFixedClock(60, 5)
		}
		driver := &timedDriver{Driver: game, samples: &report.TickTime}

		snap := playSession(ctx, pilot, driver, clock, jitter, maxFrames)
		report.record(snap)
	}
}

// playSession drives one session with frame times between 8 and 33ms.
func playSession(ctx context.Context, pilot runner.Autopilot, d runner.Driver, clock runner.Clock, jitter *rand.Rand, maxFrames int) runner.Snapshot {
	for range maxFrames {
		if ctx.Err() != nil {
			break
		}
		pilot.Drive(d)
		runner.Advance(d, clock, 0.008+jitter.Float64()*0.025)
		if d.Snapshot().Session.Phase == runner.PhaseEnded {
			break
		}
	}
	return d.Snapshot()
}

// timedDriver samples how long each tick takes.
type timedDriver struct {
	runner.Driver
	samples *Stats
}

func (d *timedDriver) Tick(dt float64) []runner.Event {
	start := time.Now()
	events := d.Driver.Tick(dt)
	d.samples.Samples = append(d.samples.Samples, time.Since(start))
	return events
}
