// Package replay records the inputs and frame deltas of a session so it can
// be played back and checked tick for tick.
package replay

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/plus3/laneshift/runner"
)

// Version is the encoding version written by this package.
const Version = 1

var (
	// ErrVersion is returned when decoding a replay of another version.
	ErrVersion = errors.New("unsupported replay version")
	// ErrMismatch is returned when playback diverges from the recording.
	ErrMismatch = errors.New("replay diverged")
)

// Frame is one recorded tick and the inputs applied before it.
type Frame struct {
	DT     float64        `msgpack:"dt"`
	Inputs []runner.Input `msgpack:"inputs,omitempty"`
}

// Replay is a complete recording.
type Replay struct {
	Version    int            `msgpack:"version"`
	Seed       uint64         `msgpack:"seed"`
	Tuning     runner.Tuning  `msgpack:"tuning"`
	Frames     []Frame        `msgpack:"frames"`
	FinalScore float64        `msgpack:"finalScore"`
	Outcome    runner.Outcome `msgpack:"outcome"`
}

// Recorder wraps a game and records everything driven through it.
type Recorder struct {
	game    *runner.Game
	replay  Replay
	pending []runner.Input
}

// NewRecorder starts recording game, which must have been built from seed.
func NewRecorder(game *runner.Game, seed uint64) *Recorder {
	return &Recorder{
		game: game,
		replay: Replay{
			Version: Version,
			Seed:    seed,
			Tuning:  game.Tuning(),
		},
	}
}

func (r *Recorder) Apply(in runner.Input) bool {
	r.pending = append(r.pending, in)
	return r.game.Apply(in)
}

func (r *Recorder) Tick(dt float64) []runner.Event {
	r.replay.Frames = append(r.replay.Frames, Frame{DT: dt, Inputs: r.pending})
	r.pending = nil
	return r.game.Tick(dt)
}

func (r *Recorder) Snapshot() runner.Snapshot {
	return r.game.Snapshot()
}

// Replay returns the recording so far, stamped with the current score and
// outcome. Inputs applied after the last tick are not included.
func (r *Recorder) Replay() *Replay {
	snap := r.game.Snapshot()
	out := r.replay
	out.Frames = append([]Frame(nil), r.replay.Frames...)
	out.FinalScore = snap.Session.Score
	out.Outcome = snap.Session.Outcome
	return &out
}

// Encode writes rep as msgpack.
func Encode(w io.Writer, rep *Replay) error {
	if err := msgpack.NewEncoder(w).Encode(rep); err != nil {
		return fmt.Errorf("encoding replay: %w", err)
	}
	return nil
}

// Decode reads a replay written by Encode.
func Decode(r io.Reader) (*Replay, error) {
	var rep Replay
	if err := msgpack.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decoding replay: %w", err)
	}
	if rep.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, rep.Version)
	}
	return &rep, nil
}

// Save writes rep to path.
func Save(path string, rep *Replay) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving replay: %w", err)
	}
	if err := Encode(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a replay from path.
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading replay: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Play runs rep against a fresh game and returns the final state.
func Play(rep *Replay, logger *slog.Logger) (runner.Snapshot, error) {
	game, err := runner.NewGame(runner.GameConfig{
		Tuning: rep.Tuning,
		Seed:   rep.Seed,
		Logger: logger,
	})
	if err != nil {
		return runner.Snapshot{}, fmt.Errorf("replay tuning: %w", err)
	}

	for _, frame := range rep.Frames {
		for _, in := range frame.Inputs {
			game.Apply(in)
		}
		game.Tick(frame.DT)
	}
	return game.Snapshot(), nil
}

// Verify plays rep and checks that it ends with the recorded score and
// outcome.
func Verify(rep *Replay, logger *slog.Logger) (runner.Snapshot, error) {
	snap, err := Play(rep, logger)
	if err != nil {
		return snap, err
	}
	if snap.Session.Score != rep.FinalScore || snap.Session.Outcome != rep.Outcome {
		return snap, fmt.Errorf("%w: recorded score %.3f (%s), replayed %.3f (%s)",
			ErrMismatch, rep.FinalScore, rep.Outcome, snap.Session.Score, snap.Session.Outcome)
	}
	return snap, nil
}
