// Package audio plays synthesized effects and a music loop in response to
// game events. Audio is best effort: if the output device cannot be opened
// every call becomes a no-op.
package audio

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/plus3/laneshift/runner"
)

const sampleRate = beep.SampleRate(44100)

// Options configures the player.
type Options struct {
	Enabled bool
	Music   bool
	// Volume is a log2 gain applied to everything. Zero leaves levels as is.
	Volume float64
}

// Player owns the speaker mixer.
type Player struct {
	mu     sync.Mutex
	opts   Options
	logger *slog.Logger

	mixer  *beep.Mixer
	music  *beep.Ctrl
	output func(beep.Streamer)
	ready  bool
}

// New returns a player. Call Init before use.
func New(opts Options, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{opts: opts, logger: logger, mixer: &beep.Mixer{}}
}

// Init opens the speaker. A failure is logged and leaves the player silent.
func (p *Player) Init() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready || !p.opts.Enabled {
		return
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		p.logger.Warn("audio disabled", "error", err)
		return
	}

	master := beep.Streamer(p.mixer)
	if p.opts.Volume != 0 {
		master = gain(p.mixer, math.Exp2(p.opts.Volume))
	}
	speaker.Play(master)

	p.attach(func(s beep.Streamer) {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	})
}

// attach makes output the destination for sounds. Callers hold p.mu.
func (p *Player) attach(output func(beep.Streamer)) {
	p.output = output
	p.ready = true
	p.music = &beep.Ctrl{Streamer: newMusic(sampleRate), Paused: !p.opts.Music}
	output(p.music)
}

// HandleEvents plays the effect for each event.
func (p *Player) HandleEvents(events []runner.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	for _, e := range events {
		switch e.Kind {
		case runner.EventSessionPaused:
			p.setMusicPaused(true)
			continue
		case runner.EventSessionResumed, runner.EventSessionStarted:
			p.setMusicPaused(!p.opts.Music)
		case runner.EventSessionEnded:
			p.setMusicPaused(true)
		}
		if s := effectFor(e); s != nil {
			p.output(s)
		}
	}
}

// ToggleMusic switches the music loop on or off and reports the new state.
func (p *Player) ToggleMusic() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.opts.Music = !p.opts.Music
	if p.ready {
		p.setMusicPaused(!p.opts.Music)
	}
	return p.opts.Music
}

func (p *Player) setMusicPaused(paused bool) {
	speaker.Lock()
	p.music.Paused = paused
	speaker.Unlock()
}

// Close silences everything.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.ready = false
}

func effectFor(e runner.Event) beep.Streamer {
	switch e.Kind {
	case runner.EventCoinCollected:
		return coinSound(sampleRate)
	case runner.EventJumped:
		return jumpSound(sampleRate)
	case runner.EventObstacleDodged:
		return dodgeSound(sampleRate)
	case runner.EventWaveAdvanced:
		return waveSound(sampleRate)
	case runner.EventSessionEnded:
		if e.Outcome == runner.OutcomeWon {
			return waveSound(sampleRate)
		}
		return crashSound(sampleRate)
	}
	return nil
}
