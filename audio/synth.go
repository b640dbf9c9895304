package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a fixed-length oscillator.
type tone struct {
	rate     beep.SampleRate
	wave     Wave
	freq     float64
	sweep    float64 // Hz per second
	phase    float64
	pos      int
	length   int
	noiseSrc *rand.Rand
}

// newTone returns a streamer playing freq for d, gliding by sweep Hz/s.
func newTone(rate beep.SampleRate, wave Wave, freq, sweep float64, d time.Duration) *tone {
	return &tone{
		rate:     rate,
		wave:     wave,
		freq:     freq,
		sweep:    sweep,
		length:   rate.N(d),
		noiseSrc: rand.New(rand.NewPCG(uint64(freq), 1)),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.length {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		case WaveNoise:
			v = t.noiseSrc.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		freq := t.freq + t.sweep*float64(t.pos)/float64(t.rate)
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope fades a streamer in over attack and out over its last release.
type envelope struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

func newEnvelope(s beep.Streamer, rate beep.SampleRate, total, attack, release time.Duration) *envelope {
	return &envelope{
		s:       s,
		total:   rate.N(total),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			gain = math.Min(gain, float64(left)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// gain scales a streamer linearly; zero silences it.
func gain(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

func shaped(rate beep.SampleRate, wave Wave, freq, sweep float64, d time.Duration) beep.Streamer {
	return newEnvelope(newTone(rate, wave, freq, sweep, d), rate, d, 5*time.Millisecond, d/2)
}

func coinSound(rate beep.SampleRate) beep.Streamer {
	return gain(beep.Seq(
		shaped(rate, WaveSquare, 987.77, 0, 70*time.Millisecond),
		shaped(rate, WaveSquare, 1318.51, 0, 180*time.Millisecond),
	), 0.25)
}

func jumpSound(rate beep.SampleRate) beep.Streamer {
	return gain(shaped(rate, WaveSine, 300, 1800, 150*time.Millisecond), 0.3)
}

func dodgeSound(rate beep.SampleRate) beep.Streamer {
	return gain(shaped(rate, WaveNoise, 0, 0, 90*time.Millisecond), 0.12)
}

func waveSound(rate beep.SampleRate) beep.Streamer {
	return gain(beep.Seq(
		shaped(rate, WaveSaw, 523.25, 0, 90*time.Millisecond),
		shaped(rate, WaveSaw, 659.25, 0, 90*time.Millisecond),
		shaped(rate, WaveSaw, 783.99, 0, 200*time.Millisecond),
	), 0.2)
}

func crashSound(rate beep.SampleRate) beep.Streamer {
	return gain(beep.Mix(
		shaped(rate, WaveNoise, 0, 0, 400*time.Millisecond),
		shaped(rate, WaveSine, 90, -120, 400*time.Millisecond),
	), 0.35)
}

// music is an endless kick-and-bass loop.
type music struct {
	rate beep.SampleRate
	beat int
	pos  int
}

func newMusic(rate beep.SampleRate) *music {
	return &music{rate: rate, beat: rate.N(480 * time.Millisecond)}
}

func (m *music) Stream(samples [][2]float64) (n int, ok bool) {
	kickLen := m.rate.N(100 * time.Millisecond)
	for i := range samples {
		inBeat := m.pos % m.beat
		t := float64(inBeat) / float64(m.rate)

		var kick float64
		if inBeat < kickLen {
			env := 1 - float64(inBeat)/float64(kickLen)
			kick = 0.4 * env * math.Sin(2*math.Pi*60*(1+2*env)*t)
		}
		// Bass walks up a fourth every fourth beat.
		note := 110.0
		if (m.pos/m.beat)%4 == 3 {
			note = 146.83
		}
		bass := 0.12 * math.Sin(2*math.Pi*note*float64(m.pos)/float64(m.rate))

		v := kick + bass
		samples[i][0], samples[i][1] = v, v
		m.pos++
	}
	return len(samples), true
}

func (m *music) Err() error { return nil }
