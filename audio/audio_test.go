package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/laneshift/runner"
)

// drain streams s to the end and returns the number of samples and the
// largest absolute amplitude.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for range 10000 {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = max(peak, buf[i][0], -buf[i][0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never ended")
	return 0, 0
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	n, peak := drain(t, newTone(rate, WaveSine, 50, 0, 100*time.Millisecond))
	assert.Equal(t, 100, n)
	assert.LessOrEqual(t, peak, 1.0)
}

func TestSquareToneIsBinary(t *testing.T) {
	rate := beep.SampleRate(1000)
	buf := make([][2]float64, 64)
	n, ok := newTone(rate, WaveSquare, 30, 0, time.Second).Stream(buf)
	require.True(t, ok)
	for i := 0; i < n; i++ {
		assert.Contains(t, []float64{-1, 1}, buf[i][0])
	}
}

func TestEnvelopeFades(t *testing.T) {
	rate := beep.SampleRate(1000)
	env := newEnvelope(newTone(rate, WaveSquare, 10, 0, time.Second), rate, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond)

	buf := make([][2]float64, 200)
	n, _ := env.Stream(buf)
	require.Equal(t, 100, n)
	assert.Zero(t, buf[0][0], "attack starts silent")
	assert.Equal(t, 1.0, buf[50][0]*buf[50][0])
	assert.InDelta(t, 0.1, buf[99][0]*buf[99][0], 0.1)
}

func TestEffectsAreFinite(t *testing.T) {
	kinds := []runner.Event{
		{Kind: runner.EventCoinCollected},
		{Kind: runner.EventJumped},
		{Kind: runner.EventObstacleDodged},
		{Kind: runner.EventWaveAdvanced},
		{Kind: runner.EventSessionEnded, Outcome: runner.OutcomeCollided},
		{Kind: runner.EventSessionEnded, Outcome: runner.OutcomeWon},
	}
	for _, e := range kinds {
		t.Run(e.Kind.String(), func(t *testing.T) {
			s := effectFor(e)
			require.NotNil(t, s)
			n, peak := drain(t, s)
			assert.Positive(t, n)
			assert.Less(t, n, sampleRate.N(time.Second))
			assert.Positive(t, peak)
			assert.LessOrEqual(t, peak, 1.0)
		})
	}
	assert.Nil(t, effectFor(runner.Event{Kind: runner.EventLaneChanged}))
}

func TestMusicNeverEnds(t *testing.T) {
	m := newMusic(sampleRate)
	buf := make([][2]float64, 1024)
	for range 200 {
		n, ok := m.Stream(buf)
		require.True(t, ok)
		require.Equal(t, len(buf), n)
	}
}

func TestPlayerRoutesEvents(t *testing.T) {
	p := New(Options{Enabled: true, Music: true}, nil)
	var played []beep.Streamer
	p.attach(func(s beep.Streamer) { played = append(played, s) })
	require.Len(t, played, 1, "music loop")
	assert.False(t, p.music.Paused)

	p.HandleEvents([]runner.Event{
		{Kind: runner.EventCoinCollected},
		{Kind: runner.EventLaneChanged},
		{Kind: runner.EventSessionPaused},
	})
	assert.Len(t, played, 2)
	assert.True(t, p.music.Paused)

	p.HandleEvents([]runner.Event{{Kind: runner.EventSessionResumed}})
	assert.False(t, p.music.Paused)

	assert.False(t, p.ToggleMusic())
	assert.True(t, p.music.Paused)
	p.HandleEvents([]runner.Event{{Kind: runner.EventSessionResumed}})
	assert.True(t, p.music.Paused, "music stays off after a resume")
}

func TestDisabledPlayerIsSilent(t *testing.T) {
	p := New(Options{Enabled: false}, nil)
	p.Init()
	p.HandleEvents([]runner.Event{{Kind: runner.EventCoinCollected}})
	assert.True(t, p.ToggleMusic())
	p.Close()
	assert.False(t, p.ready)
}
